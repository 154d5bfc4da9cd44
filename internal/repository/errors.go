// Package repository implements the store interfaces over MySQL. The
// sentinel errors below let services distinguish anticipated storage
// outcomes (a lost insert race, a failed capacity re-check) from
// genuine failures without parsing driver messages themselves.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned by mutating operations that matched no row,
// such as switching a seat when the user holds no reservation.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateKey is returned when an insert violates a unique key. For
// reservations this is the signal that a concurrent writer won the race
// for the seat (or for the user's single reservation slot).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrCapacityExceeded is returned by the transactional table-batch
// insert when the re-check under lock finds the location's table
// ceiling would be exceeded. Nothing is inserted in that case.
var ErrCapacityExceeded = errors.New("table capacity exceeded")

// ErrInvitationConsumed is returned when accepting an invitation that
// is no longer pending; two concurrent acceptance attempts resolve to
// exactly one winner through the conditional update.
var ErrInvitationConsumed = errors.New("invitation already accepted")

// ErrEmailExists is returned when creating a user whose email is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL unique-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
