package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

const (
	testEventID = "event-1"
	testGuestID = "guest-1"
)

func acceptedInvitation(invs *fakeInvitations, eventID, guestID string) {
	gid := guestID
	invs.byID["inv-"+guestID] = &model.Invitation{
		ID:      "inv-" + guestID,
		Email:   guestID + "@example.com",
		Token:   "tok-" + guestID,
		EventID: eventID,
		GuestID: &gid,
		Status:  model.InvitationAccepted,
	}
}

func newReservationFixture() (*service.ReservationService, *fakeInvitations, *fakeReservations) {
	invs := newFakeInvitations()
	res := newFakeReservations()
	return service.NewReservationService(invs, res), invs, res
}

func TestReservationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("claims a free seat", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		res.addSeat(testEventID, "seat-1")

		r, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.NoError(t, err)
		assert.Equal(t, "seat-1", r.SeatID)
		assert.Equal(t, testGuestID, r.UserID)
		assert.NotEmpty(t, r.ID)
	})

	t.Run("rejects guests without an accepted invitation", func(t *testing.T) {
		svc, _, res := newReservationFixture()
		res.addSeat(testEventID, "seat-1")

		_, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.Error(t, err)
		assert.Equal(t, service.KindForbidden, service.KindOf(err))
	})

	t.Run("rejects a seat from another event", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		res.addSeat("other-event", "seat-1")

		_, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.Error(t, err)
		assert.Equal(t, service.KindValidation, service.KindOf(err))
	})

	t.Run("rejects an occupied seat", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		acceptedInvitation(invs, testEventID, "guest-2")
		res.addSeat(testEventID, "seat-1")

		_, err := svc.Create(ctx, testEventID, "guest-2", "seat-1")
		require.NoError(t, err)

		_, err = svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.Error(t, err)
		assert.Equal(t, service.KindConflict, service.KindOf(err))
	})

	t.Run("rejects a second reservation by the same guest", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		res.addSeat(testEventID, "seat-1")
		res.addSeat(testEventID, "seat-2")

		_, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.NoError(t, err)

		_, err = svc.Create(ctx, testEventID, testGuestID, "seat-2")
		require.Error(t, err)
		assert.Equal(t, service.KindConflict, service.KindOf(err))
	})

	t.Run("maps an insert race to a conflict", func(t *testing.T) {
		invs := newFakeInvitations()
		res := &racingReservations{fakeReservations: newFakeReservations()}
		svc := service.NewReservationService(invs, res)
		acceptedInvitation(invs, testEventID, testGuestID)
		res.addSeat(testEventID, "seat-1")

		_, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.Error(t, err)
		assert.Equal(t, service.KindConflict, service.KindOf(err))
	})
}

// racingReservations simulates a concurrent writer winning the unique
// key between the occupancy check and the insert.
type racingReservations struct {
	*fakeReservations
}

func (r *racingReservations) Create(context.Context, *model.Reservation) error {
	return repository.ErrDuplicateKey
}

func TestReservationSwitchSeat(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the reservation to a free seat", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		res.addSeat(testEventID, "seat-1")
		res.addSeat(testEventID, "seat-2")

		_, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.NoError(t, err)

		r, err := svc.SwitchSeat(ctx, testEventID, testGuestID, "seat-2")
		require.NoError(t, err)
		assert.Equal(t, "seat-2", r.SeatID)

		old, err := res.FindByEventAndSeat(ctx, testEventID, "seat-1")
		require.NoError(t, err)
		assert.Nil(t, old, "old seat should be released")
	})

	t.Run("fails when the guest holds no reservation", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		res.addSeat(testEventID, "seat-2")

		_, err := svc.SwitchSeat(ctx, testEventID, testGuestID, "seat-2")
		require.Error(t, err)
		assert.Equal(t, service.KindNotFound, service.KindOf(err))
	})

	t.Run("fails when the target seat is occupied by someone else", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		acceptedInvitation(invs, testEventID, "guest-2")
		res.addSeat(testEventID, "seat-1")
		res.addSeat(testEventID, "seat-2")

		_, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.NoError(t, err)
		_, err = svc.Create(ctx, testEventID, "guest-2", "seat-2")
		require.NoError(t, err)

		_, err = svc.SwitchSeat(ctx, testEventID, testGuestID, "seat-2")
		require.Error(t, err)
		assert.Equal(t, service.KindConflict, service.KindOf(err))
	})

	t.Run("requires an accepted invitation", func(t *testing.T) {
		svc, _, res := newReservationFixture()
		res.addSeat(testEventID, "seat-2")

		_, err := svc.SwitchSeat(ctx, testEventID, testGuestID, "seat-2")
		require.Error(t, err)
		assert.Equal(t, service.KindForbidden, service.KindOf(err))
	})
}

func TestReservationCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the seat", func(t *testing.T) {
		svc, invs, res := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)
		res.addSeat(testEventID, "seat-1")

		_, err := svc.Create(ctx, testEventID, testGuestID, "seat-1")
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(ctx, testEventID, testGuestID))

		gone, err := res.FindByEventAndUser(ctx, testEventID, testGuestID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("fails without a reservation", func(t *testing.T) {
		svc, invs, _ := newReservationFixture()
		acceptedInvitation(invs, testEventID, testGuestID)

		err := svc.Cancel(ctx, testEventID, testGuestID)
		require.Error(t, err)
		assert.Equal(t, service.KindNotFound, service.KindOf(err))
	})

	t.Run("requires an accepted invitation", func(t *testing.T) {
		svc, _, _ := newReservationFixture()

		err := svc.Cancel(ctx, testEventID, testGuestID)
		require.Error(t, err)
		assert.Equal(t, service.KindForbidden, service.KindOf(err))
	})
}
