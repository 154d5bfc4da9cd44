package service_test

// In-memory store fakes. They reproduce the storage contract the
// services rely on: lookups return (nil, nil) when no row matches, and
// anticipated outcomes surface as the repository sentinel errors.

import (
	"context"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// ---- users ----

type fakeUsers struct {
	byID    map[string]*model.User
	deleted []string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]*model.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// ---- refresh tokens ----

type storedToken struct {
	userID  string
	exp     time.Time
	revoked bool
}

type fakeTokens struct {
	byHash map[string]*storedToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{byHash: make(map[string]*storedToken)}
}

func (f *fakeTokens) StoreRefresh(_ context.Context, userID, hash string, exp time.Time) error {
	f.byHash[hash] = &storedToken{userID: userID, exp: exp}
	return nil
}

func (f *fakeTokens) ValidateRefresh(_ context.Context, hash string) (string, error) {
	t, ok := f.byHash[hash]
	if !ok || t.revoked || time.Now().After(t.exp) {
		return "", repository.ErrNotFound
	}
	return t.userID, nil
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	if t, ok := f.byHash[hash]; ok {
		t.revoked = true
	}
	return nil
}

// ---- locations ----

type fakeLocations struct {
	byID map[string]*model.Location
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{byID: make(map[string]*model.Location)}
}

func (f *fakeLocations) Create(_ context.Context, l *model.Location) error {
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLocations) FindByID(_ context.Context, id string) (*model.Location, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocations) FindAll(_ context.Context) ([]model.Location, error) {
	out := make([]model.Location, 0, len(f.byID))
	for _, l := range f.byID {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLocations) Update(_ context.Context, l *model.Location) error {
	if _, ok := f.byID[l.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

// ---- spaces ----

type fakeSpaces struct {
	byID map[string]*model.Space
}

func newFakeSpaces() *fakeSpaces {
	return &fakeSpaces{byID: make(map[string]*model.Space)}
}

func (f *fakeSpaces) Create(_ context.Context, s *model.Space) error {
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSpaces) FindByID(_ context.Context, id string) (*model.Space, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSpaces) FindAll(_ context.Context) ([]model.Space, error) {
	out := make([]model.Space, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSpaces) FindByLocation(_ context.Context, locationID string) ([]model.Space, error) {
	out := make([]model.Space, 0)
	for _, s := range f.byID {
		if s.LocationID == locationID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSpaces) Update(_ context.Context, s *model.Space) error {
	if _, ok := f.byID[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

// ---- events ----

type fakeEvents struct {
	byID      map[string]*model.Event
	locations *fakeLocations
	layout    *model.LayoutData
	details   []model.EventDetail
	deleted   []string
}

func newFakeEvents(locations *fakeLocations) *fakeEvents {
	return &fakeEvents{byID: make(map[string]*model.Event), locations: locations}
}

func (f *fakeEvents) Create(_ context.Context, e *model.Event) error {
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEvents) FindByID(_ context.Context, id string) (*model.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEvents) FindByIDWithLocation(ctx context.Context, id string) (*model.EventWithLocation, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	out := &model.EventWithLocation{Event: *e}
	if f.locations != nil {
		if l, _ := f.locations.FindByID(ctx, e.LocationID); l != nil {
			out.LocationName = l.Name
			out.LocationAddress = l.Address
		}
	}
	return out, nil
}

func (f *fakeEvents) FindByOrganizer(_ context.Context, organizerID string) ([]model.EventDetail, error) {
	out := make([]model.EventDetail, 0)
	for _, d := range f.details {
		if d.Event.OrganizerID == organizerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeEvents) FindByLocationAndDate(_ context.Context, locationID string, date time.Time) (*model.Event, error) {
	for _, e := range f.byID {
		if e.LocationID == locationID && e.Date.Equal(date) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEvents) Save(_ context.Context, e *model.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEvents) GetLayout(_ context.Context, eventID string) (*model.LayoutData, error) {
	if f.layout == nil || f.layout.Event.ID != eventID {
		return nil, nil
	}
	return f.layout, nil
}

// ---- tables ----

type fakeTables struct {
	countByEvent map[string]int
	lastBatch    []model.TableWithSeats
}

func newFakeTables() *fakeTables {
	return &fakeTables{countByEvent: make(map[string]int)}
}

func (f *fakeTables) CountByEvent(_ context.Context, eventID string) (int, error) {
	return f.countByEvent[eventID], nil
}

func (f *fakeTables) CreateManyWithSeats(_ context.Context, eventID string, tables []model.TableWithSeats, maxTables int) (int, error) {
	if f.countByEvent[eventID]+len(tables) > maxTables {
		return 0, repository.ErrCapacityExceeded
	}
	f.countByEvent[eventID] += len(tables)
	f.lastBatch = tables
	return f.countByEvent[eventID], nil
}

// ---- invitations ----

type fakeInvitations struct {
	byID       map[string]*model.Invitation
	acceptErr  error
	createErr  error
	acceptedID string
}

func newFakeInvitations() *fakeInvitations {
	return &fakeInvitations{byID: make(map[string]*model.Invitation)}
}

func (f *fakeInvitations) Create(_ context.Context, inv *model.Invitation) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *inv
	f.byID[inv.ID] = &cp
	return nil
}

func (f *fakeInvitations) FindByToken(_ context.Context, token string) (*model.Invitation, error) {
	for _, inv := range f.byID {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitations) FindPendingByEmailAndEvent(_ context.Context, email, eventID string) (*model.Invitation, error) {
	for _, inv := range f.byID {
		if inv.Email == email && inv.EventID == eventID && inv.Status == model.InvitationPending {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitations) FindAcceptedByGuestAndEvent(_ context.Context, guestID, eventID string) (*model.Invitation, error) {
	for _, inv := range f.byID {
		if inv.EventID == eventID && inv.Status == model.InvitationAccepted &&
			inv.GuestID != nil && *inv.GuestID == guestID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitations) Accept(_ context.Context, invitationID, guestID string) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	inv, ok := f.byID[invitationID]
	if !ok || inv.Status != model.InvitationPending {
		return repository.ErrInvitationConsumed
	}
	inv.Status = model.InvitationAccepted
	inv.GuestID = &guestID
	f.acceptedID = invitationID
	return nil
}

// ---- reservations ----

type fakeReservations struct {
	rows  []*model.Reservation
	seats map[string]map[string]bool // eventID -> seatID -> exists
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{seats: make(map[string]map[string]bool)}
}

func (f *fakeReservations) addSeat(eventID, seatID string) {
	if f.seats[eventID] == nil {
		f.seats[eventID] = make(map[string]bool)
	}
	f.seats[eventID][seatID] = true
}

func (f *fakeReservations) Create(_ context.Context, r *model.Reservation) error {
	for _, row := range f.rows {
		if row.EventID == r.EventID && (row.SeatID == r.SeatID || row.UserID == r.UserID) {
			return repository.ErrDuplicateKey
		}
	}
	cp := *r
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeReservations) FindByEventAndSeat(_ context.Context, eventID, seatID string) (*model.Reservation, error) {
	for _, row := range f.rows {
		if row.EventID == eventID && row.SeatID == seatID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReservations) FindByEventAndUser(_ context.Context, eventID, userID string) (*model.Reservation, error) {
	for _, row := range f.rows {
		if row.EventID == eventID && row.UserID == userID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReservations) DeleteByEventAndUser(_ context.Context, eventID, userID string) error {
	for i, row := range f.rows {
		if row.EventID == eventID && row.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeReservations) SeatBelongsToEvent(_ context.Context, eventID, seatID string) (bool, error) {
	return f.seats[eventID][seatID], nil
}

func (f *fakeReservations) SwitchSeat(_ context.Context, eventID, userID, newSeatID string) (*model.Reservation, error) {
	var current *model.Reservation
	for _, row := range f.rows {
		if row.EventID == eventID && row.UserID == userID {
			current = row
			break
		}
	}
	if current == nil {
		return nil, repository.ErrNotFound
	}
	for _, row := range f.rows {
		if row.EventID == eventID && row.SeatID == newSeatID && row.UserID != userID {
			return nil, repository.ErrDuplicateKey
		}
	}
	current.SeatID = newSeatID
	cp := *current
	return &cp, nil
}
