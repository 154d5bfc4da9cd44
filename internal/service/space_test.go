package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

func newSpaceFixture() (*service.SpaceService, *fakeSpaces, *fakeLocations) {
	locations := newFakeLocations()
	locations.byID["loc-1"] = &model.Location{
		ID: "loc-1", Name: "Casa de Festas", Address: "Rua A 100",
		MaxTables: 10, MaxSeatsPerTable: 4,
	}
	spaces := newFakeSpaces()
	return service.NewSpaceService(spaces, locations), spaces, locations
}

func TestSpaceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a space under an existing venue", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()
		area := 120.5

		sp, err := svc.Create(ctx, organizerCaller, "Salão Principal", "loc-1", &area)
		require.NoError(t, err)
		assert.NotEmpty(t, sp.ID)
		assert.Equal(t, "loc-1", sp.LocationID)
		require.NotNil(t, sp.TotalArea)
		assert.Equal(t, 120.5, *sp.TotalArea)
	})

	t.Run("the area is optional", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()

		sp, err := svc.Create(ctx, organizerCaller, "Jardim", "loc-1", nil)
		require.NoError(t, err)
		assert.Nil(t, sp.TotalArea)
	})

	t.Run("fails for an unknown venue", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()

		_, err := svc.Create(ctx, organizerCaller, "Jardim", "missing", nil)
		require.Error(t, err)
		assert.Equal(t, service.KindNotFound, service.KindOf(err))
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()

		_, err := svc.Create(ctx, organizerCaller, "", "loc-1", nil)
		require.Error(t, err)
		assert.Equal(t, service.KindValidation, service.KindOf(err))
	})

	t.Run("rejects guests", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()
		guest := service.Caller{UserID: testGuestID, Role: model.RoleGuest}

		_, err := svc.Create(ctx, guest, "Jardim", "loc-1", nil)
		require.Error(t, err)
		assert.Equal(t, service.KindForbidden, service.KindOf(err))
	})
}

func TestSpaceUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *service.SpaceService) *model.Space {
		t.Helper()
		area := 80.0
		sp, err := svc.Create(ctx, organizerCaller, "Salão Principal", "loc-1", &area)
		require.NoError(t, err)
		return sp
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()
		sp := seed(t, svc)
		name := "Salão Nobre"

		updated, err := svc.Update(ctx, organizerCaller, sp.ID, model.SpaceUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Salão Nobre", updated.Name)
		require.NotNil(t, updated.TotalArea)
		assert.Equal(t, 80.0, *updated.TotalArea)
	})

	t.Run("an explicit nil clears the area", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()
		sp := seed(t, svc)

		updated, err := svc.Update(ctx, organizerCaller, sp.ID, model.SpaceUpdate{TotalAreaSet: true})
		require.NoError(t, err)
		assert.Nil(t, updated.TotalArea)
	})

	t.Run("moving to an unknown venue fails", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()
		sp := seed(t, svc)
		missing := "missing"

		_, err := svc.Update(ctx, organizerCaller, sp.ID, model.SpaceUpdate{LocationID: &missing})
		require.Error(t, err)
		assert.Equal(t, service.KindNotFound, service.KindOf(err))
	})

	t.Run("fails for an unknown space", func(t *testing.T) {
		svc, _, _ := newSpaceFixture()
		name := "Jardim"

		_, err := svc.Update(ctx, organizerCaller, "missing", model.SpaceUpdate{Name: &name})
		require.Error(t, err)
		assert.Equal(t, service.KindNotFound, service.KindOf(err))
	})
}

func TestSpaceListByLocation(t *testing.T) {
	ctx := context.Background()
	svc, _, locations := newSpaceFixture()
	locations.byID["loc-2"] = &model.Location{
		ID: "loc-2", Name: "Outro Espaço", Address: "Rua B 200",
		MaxTables: 5, MaxSeatsPerTable: 6,
	}

	_, err := svc.Create(ctx, organizerCaller, "Salão", "loc-1", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, organizerCaller, "Jardim", "loc-1", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, organizerCaller, "Terraço", "loc-2", nil)
	require.NoError(t, err)

	list, err := svc.GetByLocation(ctx, "loc-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
