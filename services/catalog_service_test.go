package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

func TestRoomTypeService(t *testing.T) {
	mem := stores.NewMemoryDB()
	svc := NewRoomTypeService(mem.RoomTypes(), mem.Rooms())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.RoomType{TypeName: " "})
	assert.True(t, IsKind(err, KindValidation))

	rt, err := svc.Create(ctx, &models.RoomType{TypeName: " Suite ", MaxGuests: 4})
	require.NoError(t, err)
	assert.Equal(t, "Suite", rt.TypeName)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, itoa(rt.ID)))
	assert.True(t, IsKind(svc.Delete(ctx, itoa(rt.ID)), KindNotFound))
	assert.True(t, IsKind(svc.Delete(ctx, "x"), KindNotFound))
}

func TestRoomTypeDeleteRefusedWhileRoomsAssigned(t *testing.T) {
	f := newFixture(t)
	svc := NewRoomTypeService(f.mem.RoomTypes(), f.mem.Rooms())
	ctx := context.Background()
	room := f.createRoom(t, "101", 1)

	err := svc.Delete(ctx, itoa(f.roomTypeID))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
	assert.Equal(t, 400, StatusOf(err))

	_, err = f.mem.RoomTypes().FindByID(ctx, f.roomTypeID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, itoa(room.ID)))
	require.NoError(t, svc.Delete(ctx, itoa(f.roomTypeID)))
}

func TestHotelService(t *testing.T) {
	mem := stores.NewMemoryDB()
	svc := NewHotelService(mem.Hotels())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Hotel{Name: "Bad", Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")

	h, err := svc.Create(ctx, &models.Hotel{Name: "Harbour", Email: "desk@harbour.test"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, itoa(h.ID), models.Hotel{Name: "Harbour View", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", updated.Name)
	assert.Empty(t, updated.Email)

	got, err := svc.Get(ctx, itoa(h.ID))
	require.NoError(t, err)
	assert.Equal(t, "555", got.Phone)

	_, err = svc.Get(ctx, "42")
	assert.True(t, IsKind(err, KindNotFound))
}
