package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

type fixture struct {
	mem        *stores.MemoryDB
	svc        *RoomService
	hotelID    uint
	roomTypeID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	mem := stores.NewMemoryDB()

	hotel := models.Hotel{Name: "Seaside"}
	require.NoError(t, mem.Hotels().Create(ctx, &hotel))
	rt := models.RoomType{TypeName: "Deluxe", MaxGuests: 2}
	require.NoError(t, mem.RoomTypes().Create(ctx, &rt))

	svc := NewRoomService(mem.Rooms(), mem.Bookings(), mem.RoomTypes(), 0)
	svc.Now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	return &fixture{mem: mem, svc: svc, hotelID: hotel.ID, roomTypeID: rt.ID}
}

func (f *fixture) room(number string, floor int, features ...string) models.Room {
	return models.Room{
		RoomNumber: number,
		RoomTypeID: f.roomTypeID,
		HotelID:    f.hotelID,
		Floor:      &floor,
		Features:   features,
	}
}

func (f *fixture) createRoom(t *testing.T, number string, floor int, features ...string) *models.Room {
	t.Helper()
	r := f.room(number, floor, features...)
	created, err := f.svc.Create(context.Background(), &r)
	require.NoError(t, err)
	return created
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func itoa(id uint) string { return fmt.Sprint(id) }
