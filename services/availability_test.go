package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-rooms/models"
)

func roomNumbers(rooms []models.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.RoomNumber)
	}
	return out
}

func TestAvailabilityInclusiveOverlap(t *testing.T) {
	f := newFixture(t)
	booked := f.createRoom(t, "101", 1)
	f.createRoom(t, "102", 1)

	f.mem.PutBooking(models.Booking{
		CheckIn:  date("2024-01-10"),
		CheckOut: date("2024-01-15"),
		RoomID:   &booked.ID,
		HotelID:  f.hotelID,
		Status:   models.BookingStatusConfirmed,
	})

	cases := []struct {
		start, end string
		excluded   bool
	}{
		{"2024-01-15", "2024-01-20", true},
		{"2024-01-05", "2024-01-10", true},
		{"2024-01-11", "2024-01-12", true},
		{"2024-01-01", "2024-01-31", true},
		{"2024-01-16", "2024-01-20", false},
		{"2024-01-01", "2024-01-09", false},
	}
	for _, tc := range cases {
		rooms, err := f.svc.Available(context.Background(), AvailabilityQuery{StartDate: tc.start, EndDate: tc.end})
		require.NoError(t, err)
		if tc.excluded {
			assert.Equal(t, []string{"102"}, roomNumbers(rooms), "%s..%s", tc.start, tc.end)
		} else {
			assert.ElementsMatch(t, []string{"101", "102"}, roomNumbers(rooms), "%s..%s", tc.start, tc.end)
		}
	}
}

func TestAvailabilityIgnoresInactiveBookings(t *testing.T) {
	f := newFixture(t)
	r := f.createRoom(t, "101", 1)
	f.mem.PutBooking(models.Booking{
		CheckIn: date("2024-01-10"), CheckOut: date("2024-01-15"),
		RoomID: &r.ID, Status: models.BookingStatusCancelled,
	})

	rooms, err := f.svc.Available(context.Background(), AvailabilityQuery{StartDate: "2024-01-12", EndDate: "2024-01-13"})
	require.NoError(t, err)
	assert.Equal(t, []string{"101"}, roomNumbers(rooms))
}

func TestAvailabilityStartDateOnlySkipsBookings(t *testing.T) {
	f := newFixture(t)
	r := f.createRoom(t, "101", 1)
	f.createRoom(t, "102", 1)
	f.mem.PutBooking(models.Booking{
		CheckIn: date("2024-01-10"), CheckOut: date("2024-01-15"),
		RoomID: &r.ID, Status: models.BookingStatusConfirmed,
	})

	rooms, err := f.svc.Available(context.Background(), AvailabilityQuery{StartDate: "2024-01-12"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"101", "102"}, roomNumbers(rooms))
}

func TestAvailabilityOnlyAvailableStatus(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "101", 1)
	r := f.createRoom(t, "102", 1)
	_, err := f.svc.UpdateStatus(context.Background(), itoa(r.ID), models.RoomStatusOccupied)
	require.NoError(t, err)

	rooms, err := f.svc.Available(context.Background(), AvailabilityQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"101"}, roomNumbers(rooms))
	require.Len(t, rooms, 1)
	assert.NotNil(t, rooms[0].RoomType)
	assert.NotNil(t, rooms[0].Hotel)
}

func TestAvailabilityNarrowsByHotelAndType(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "101", 1)

	rooms, err := f.svc.Available(context.Background(), AvailabilityQuery{HotelID: itoa(f.hotelID), RoomTypeID: itoa(f.roomTypeID)})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	rooms, err = f.svc.Available(context.Background(), AvailabilityQuery{HotelID: "999"})
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestAvailabilityRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	for _, q := range []AvailabilityQuery{
		{StartDate: "10/01/2024", EndDate: "2024-01-15"},
		{StartDate: "not-a-date"},
		{HotelID: "abc"},
		{RoomTypeID: "-1"},
	} {
		_, err := f.svc.Available(context.Background(), q)
		require.Error(t, err, "%+v", q)
		assert.True(t, IsKind(err, KindValidation))
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	}
}

func TestParseDateParamAcceptsRFC3339(t *testing.T) {
	ts, err := parseDateParam("startDate", "2024-01-10T12:00:00+02:00")
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, 10, ts.Hour())

	ts, err = parseDateParam("startDate", "")
	require.NoError(t, err)
	assert.Nil(t, ts)
}
