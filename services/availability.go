package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

// AvailabilityQuery holds the raw query values of an availability request.
type AvailabilityQuery struct {
	StartDate  string
	EndDate    string
	HotelID    string
	RoomTypeID string
}

// AvailabilityResolver finds rooms that are open for booking and, when a full
// date range is given, not held by an overlapping active booking.
type AvailabilityResolver struct {
	Rooms    stores.RoomStore
	Bookings stores.BookingStore
}

func (r *AvailabilityResolver) Resolve(ctx context.Context, q AvailabilityQuery) ([]models.Room, error) {
	start, err := parseDateParam("startDate", q.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateParam("endDate", q.EndDate)
	if err != nil {
		return nil, err
	}

	filter := stores.RoomFilter{}.Eq("status", models.RoomStatusAvailable)
	if q.HotelID != "" {
		id, err := parseIDParam("hotelId", q.HotelID)
		if err != nil {
			return nil, err
		}
		filter = filter.Eq("hotel_id", id)
	}
	if q.RoomTypeID != "" {
		id, err := parseIDParam("roomTypeId", q.RoomTypeID)
		if err != nil {
			return nil, err
		}
		filter = filter.Eq("room_type_id", id)
	}

	// A half-open request (only one date) is not an error: it lists every
	// available room without looking at bookings.
	if start != nil && end != nil {
		booked, err := r.Bookings.DistinctRoomIDs(ctx, stores.BookingFilter{
			Statuses:     models.ActiveBookingStatuses,
			OverlapStart: start,
			OverlapEnd:   end,
		})
		if err != nil {
			return nil, err
		}
		filter = filter.NotIn("id", booked)
	}

	return r.Rooms.Find(ctx, stores.RoomQuery{
		Filter: filter,
		Expand: []string{stores.ExpandRoomType, stores.ExpandHotel},
	})
}

// Accepted date layouts; a bare date is midnight UTC.
var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// parseDateParam returns nil for an empty value and a Validation error for an
// unparseable one.
func parseDateParam(name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, Validation("Invalid %s %q: use YYYY-MM-DD or RFC 3339", name, raw)
}

func parseIDParam(name, raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, Validation("Invalid %s %q", name, raw)
	}
	return uint(id), nil
}
