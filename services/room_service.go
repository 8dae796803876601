package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

// RoomService implements every room operation on top of injected stores.
//
// Delete and SetMaintenance check for active bookings and then write in two
// separate steps; a booking created in between is not seen.
type RoomService struct {
	Rooms        stores.RoomStore
	Bookings     stores.BookingStore
	RoomTypes    stores.RoomTypeStore
	Query        *RoomQueryBuilder
	Availability *AvailabilityResolver

	// Now stamps maintenance times.
	Now func() time.Time
}

func NewRoomService(rooms stores.RoomStore, bookings stores.BookingStore, roomTypes stores.RoomTypeStore, maxLimit int) *RoomService {
	return &RoomService{
		Rooms:        rooms,
		Bookings:     bookings,
		RoomTypes:    roomTypes,
		Query:        &RoomQueryBuilder{Rooms: rooms, MaxLimit: maxLimit},
		Availability: &AvailabilityResolver{Rooms: rooms, Bookings: bookings},
		Now:          time.Now,
	}
}

// List runs a filtered, sorted, paginated listing.
func (s *RoomService) List(ctx context.Context, params map[string]string) (*RoomPage, error) {
	return s.Query.Run(ctx, params)
}

// Available lists rooms free for the requested stay.
func (s *RoomService) Available(ctx context.Context, q AvailabilityQuery) ([]models.Room, error) {
	return s.Availability.Resolve(ctx, q)
}

// Get returns a room with its type, hotel and linked booking.
func (s *RoomService) Get(ctx context.Context, rawID string) (*models.Room, error) {
	id, err := roomID(rawID)
	if err != nil {
		return nil, err
	}
	room, err := s.Rooms.FindByID(ctx, id, stores.ExpandRoomType, stores.ExpandHotel, stores.ExpandBooking)
	if err != nil {
		return nil, roomLookupError(err, rawID)
	}
	return room, nil
}

func (s *RoomService) ListByHotel(ctx context.Context, rawHotelID string) ([]models.Room, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(rawHotelID), 10, 64)
	if err != nil {
		return nil, NotFound("Hotel not found with id of %s", rawHotelID)
	}
	return s.Rooms.Find(ctx, stores.RoomQuery{
		Filter: stores.RoomFilter{}.Eq("hotel_id", uint(id)),
		Expand: []string{stores.ExpandRoomType},
	})
}

func (s *RoomService) ListByRoomType(ctx context.Context, rawRoomTypeID string) ([]models.Room, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(rawRoomTypeID), 10, 64)
	if err != nil {
		return nil, NotFound("Room type not found with id of %s", rawRoomTypeID)
	}
	return s.Rooms.Find(ctx, stores.RoomQuery{
		Filter: stores.RoomFilter{}.Eq("room_type_id", uint(id)),
		Expand: []string{stores.ExpandHotel},
	})
}

// Create inserts a room after checking its room type exists.
func (s *RoomService) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	normalizeRoom(room)
	room.ID = 0
	if err := validateStruct(room); err != nil {
		return nil, err
	}

	if _, err := s.RoomTypes.FindByID(ctx, room.RoomTypeID); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, NotFound("Room type not found with id of %d", room.RoomTypeID)
		}
		return nil, err
	}

	if err := s.Rooms.Create(ctx, room); err != nil {
		return nil, duplicateRoomError(err, room)
	}
	return room, nil
}

// protectedRoomKeys are ignored in update payloads.
var protectedRoomKeys = []string{"id", "_id", "createdAt", "updatedAt", "roomType", "hotel", "bookingDetails"}

// Update merges a partial JSON document onto the stored room, validates the
// result and saves it.
func (s *RoomService) Update(ctx context.Context, rawID string, patch []byte) (*models.Room, error) {
	id, err := roomID(rawID)
	if err != nil {
		return nil, err
	}
	room, err := s.Rooms.FindByID(ctx, id)
	if err != nil {
		return nil, roomLookupError(err, rawID)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, Validation("Invalid room payload: %v", err)
	}
	for _, k := range protectedRoomKeys {
		delete(fields, k)
	}
	cleaned, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cleaned, room); err != nil {
		return nil, Validation("Invalid room payload: %v", err)
	}
	room.ID = id

	normalizeRoom(room)
	if err := validateStruct(room); err != nil {
		return nil, err
	}
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, duplicateRoomError(err, room)
	}
	updated, err := s.Rooms.FindByID(ctx, id, stores.ExpandRoomType, stores.ExpandHotel)
	if err != nil {
		return nil, roomLookupError(err, rawID)
	}
	return updated, nil
}

// UpdateStatus changes only the status of a room.
func (s *RoomService) UpdateStatus(ctx context.Context, rawID, status string) (*models.Room, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, Validation("Please provide a status")
	}
	if !models.IsValidRoomStatus(status) {
		return nil, Validation("`%s` is not a valid value for status", status)
	}

	id, err := roomID(rawID)
	if err != nil {
		return nil, err
	}
	room, err := s.Rooms.FindByID(ctx, id)
	if err != nil {
		return nil, roomLookupError(err, rawID)
	}
	room.Status = status
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room that no active booking references.
func (s *RoomService) Delete(ctx context.Context, rawID string) error {
	id, err := roomID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.Rooms.FindByID(ctx, id); err != nil {
		return roomLookupError(err, rawID)
	}
	if err := s.ensureNoActiveBooking(ctx, id, "Cannot delete room with active bookings"); err != nil {
		return err
	}
	if err := s.Rooms.Delete(ctx, id); err != nil {
		return roomLookupError(err, rawID)
	}
	return nil
}

// SetMaintenance takes a room out of service and records when.
func (s *RoomService) SetMaintenance(ctx context.Context, rawID string) (*models.Room, error) {
	id, err := roomID(rawID)
	if err != nil {
		return nil, err
	}
	room, err := s.Rooms.FindByID(ctx, id)
	if err != nil {
		return nil, roomLookupError(err, rawID)
	}
	if err := s.ensureNoActiveBooking(ctx, id, "Cannot set maintenance for room with active bookings"); err != nil {
		return nil, err
	}

	now := s.Now()
	room.Status = models.RoomStatusMaintenance
	room.LastMaintenance = &now
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// BulkCreate inserts a JSON array of rooms in one all-or-nothing batch.
// Anything other than an array is rejected before touching the store.
func (s *RoomService) BulkCreate(ctx context.Context, raw json.RawMessage) ([]models.Room, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, Validation("Please provide an array of rooms")
	}

	var rooms []models.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, Validation("Invalid rooms payload: %v", err)
	}
	for i := range rooms {
		rooms[i].ID = 0
		normalizeRoom(&rooms[i])
		if err := validateStruct(&rooms[i]); err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Message = fmt.Sprintf("rooms[%d]: %s", i, e.Message)
			}
			return nil, err
		}
	}

	if err := s.Rooms.InsertMany(ctx, rooms); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, Duplicate(err, "Duplicate room number in bulk insert")
		}
		return nil, err
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	return rooms, nil
}

func (s *RoomService) ensureNoActiveBooking(ctx context.Context, roomID uint, message string) error {
	_, err := s.Bookings.FindOne(ctx, stores.BookingFilter{
		RoomID:   &roomID,
		Statuses: models.ActiveBookingStatuses,
	})
	switch {
	case err == nil:
		return Conflict("%s", message)
	case errors.Is(err, stores.ErrNotFound):
		return nil
	default:
		return err
	}
}

func normalizeRoom(room *models.Room) {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	for i, f := range room.Features {
		room.Features[i] = strings.TrimSpace(f)
	}
	room.RoomType, room.Hotel, room.BookingDetails = nil, nil, nil
}

// roomID parses a path id. Malformed ids cannot name a room, so they are
// reported the same way as missing ones.
func roomID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, NotFound("Room not found with id of %s", raw)
	}
	return uint(id), nil
}

func roomLookupError(err error, rawID string) error {
	if errors.Is(err, stores.ErrNotFound) {
		return NotFound("Room not found with id of %s", rawID)
	}
	return err
}

func duplicateRoomError(err error, room *models.Room) error {
	if errors.Is(err, stores.ErrDuplicate) {
		return Duplicate(err, "Room number '%s' already exists in hotel %d", room.RoomNumber, room.HotelID)
	}
	return err
}
