package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

type RoomTypeService struct {
	RoomTypes stores.RoomTypeStore
	Rooms     stores.RoomStore
}

func NewRoomTypeService(roomTypes stores.RoomTypeStore, rooms stores.RoomStore) *RoomTypeService {
	return &RoomTypeService{RoomTypes: roomTypes, Rooms: rooms}
}

func (s *RoomTypeService) List(ctx context.Context) ([]models.RoomType, error) {
	return s.RoomTypes.List(ctx)
}

func (s *RoomTypeService) Create(ctx context.Context, rt *models.RoomType) (*models.RoomType, error) {
	rt.ID = 0
	rt.TypeName = strings.TrimSpace(rt.TypeName)
	if err := validateStruct(rt); err != nil {
		return nil, err
	}
	if err := s.RoomTypes.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *RoomTypeService) Delete(ctx context.Context, rawID string) error {
	id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return NotFound("Room type not found with id of %s", rawID)
	}
	// rooms reference their type without a foreign key, so refuse to orphan them
	inUse, err := s.Rooms.Count(ctx, stores.RoomFilter{}.Eq("room_type_id", uint(id)))
	if err != nil {
		return err
	}
	if inUse > 0 {
		return Conflict("Cannot delete room type with rooms assigned")
	}
	if err := s.RoomTypes.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return NotFound("Room type not found with id of %s", rawID)
		}
		return err
	}
	return nil
}

type HotelService struct {
	Hotels stores.HotelStore
}

func NewHotelService(hotels stores.HotelStore) *HotelService {
	return &HotelService{Hotels: hotels}
}

func (s *HotelService) List(ctx context.Context) ([]models.Hotel, error) {
	return s.Hotels.List(ctx)
}

func (s *HotelService) Get(ctx context.Context, rawID string) (*models.Hotel, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, NotFound("Hotel not found with id of %s", rawID)
	}
	hotel, err := s.Hotels.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, NotFound("Hotel not found with id of %s", rawID)
		}
		return nil, err
	}
	return hotel, nil
}

func (s *HotelService) Create(ctx context.Context, h *models.Hotel) (*models.Hotel, error) {
	h.ID = 0
	h.Name = strings.TrimSpace(h.Name)
	if err := validateStruct(h); err != nil {
		return nil, err
	}
	if err := s.Hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Update replaces the editable fields of a hotel with those in payload.
func (s *HotelService) Update(ctx context.Context, rawID string, payload models.Hotel) (*models.Hotel, error) {
	hotel, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	hotel.Name = strings.TrimSpace(payload.Name)
	hotel.Address = payload.Address
	hotel.Phone = payload.Phone
	hotel.Email = payload.Email
	hotel.Website = payload.Website

	if err := validateStruct(hotel); err != nil {
		return nil, err
	}
	if err := s.Hotels.Save(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}
