package stores

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-rooms/models"
)

// MemoryDB is a process-local backing for every store interface. It is used
// with STORE_DRIVER=memory for local runs and by tests.
type MemoryDB struct {
	mu sync.RWMutex

	nextID    uint
	rooms     map[uint]models.Room
	bookings  map[uint]models.Booking
	roomTypes map[uint]models.RoomType
	hotels    map[uint]models.Hotel
	admins    map[uint]models.Admin
	sessions  map[string]Session

	now func() time.Time
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		rooms:     map[uint]models.Room{},
		bookings:  map[uint]models.Booking{},
		roomTypes: map[uint]models.RoomType{},
		hotels:    map[uint]models.Hotel{},
		admins:    map[uint]models.Admin{},
		sessions:  map[string]Session{},
		now:       time.Now,
	}
}

func (m *MemoryDB) Rooms() *MemoryRoomStore         { return &MemoryRoomStore{m} }
func (m *MemoryDB) Bookings() *MemoryBookingStore   { return &MemoryBookingStore{m} }
func (m *MemoryDB) RoomTypes() *MemoryRoomTypeStore { return &MemoryRoomTypeStore{m} }
func (m *MemoryDB) Hotels() *MemoryHotelStore       { return &MemoryHotelStore{m} }
func (m *MemoryDB) Admins() *MemoryAdminStore       { return &MemoryAdminStore{m} }
func (m *MemoryDB) Sessions() *MemorySessionStore   { return &MemorySessionStore{m} }

// id must be called with mu held.
func (m *MemoryDB) id() uint {
	m.nextID++
	return m.nextID
}

// PutBooking inserts a booking; bookings are written by another service in production.
func (m *MemoryDB) PutBooking(b models.Booking) models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.id()
	}
	if b.Status == "" {
		b.Status = models.BookingStatusPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = m.now()
	}
	m.bookings[b.ID] = b
	return b
}

// PutAdmin inserts an admin account.
func (m *MemoryDB) PutAdmin(a models.Admin) models.Admin {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		a.ID = m.id()
	}
	m.admins[a.ID] = a
	return a
}

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

type MemoryRoomStore struct{ m *MemoryDB }

func (s *MemoryRoomStore) Find(ctx context.Context, q RoomQuery) ([]models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	matched := s.m.matchRooms(q.Filter)
	if len(q.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, key := range q.Sort {
				c := compareValues(roomColumnValue(&matched[i], key.Column), roomColumnValue(&matched[j], key.Column))
				if c == 0 {
					continue
				}
				if key.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[q.Offset:]
		}
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]models.Room, 0, len(matched))
	for _, r := range matched {
		r = projectRoom(cloneRoom(r), q.Columns, q.Omit)
		s.m.expand(&r, q.Expand)
		out = append(out, r)
	}
	return out, nil
}

func (s *MemoryRoomStore) Count(ctx context.Context, f RoomFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return int64(len(s.m.matchRooms(f))), nil
}

func (s *MemoryRoomStore) FindByID(ctx context.Context, id uint, expand ...string) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	stored, ok := s.m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	r := cloneRoom(stored)
	s.m.expand(&r, expand)
	return &r, nil
}

func (s *MemoryRoomStore) Create(ctx context.Context, room *models.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.roomNumberTaken(room.HotelID, room.RoomNumber, 0) {
		return duplicateRoomErr(room)
	}
	s.m.insertRoom(room)
	return nil
}

func (s *MemoryRoomStore) Save(ctx context.Context, room *models.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if room.ID == 0 {
		if s.m.roomNumberTaken(room.HotelID, room.RoomNumber, 0) {
			return duplicateRoomErr(room)
		}
		s.m.insertRoom(room)
		return nil
	}
	if s.m.roomNumberTaken(room.HotelID, room.RoomNumber, room.ID) {
		return duplicateRoomErr(room)
	}
	room.UpdatedAt = s.m.now()
	s.m.rooms[room.ID] = stripRelations(*room)
	return nil
}

func (s *MemoryRoomStore) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.rooms, id)
	return nil
}

func (s *MemoryRoomStore) InsertMany(ctx context.Context, rooms []models.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	// Validate the whole batch before writing anything.
	seen := map[string]bool{}
	for i := range rooms {
		key := fmt.Sprintf("%d/%s", rooms[i].HotelID, rooms[i].RoomNumber)
		if seen[key] || s.m.roomNumberTaken(rooms[i].HotelID, rooms[i].RoomNumber, 0) {
			return duplicateRoomErr(&rooms[i])
		}
		seen[key] = true
	}
	for i := range rooms {
		s.m.insertRoom(&rooms[i])
	}
	return nil
}

// insertRoom must be called with mu held.
func (m *MemoryDB) insertRoom(room *models.Room) {
	room.ID = m.id()
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	now := m.now()
	room.CreatedAt, room.UpdatedAt = now, now
	m.rooms[room.ID] = stripRelations(*room)
}

func (m *MemoryDB) roomNumberTaken(hotelID uint, number string, except uint) bool {
	for id, r := range m.rooms {
		if id != except && r.HotelID == hotelID && r.RoomNumber == number {
			return true
		}
	}
	return false
}

func duplicateRoomErr(room *models.Room) error {
	return fmt.Errorf("%w: room %q already exists in hotel %d", ErrDuplicate, room.RoomNumber, room.HotelID)
}

func stripRelations(r models.Room) models.Room {
	r = cloneRoom(r)
	r.RoomType, r.Hotel, r.BookingDetails = nil, nil, nil
	return r
}

// cloneRoom copies everything a caller could mutate through r, so stored rows
// only change through Save.
func cloneRoom(r models.Room) models.Room {
	if r.Floor != nil {
		v := *r.Floor
		r.Floor = &v
	}
	if r.LastMaintenance != nil {
		v := *r.LastMaintenance
		r.LastMaintenance = &v
	}
	if r.CurrentBookingID != nil {
		v := *r.CurrentBookingID
		r.CurrentBookingID = &v
	}
	if r.Features != nil {
		r.Features = append([]string{}, r.Features...)
	}
	return r
}

// matchRooms returns matching rooms in id order, like an unordered table scan.
func (m *MemoryDB) matchRooms(f RoomFilter) []models.Room {
	if f.MatchNone {
		return nil
	}
	ids := make([]uint, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Room
	for _, id := range ids {
		r := m.rooms[id]
		if roomMatches(&r, f.Conditions) {
			out = append(out, r)
		}
	}
	return out
}

func roomMatches(r *models.Room, conds []Condition) bool {
	for _, c := range conds {
		switch c.Op {
		case OpEq:
			if formatValue(roomColumnValue(r, c.Column)) != formatValue(c.Value) {
				return false
			}
		case OpContains:
			want := formatValue(c.Value)
			found := false
			for _, feature := range r.Features {
				if feature == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case OpNotIn:
			ids, _ := c.Value.([]uint)
			v := formatValue(roomColumnValue(r, c.Column))
			for _, id := range ids {
				if v == formatValue(id) {
					return false
				}
			}
		}
	}
	return true
}

func (m *MemoryDB) expand(r *models.Room, relations []string) {
	for _, rel := range relations {
		switch rel {
		case ExpandRoomType:
			if rt, ok := m.roomTypes[r.RoomTypeID]; ok {
				r.RoomType = &rt
			}
		case ExpandHotel:
			if h, ok := m.hotels[r.HotelID]; ok {
				r.Hotel = &h
			}
		case ExpandBooking:
			var found *models.Booking
			for _, b := range m.bookings {
				if b.RoomID != nil && *b.RoomID == r.ID && (found == nil || b.ID < found.ID) {
					b := b
					found = &b
				}
			}
			r.BookingDetails = found
		}
	}
}

func roomColumnValue(r *models.Room, column string) any {
	switch column {
	case "id":
		return r.ID
	case "room_number":
		return r.RoomNumber
	case "room_type_id":
		return r.RoomTypeID
	case "hotel_id":
		return r.HotelID
	case "status":
		return r.Status
	case "floor":
		if r.Floor == nil {
			return nil
		}
		return *r.Floor
	case "special_notes":
		return r.SpecialNotes
	case "last_maintenance":
		if r.LastMaintenance == nil {
			return nil
		}
		return *r.LastMaintenance
	case "current_booking_id":
		if r.CurrentBookingID == nil {
			return nil
		}
		return *r.CurrentBookingID
	case "features":
		return strings.Join(r.Features, ",")
	case "created_at":
		return r.CreatedAt
	case "updated_at":
		return r.UpdatedAt
	}
	return nil
}

// projectRoom keeps only the requested columns (plus id), or drops omitted ones.
func projectRoom(r models.Room, columns, omit []string) models.Room {
	if len(columns) == 0 && len(omit) == 0 {
		return r
	}
	keep := map[string]bool{}
	if len(columns) > 0 {
		keep["id"] = true
		for _, c := range columns {
			keep[c] = true
		}
	} else {
		for _, c := range allRoomColumns {
			keep[c] = true
		}
		for _, c := range omit {
			delete(keep, c)
		}
	}

	out := models.Room{ID: r.ID}
	if keep["room_number"] {
		out.RoomNumber = r.RoomNumber
	}
	if keep["room_type_id"] {
		out.RoomTypeID = r.RoomTypeID
	}
	if keep["hotel_id"] {
		out.HotelID = r.HotelID
	}
	if keep["status"] {
		out.Status = r.Status
	}
	if keep["floor"] {
		out.Floor = r.Floor
	}
	if keep["special_notes"] {
		out.SpecialNotes = r.SpecialNotes
	}
	if keep["last_maintenance"] {
		out.LastMaintenance = r.LastMaintenance
	}
	if keep["current_booking_id"] {
		out.CurrentBookingID = r.CurrentBookingID
	}
	if keep["features"] {
		out.Features = r.Features
	}
	if keep["created_at"] {
		out.CreatedAt = r.CreatedAt
	}
	if keep["updated_at"] {
		out.UpdatedAt = r.UpdatedAt
	}
	return out
}

var allRoomColumns = []string{
	"id", "room_number", "room_type_id", "hotel_id", "status", "floor", "special_notes",
	"last_maintenance", "current_booking_id", "features", "created_at", "updated_at",
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case uint:
		if bv, ok := b.(uint); ok {
			return compareOrdered(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return compareOrdered(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	// nil sorts first, as NULL does in MySQL ascending order.
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	return strings.Compare(formatValue(a), formatValue(b))
}

func compareOrdered[T ~int | ~uint](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

type MemoryBookingStore struct{ m *MemoryDB }

func (s *MemoryBookingStore) FindOne(ctx context.Context, f BookingFilter) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	matched := s.m.matchBookings(f)
	if len(matched) == 0 {
		return nil, ErrNotFound
	}
	b := matched[0]
	return &b, nil
}

func (s *MemoryBookingStore) DistinctRoomIDs(ctx context.Context, f BookingFilter) ([]uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	seen := map[uint]bool{}
	var ids []uint
	for _, b := range s.m.matchBookings(f) {
		if b.RoomID == nil || seen[*b.RoomID] {
			continue
		}
		seen[*b.RoomID] = true
		ids = append(ids, *b.RoomID)
	}
	return ids, nil
}

func (m *MemoryDB) matchBookings(f BookingFilter) []models.Booking {
	var out []models.Booking
	for _, b := range m.bookings {
		if f.RoomID != nil && (b.RoomID == nil || *b.RoomID != *f.RoomID) {
			continue
		}
		if len(f.Statuses) > 0 && !containsString(f.Statuses, b.Status) {
			continue
		}
		if f.OverlapStart != nil && f.OverlapEnd != nil {
			if b.CheckIn.After(*f.OverlapEnd) || b.CheckOut.Before(*f.OverlapStart) {
				continue
			}
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Room types, hotels, admins, sessions
// ---------------------------------------------------------------------------

type MemoryRoomTypeStore struct{ m *MemoryDB }

func (s *MemoryRoomTypeStore) List(ctx context.Context) ([]models.RoomType, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.RoomType, 0, len(s.m.roomTypes))
	for _, rt := range s.m.roomTypes {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryRoomTypeStore) FindByID(ctx context.Context, id uint) (*models.RoomType, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	rt, ok := s.m.roomTypes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rt, nil
}

func (s *MemoryRoomTypeStore) Create(ctx context.Context, rt *models.RoomType) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	rt.ID = s.m.id()
	rt.CreatedAt = s.m.now()
	s.m.roomTypes[rt.ID] = *rt
	return nil
}

func (s *MemoryRoomTypeStore) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.roomTypes[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.roomTypes, id)
	return nil
}

type MemoryHotelStore struct{ m *MemoryDB }

func (s *MemoryHotelStore) List(ctx context.Context) ([]models.Hotel, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.Hotel, 0, len(s.m.hotels))
	for _, h := range s.m.hotels {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryHotelStore) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	h, ok := s.m.hotels[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (s *MemoryHotelStore) Create(ctx context.Context, h *models.Hotel) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	h.ID = s.m.id()
	now := s.m.now()
	h.CreatedAt, h.UpdatedAt = now, now
	s.m.hotels[h.ID] = *h
	return nil
}

func (s *MemoryHotelStore) Save(ctx context.Context, h *models.Hotel) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if h.ID == 0 {
		h.ID = s.m.id()
		h.CreatedAt = s.m.now()
	}
	h.UpdatedAt = s.m.now()
	s.m.hotels[h.ID] = *h
	return nil
}

type MemoryAdminStore struct{ m *MemoryDB }

func (s *MemoryAdminStore) FindByID(ctx context.Context, id uint) (*models.Admin, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	a, ok := s.m.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryAdminStore) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, a := range s.m.admins {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

type MemorySessionStore struct{ m *MemoryDB }

func (s *MemorySessionStore) Create(ctx context.Context, token string, sess Session) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.sessions[token] = sess
	return nil
}

func (s *MemorySessionStore) Lookup(ctx context.Context, token string) (Session, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	sess, ok := s.m.sessions[token]
	if !ok || !sess.ExpiresAt.After(s.m.now()) {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.sessions, token)
	return nil
}
