// Package stores holds the persistence collaborators used by the services layer:
// the interfaces services depend on, plus gorm/MySQL, Redis and in-memory
// implementations of them.
package stores

import (
	"context"
	"errors"
	"time"

	"hotel-rooms/models"
)

var (
	// ErrNotFound is returned when a lookup by id or filter matches nothing.
	ErrNotFound = errors.New("stores: record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("stores: duplicate key")
)

// Relations that RoomStore reads can expand.
const (
	ExpandRoomType = "RoomType"
	ExpandHotel    = "Hotel"
	ExpandBooking  = "BookingDetails"
)

// Operator selects how a Condition compares a column with its value.
type Operator int

const (
	// OpEq matches rows whose column equals Value.
	OpEq Operator = iota
	// OpContains matches rows whose JSON array column contains Value.
	OpContains
	// OpNotIn matches rows whose column is not one of Value ([]uint).
	OpNotIn
)

// Condition is a single predicate on a room column. Column must be a real
// column name; stores do not validate it.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

// RoomFilter is a conjunction of conditions. MatchNone short-circuits to an
// empty result, used when a client filters on an attribute rooms do not have.
type RoomFilter struct {
	Conditions []Condition
	MatchNone  bool
}

// Eq returns a copy of f with an equality condition appended.
func (f RoomFilter) Eq(column string, value any) RoomFilter {
	return f.with(Condition{Column: column, Op: OpEq, Value: value})
}

// Contains returns a copy of f with a JSON-array containment condition appended.
func (f RoomFilter) Contains(column string, value any) RoomFilter {
	return f.with(Condition{Column: column, Op: OpContains, Value: value})
}

// NotIn returns a copy of f excluding rows whose column is in ids.
func (f RoomFilter) NotIn(column string, ids []uint) RoomFilter {
	return f.with(Condition{Column: column, Op: OpNotIn, Value: ids})
}

func (f RoomFilter) with(c Condition) RoomFilter {
	conds := make([]Condition, 0, len(f.Conditions)+1)
	conds = append(conds, f.Conditions...)
	f.Conditions = append(conds, c)
	return f
}

// SortKey orders results by one column.
type SortKey struct {
	Column string
	Desc   bool
}

// RoomQuery describes a bounded room read.
type RoomQuery struct {
	Filter RoomFilter
	// Columns restricts the projection; Omit removes columns from a full projection.
	// Columns wins when both are set.
	Columns []string
	Omit    []string
	Sort    []SortKey
	Offset  int
	Limit   int // 0 means no limit
	Expand  []string
}

// BookingFilter selects bookings. Nil/empty fields are not applied.
// The overlap window only applies when both ends are set.
type BookingFilter struct {
	RoomID       *uint
	Statuses     []string
	OverlapStart *time.Time
	OverlapEnd   *time.Time
}

// RoomStore persists rooms.
type RoomStore interface {
	Find(ctx context.Context, q RoomQuery) ([]models.Room, error)
	Count(ctx context.Context, f RoomFilter) (int64, error)
	FindByID(ctx context.Context, id uint, expand ...string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Save(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
	// InsertMany inserts every room or none of them.
	InsertMany(ctx context.Context, rooms []models.Room) error
}

// BookingStore is a read-only view over bookings.
type BookingStore interface {
	FindOne(ctx context.Context, f BookingFilter) (*models.Booking, error)
	DistinctRoomIDs(ctx context.Context, f BookingFilter) ([]uint, error)
}

type RoomTypeStore interface {
	List(ctx context.Context) ([]models.RoomType, error)
	FindByID(ctx context.Context, id uint) (*models.RoomType, error)
	Create(ctx context.Context, rt *models.RoomType) error
	Delete(ctx context.Context, id uint) error
}

type HotelStore interface {
	List(ctx context.Context) ([]models.Hotel, error)
	FindByID(ctx context.Context, id uint) (*models.Hotel, error)
	Create(ctx context.Context, h *models.Hotel) error
	Save(ctx context.Context, h *models.Hotel) error
}

type AdminStore interface {
	FindByID(ctx context.Context, id uint) (*models.Admin, error)
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// Session is what a login token resolves to.
type Session struct {
	AdminID   uint      `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore keeps login sessions keyed by opaque token.
type SessionStore interface {
	Create(ctx context.Context, token string, s Session) error
	Lookup(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}
