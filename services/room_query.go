package services

import (
	"context"
	"sort"
	"strings"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

// Query parameters consumed by the builder itself; everything else filters.
const (
	paramSelect = "select"
	paramSort   = "sort"
	paramPage   = "page"
	paramLimit  = "limit"
)

const defaultSortColumn = "room_number"

// roomFields maps every name a client may use for a room attribute (JSON name,
// column name, and `_id` for id) onto its column.
var roomFields = map[string]string{
	"id":               "id",
	"_id":              "id",
	"roomNumber":       "room_number",
	"room_number":      "room_number",
	"roomTypeId":       "room_type_id",
	"room_type_id":     "room_type_id",
	"hotelId":          "hotel_id",
	"hotel_id":         "hotel_id",
	"status":           "status",
	"floor":            "floor",
	"specialNotes":     "special_notes",
	"special_notes":    "special_notes",
	"lastMaintenance":  "last_maintenance",
	"last_maintenance": "last_maintenance",
	"currentBooking":   "current_booking_id",
	"currentBookingId": "current_booking_id",
	"features":         "features",
	"createdAt":        "created_at",
	"created_at":       "created_at",
	"updatedAt":        "updated_at",
	"updated_at":       "updated_at",
}

func roomColumn(name string) (string, bool) {
	col, ok := roomFields[strings.TrimSpace(name)]
	return col, ok
}

// RoomPage is one page of a room listing.
type RoomPage struct {
	Rooms      []models.Room
	Total      int64
	Pagination Pagination
}

// RoomQueryBuilder turns client query parameters into a bounded, ordered room
// query and runs it.
type RoomQueryBuilder struct {
	Rooms    stores.RoomStore
	MaxLimit int
}

// Build normalises params. It never fails: unusable select/sort fields are
// dropped, bad page/limit values fall back to defaults, and filtering on an
// attribute rooms do not have yields a filter that matches nothing.
func (b *RoomQueryBuilder) Build(params map[string]string) (stores.RoomQuery, PageWindow) {
	window := NewPageWindow(params[paramPage], params[paramLimit], b.MaxLimit)

	q := stores.RoomQuery{
		Filter: buildRoomFilter(params),
		Sort:   buildSort(params[paramSort]),
		Offset: window.StartIndex,
		Limit:  window.Limit,
		Expand: []string{stores.ExpandRoomType, stores.ExpandHotel},
	}
	q.Columns, q.Omit = buildProjection(params[paramSelect])
	return q, window
}

// Run counts the filter, then fetches the requested page.
func (b *RoomQueryBuilder) Run(ctx context.Context, params map[string]string) (*RoomPage, error) {
	q, window := b.Build(params)

	total, err := b.Rooms.Count(ctx, q.Filter)
	if err != nil {
		return nil, err
	}
	rooms, err := b.Rooms.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return &RoomPage{Rooms: rooms, Total: total, Pagination: window.Paginate(total)}, nil
}

func buildRoomFilter(params map[string]string) stores.RoomFilter {
	keys := make([]string, 0, len(params))
	for k := range params {
		switch k {
		case paramSelect, paramSort, paramPage, paramLimit:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var f stores.RoomFilter
	for _, k := range keys {
		col, ok := roomColumn(k)
		if !ok {
			return stores.RoomFilter{MatchNone: true}
		}
		if col == "features" {
			f = f.Contains(col, params[k])
			continue
		}
		f = f.Eq(col, params[k])
	}
	return f
}

// buildProjection returns included columns, or excluded ones when every field
// carries a leading "-".
func buildProjection(raw string) (columns, omit []string) {
	fields := splitList(raw)
	if len(fields) == 0 {
		return nil, nil
	}

	exclude := true
	for _, f := range fields {
		if !strings.HasPrefix(f, "-") {
			exclude = false
			break
		}
	}

	seen := map[string]bool{}
	for _, f := range fields {
		if strings.HasPrefix(f, "-") != exclude {
			continue
		}
		col, ok := roomColumn(strings.TrimPrefix(f, "-"))
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		if exclude {
			if col != "id" {
				omit = append(omit, col)
			}
			continue
		}
		columns = append(columns, col)
	}
	if len(columns) > 0 && !seen["id"] {
		columns = append([]string{"id"}, columns...)
	}
	return columns, omit
}

func buildSort(raw string) []stores.SortKey {
	var keys []stores.SortKey
	seen := map[string]bool{}
	for _, f := range splitList(raw) {
		desc := strings.HasPrefix(f, "-")
		col, ok := roomColumn(strings.TrimPrefix(f, "-"))
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		keys = append(keys, stores.SortKey{Column: col, Desc: desc})
	}
	if len(keys) == 0 {
		keys = append(keys, stores.SortKey{Column: defaultSortColumn})
		seen[defaultSortColumn] = true
	}
	// Ties on the client's keys would make page boundaries unstable.
	if !seen["id"] {
		keys = append(keys, stores.SortKey{Column: "id"})
	}
	return keys
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
