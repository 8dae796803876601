package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-rooms/stores"
)

func TestBuildTranslatesParams(t *testing.T) {
	b := &RoomQueryBuilder{}
	q, w := b.Build(map[string]string{
		"status":  "available",
		"hotelId": "3",
		"select":  "roomNumber,status,bogus",
		"sort":    "-floor,roomNumber",
		"page":    "2",
		"limit":   "5",
	})

	assert.Equal(t, []stores.Condition{
		{Column: "hotel_id", Op: stores.OpEq, Value: "3"},
		{Column: "status", Op: stores.OpEq, Value: "available"},
	}, q.Filter.Conditions)
	assert.False(t, q.Filter.MatchNone)
	assert.Equal(t, []string{"id", "room_number", "status"}, q.Columns)
	assert.Empty(t, q.Omit)
	assert.Equal(t, []stores.SortKey{
		{Column: "floor", Desc: true},
		{Column: "room_number"},
		{Column: "id"},
	}, q.Sort)
	assert.Equal(t, 5, q.Offset)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, 2, w.Page)
	assert.ElementsMatch(t, []string{stores.ExpandRoomType, stores.ExpandHotel}, q.Expand)
}

func TestBuildUnknownFilterMatchesNothing(t *testing.T) {
	q, _ := (&RoomQueryBuilder{}).Build(map[string]string{"status": "available", "colour": "blue"})
	assert.True(t, q.Filter.MatchNone)
}

func TestBuildIDAlias(t *testing.T) {
	q, _ := (&RoomQueryBuilder{}).Build(map[string]string{"_id": "7"})
	require.Len(t, q.Filter.Conditions, 1)
	assert.Equal(t, "id", q.Filter.Conditions[0].Column)
}

func TestBuildFeaturesUsesContains(t *testing.T) {
	q, _ := (&RoomQueryBuilder{}).Build(map[string]string{"features": "balcony"})
	require.Len(t, q.Filter.Conditions, 1)
	assert.Equal(t, stores.OpContains, q.Filter.Conditions[0].Op)
}

func TestBuildExclusionProjection(t *testing.T) {
	q, _ := (&RoomQueryBuilder{}).Build(map[string]string{"select": "-specialNotes,-features,-id"})
	assert.Nil(t, q.Columns)
	assert.Equal(t, []string{"special_notes", "features"}, q.Omit)
}

func TestBuildDefaultSort(t *testing.T) {
	q, _ := (&RoomQueryBuilder{}).Build(map[string]string{"sort": "nope"})
	assert.Equal(t, []stores.SortKey{{Column: "room_number"}, {Column: "id"}}, q.Sort)
}

func TestRunUnknownKeyReturnsEmpty(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "101", 1)

	page, err := f.svc.List(context.Background(), map[string]string{"wingspan": "12"})
	require.NoError(t, err)
	assert.Empty(t, page.Rooms)
	assert.Zero(t, page.Total)
	assert.Nil(t, page.Pagination.Next)
}

func TestRunDefaultSortIsByRoomNumber(t *testing.T) {
	f := newFixture(t)
	for _, n := range []string{"305", "101", "204", "102"} {
		f.createRoom(t, n, 1)
	}

	page, err := f.svc.List(context.Background(), map[string]string{})
	require.NoError(t, err)
	require.Len(t, page.Rooms, 4)
	for i := 1; i < len(page.Rooms); i++ {
		assert.LessOrEqual(t, page.Rooms[i-1].RoomNumber, page.Rooms[i].RoomNumber)
	}
	assert.NotNil(t, page.Rooms[0].RoomType)
	assert.NotNil(t, page.Rooms[0].Hotel)
}

func TestRunPagesConcatenateToFullSet(t *testing.T) {
	f := newFixture(t)
	const n = 23
	for i := 0; i < n; i++ {
		// equal floors force the id tiebreaker to decide order
		f.createRoom(t, fmt.Sprintf("R%02d", i), i%3)
	}

	var seen []uint
	page := 1
	for {
		res, err := f.svc.List(context.Background(), map[string]string{
			"sort": "floor", "limit": "5", "page": fmt.Sprint(page),
		})
		require.NoError(t, err)
		assert.EqualValues(t, n, res.Total)
		for _, r := range res.Rooms {
			seen = append(seen, r.ID)
		}
		if page == 1 {
			assert.Nil(t, res.Pagination.Prev)
		}
		if res.Pagination.Next == nil {
			break
		}
		page = res.Pagination.Next.Page
	}

	assert.Equal(t, 5, page)
	assert.Len(t, seen, n)
	unique := map[uint]bool{}
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, n)
}

func TestRunHugeLimitBeyondFirstPageIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "101", 1)
	f.createRoom(t, "102", 1)
	f.createRoom(t, "103", 1)

	for _, params := range []map[string]string{
		{"page": "3", "limit": "4611686018427387904"},
		{"page": "2", "limit": "9223372036854775807"},
	} {
		res, err := f.svc.List(context.Background(), params)
		require.NoError(t, err)
		assert.Empty(t, res.Rooms, "%v", params)
		assert.EqualValues(t, 3, res.Total)
		assert.Nil(t, res.Pagination.Next)
		assert.NotNil(t, res.Pagination.Prev)
	}

	res, err := f.svc.List(context.Background(), map[string]string{"page": "1", "limit": "9223372036854775807"})
	require.NoError(t, err)
	assert.Len(t, res.Rooms, 3)
	assert.Nil(t, res.Pagination.Next)
}

func TestRunFiltersAndProjects(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "101", 1, "balcony", "sea view")
	f.createRoom(t, "102", 1)
	f.createRoom(t, "201", 2, "balcony")

	res, err := f.svc.List(context.Background(), map[string]string{"features": "balcony", "select": "roomNumber"})
	require.NoError(t, err)
	require.Len(t, res.Rooms, 2)
	for _, r := range res.Rooms {
		assert.NotZero(t, r.ID)
		assert.NotEmpty(t, r.RoomNumber)
		assert.Nil(t, r.Floor)
		assert.Empty(t, r.Features)
	}

	res, err = f.svc.List(context.Background(), map[string]string{"floor": "2"})
	require.NoError(t, err)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, "201", res.Rooms[0].RoomNumber)
}
