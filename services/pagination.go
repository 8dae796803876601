package services

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// PageRef points at a neighbouring page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries only the neighbours that exist.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// PageWindow is the slice of a result set a page covers: [StartIndex, EndIndex).
type PageWindow struct {
	Page       int
	Limit      int
	StartIndex int
	EndIndex   int
}

// NewPageWindow parses raw page/limit values. Anything that is not a positive
// integer falls back to the default. maxLimit > 0 caps the limit.
func NewPageWindow(rawPage, rawLimit string, maxLimit int) PageWindow {
	page := positiveOr(rawPage, DefaultPage)
	limit := positiveOr(rawLimit, DefaultLimit)
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	// A window whose end does not fit in an int starts past any possible total.
	if page > math.MaxInt/limit {
		return PageWindow{Page: page, Limit: limit, StartIndex: math.MaxInt, EndIndex: math.MaxInt}
	}
	return PageWindow{
		Page:       page,
		Limit:      limit,
		StartIndex: (page - 1) * limit,
		EndIndex:   page * limit,
	}
}

// Paginate builds the descriptor for a filter matching total rows.
func (w PageWindow) Paginate(total int64) Pagination {
	var p Pagination
	if int64(w.EndIndex) < total {
		p.Next = &PageRef{Page: w.Page + 1, Limit: w.Limit}
	}
	if w.StartIndex > 0 {
		p.Prev = &PageRef{Page: w.Page - 1, Limit: w.Limit}
	}
	return p
}

// positiveOr reads the leading digits of raw, so "2abc" is 2 and "10.5" is 10.
func positiveOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n <= 0 {
		return def
	}
	return n
}
