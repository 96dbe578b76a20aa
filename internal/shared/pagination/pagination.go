// Package pagination implements the page envelope shared by every listing
// endpoint of the admin API.
package pagination

import (
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params captures a validated page/limit pair.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseParams interprets raw query values, falling back to defaults for
// missing or malformed input. Page and limit are clamped to be positive.
func ParseParams(rawPage, rawLimit string) Params {
	page := DefaultPage
	if v, err := strconv.Atoi(rawPage); err == nil && v > 0 {
		page = v
	}
	limit := DefaultLimit
	if v, err := strconv.Atoi(rawLimit); err == nil && v > 0 {
		limit = v
	}
	return Params{Page: page, Limit: limit}
}

// Envelope is the pagination block returned alongside every page of results.
type Envelope struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewEnvelope derives the envelope from the requested page and total count.
// totalCount of 0 yields totalPages 0 and hasNext false.
func NewEnvelope(params Params, totalCount int64) Envelope {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int((totalCount + int64(params.Limit) - 1) / int64(params.Limit))
	}
	return Envelope{
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNext:     params.Page < totalPages,
		HasPrev:     params.Page > 1,
	}
}
