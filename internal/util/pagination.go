package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxPage keeps (page-1)*size inside int for every allowed size.
const MaxPage = math.MaxInt / MaxPageSize

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Page is a normalized page request.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

func Calculate(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Page: page, Limit: size, Offset: (page - 1) * size}
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func (p Page) Meta(total int64) Meta {
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: (total + int64(p.Limit) - 1) / int64(p.Limit),
		HasNext:    int64(p.Offset+p.Limit) < total,
		HasPrev:    p.Page > 1,
	}
}
