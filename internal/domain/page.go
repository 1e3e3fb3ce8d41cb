package domain

// Page selects a 1-based page of Limit items.
type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit, defaultLimit, maxLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalBusinesses int64 `json:"totalBusinesses"`
	TotalLocations  int64 `json:"totalLocations"`
	TotalNews       int64 `json:"totalNews"`
	TotalPoints     int64 `json:"totalPoints"`
}
