package repository

import "errors"

// ErrConditionNotMet is returned by guarded updates whose WHERE clause
// matched no row, e.g. a stock decrement with too little stock left.
var ErrConditionNotMet = errors.New("update condition not met")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func (p Page) Offset() int {
	n := p.normalize()
	return (n.Page - 1) * n.PageSize
}

func (p Page) Limit() int {
	return p.normalize().PageSize
}

// Number is the normalized 1-based page number.
func (p Page) Number() int {
	return p.normalize().Page
}
