package databases

import (
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/conectaong/voluntariado-api/models"
)

const (
	// DefaultPage is used when no page or an invalid one is requested
	DefaultPage = 1
	// DefaultLimit is used when no limit or an invalid one is requested
	DefaultLimit = 10
	// MaxLimit caps the page size
	MaxLimit = 100
	// MaxPage keeps the computed skip within int64
	MaxPage = math.MaxInt64 / MaxLimit
)

// Paginate is a normalized page request
type Paginate struct {
	limit int64
	page  int64
}

// NewPaginate clamps limit and page into their allowed ranges
func NewPaginate(limit, page int) *Paginate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	p := int64(page)
	if p <= 0 {
		p = DefaultPage
	}
	if p > MaxPage {
		p = MaxPage
	}
	return &Paginate{
		limit: int64(limit),
		page:  p,
	}
}

// ParsePaginate reads the raw "limit" and "page" query values. Anything that
// is not a positive number falls back to the defaults.
func ParsePaginate(limit, page string) *Paginate {
	l, err := strconv.Atoi(limit)
	if err != nil {
		l = DefaultLimit
	}
	p, err := strconv.Atoi(page)
	if err != nil {
		p = DefaultPage
	}
	return NewPaginate(l, p)
}

// Limit is the page size
func (mp *Paginate) Limit() int64 { return mp.limit }

// Page is the 1-based page number
func (mp *Paginate) Page() int64 { return mp.page }

// FindOptions returns the skip and limit for the page, sorted by sort when given
func (mp *Paginate) FindOptions(sort bson.D) *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}
	if len(sort) > 0 {
		fOpt.SetSort(sort)
	}

	return &fOpt
}

// Pagination builds the response metadata for a result set of total documents
func (mp *Paginate) Pagination(total int64) models.Pagination {
	pages := total / mp.limit
	if total%mp.limit != 0 {
		pages++
	}
	return models.Pagination{
		Page:  int(mp.page),
		Limit: int(mp.limit),
		Total: total,
		Pages: pages,
	}
}
