// Package page converts page/perPage/perPagination/type/keyword request
// parameters into a bounded query descriptor and computes the pagination
// window the client UI renders.
package page

import (
	"net/http"
	"strconv"
)

const (
	defaultPerPage        = 10
	defaultPerPagination  = 5
	maxPerPage            = 100
	maxPerPagination      = 20
	defaultSearchType     = "n" // n = name/nickname, e = email
	defaultSearchKeyword  = ""
)

// Query is a bounded, per-request pagination descriptor. Page is 1-based.
type Query struct {
	Page          int
	PerPage       int
	PerPagination int // number of page links shown at once in the UI
	Type          string
	Keyword       string
}

// FromRequest parses pagination query parameters, applying defaults and
// clamping everything into safe bounds.
func FromRequest(r *http.Request) Query {
	q := Query{
		Page:          atoiDefault(r.URL.Query().Get("page"), 1),
		PerPage:       atoiDefault(r.URL.Query().Get("perPage"), defaultPerPage),
		PerPagination: atoiDefault(r.URL.Query().Get("perPagination"), defaultPerPagination),
		Type:          r.URL.Query().Get("type"),
		Keyword:       r.URL.Query().Get("keyword"),
	}
	if q.Type == "" {
		q.Type = defaultSearchType
	}
	if q.Keyword == "" {
		q.Keyword = defaultSearchKeyword
	}
	return q.clamp()
}

func (q Query) clamp() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	if q.PerPagination < 1 {
		q.PerPagination = defaultPerPagination
	}
	if q.PerPagination > maxPerPagination {
		q.PerPagination = maxPerPagination
	}
	return q
}

// Offset returns the number of records preceding the requested page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// Result is one page of data plus the window metadata for the pagination UI.
type Result[T any] struct {
	Data          []T  `json:"data"`
	Page          int  `json:"page"`
	PerPage       int  `json:"per_page"`
	TotalCount    int  `json:"total_count"`
	TotalPage     int  `json:"total_page"`
	Start         int  `json:"start"` // first page number in the window
	End           int  `json:"end"`   // last page number in the window
	HasPrev       bool `json:"prev"`
	HasNext       bool `json:"next"`
}

// Paginate slices all into the page selected by q and fills in window
// metadata. all must already be in presentation order.
func Paginate[T any](all []T, q Query) Result[T] {
	total := len(all)
	totalPage := (total + q.PerPage - 1) / q.PerPage
	if totalPage < 1 {
		totalPage = 1
	}

	lo := q.Offset()
	if lo > total {
		lo = total
	}
	hi := lo + q.PerPage
	if hi > total {
		hi = total
	}

	// Window of page links around the requested page.
	end := ((q.Page-1)/q.PerPagination + 1) * q.PerPagination
	start := end - q.PerPagination + 1
	if end > totalPage {
		end = totalPage
	}

	return Result[T]{
		Data:       all[lo:hi],
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalCount: total,
		TotalPage:  totalPage,
		Start:      start,
		End:        end,
		HasPrev:    start > 1,
		HasNext:    end < totalPage,
	}
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
