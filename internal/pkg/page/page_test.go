package page

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/users/list", nil)
	q := FromRequest(r)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PerPage)
	assert.Equal(t, 5, q.PerPagination)
	assert.Equal(t, "n", q.Type)
}

func TestFromRequest_ClampsOutOfRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/users/list?page=-3&perPage=9999&perPagination=0", nil)
	q := FromRequest(r)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 100, q.PerPage)
	assert.Equal(t, 5, q.PerPagination)
}

func TestFromRequest_IgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/users/list?page=abc&perPage=xyz", nil)
	q := FromRequest(r)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PerPage)
}

func TestPaginate_MiddlePage(t *testing.T) {
	all := make([]int, 47)
	for i := range all {
		all[i] = i
	}
	q := Query{Page: 3, PerPage: 10, PerPagination: 5}.clamp()

	res := Paginate(all, q)

	assert.Equal(t, all[20:30], res.Data)
	assert.Equal(t, 47, res.TotalCount)
	assert.Equal(t, 5, res.TotalPage)
	assert.Equal(t, 1, res.Start)
	assert.Equal(t, 5, res.End)
	assert.False(t, res.HasPrev)
	assert.False(t, res.HasNext)
}

func TestPaginate_WindowAdvances(t *testing.T) {
	all := make([]int, 120)
	q := Query{Page: 7, PerPage: 10, PerPagination: 5}.clamp()

	res := Paginate(all, q)

	assert.Equal(t, 12, res.TotalPage)
	assert.Equal(t, 6, res.Start)
	assert.Equal(t, 10, res.End)
	assert.True(t, res.HasPrev)
	assert.True(t, res.HasNext)
}

func TestPaginate_PageBeyondEnd(t *testing.T) {
	all := []int{1, 2, 3}
	q := Query{Page: 9, PerPage: 10, PerPagination: 5}.clamp()

	res := Paginate(all, q)

	assert.Empty(t, res.Data)
	assert.Equal(t, 1, res.TotalPage)
}

func TestPaginate_Empty(t *testing.T) {
	res := Paginate([]int(nil), Query{Page: 1, PerPage: 10, PerPagination: 5})

	assert.Empty(t, res.Data)
	assert.Equal(t, 1, res.TotalPage)
	assert.False(t, res.HasNext)
}
