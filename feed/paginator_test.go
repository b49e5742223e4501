package feed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}

func TestPaginateThirteenItems(t *testing.T) {
	items := seq(13)

	first := Paginate(items, 10, 1)
	second := Paginate(items, 10, 2)

	require.Len(t, first.Items, 10)
	require.Len(t, second.Items, 3)
	require.Equal(t, 2, first.TotalPages)
	require.True(t, first.HasNext)
	require.False(t, first.HasPrev)
	require.Equal(t, 2, first.NextPage)
	require.False(t, second.HasNext)
	require.True(t, second.HasPrev)
	require.Equal(t, 1, second.PrevPage)

	// страницы вместе дают всю ленту без повторов и в том же порядке
	require.Equal(t, items, append(append([]int{}, first.Items...), second.Items...))
}

func TestPaginateOutOfRange(t *testing.T) {
	items := seq(13)

	beyond := Paginate(items, 10, 99)
	require.Equal(t, 2, beyond.Number)
	require.Equal(t, items[10:], beyond.Items)

	below := Paginate(items, 10, -3)
	require.Equal(t, 1, below.Number)
	require.Equal(t, items[:10], below.Items)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, 10, 3)
	require.Equal(t, 1, page.Number)
	require.Equal(t, 1, page.TotalPages)
	require.Empty(t, page.Items)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
}

func TestPaginateExactMultiple(t *testing.T) {
	page := Paginate(seq(20), 10, 2)
	require.Len(t, page.Items, 10)
	require.Equal(t, 2, page.TotalPages)
	require.False(t, page.HasNext)
}

func TestPaginateCopiesItems(t *testing.T) {
	items := seq(5)
	page := Paginate(items, 10, 1)
	page.Items[0] = -1
	require.Equal(t, 5, items[0])
}

func TestBoundsDefaultsPageSize(t *testing.T) {
	info := NewPaginator(0).Bounds(25, 3)
	require.Equal(t, DefaultPageSize, info.PageSize)
	require.Equal(t, 20, info.Offset)
	require.Equal(t, 5, info.Limit)
}

func TestParsePageNumber(t *testing.T) {
	require.Equal(t, 1, ParsePageNumber(""))
	require.Equal(t, 1, ParsePageNumber("abc"))
	require.Equal(t, 1, ParsePageNumber("0"))
	require.Equal(t, 2, ParsePageNumber(" 2 "))
	require.Equal(t, 2, NewPaginator(10).Bounds(13, ParsePageNumber("last")).Number)
}
