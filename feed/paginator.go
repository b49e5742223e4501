package feed

import (
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// PageInfo - положение страницы в ленте
type PageInfo struct {
	Number     int   `json:"number"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
	NextPage   int   `json:"next_page,omitempty"`
	PrevPage   int   `json:"previous_page,omitempty"`
	Offset     int   `json:"-"`
	Limit      int   `json:"-"`
}

// Page - срез ленты вместе с метаданными
type Page[T any] struct {
	Items []T `json:"items"`
	PageInfo
}

type Paginator struct {
	PageSize int
}

func NewPaginator(pageSize int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Paginator{PageSize: pageSize}
}

// Bounds считает границы страницы number для ленты из total элементов.
// Номер меньше 1 превращается в 1, номер больше последнего - в последний.
// Пустая лента состоит из одной пустой страницы.
func (p Paginator) Bounds(total int64, number int) PageInfo {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	pages := int((total + int64(size) - 1) / int64(size))
	if pages == 0 {
		pages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	offset := (number - 1) * size
	limit := size
	if rest := total - int64(offset); rest < int64(limit) {
		limit = int(rest)
	}

	info := PageInfo{
		Number:     number,
		PageSize:   size,
		TotalPages: pages,
		TotalItems: total,
		HasNext:    number < pages,
		HasPrev:    number > 1,
		Offset:     offset,
		Limit:      limit,
	}
	if info.HasNext {
		info.NextPage = number + 1
	}
	if info.HasPrev {
		info.PrevPage = number - 1
	}
	return info
}

// Paginate режет уже упорядоченную ленту в памяти
func Paginate[T any](items []T, pageSize int, number int) Page[T] {
	info := NewPaginator(pageSize).Bounds(int64(len(items)), number)
	page := make([]T, info.Limit)
	copy(page, items[info.Offset:info.Offset+info.Limit])
	return Page[T]{Items: page, PageInfo: info}
}

// ParsePageNumber разбирает ?page=, при ошибке возвращает 1
func ParsePageNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "last" {
		return int(^uint(0) >> 1)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
