package models

import (
	"sort"

	"gorm.io/gorm/clause"
)

// SortKey selects one of the book list orderings. Unknown values parse to SortRecency.
type SortKey string

const (
	SortRecency SortKey = "recency"
	SortTitle   SortKey = "title"
	SortRating  SortKey = "rating"
)

// SortKeys lists the orderings offered on the list page.
var SortKeys = []SortKey{SortRecency, SortTitle, SortRating}

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortTitle:
		return SortTitle
	case SortRating:
		return SortRating
	default:
		return SortRecency
	}
}

func (k SortKey) String() string {
	return string(k)
}

// Less orders a before b. Every key ends with newest-created first and then
// higher id first so the order is total.
func (k SortKey) Less(a, b Book) bool {
	switch k {
	case SortTitle:
		if a.Title != b.Title {
			return a.Title < b.Title
		}
	case SortRating:
		switch {
		case a.Rating != nil && b.Rating == nil:
			return true
		case a.Rating == nil && b.Rating != nil:
			return false
		case a.Rating != nil && b.Rating != nil && *a.Rating != *b.Rating:
			return *a.Rating > *b.Rating
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// SortBooks orders books in place with the comparator of k.
func SortBooks(books []Book, k SortKey) {
	sort.SliceStable(books, func(i, j int) bool {
		return k.Less(books[i], books[j])
	})
}

// OrderBy is the SQL counterpart of Less, built from quoted column names only.
func (k SortKey) OrderBy() clause.OrderBy {
	tiebreak := []clause.OrderByColumn{
		{Column: clause.Column{Name: "created_at"}, Desc: true},
		{Column: clause.Column{Name: "id"}, Desc: true},
	}

	switch k {
	case SortTitle:
		return clause.OrderBy{Columns: append([]clause.OrderByColumn{
			{Column: clause.Column{Name: "title"}},
		}, tiebreak...)}
	case SortRating:
		return clause.OrderBy{Expression: clause.Expr{
			SQL: "? DESC NULLS LAST, ? DESC, ? DESC",
			Vars: []interface{}{
				clause.Column{Name: "rating"},
				clause.Column{Name: "created_at"},
				clause.Column{Name: "id"},
			},
		}}
	default:
		return clause.OrderBy{Columns: tiebreak}
	}
}
