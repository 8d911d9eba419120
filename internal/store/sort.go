package store

// SortOrder selects how post listings are ordered.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortMostLiked SortOrder = "mostLiked"
)

// ParseSortOrder maps a request parameter onto a known order,
// falling back to newest for anything it does not recognise.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortOldest:
		return SortOldest
	case SortMostLiked:
		return SortMostLiked
	default:
		return SortNewest
	}
}

// orderClause returns the SQL ordering for each mode. Posts never get
// edited after creation, so id order doubles as creation order. For
// mostLiked the tie-break is ascending id: insertion order, stable.
func (o SortOrder) orderClause() string {
	switch o {
	case SortOldest:
		return "id ASC"
	case SortMostLiked:
		return "likes DESC, id ASC"
	default:
		return "id DESC"
	}
}
