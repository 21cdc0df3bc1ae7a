package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Page describes one server-paginated slice of a collection. HasNext and
// HasPrev let list UIs disable their first/last page controls.
type Page struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the requested page to at least the first page.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// NewPage derives the full page metadata from the request and total count.
func NewPage(page, limit, total int) Page {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Page{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && totalPages > 0,
	}
}
