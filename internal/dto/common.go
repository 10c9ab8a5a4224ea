package dto

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Limit  int `query:"limit"`  // Number of items per page
	Offset int `query:"offset"` // Number of items to skip
	Page   int `query:"page"`   // Page number (alternative to offset)
}

// Normalize fills defaults and converts Page into Offset when set.
func (p *Pagination) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Page > 0 {
		p.Offset = (p.Page - 1) * p.Limit
	}
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems  int `json:"total_items"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

func NewPaginationInfo(total int, p Pagination) PaginationInfo {
	info := PaginationInfo{TotalItems: total, Limit: p.Limit, Offset: p.Offset}
	if p.Limit > 0 {
		info.CurrentPage = p.Offset/p.Limit + 1
		info.TotalPages = (total + p.Limit - 1) / p.Limit
	}
	return info
}
