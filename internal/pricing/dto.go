package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/pkg/enums"
	"github.com/verilocal/admin-gateway/pkg/pagination"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

// Entry is one default pricing rule as the admin UI works with it, the
// backend record plus the level derived from its populated scope fields.
type Entry struct {
	ID      string             `json:"id"`
	Country string             `json:"country"`
	State   string             `json:"state,omitempty"`
	LGA     string             `json:"lga,omitempty"`
	City    string             `json:"city,omitempty"`
	Fee     decimal.Decimal    `json:"default_fee"`
	Active  bool               `json:"is_active"`
	Level   enums.PricingLevel `json:"level"`
}

// EntryInput is the create/update form payload. Level decides which scope
// fields are required and which are dropped on save.
type EntryInput struct {
	Country string             `json:"country"`
	State   string             `json:"state"`
	LGA     string             `json:"lga"`
	City    string             `json:"city"`
	Fee     decimal.Decimal    `json:"default_fee"`
	Active  bool               `json:"is_active"`
	Level   enums.PricingLevel `json:"level"`
}

// ListParams combines server-side filters (country/state, forwarded
// upstream) with the client-side search and level filters applied to the
// fetched page only.
type ListParams struct {
	Page    int
	Limit   int
	Country string
	State   string
	Search  string
	Level   enums.PricingLevel
}

// ListResult is one filtered page plus its pagination metadata. Pagination
// reflects the upstream total, not the post-filter count, so page controls
// stay anchored to the server-paginated collection.
type ListResult struct {
	Entries []Entry         `json:"entries"`
	Page    pagination.Page `json:"page"`
}

// InferLevel derives the pricing level from which scope fields are set.
func InferLevel(record platform.DefaultPricingRecord) enums.PricingLevel {
	switch {
	case record.City != "":
		return enums.PricingLevelCity
	case record.LGA != "":
		return enums.PricingLevelLGA
	case record.State != "":
		return enums.PricingLevelState
	default:
		return enums.PricingLevelCountry
	}
}

func entryFromRecord(record platform.DefaultPricingRecord) Entry {
	return Entry{
		ID:      record.ID,
		Country: record.Country,
		State:   record.State,
		LGA:     record.LGA,
		City:    record.City,
		Fee:     record.Fee,
		Active:  record.Active,
		Level:   InferLevel(record),
	}
}
