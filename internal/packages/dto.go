package packages

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/pkg/enums"
	"github.com/verilocal/admin-gateway/pkg/pagination"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

// ServiceSelection is one service bundled into a package with the billing
// cycle chosen for it. CyclePrices holds the per-cycle price table the
// service was published with.
type ServiceSelection struct {
	ServiceID   string                                 `json:"service_id"`
	Name        string                                 `json:"name"`
	CyclePrices map[enums.BillingCycle]decimal.Decimal `json:"cycle_prices"`
	Cycle       enums.BillingCycle                     `json:"cycle"`
}

// Package is a subscription package as the admin UI works with it.
type Package struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Services           []ServiceSelection `json:"services"`
	TotalPrice         decimal.Decimal    `json:"total_price"`
	DiscountedPrice    decimal.Decimal    `json:"discounted_price"`
	PromoCode          string             `json:"promo_code,omitempty"`
	DiscountPercentage decimal.Decimal    `json:"discount_percentage"`
	PromoStart         *time.Time         `json:"promo_start,omitempty"`
	PromoEnd           *time.Time         `json:"promo_end,omitempty"`
	MaxUsers           int                `json:"max_users"`
	Features           []string           `json:"features"`
	Note               string             `json:"note,omitempty"`
	Active             bool               `json:"is_active"`
}

// Input is the create/update form payload. Prices are recomputed by the
// service, never trusted from the form.
type Input struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Services           []ServiceSelection `json:"services"`
	PromoCode          string             `json:"promo_code"`
	DiscountPercentage decimal.Decimal    `json:"discount_percentage"`
	PromoStart         *time.Time         `json:"promo_start"`
	PromoEnd           *time.Time         `json:"promo_end"`
	MaxUsers           int                `json:"max_users"`
	Features           []string           `json:"features"`
	Note               string             `json:"note"`
	Active             bool               `json:"is_active"`
}

// ListParams carries the package list page's pagination and search.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// ListResult is one page of packages with its pagination metadata.
type ListResult struct {
	Entries []Package       `json:"entries"`
	Page    pagination.Page `json:"page"`
}

func packageFromRecord(record platform.PackageRecord) Package {
	services := make([]ServiceSelection, 0, len(record.Services))
	for _, svc := range record.Services {
		prices := make(map[enums.BillingCycle]decimal.Decimal, len(svc.CyclePrices))
		for cycle, price := range svc.CyclePrices {
			prices[enums.BillingCycle(cycle)] = price
		}
		services = append(services, ServiceSelection{
			ServiceID:   svc.ServiceID,
			Name:        svc.Name,
			CyclePrices: prices,
			Cycle:       enums.BillingCycle(svc.SelectedCycle),
		})
	}
	return Package{
		ID:                 record.ID,
		Title:              record.Title,
		Description:        record.Description,
		Services:           services,
		TotalPrice:         record.TotalPrice,
		DiscountedPrice:    record.DiscountedPrice,
		PromoCode:          record.PromoCode,
		DiscountPercentage: record.DiscountPercentage,
		PromoStart:         record.PromoStart,
		PromoEnd:           record.PromoEnd,
		MaxUsers:           record.MaxUsers,
		Features:           record.Features,
		Note:               record.Note,
		Active:             record.Active,
	}
}

func recordFromPackage(pkg Package) platform.PackageRecord {
	services := make([]platform.PackageServiceRecord, 0, len(pkg.Services))
	for _, svc := range pkg.Services {
		prices := make(map[string]decimal.Decimal, len(svc.CyclePrices))
		for cycle, price := range svc.CyclePrices {
			prices[string(cycle)] = price
		}
		services = append(services, platform.PackageServiceRecord{
			ServiceID:     svc.ServiceID,
			Name:          svc.Name,
			CyclePrices:   prices,
			SelectedCycle: string(svc.Cycle),
			SelectedPrice: svc.CyclePrices[svc.Cycle],
		})
	}
	return platform.PackageRecord{
		ID:                 pkg.ID,
		Title:              pkg.Title,
		Description:        pkg.Description,
		Services:           services,
		TotalPrice:         pkg.TotalPrice,
		DiscountedPrice:    pkg.DiscountedPrice,
		PromoCode:          pkg.PromoCode,
		DiscountPercentage: pkg.DiscountPercentage,
		PromoStart:         pkg.PromoStart,
		PromoEnd:           pkg.PromoEnd,
		MaxUsers:           pkg.MaxUsers,
		Features:           pkg.Features,
		Note:               pkg.Note,
		Active:             pkg.Active,
	}
}
