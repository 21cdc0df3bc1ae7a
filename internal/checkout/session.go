package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/internal/organizations"
	"github.com/verilocal/admin-gateway/pkg/enums"
)

// SourceManualOverride labels fees an admin typed in by hand. A manually
// set fee is never replaced by automatic resolution.
const SourceManualOverride = "Manual Override"

// PackageSelection is one package/cycle pair picked in the first step.
type PackageSelection struct {
	PackageID string             `json:"package_id"`
	Title     string             `json:"title"`
	Cycle     enums.BillingCycle `json:"cycle"`
	Price     decimal.Decimal    `json:"price"`
}

// Contact identifies who the payment gateway should bill. It defaults to
// the admin who started the session and can be replaced at payment time.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Session is the full wizard state, held server-side in Redis so a page
// reload or a second tab never loses progress. Locations are addressed by
// their stable IDs, never by list position.
type Session struct {
	ID             string                   `json:"id"`
	AdminID        string                   `json:"admin_id"`
	Step           enums.CheckoutStep       `json:"step"`
	Contact        Contact                  `json:"contact"`
	Selections     []PackageSelection       `json:"selections,omitempty"`
	Profile        *organizations.Profile   `json:"profile,omitempty"`
	Locations      []organizations.Location `json:"locations,omitempty"`
	OrganizationID string                   `json:"organization_id,omitempty"`
	LocationPayRef string                   `json:"location_payment_reference,omitempty"`
	PaymentRef     string                   `json:"payment_reference,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// Location returns the location with the given ID and its index, or -1.
func (s *Session) Location(locationID string) (*organizations.Location, int) {
	for i := range s.Locations {
		if s.Locations[i].ID == locationID {
			return &s.Locations[i], i
		}
	}
	return nil, -1
}

// RemoveLocation drops the location with the given ID, reporting whether
// it was present.
func (s *Session) RemoveLocation(locationID string) bool {
	_, idx := s.Location(locationID)
	if idx < 0 {
		return false
	}
	s.Locations = append(s.Locations[:idx], s.Locations[idx+1:]...)
	return true
}

// VerificationTotal sums the resolved fees of every location. Locations
// without a fee contribute nothing; the wizard resolves fees before they
// reach payment.
func (s *Session) VerificationTotal() decimal.Decimal {
	total := decimal.Zero
	for _, location := range s.Locations {
		if location.CityRegionFee != nil {
			total = total.Add(*location.CityRegionFee)
		}
	}
	return total
}

// SubscriptionTotal sums the prices of the selected packages.
func (s *Session) SubscriptionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, selection := range s.Selections {
		total = total.Add(selection.Price)
	}
	return total
}
