package types

import "strings"

// LocationScope identifies a point in the Nigerian address hierarchy used as
// a pricing lookup key. Country, state, and city are the usual minimum; LGA
// and city region narrow the scope further.
type LocationScope struct {
	Country    string `json:"country"`
	State      string `json:"state,omitempty"`
	LGA        string `json:"lga,omitempty"`
	City       string `json:"city,omitempty"`
	CityRegion string `json:"city_region,omitempty"`
}

// Normalize trims surrounding whitespace on every component.
func (s LocationScope) Normalize() LocationScope {
	return LocationScope{
		Country:    strings.TrimSpace(s.Country),
		State:      strings.TrimSpace(s.State),
		LGA:        strings.TrimSpace(s.LGA),
		City:       strings.TrimSpace(s.City),
		CityRegion: strings.TrimSpace(s.CityRegion),
	}
}

// IsZero reports whether no component is populated.
func (s LocationScope) IsZero() bool {
	n := s.Normalize()
	return n.Country == "" && n.State == "" && n.LGA == "" && n.City == "" && n.CityRegion == ""
}

// StreetAddress holds the street-level fields of a physical location.
type StreetAddress struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	Landmark    string `json:"landmark,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
}
