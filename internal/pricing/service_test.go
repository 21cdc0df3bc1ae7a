package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/pkg/enums"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

type stubPlatform struct {
	page      *platform.DefaultPricingPage
	created   *platform.DefaultPricingRecord
	updated   *platform.DefaultPricingRecord
	err       error
	lastList  platform.ListDefaultPricingParams
	lastSaved platform.DefaultPricingRecord
	deleted   []string
}

func (s *stubPlatform) ListDefaultPricing(_ context.Context, params platform.ListDefaultPricingParams) (*platform.DefaultPricingPage, error) {
	s.lastList = params
	return s.page, s.err
}

func (s *stubPlatform) CreateDefaultPricing(_ context.Context, record platform.DefaultPricingRecord) (*platform.DefaultPricingRecord, error) {
	s.lastSaved = record
	if s.err != nil {
		return nil, s.err
	}
	if s.created != nil {
		return s.created, nil
	}
	record.ID = "dp-1"
	return &record, nil
}

func (s *stubPlatform) UpdateDefaultPricing(_ context.Context, record platform.DefaultPricingRecord) (*platform.DefaultPricingRecord, error) {
	s.lastSaved = record
	if s.err != nil {
		return nil, s.err
	}
	if s.updated != nil {
		return s.updated, nil
	}
	return &record, nil
}

func (s *stubPlatform) DeleteDefaultPricing(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubPlatform) SetDefaultPricingStatus(_ context.Context, id string, active bool) (*platform.DefaultPricingRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &platform.DefaultPricingRecord{ID: id, Country: "NG", Active: active, Fee: decimal.NewFromInt(5000)}, nil
}

func validInput() EntryInput {
	return EntryInput{
		Country: "NG",
		State:   "Lagos",
		Fee:     decimal.NewFromInt(5000),
		Active:  true,
		Level:   enums.PricingLevelState,
	}
}

func TestInferLevel(t *testing.T) {
	cases := []struct {
		record platform.DefaultPricingRecord
		want   enums.PricingLevel
	}{
		{platform.DefaultPricingRecord{Country: "NG"}, enums.PricingLevelCountry},
		{platform.DefaultPricingRecord{Country: "NG", State: "Lagos"}, enums.PricingLevelState},
		{platform.DefaultPricingRecord{Country: "NG", State: "Lagos", LGA: "Ikeja"}, enums.PricingLevelLGA},
		{platform.DefaultPricingRecord{Country: "NG", State: "Lagos", LGA: "Ikeja", City: "Ikeja City"}, enums.PricingLevelCity},
	}
	for _, tc := range cases {
		if got := InferLevel(tc.record); got != tc.want {
			t.Fatalf("expected %s, got %s for %+v", tc.want, got, tc.record)
		}
	}
}

func TestValidateEntryInputPerLevelRequirements(t *testing.T) {
	input := EntryInput{Country: "NG", Fee: decimal.NewFromInt(100), Level: enums.PricingLevelCity}
	errs := ValidateEntryInput(input)
	for _, field := range []string{"state", "lga", "city"} {
		if errs[field] == "" {
			t.Fatalf("expected %s to be required at city level, got %v", field, errs)
		}
	}

	input.Level = enums.PricingLevelCountry
	if errs := ValidateEntryInput(input); len(errs) != 0 {
		t.Fatalf("country-level input should be valid, got %v", errs)
	}
}

func TestValidateEntryInputFee(t *testing.T) {
	input := validInput()
	input.Fee = decimal.Zero
	if errs := ValidateEntryInput(input); errs["default_fee"] == "" {
		t.Fatal("expected fee error for zero fee")
	}
}

func TestCreateNormalizesScopeForLevel(t *testing.T) {
	stub := &stubPlatform{}
	svc, err := NewService(stub)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := validInput()
	input.LGA = "Ikeja"
	input.City = "Ikeja City"

	entry, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stub.lastSaved.LGA != "" || stub.lastSaved.City != "" {
		t.Fatalf("expected sub-level fields dropped for state level, got %+v", stub.lastSaved)
	}
	if entry.Level != enums.PricingLevelState {
		t.Fatalf("expected state level, got %s", entry.Level)
	}
}

func TestCreateBlocksInvalidFormWithoutUpstreamCall(t *testing.T) {
	stub := &stubPlatform{}
	svc, _ := NewService(stub)

	input := validInput()
	input.Country = ""
	_, err := svc.Create(context.Background(), input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if stub.lastSaved.Country != "" {
		t.Fatal("expected no upstream call on validation failure")
	}
}

func TestListAppliesClientSideFilters(t *testing.T) {
	stub := &stubPlatform{page: &platform.DefaultPricingPage{
		Entries: []platform.DefaultPricingRecord{
			{ID: "1", Country: "NG"},
			{ID: "2", Country: "NG", State: "Lagos"},
			{ID: "3", Country: "NG", State: "Kano", LGA: "Nassarawa"},
		},
		Total: 30,
	}}
	svc, _ := NewService(stub)

	result, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 10, Level: enums.PricingLevelState})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].ID != "2" {
		t.Fatalf("expected only the state-level entry, got %+v", result.Entries)
	}
	// Pagination stays anchored to the upstream total, not the filtered count.
	if result.Page.Total != 30 || result.Page.Page != 2 {
		t.Fatalf("unexpected page metadata %+v", result.Page)
	}
	if stub.lastList.Page != 2 || stub.lastList.Limit != 10 {
		t.Fatalf("expected page params forwarded upstream, got %+v", stub.lastList)
	}
}

func TestListSearchMatchesSubstring(t *testing.T) {
	stub := &stubPlatform{page: &platform.DefaultPricingPage{
		Entries: []platform.DefaultPricingRecord{
			{ID: "1", Country: "NG", State: "Lagos"},
			{ID: "2", Country: "NG", State: "Kano"},
		},
		Total: 2,
	}}
	svc, _ := NewService(stub)

	result, err := svc.List(context.Background(), ListParams{Search: "lag"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].State != "Lagos" {
		t.Fatalf("expected Lagos match, got %+v", result.Entries)
	}
}

func TestDeleteForwardsID(t *testing.T) {
	stub := &stubPlatform{}
	svc, _ := NewService(stub)

	if err := svc.Delete(context.Background(), "dp-9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(stub.deleted) != 1 || stub.deleted[0] != "dp-9" {
		t.Fatalf("expected delete forwarded, got %v", stub.deleted)
	}
	if err := svc.Delete(context.Background(), " "); err == nil {
		t.Fatal("expected validation error for blank id")
	}
}

func TestSetStatusTogglesActive(t *testing.T) {
	stub := &stubPlatform{}
	svc, _ := NewService(stub)

	entry, err := svc.SetStatus(context.Background(), "dp-1", false)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if entry.Active {
		t.Fatal("expected inactive entry")
	}
}
