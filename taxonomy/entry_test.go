package taxonomy

import (
	"errors"
	"testing"
)

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name      string
		entry     Entry
		wantField string
	}{
		{
			name:  "minimal valid entry",
			entry: Entry{FidesKey: "account"},
		},
		{
			name:  "dotted key with parent",
			entry: Entry{FidesKey: "account.contact", ParentKey: "account"},
		},
		{
			name:      "missing fides_key",
			entry:     Entry{Name: "No Key"},
			wantField: "fides_key",
		},
		{
			name:      "illegal characters in fides_key",
			entry:     Entry{FidesKey: "account contact"},
			wantField: "fides_key",
		},
		{
			name:      "illegal characters in parent_key",
			entry:     Entry{FidesKey: "account", ParentKey: "bad key"},
			wantField: "parent_key",
		},
		{
			name:      "self reference",
			entry:     Entry{FidesKey: "account", ParentKey: "account"},
			wantField: "parent_key",
		},
		{
			name:      "unknown legal basis",
			entry:     Entry{FidesKey: "improve", LegalBasis: "Curiosity"},
			wantField: "legal_basis",
		},
		{
			name:      "unknown special category",
			entry:     Entry{FidesKey: "improve", SpecialCategory: "Convenience"},
			wantField: "special_category",
		},
		{
			name: "legitimate interest without impact assessment",
			entry: Entry{
				FidesKey:           "third_party_sharing",
				LegitimateInterest: true,
			},
			wantField: "legitimate_interest_impact_assessment",
		},
		{
			name: "legal basis legitimate interests without impact assessment",
			entry: Entry{
				FidesKey:   "third_party_sharing",
				LegalBasis: LegalBasisLegitimateInterest,
			},
			wantField: "legitimate_interest_impact_assessment",
		},
		{
			name: "legitimate interest with impact assessment",
			entry: Entry{
				FidesKey:                           "third_party_sharing",
				LegitimateInterest:                 true,
				LegitimateInterestImpactAssessment: "https://example.com/dpia",
			},
		},
		{
			name: "include strategy without values",
			entry: Entry{
				FidesKey: "customer",
				Rights:   &SubjectRights{Strategy: StrategyInclude},
			},
			wantField: "rights.values",
		},
		{
			name: "all strategy with values",
			entry: Entry{
				FidesKey: "customer",
				Rights:   &SubjectRights{Strategy: StrategyAll, Values: []SubjectRight{RightAccess}},
			},
			wantField: "rights.values",
		},
		{
			name: "unknown right",
			entry: Entry{
				FidesKey: "customer",
				Rights:   &SubjectRights{Strategy: StrategyInclude, Values: []SubjectRight{"Teleportation"}},
			},
			wantField: "rights.values",
		},
		{
			name: "valid rights",
			entry: Entry{
				FidesKey: "customer",
				Rights: &SubjectRights{
					Strategy: StrategyInclude,
					Values:   []SubjectRight{RightAccess, RightErasure},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var serr *SchemaError
			if !errors.As(err, &serr) {
				t.Fatalf("Validate() = %v, want *SchemaError", err)
			}
			if serr.Field != tt.wantField {
				t.Errorf("SchemaError.Field = %q, want %q", serr.Field, tt.wantField)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	entries, err := Load([]Entry{
		{FidesKey: "provide", LegalBasis: LegalBasisLegitimateInterest,
			LegitimateInterestImpactAssessment: "https://example.com/dpia"},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if entries[0].OrganizationFidesKey != DefaultOrganization {
		t.Errorf("organization key = %q, want %q", entries[0].OrganizationFidesKey, DefaultOrganization)
	}
	if !entries[0].LegitimateInterest {
		t.Error("legal basis Legitimate Interests should imply legitimate_interest")
	}
}

func TestLoadRejectsLegitimateInterestWithoutAssessment(t *testing.T) {
	// The legal basis alone must not slip past the URL requirement just
	// because the flag is defaulted after field validation.
	_, err := Load([]Entry{
		{FidesKey: "third_party_sharing", LegalBasis: LegalBasisLegitimateInterest},
	})

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("Load() = %v, want *SchemaError", err)
	}
	if serr.Field != "legitimate_interest_impact_assessment" {
		t.Errorf("SchemaError.Field = %q, want legitimate_interest_impact_assessment", serr.Field)
	}
	if serr.Key != "third_party_sharing" {
		t.Errorf("SchemaError.Key = %q, want third_party_sharing", serr.Key)
	}
}

func TestLoadSchemaErrorCarriesKey(t *testing.T) {
	_, err := Load([]Entry{
		{FidesKey: "ok"},
		{FidesKey: "bad key"},
	})

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("Load() = %v, want *SchemaError", err)
	}
	if serr.Key != "bad key" {
		t.Errorf("SchemaError.Key = %q, want %q", serr.Key, "bad key")
	}
}

func TestEntryDepth(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"user", 0},
		{"user.contact", 1},
		{"user.contact.email", 2},
	}

	for _, tt := range tests {
		e := Entry{FidesKey: tt.key}
		if got := e.Depth(); got != tt.want {
			t.Errorf("Depth(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}
