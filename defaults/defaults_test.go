package defaults

import (
	"testing"

	"github.com/privlang/privlang/taxonomy"
)

func TestLoad(t *testing.T) {
	tax, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tax.DataCategories().Len() == 0 {
		t.Error("shipped taxonomy has no data categories")
	}
	if tax.DataUses().Len() == 0 {
		t.Error("shipped taxonomy has no data uses")
	}
	if tax.DataQualifiers().Len() != 5 {
		t.Errorf("qualifiers = %d, want 5", tax.DataQualifiers().Len())
	}
	if tax.DataSubjects().Len() == 0 {
		t.Error("shipped taxonomy has no data subjects")
	}
}

func TestQualifierChain(t *testing.T) {
	tax, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	leaf := "aggregated.anonymized.unlinked_pseudonymized.pseudonymized.identified"
	ancestors, err := tax.DataQualifiers().AncestorsOf(leaf)
	if err != nil {
		t.Fatalf("AncestorsOf failed: %v", err)
	}
	if len(ancestors) != 4 {
		t.Fatalf("qualifier leaf depth = %d, want 4", len(ancestors))
	}
	if ancestors[0].FidesKey != "aggregated" {
		t.Errorf("qualifier root = %q, want aggregated", ancestors[0].FidesKey)
	}
}

func TestAllEntriesAreDefault(t *testing.T) {
	tax, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, kind := range taxonomy.Kinds {
		collection := tax.Collection(kind)
		if got := len(collection.Custom()); got != 0 {
			t.Errorf("%s: %d entries are not marked is_default", kind, got)
		}
		for _, entry := range collection.Entries() {
			if entry.OrganizationFidesKey != taxonomy.DefaultOrganization {
				t.Errorf("%s %s: organization = %q", kind, entry.FidesKey, entry.OrganizationFidesKey)
			}
		}
	}
}

func TestCategoryLineage(t *testing.T) {
	tax, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	categories := tax.DataCategories()
	if !categories.IsDescendant("user.provided.identifiable.government_id.passport_number", "user") {
		t.Error("passport_number should descend from user")
	}

	children, err := categories.ChildrenOf("user")
	if err != nil {
		t.Fatalf("ChildrenOf failed: %v", err)
	}
	if len(children) != 2 {
		t.Errorf("ChildrenOf(user) = %d entries, want 2 (derived, provided)", len(children))
	}
}

func TestMergeWithCustom(t *testing.T) {
	base, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	custom, err := taxonomy.BuildTaxonomy(&taxonomy.Manifest{
		DataCategories: []taxonomy.Entry{
			{FidesKey: "user.provided.identifiable.loyalty_id", ParentKey: "user.provided.identifiable"},
		},
	})
	if err != nil {
		t.Fatalf("BuildTaxonomy(custom) failed: %v", err)
	}

	merged, err := taxonomy.Merge(base, custom)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if !merged.DataCategories().IsDescendant("user.provided.identifiable.loyalty_id", "user") {
		t.Error("custom category should attach under the shipped hierarchy")
	}
}
