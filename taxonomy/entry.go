package taxonomy

// DefaultOrganization is the organization key assigned to entries that do
// not declare one.
const DefaultOrganization = "default_organization"

// Entry is a single controlled-vocabulary term. The dotted fides_key mirrors
// the entry's position in the hierarchy by dataset convention; only the
// parent_key relation is validated.
type Entry struct {
	// FidesKey uniquely identifies the entry within its collection.
	FidesKey string `yaml:"fides_key" json:"fides_key"`

	// OrganizationFidesKey identifies the owning organization.
	// Defaults to DefaultOrganization when empty.
	OrganizationFidesKey string `yaml:"organization_fides_key,omitempty" json:"organization_fides_key,omitempty"`

	// Name is the human-readable label.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Description is free text describing the term.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// ParentKey references another entry's fides_key; empty for roots.
	ParentKey string `yaml:"parent_key,omitempty" json:"parent_key,omitempty"`

	// IsDefault marks system-provided entries, as opposed to user-defined ones.
	IsDefault bool `yaml:"is_default,omitempty" json:"is_default,omitempty"`

	// Tags are optional free-form labels.
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	// LegalBasis is the legal basis category for a data use entry.
	LegalBasis LegalBasis `yaml:"legal_basis,omitempty" json:"legal_basis,omitempty"`

	// SpecialCategory is the special-category processing condition for a
	// data use entry.
	SpecialCategory SpecialCategory `yaml:"special_category,omitempty" json:"special_category,omitempty"`

	// Recipients lists external recipients for a data use entry.
	Recipients []string `yaml:"recipients,omitempty" json:"recipients,omitempty"`

	// LegitimateInterest records that the legal basis used is legitimate
	// interest. Set implicitly when LegalBasis is "Legitimate Interests".
	LegitimateInterest bool `yaml:"legitimate_interest,omitempty" json:"legitimate_interest,omitempty"`

	// LegitimateInterestImpactAssessment is a URL pointing to the impact
	// assessment. Required when LegitimateInterest is set.
	LegitimateInterestImpactAssessment string `yaml:"legitimate_interest_impact_assessment,omitempty" json:"legitimate_interest_impact_assessment,omitempty"`

	// Rights applies to data subject entries.
	Rights *SubjectRights `yaml:"rights,omitempty" json:"rights,omitempty"`

	// AutomatedDecisionsOrProfiling annotates whether automated decisions
	// or profiling exist for a data subject entry.
	AutomatedDecisionsOrProfiling *bool `yaml:"automated_decisions_or_profiling,omitempty" json:"automated_decisions_or_profiling,omitempty"`
}

// SubjectRights pairs a strategy with the rights it applies to a subject.
type SubjectRights struct {
	Strategy RightsStrategy `yaml:"strategy" json:"strategy"`
	Values   []SubjectRight `yaml:"values,omitempty" json:"values,omitempty"`
}

// validKey reports whether a key uses only the allowed character set:
// ASCII letters, digits, underscore, hyphen, and the dot separator.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.':
		default:
			return false
		}
	}
	return true
}

// Validate checks the entry's fields against the record schema. It returns
// a *SchemaError describing the first violation found.
func (e *Entry) Validate() error {
	if e.FidesKey == "" {
		return &SchemaError{Field: "fides_key", Message: "fides_key is required"}
	}
	if !validKey(e.FidesKey) {
		return &SchemaError{Key: e.FidesKey, Field: "fides_key", Message: "fides_key may only contain letters, digits, '.', '_' and '-'"}
	}
	if e.OrganizationFidesKey != "" && !validKey(e.OrganizationFidesKey) {
		return &SchemaError{Key: e.FidesKey, Field: "organization_fides_key", Message: "organization_fides_key may only contain letters, digits, '.', '_' and '-'"}
	}
	if e.ParentKey != "" {
		if !validKey(e.ParentKey) {
			return &SchemaError{Key: e.FidesKey, Field: "parent_key", Message: "parent_key may only contain letters, digits, '.', '_' and '-'"}
		}
		if e.ParentKey == e.FidesKey {
			return &SchemaError{Key: e.FidesKey, Field: "parent_key", Message: "entry cannot reference itself as parent"}
		}
	}
	if e.LegalBasis != "" && !e.LegalBasis.Valid() {
		return &SchemaError{Key: e.FidesKey, Field: "legal_basis", Message: "unknown legal basis: " + string(e.LegalBasis)}
	}
	if e.SpecialCategory != "" && !e.SpecialCategory.Valid() {
		return &SchemaError{Key: e.FidesKey, Field: "special_category", Message: "unknown special category: " + string(e.SpecialCategory)}
	}
	// The legal basis implies the flag even before normalize sets it.
	legitimateInterest := e.LegitimateInterest || e.LegalBasis == LegalBasisLegitimateInterest
	if legitimateInterest && e.LegitimateInterestImpactAssessment == "" {
		return &SchemaError{Key: e.FidesKey, Field: "legitimate_interest_impact_assessment", Message: "impact assessment URL is required for a legitimate interest"}
	}
	if e.Rights != nil {
		if err := e.Rights.validate(); err != nil {
			if serr, ok := err.(*SchemaError); ok {
				serr.Key = e.FidesKey
			}
			return err
		}
	}
	return nil
}

func (r *SubjectRights) validate() error {
	if !r.Strategy.Valid() {
		return &SchemaError{Field: "rights.strategy", Message: "unknown rights strategy: " + string(r.Strategy)}
	}
	for _, v := range r.Values {
		if !v.Valid() {
			return &SchemaError{Field: "rights.values", Message: "unknown data subject right: " + string(v)}
		}
	}
	switch r.Strategy {
	case StrategyInclude, StrategyExclude:
		if len(r.Values) == 0 {
			return &SchemaError{Field: "rights.values", Message: "strategy " + string(r.Strategy) + " requires at least one right"}
		}
	case StrategyAll, StrategyNone:
		if len(r.Values) > 0 {
			return &SchemaError{Field: "rights.values", Message: "strategy " + string(r.Strategy) + " does not take explicit rights"}
		}
	}
	return nil
}

// normalize applies schema defaults: the default organization key and the
// legitimate-interest flag implied by the legal basis.
func (e *Entry) normalize() {
	if e.OrganizationFidesKey == "" {
		e.OrganizationFidesKey = DefaultOrganization
	}
	if e.LegalBasis == LegalBasisLegitimateInterest {
		e.LegitimateInterest = true
	}
}

// Depth returns the number of dotted segments below the top level.
// A root-conventional key like "user" has depth 0, "user.contact" depth 1.
// This reflects the naming convention only, not the validated lineage.
func (e *Entry) Depth() int {
	n := 0
	for i := 0; i < len(e.FidesKey); i++ {
		if e.FidesKey[i] == '.' {
			n++
		}
	}
	return n
}
