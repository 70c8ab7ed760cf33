package taxonomy

// Kind identifies which vocabulary an entry belongs to.
type Kind string

const (
	// KindDataCategory classifies the data itself (e.g. user.contact.email).
	KindDataCategory Kind = "data_category"

	// KindDataUse describes the purpose data is used for.
	KindDataUse Kind = "data_use"

	// KindDataQualifier describes the degree of identifiability.
	KindDataQualifier Kind = "data_qualifier"

	// KindDataSubject describes whose data is processed.
	KindDataSubject Kind = "data_subject"
)

// Kinds lists all vocabulary kinds in manifest order.
var Kinds = []Kind{KindDataCategory, KindDataUse, KindDataQualifier, KindDataSubject}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// LegalBasis is the GDPR article 6 legal basis category for a data use.
type LegalBasis string

const (
	LegalBasisConsent            LegalBasis = "Consent"
	LegalBasisContract           LegalBasis = "Contract"
	LegalBasisLegalObligation    LegalBasis = "Legal Obligation"
	LegalBasisVitalInterest      LegalBasis = "Vital Interest"
	LegalBasisPublicInterest     LegalBasis = "Public Interest"
	LegalBasisLegitimateInterest LegalBasis = "Legitimate Interests"
)

// Valid reports whether the value is a known legal basis.
func (b LegalBasis) Valid() bool {
	switch b {
	case LegalBasisConsent, LegalBasisContract, LegalBasisLegalObligation,
		LegalBasisVitalInterest, LegalBasisPublicInterest, LegalBasisLegitimateInterest:
		return true
	}
	return false
}

// SpecialCategory is the GDPR article 9 condition for processing special
// categories of personal data.
type SpecialCategory string

const (
	SpecialCategoryConsent              SpecialCategory = "Consent"
	SpecialCategoryEmployment           SpecialCategory = "Employment"
	SpecialCategoryVitalInterests       SpecialCategory = "Vital Interests"
	SpecialCategoryNonProfitBodies      SpecialCategory = "Non-profit Bodies"
	SpecialCategoryPublicBySubject      SpecialCategory = "Public by Data Subject"
	SpecialCategoryLegalClaims          SpecialCategory = "Legal Claims"
	SpecialCategoryPublicInterest       SpecialCategory = "Substantial Public Interest"
	SpecialCategoryMedical              SpecialCategory = "Medical"
	SpecialCategoryPublicHealthInterest SpecialCategory = "Public Health Interest"
)

// Valid reports whether the value is a known special category condition.
func (c SpecialCategory) Valid() bool {
	switch c {
	case SpecialCategoryConsent, SpecialCategoryEmployment, SpecialCategoryVitalInterests,
		SpecialCategoryNonProfitBodies, SpecialCategoryPublicBySubject, SpecialCategoryLegalClaims,
		SpecialCategoryPublicInterest, SpecialCategoryMedical, SpecialCategoryPublicHealthInterest:
		return true
	}
	return false
}

// SubjectRight is a single data subject right, per GDPR chapter 3.
type SubjectRight string

const (
	RightInformed               SubjectRight = "Informed"
	RightAccess                 SubjectRight = "Access"
	RightRectification          SubjectRight = "Rectification"
	RightErasure                SubjectRight = "Erasure"
	RightPortability            SubjectRight = "Portability"
	RightRestrictProcessing     SubjectRight = "Restrict Processing"
	RightWithdrawConsent        SubjectRight = "Withdraw Consent"
	RightObject                 SubjectRight = "Object"
	RightObjectToAutomated      SubjectRight = "Object to Automated Processing"
)

// Valid reports whether the value is a known subject right.
func (r SubjectRight) Valid() bool {
	switch r {
	case RightInformed, RightAccess, RightRectification, RightErasure, RightPortability,
		RightRestrictProcessing, RightWithdrawConsent, RightObject, RightObjectToAutomated:
		return true
	}
	return false
}

// RightsStrategy determines how listed rights apply to a data subject.
type RightsStrategy string

const (
	// StrategyAll applies every right; the values list must be empty.
	StrategyAll RightsStrategy = "ALL"

	// StrategyInclude applies only the listed rights.
	StrategyInclude RightsStrategy = "INCLUDE"

	// StrategyExclude applies every right except the listed ones.
	StrategyExclude RightsStrategy = "EXCLUDE"

	// StrategyNone applies no rights; the values list must be empty.
	StrategyNone RightsStrategy = "NONE"
)

// Valid reports whether the value is a known strategy.
func (s RightsStrategy) Valid() bool {
	switch s {
	case StrategyAll, StrategyInclude, StrategyExclude, StrategyNone:
		return true
	}
	return false
}
