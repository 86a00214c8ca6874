package differ

import (
	"fmt"
)

// Sub types refine a rule key beyond category and change type.
const (
	SubTypeNone        = ""
	SubTypeRequired    = "required"
	SubTypeType        = "type"
	SubTypeFormat      = "format"
	SubTypeEnum        = "enum"
	SubTypeConstraint  = "constraint"
	SubTypeNullable    = "nullable"
	SubTypeRef         = "ref"
	SubTypeDeprecated  = "deprecated"
	SubTypeOperationID = "operationId"
	SubTypeSummary     = "summary"
	SubTypeDescription = "description"
	SubTypeMediaType   = "media_type"
	SubTypeHeader      = "header"
	SubTypeProperty    = "property"
	SubTypeStyle       = "style"
	SubTypeScopes      = "scopes"
	SubTypeFlow        = "flow"
	SubTypeTags        = "tags"
	SubTypeAccess      = "access"
	SubTypeDefault     = "default"
	SubTypeComposition = "composition"
	SubTypeTitle       = "title"
	SubTypeVersion     = "version"
	SubTypeRequirement = "requirement"
)

// RuleKey identifies a class of change that a Rule applies to.
type RuleKey struct {
	Category   ChangeCategory
	ChangeType ChangeType
	SubType    string
}

// String returns "category.change_type[.subtype]".
func (k RuleKey) String() string {
	s := string(k.Category) + "." + string(k.ChangeType)
	if k.SubType != "" {
		s += "." + k.SubType
	}
	return s
}

// Rule configures how a class of change is treated.
type Rule struct {
	// Severity overrides the default severity when set.
	Severity *Severity
	// Ignore drops matching changes from the result entirely.
	Ignore bool
}

// Rules maps change classes to overrides. A nil Rules applies the defaults.
//
// Example:
//
//	rules := differ.Rules{
//	    {Category: differ.CategoryOperation, ChangeType: differ.ChangeTypeModified, SubType: differ.SubTypeOperationID}: {
//	        Severity: differ.SeverityPtr(differ.SeverityInfo),
//	    },
//	    {Category: differ.CategoryExtension, ChangeType: differ.ChangeTypeModified}: {Ignore: true},
//	}
type Rules map[RuleKey]Rule

// SeverityPtr returns a pointer to s, for use in Rule literals.
func SeverityPtr(s Severity) *Severity {
	return &s
}

// apply returns the effective severity for key, and whether the change is ignored.
// A rule without a sub type also matches changes that carry one.
func (r Rules) apply(key RuleKey, def Severity) (Severity, bool) {
	if len(r) == 0 {
		return def, false
	}
	rule, ok := r[key]
	if !ok && key.SubType != "" {
		rule, ok = r[RuleKey{Category: key.Category, ChangeType: key.ChangeType}]
	}
	if !ok {
		return def, false
	}
	if rule.Ignore {
		return def, true
	}
	if rule.Severity != nil {
		return *rule.Severity, false
	}
	return def, false
}

var validCategories = map[ChangeCategory]bool{
	CategoryEndpoint: true, CategoryOperation: true, CategoryParameter: true,
	CategoryRequestBody: true, CategoryResponse: true, CategorySchema: true,
	CategorySecurity: true, CategoryServer: true, CategoryInfo: true, CategoryExtension: true,
}

var validChangeTypes = map[ChangeType]bool{
	ChangeTypeAdded: true, ChangeTypeRemoved: true, ChangeTypeModified: true,
}

// Validate checks that every key names a known category and change type and
// that every severity is in range.
func (r Rules) Validate() error {
	for key, rule := range r {
		if !validCategories[key.Category] {
			return fmt.Errorf("unknown change category %q", key.Category)
		}
		if !validChangeTypes[key.ChangeType] {
			return fmt.Errorf("unknown change type %q", key.ChangeType)
		}
		if rule.Severity != nil && (*rule.Severity < SeverityInfo || *rule.Severity > SeverityCritical) {
			return fmt.Errorf("rule %s: severity out of range", key)
		}
	}
	return nil
}
