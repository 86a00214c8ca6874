package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleKeyString(t *testing.T) {
	assert.Equal(t, "schema.removed", RuleKey{Category: CategorySchema, ChangeType: ChangeTypeRemoved}.String())
	assert.Equal(t, "parameter.modified.required",
		RuleKey{Category: CategoryParameter, ChangeType: ChangeTypeModified, SubType: SubTypeRequired}.String())
}

func TestRulesApply(t *testing.T) {
	key := RuleKey{Category: CategoryParameter, ChangeType: ChangeTypeModified, SubType: SubTypeRequired}

	tests := []struct {
		name       string
		rules      Rules
		wantSev    Severity
		wantIgnore bool
	}{
		{"nil rules keep default", nil, SeverityError, false},
		{"exact key override", Rules{key: {Severity: SeverityPtr(SeverityWarning)}}, SeverityWarning, false},
		{"category fallback", Rules{{Category: CategoryParameter, ChangeType: ChangeTypeModified}: {Severity: SeverityPtr(SeverityInfo)}}, SeverityInfo, false},
		{"exact key wins over fallback", Rules{
			key: {Severity: SeverityPtr(SeverityCritical)},
			{Category: CategoryParameter, ChangeType: ChangeTypeModified}: {Severity: SeverityPtr(SeverityInfo)},
		}, SeverityCritical, false},
		{"ignore", Rules{key: {Ignore: true}}, SeverityError, true},
		{"other key untouched", Rules{{Category: CategorySchema, ChangeType: ChangeTypeModified}: {Ignore: true}}, SeverityError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sev, ignore := tt.rules.apply(key, SeverityError)
			assert.Equal(t, tt.wantSev, sev)
			assert.Equal(t, tt.wantIgnore, ignore)
		})
	}
}

func TestRulesValidate(t *testing.T) {
	assert.NoError(t, Rules{{Category: CategorySchema, ChangeType: ChangeTypeAdded}: {}}.Validate())
	assert.Error(t, Rules{{Category: "nope", ChangeType: ChangeTypeAdded}: {}}.Validate())
	assert.Error(t, Rules{{Category: CategorySchema, ChangeType: "nope"}: {}}.Validate())

	outOfRange := Severity(42)
	assert.Error(t, Rules{{Category: CategorySchema, ChangeType: ChangeTypeAdded}: {Severity: &outOfRange}}.Validate())
}
