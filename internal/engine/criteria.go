package engine

import (
	"fmt"
	"math"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// compatibility lists the data types each rule type can be scored on.
var compatibility = map[domain.RuleType]func(domain.FieldDefinition) bool{
	domain.RulePresence: func(domain.FieldDefinition) bool { return true },
	domain.RuleThreshold: func(f domain.FieldDefinition) bool {
		return f.DataType == domain.DataTypeNumber || f.DataType == domain.DataTypeDuration || f.DataType == domain.DataTypeList
	},
	domain.RuleRange: func(f domain.FieldDefinition) bool {
		return f.DataType == domain.DataTypeNumber || f.DataType == domain.DataTypeDuration || f.DataType == domain.DataTypeList
	},
	domain.RuleMatch: func(f domain.FieldDefinition) bool {
		return f.DataType == domain.DataTypeEnum || f.DataType == domain.DataTypeList || f.DataType == domain.DataTypeCompliance
	},
	domain.RuleTenure: func(f domain.FieldDefinition) bool {
		return f.DataType == domain.DataTypeDuration ||
			(f.DataType == domain.DataTypeList && f.Category == domain.CategoryExperience)
	},
}

// Compatible reports whether ruleType can be scored on the catalog field.
func Compatible(ruleType domain.RuleType, f domain.FieldDefinition) bool {
	ok, known := compatibility[ruleType]
	return known && ok(f)
}

// Validate checks a rule list against the catalog. An empty list is valid.
// Issues are returned in rule order; nil means the list can be saved.
func Validate(rules []domain.CriteriaRule) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	seenPair := make(map[string]int, len(rules))
	seenID := make(map[string]int, len(rules))
	var sumWeight float64
	overflowed := false
	for i, r := range rules {
		for _, is := range checkRule(r) {
			is.RuleIndex = i
			issues = append(issues, is)
		}
		if finite(r.Weight) && r.Weight > 0 && !overflowed {
			sumWeight += r.Weight
			if math.IsInf(sumWeight, 0) {
				overflowed = true
				issues = append(issues, issue(i, r, domain.IssueInvalidWeight, "total weight of the set is not a finite number"))
			}
		}
		pair := r.FieldKey + "\x00" + string(r.RuleType)
		if first, dup := seenPair[pair]; dup {
			issues = append(issues, issue(i, r, domain.IssueDuplicateRule,
				fmt.Sprintf("%s on %s already defined by rule #%d", r.RuleType, r.FieldKey, first)))
		} else {
			seenPair[pair] = i
		}
		if r.ID == "" {
			continue
		}
		if first, dup := seenID[r.ID]; dup {
			issues = append(issues, issue(i, r, domain.IssueDuplicateRule,
				fmt.Sprintf("rule id %q already used by rule #%d", r.ID, first)))
		} else {
			seenID[r.ID] = i
		}
	}
	return issues
}

// ValidateSet wraps Validate into a *domain.ValidationError.
func ValidateSet(set domain.CriteriaSet) error {
	if issues := Validate(set.Rules); len(issues) > 0 {
		return &domain.ValidationError{Issues: issues}
	}
	return nil
}

// checkRule validates a single rule in isolation; scoring reuses it.
func checkRule(r domain.CriteriaRule) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	f, ok := domain.LookupField(r.FieldKey)
	if !ok {
		issues = append(issues, issue(0, r, domain.IssueUnknownField, fmt.Sprintf("field %q is not in the catalog", r.FieldKey)))
	}
	if _, known := compatibility[r.RuleType]; !known {
		issues = append(issues, issue(0, r, domain.IssueUnknownRuleType, fmt.Sprintf("rule type %q is not supported", r.RuleType)))
	} else if ok && !Compatible(r.RuleType, f) {
		issues = append(issues, issue(0, r, domain.IssueIncompatibleRule,
			fmt.Sprintf("%s is not valid on %s field %s", r.RuleType, f.DataType, f.Key)))
	}
	if !finite(r.Weight) || r.Weight <= 0 {
		issues = append(issues, issue(0, r, domain.IssueInvalidWeight, "weight must be a finite number greater than zero"))
	}
	return append(issues, checkParameters(r)...)
}

func checkParameters(r domain.CriteriaRule) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	p := r.Parameters
	add := func(code, msg string) { issues = append(issues, issue(0, r, code, msg)) }

	switch r.RuleType {
	case domain.RuleThreshold:
		switch {
		case p.MinValue == nil:
			add(domain.IssueMissingParameter, "minValue is required")
		case !finite(*p.MinValue) || *p.MinValue <= 0:
			add(domain.IssueInvalidParameter, "minValue must be a finite number greater than zero")
		}
	case domain.RuleRange:
		switch {
		case p.Min == nil || p.Max == nil:
			add(domain.IssueMissingParameter, "min and max are required")
		case !finite(*p.Min) || !finite(*p.Max):
			add(domain.IssueInvalidParameter, "min and max must be finite")
		case *p.Min > *p.Max:
			add(domain.IssueInvalidParameter, "min must not exceed max")
		}
	case domain.RuleMatch:
		if len(nonBlank(p.AllowedValues)) == 0 {
			add(domain.IssueMissingParameter, "allowedValues must list at least one value")
		}
	case domain.RuleTenure:
		switch {
		case p.MinYears == nil:
			add(domain.IssueMissingParameter, "minYears is required")
		case !finite(*p.MinYears) || *p.MinYears <= 0:
			add(domain.IssueInvalidParameter, "minYears must be a finite number greater than zero")
		}
	}
	if p.PassThreshold != nil && (!finite(*p.PassThreshold) || *p.PassThreshold < 0 || *p.PassThreshold > 1) {
		add(domain.IssueInvalidParameter, "passThreshold must be between 0 and 1")
	}
	return issues
}

func issue(i int, r domain.CriteriaRule, code, msg string) domain.ValidationIssue {
	return domain.ValidationIssue{RuleIndex: i, RuleID: r.ID, FieldKey: r.FieldKey, Code: code, Message: msg}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
