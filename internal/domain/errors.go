package domain

import (
	"fmt"
	"strings"
)

// ValidationIssue codes reported to administrators.
const (
	IssueUnknownField     = "UNKNOWN_FIELD"
	IssueUnknownRuleType  = "UNKNOWN_RULE_TYPE"
	IssueIncompatibleRule = "INCOMPATIBLE_RULE_TYPE"
	IssueDuplicateRule    = "DUPLICATE_RULE"
	IssueDuplicateField   = "DUPLICATE_FIELD"
	IssueInvalidWeight    = "INVALID_WEIGHT"
	IssueMissingParameter = "MISSING_PARAMETER"
	IssueInvalidParameter = "INVALID_PARAMETER"
	IssueSchemaViolation  = "SCHEMA_VIOLATION"
)

// ValidationIssue pinpoints one invalid rule or setting.
type ValidationIssue struct {
	RuleIndex int    `json:"ruleIndex"`
	RuleID    string `json:"ruleId,omitempty"`
	FieldKey  string `json:"fieldKey"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// ValidationError carries every issue found in a criteria set or field settings list.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		i := e.Issues[0]
		return fmt.Sprintf("validation failed: %s %s: %s", i.Code, i.FieldKey, i.Message)
	}
	return fmt.Sprintf("validation failed: %d issues", len(e.Issues))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// ConfigurationError reports a rule that cannot be scored against its field.
type ConfigurationError struct {
	RuleID   string
	FieldKey string
	RuleType RuleType
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rule %q (%s on %s): %s", e.RuleID, e.RuleType, e.FieldKey, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// PartialBatchFailure lists applications that could not be scored while the rest were ranked.
type PartialBatchFailure struct {
	Failures []ApplicationFailure
}

func (e *PartialBatchFailure) Error() string {
	ids := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.ApplicationID)
	}
	return fmt.Sprintf("%d application(s) not scored: %s", len(e.Failures), strings.Join(ids, ", "))
}

func (e *PartialBatchFailure) Unwrap() error { return ErrPartialBatch }

// IncompleteProfileError blocks an application submission.
type IncompleteProfileError struct {
	Result EligibilityResult
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("profile incomplete: missing %s", strings.Join(e.Result.MissingFieldKeys, ", "))
}

func (e *IncompleteProfileError) Unwrap() error { return ErrProfileIncomplete }
