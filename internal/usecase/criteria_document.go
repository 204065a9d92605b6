package usecase

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

//go:embed criteria.schema.json
var criteriaSchema string

var criteriaSchemaLoader = gojsonschema.NewStringLoader(criteriaSchema)

// DecodeCriteria parses a criteria document: a JSON or YAML list of rules, or an
// object with a "rules" list. The format is sniffed from the content. Shape
// errors come back as *domain.ValidationError with SCHEMA_VIOLATION issues.
func DecodeCriteria(data []byte) ([]domain.CriteriaRule, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty criteria document", domain.ErrInvalidArgument)
	}
	var doc any
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/json"):
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: criteria json: %v", domain.ErrInvalidArgument, err)
		}
	case mt.Is("text/plain"):
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: criteria yaml: %v", domain.ErrInvalidArgument, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported criteria content type %s", domain.ErrInvalidArgument, mt.String())
	}
	doc = normalizeYAML(doc)
	if err := CheckCriteriaSchema(doc); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: criteria document: %v", domain.ErrInvalidArgument, err)
	}
	if list, ok := doc.([]any); ok {
		rules := make([]domain.CriteriaRule, 0, len(list))
		if err := json.Unmarshal(raw, &rules); err != nil {
			return nil, fmt.Errorf("%w: criteria rules: %v", domain.ErrInvalidArgument, err)
		}
		return rules, nil
	}
	var set domain.CriteriaSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("%w: criteria document: %v", domain.ErrInvalidArgument, err)
	}
	if set.Rules == nil {
		set.Rules = []domain.CriteriaRule{}
	}
	return set.Rules, nil
}

// CheckCriteriaSchema validates a decoded document against the embedded JSON schema.
func CheckCriteriaSchema(doc any) error {
	res, err := gojsonschema.Validate(criteriaSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: criteria schema: %v", domain.ErrInvalidArgument, err)
	}
	if res.Valid() {
		return nil
	}
	issues := make([]domain.ValidationIssue, 0, len(res.Errors()))
	for _, d := range res.Errors() {
		field := d.Field()
		if field == "" || field == "(root)" {
			field = "(root)"
		}
		issues = append(issues, domain.ValidationIssue{
			RuleIndex: ruleIndexOf(field),
			FieldKey:  field,
			Code:      domain.IssueSchemaViolation,
			Message:   d.Description(),
		})
	}
	return &domain.ValidationError{Issues: issues}
}

// ruleIndexOf extracts N from "N.weight" or "rules.N.weight"; -1 when absent.
func ruleIndexOf(field string) int {
	for _, part := range strings.Split(field, ".") {
		if n, err := strconv.Atoi(part); err == nil {
			return n
		}
	}
	return -1
}

// normalizeYAML turns YAML timestamps into strings so the schema sees JSON types.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeYAML(e)
		}
	case []any:
		for i, e := range t {
			t[i] = normalizeYAML(e)
		}
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	}
	return v
}
