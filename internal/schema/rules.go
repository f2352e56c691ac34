// File: internal/schema/rules.go
// Brief: Shared field rules and issue builders.

package schema

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/example/appstack/internal/stack"
)

var identifierRE = regexp.MustCompile(`^[a-z][A-Za-z0-9_]*$`)

const identifierHint = "names use lowerCamel: a lowercase letter first, then letters, digits, or underscores"

// checkName validates the entity's name field: required, string, lowerCamel
// identifier. The hint states the convention explicitly.
func checkName(e stack.Entity) []stack.Issue {
	err := validation.Validate(e["name"],
		validation.Required,
		stringRule(),
		validation.Match(identifierRE).Error("must be a lowerCamel identifier"),
	)
	if err == nil {
		return nil
	}
	return []stack.Issue{{
		Path:    "name",
		Message: err.Error(),
		Code:    "invalid-name",
		Hint:    identifierHint,
	}}
}

// stringRule accepts absent values and strings, nothing else.
func stringRule() validation.Rule {
	return validation.By(func(v any) error {
		if v == nil {
			return nil
		}
		if _, ok := v.(string); !ok {
			return fmt.Errorf("must be a string (got %T)", v)
		}
		return nil
	})
}

// optionalString reports an issue when a present value is not a string.
func optionalString(path string, v any) []stack.Issue {
	if err := validation.Validate(v, stringRule()); err != nil {
		return []stack.Issue{{Path: path, Message: err.Error(), Code: "invalid-type"}}
	}
	return nil
}

// enumIssue checks an optional closed-set field. On a miss the issue lists
// the valid options and, when a plausible typo exists, suggests the
// closest one. The hint is advisory only.
func enumIssue(path string, v any, allowed []string) []stack.Issue {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return []stack.Issue{{Path: path, Message: fmt.Sprintf("must be a string (got %T)", v), Code: "invalid-type"}}
	}
	if s == "" {
		return nil
	}
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	is := stack.Issue{
		Path:    path,
		Message: fmt.Sprintf("unexpected value %q (expected one of %s)", s, strings.Join(allowed, ", ")),
		Code:    "invalid-enum",
	}
	if suggestion := closest(s, allowed); suggestion != "" {
		is.Hint = fmt.Sprintf("did you mean %q?", suggestion)
	}
	return []stack.Issue{is}
}

// requiredEnumIssue is enumIssue for fields that must be present.
func requiredEnumIssue(path string, v any, allowed []string) []stack.Issue {
	if err := validation.Validate(v, validation.Required); err != nil {
		return []stack.Issue{{Path: path, Message: err.Error(), Code: "required"}}
	}
	return enumIssue(path, v, allowed)
}

// subMap coerces a nested value to a string-keyed map.
func subMap(v any) (map[string]any, bool) {
	switch v.(type) {
	case map[string]any, map[any]any:
		m, err := cast.ToStringMapE(v)
		if err != nil {
			return nil, false
		}
		return m, true
	case stack.Entity:
		return map[string]any(v.(stack.Entity)), true
	}
	return nil, false
}
