// File: internal/schema/registry.go
// Brief: Built-in entity validators for every collection kind.

// Package schema supplies the default per-collection entity validators the
// engine's registry dispatches to. Validators are pure: they return the
// input entity or an amended copy with defaults applied, never mutating
// what they were given.
package schema

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/example/appstack/internal/stack"
)

var (
	fieldTypes = []string{
		"text", "number", "boolean", "date", "datetime",
		"email", "url", "select", "reference", "json", "file",
	}
	viewTypes     = []string{"list", "form", "detail", "board", "calendar"}
	dataProviders = []string{"object", "api", "static"}
	triggerTypes  = []string{"on_create", "on_update", "on_delete", "scheduled", "manual"}
	hookEvents    = []string{
		"beforeCreate", "afterCreate", "beforeUpdate",
		"afterUpdate", "beforeDelete", "afterDelete",
	}
	httpMethods      = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	permissionEffect = []string{"allow", "deny"}
	connectorTypes   = []string{"postgres", "mysql", "rest", "graphql", "s3", "smtp"}
)

// Default returns the built-in registry covering every known collection.
// Kinds without specific rules share the named-entity validator.
func Default() stack.Registry {
	r := make(stack.Registry, len(stack.CollectionNames))
	for _, name := range stack.CollectionNames {
		r[name] = validateNamed
	}
	r["objects"] = validateObject
	r["views"] = validateView
	r["workflows"] = validateWorkflow
	r["approvals"] = validateApproval
	r["hooks"] = validateHook
	r["apis"] = validateAPI
	r["webhooks"] = validateWebhook
	r["permissions"] = validatePermission
	r["connectors"] = validateConnector
	return r
}

func validateNamed(e stack.Entity) (stack.Entity, []stack.Issue) {
	return e, checkName(e)
}

func validateObject(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, optionalString("label", e["label"])...)

	if raw, ok := e["fields"]; ok && raw != nil {
		fields, ok := subMap(raw)
		if !ok {
			issues = append(issues, stack.Issue{
				Path:    "fields",
				Message: fmt.Sprintf("must be a field-name keyed map (got %T)", raw),
				Code:    "invalid-type",
			})
			return e, issues
		}
		names := make([]string, 0, len(fields))
		for fname := range fields {
			names = append(names, fname)
		}
		sort.Strings(names)
		for _, fname := range names {
			switch fv := fields[fname].(type) {
			case string:
				issues = append(issues, enumIssue("fields."+fname, fv, fieldTypes)...)
			default:
				spec, ok := subMap(fv)
				if !ok {
					issues = append(issues, stack.Issue{
						Path:    "fields." + fname,
						Message: fmt.Sprintf("must be a type string or a field record (got %T)", fv),
						Code:    "invalid-type",
					})
					continue
				}
				issues = append(issues, requiredEnumIssue("fields."+fname+".type", spec["type"], fieldTypes)...)
			}
		}
	}
	return e, issues
}

func validateView(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, optionalString("object", e["object"])...)

	out := e
	if e["type"] == nil {
		out = make(stack.Entity, len(e)+1)
		for k, v := range e {
			out[k] = v
		}
		out["type"] = "list"
	} else {
		issues = append(issues, enumIssue("type", e["type"], viewTypes)...)
	}

	for _, section := range []string{"list", "form"} {
		sec, ok := subMap(e[section])
		if !ok {
			continue
		}
		data, ok := subMap(sec["data"])
		if !ok {
			continue
		}
		issues = append(issues, enumIssue(section+".data.provider", data["provider"], dataProviders)...)
		if provider, _ := data["provider"].(string); provider == "object" {
			if err := validation.Validate(data["object"], validation.Required, stringRule()); err != nil {
				issues = append(issues, stack.Issue{
					Path:    section + ".data.object",
					Message: err.Error(),
					Code:    "required",
				})
			}
		}
	}
	return out, issues
}

func validateWorkflow(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, requiredEnumIssue("triggerType", e["triggerType"], triggerTypes)...)
	issues = append(issues, optionalString("objectName", e["objectName"])...)
	return e, issues
}

func validateApproval(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, optionalString("object", e["object"])...)
	if steps, ok := e["steps"]; ok && steps != nil {
		if _, isList := steps.([]any); !isList {
			issues = append(issues, stack.Issue{
				Path:    "steps",
				Message: fmt.Sprintf("must be an array of steps (got %T)", steps),
				Code:    "invalid-type",
			})
		}
	}
	return e, issues
}

func validateHook(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, requiredEnumIssue("event", e["event"], hookEvents)...)
	switch ref := e["object"].(type) {
	case nil, string:
	case []any:
		for i, item := range ref {
			issues = append(issues, optionalString(fmt.Sprintf("object[%d]", i), item)...)
		}
	default:
		issues = append(issues, stack.Issue{
			Path:    "object",
			Message: fmt.Sprintf("must be an object name or an array of object names (got %T)", ref),
			Code:    "invalid-type",
		})
	}
	return e, issues
}

func validateAPI(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, enumIssue("method", e["method"], httpMethods)...)
	if err := validation.Validate(e["path"], validation.Required, stringRule()); err != nil {
		issues = append(issues, stack.Issue{Path: "path", Message: err.Error(), Code: "required"})
	} else if p, _ := e["path"].(string); !strings.HasPrefix(p, "/") {
		issues = append(issues, stack.Issue{
			Path:    "path",
			Message: fmt.Sprintf("must start with %q (got %q)", "/", p),
			Code:    "invalid-path",
		})
	}
	return e, issues
}

func validateWebhook(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	err := validation.Validate(e["url"], validation.Required, stringRule(), is.URL)
	if err != nil {
		issues = append(issues, stack.Issue{Path: "url", Message: err.Error(), Code: "invalid-url"})
	} else if u, _ := e["url"].(string); !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		issues = append(issues, stack.Issue{
			Path:    "url",
			Message: fmt.Sprintf("must be an http or https URL (got %q)", u),
			Code:    "invalid-url",
		})
	}
	return e, issues
}

func validatePermission(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, enumIssue("effect", e["effect"], permissionEffect)...)
	return e, issues
}

func validateConnector(e stack.Entity) (stack.Entity, []stack.Issue) {
	issues := checkName(e)
	issues = append(issues, enumIssue("type", e["type"], connectorTypes)...)
	return e, issues
}
