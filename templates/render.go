package templates

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"submarine-api/pkg/client/model"
)

// Render instantiates a template into a concrete experiment spec.
// Placeholders of the form {{name}} anywhere in the experiment spec are
// replaced with the submitted parameter value, falling back to the
// parameter default. Missing required parameters and parameters the
// template never declared are both errors.
func Render(tpl *model.ExperimentTemplateSpec, params map[string]string) (*model.ExperimentSpec, error) {
	declared := map[string]*model.ExperimentTemplateParamSpec{}
	for _, p := range tpl.Parameters {
		declared[p.Name] = p
	}

	var undeclared []string
	for name := range params {
		if _, ok := declared[name]; !ok {
			undeclared = append(undeclared, name)
		}
	}
	if len(undeclared) > 0 {
		sort.Strings(undeclared)
		return nil, fmt.Errorf("unknown template parameters: %s", strings.Join(undeclared, ", "))
	}

	values := map[string]string{}
	for name, p := range declared {
		value, ok := params[name]
		if !ok {
			value = p.Value
		}
		if value == "" && p.Required == "true" {
			return nil, fmt.Errorf("required template parameter %q has no value", name)
		}
		values[name] = value
	}

	// Substitute on the JSON form so placeholders work in any field.
	raw, err := json.Marshal(tpl.ExperimentSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template spec: %w", err)
	}
	rendered := string(raw)
	for name, value := range values {
		rendered = strings.ReplaceAll(rendered, "{{"+name+"}}", value)
	}

	var spec model.ExperimentSpec
	if err := json.Unmarshal([]byte(rendered), &spec); err != nil {
		return nil, fmt.Errorf("rendered spec is not valid: %w", err)
	}
	return &spec, nil
}
