package genai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidResponseStructure marks a generation-service response that does
// not match either accepted shape. Wrap it so callers can errors.Is on it.
var ErrInvalidResponseStructure = errors.New("invalid response structure")

// ValidateResponse checks that a raw service response matches one of the two
// accepted shapes: a top-level "components" array whose items each carry
// type, name and description; or a top-level "analysis" object with at least
// one non-empty array among functions, classes and modules, with the
// per-item required fields present.
func ValidateResponse(raw []byte) (*Response, error) {
	var top struct {
		Components []json.RawMessage `json:"components"`
		Analysis   json.RawMessage   `json:"analysis"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrInvalidResponseStructure, err)
	}

	if top.Components != nil {
		components, err := validateComponents(top.Components)
		if err != nil {
			return nil, err
		}
		return &Response{Components: components}, nil
	}

	if top.Analysis != nil {
		analysis, err := validateAnalysis(top.Analysis)
		if err != nil {
			return nil, err
		}
		return &Response{Analysis: analysis}, nil
	}

	return nil, fmt.Errorf("%w: neither components nor analysis present", ErrInvalidResponseStructure)
}

func validateComponents(items []json.RawMessage) ([]Component, error) {
	components := make([]Component, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, fmt.Errorf("%w: components[%d] is not an object", ErrInvalidResponseStructure, i)
		}
		for _, required := range []string{"type", "name", "description"} {
			if _, ok := fields[required]; !ok {
				return nil, fmt.Errorf("%w: components[%d] missing %q", ErrInvalidResponseStructure, i, required)
			}
		}
		var component Component
		if err := json.Unmarshal(item, &component); err != nil {
			return nil, fmt.Errorf("%w: components[%d]: %v", ErrInvalidResponseStructure, i, err)
		}
		components = append(components, component)
	}
	return components, nil
}

func validateAnalysis(raw json.RawMessage) (*Analysis, error) {
	var fields struct {
		Functions []json.RawMessage `json:"functions"`
		Classes   []json.RawMessage `json:"classes"`
		Modules   []json.RawMessage `json:"modules"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: analysis is not an object", ErrInvalidResponseStructure)
	}
	if len(fields.Functions) == 0 && len(fields.Classes) == 0 && len(fields.Modules) == 0 {
		return nil, fmt.Errorf("%w: analysis has no non-empty array among functions, classes, modules", ErrInvalidResponseStructure)
	}

	for i, item := range fields.Functions {
		if err := requireFields(item, "analysis.functions", i, "name", "description", "parameters", "returnType"); err != nil {
			return nil, err
		}
	}
	for i, item := range fields.Classes {
		if err := requireFields(item, "analysis.classes", i, "name", "methods", "properties"); err != nil {
			return nil, err
		}
	}
	for i, item := range fields.Modules {
		if err := requireFields(item, "analysis.modules", i, "name", "description"); err != nil {
			return nil, err
		}
	}

	var analysis Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("%w: analysis: %v", ErrInvalidResponseStructure, err)
	}
	return &analysis, nil
}

func requireFields(item json.RawMessage, section string, index int, required ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return fmt.Errorf("%w: %s[%d] is not an object", ErrInvalidResponseStructure, section, index)
	}
	for _, field := range required {
		if _, ok := fields[field]; !ok {
			return fmt.Errorf("%w: %s[%d] missing %q", ErrInvalidResponseStructure, section, index, field)
		}
	}
	return nil
}
