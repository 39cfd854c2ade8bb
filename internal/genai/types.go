// Package genai holds the request/response contract of the external
// text-generation service. The analysis pipeline only supplies bounded
// context payloads; the service itself lives elsewhere.
package genai

// Request is the payload sent to the generation service.
type Request struct {
	Prompt  string `json:"prompt"`
	Context any    `json:"context"`
}

// Component is one architectural component in a "components" response.
type Component struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FunctionDoc is a documented function in an "analysis" response.
type FunctionDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  []any  `json:"parameters"`
	ReturnType  string `json:"returnType"`
}

// ClassDoc is a documented class in an "analysis" response.
type ClassDoc struct {
	Name       string `json:"name"`
	Methods    []any  `json:"methods"`
	Properties []any  `json:"properties"`
}

// ModuleDoc is a documented module in an "analysis" response.
type ModuleDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Analysis is the structured-analysis response shape.
type Analysis struct {
	Functions []FunctionDoc `json:"functions"`
	Classes   []ClassDoc    `json:"classes"`
	Modules   []ModuleDoc   `json:"modules"`
}

// Response is a validated generation-service response: exactly one of the
// two accepted shapes is populated.
type Response struct {
	Components []Component `json:"components,omitempty"`
	Analysis   *Analysis   `json:"analysis,omitempty"`
}
