// Package model defines the structural entities extracted from source files.
// These are plain values: parsers create them once, the analyzer aggregates
// them, and downstream consumers (chunker, storage, search) only copy them.
package model

// Location identifies the source span of an entity. Lines are 1-indexed and
// EndLine is never smaller than StartLine.
type Location struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Parameter is a single function or method parameter. Type is a best-effort
// textual type; parsers that cannot infer one use "any".
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Function represents a named function or a method. Anonymous functions are
// not extracted; arrow functions bound to a variable carry the variable name.
type Function struct {
	Name          string      `json:"name"`
	Parameters    []Parameter `json:"parameters"`
	ReturnType    string      `json:"returnType"`
	Body          string      `json:"body,omitempty"`
	Documentation string      `json:"documentation,omitempty"`
	Location      Location    `json:"location"`
}

// Property is a class field.
type Property struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Documentation string `json:"documentation,omitempty"`
}

// Class represents a named class declaration with its methods and properties.
// Note is only set on partial-class records emitted by the chunker when a
// class had to be split into method groups.
type Class struct {
	Name          string     `json:"name"`
	Methods       []Function `json:"methods"`
	Properties    []Property `json:"properties"`
	Documentation string     `json:"documentation,omitempty"`
	Location      Location   `json:"location"`
	Note          string     `json:"note,omitempty"`
}

// FileEntities is the per-file output of a language parser.
type FileEntities struct {
	Functions []Function `json:"functions"`
	Classes   []Class    `json:"classes"`
}

// AnalysisResult is the cross-file aggregate. Entity order is traversal
// order, then in-file declaration order. Entities are never deduplicated:
// two files may contribute same-named functions as distinct entries.
type AnalysisResult struct {
	Functions []Function `json:"functions"`
	Classes   []Class    `json:"classes"`
}

// FileFailure records a file that failed to parse. The failing file
// contributes nothing to the aggregate; the run as a whole still succeeds.
type FileFailure struct {
	File    string `json:"file"`
	Message string `json:"message"`
}
