// Package parsers contains the language parsers and the registry that
// dispatches files to them.
package parsers

import (
	"context"

	"github.com/codescope/codescope/internal/model"
)

// Parser extracts structural entities from a single source file.
type Parser interface {
	// Language returns the language name, e.g. "typescript".
	Language() string

	// CanHandle reports whether this parser accepts the given file path.
	// This is the capability predicate used for dispatch; it is typically
	// an extension check.
	CanHandle(path string) bool

	// ParseFile reads and parses the file at path. A file the parser cannot
	// make sense of yields an error; formats with no function/class concept
	// return empty entity sets instead.
	ParseFile(ctx context.Context, path string) (*model.FileEntities, error)
}

// Registry holds an ordered list of parsers. When several parsers accept the
// same path, the earliest registered one wins.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates a registry with the given parsers, in priority order.
func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

// DefaultRegistry returns the standard parser set: TypeScript (.ts/.tsx),
// JavaScript (.js/.jsx) and YAML (.yml/.yaml).
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewTypeScriptParser(),
		NewJavaScriptParser(),
		NewYAMLParser(),
	)
}

// Register appends a parser. Later-registered parsers have lower priority
// than earlier ones for overlapping predicates.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// ParserFor returns the first parser whose CanHandle accepts path, or
// (nil, false) when no parser matches.
func (r *Registry) ParserFor(path string) (Parser, bool) {
	for _, p := range r.parsers {
		if p.CanHandle(path) {
			return p, true
		}
	}
	return nil, false
}

// Parsers returns the registered parsers in priority order.
func (r *Registry) Parsers() []Parser {
	return r.parsers
}
