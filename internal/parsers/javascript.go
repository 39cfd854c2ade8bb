package parsers

import (
	"context"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/codescope/codescope/internal/model"
)

// javaScriptParser parses JavaScript (.js) and JSX (.jsx) files. JavaScript
// shares the TypeScript AST structure, so it reuses the TypeScript grammar;
// type annotations simply never appear and every type falls back to "any".
type javaScriptParser struct {
	*treeSitterParser
	delegate *typeScriptParser
	language *sitter.Language
}

// NewJavaScriptParser creates a new JavaScript parser.
func NewJavaScriptParser() Parser {
	delegate := &typeScriptParser{
		treeSitterParser: newTreeSitterParser("javascript"),
		tsLanguage:       sitter.NewLanguage(typescript.LanguageTypescript()),
		tsxLanguage:      sitter.NewLanguage(typescript.LanguageTSX()),
	}
	return &javaScriptParser{
		treeSitterParser: newTreeSitterParser("javascript", ".js", ".jsx"),
		delegate:         delegate,
		language:         delegate.tsLanguage,
	}
}

// ParseFile parses a JavaScript source file.
func (p *javaScriptParser) ParseFile(ctx context.Context, path string) (*model.FileEntities, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	language := p.language
	if hasAnyExtension(path, []string{".jsx"}) {
		language = p.delegate.tsxLanguage
	}
	return p.delegate.parseSource(path, source, language)
}
