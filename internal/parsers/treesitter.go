package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// anyType is the sentinel used when a parser cannot infer a static type.
const anyType = "any"

// treeSitterParser provides common tree-sitter parsing functionality shared
// by the concrete language parsers.
type treeSitterParser struct {
	lang       string
	extensions []string
}

func newTreeSitterParser(lang string, extensions ...string) *treeSitterParser {
	return &treeSitterParser{lang: lang, extensions: extensions}
}

// Language returns the language name.
func (p *treeSitterParser) Language() string {
	return p.lang
}

// CanHandle matches on file extension.
func (p *treeSitterParser) CanHandle(path string) bool {
	return hasAnyExtension(path, p.extensions)
}

func hasAnyExtension(path string, extensions []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startLine and endLine convert tree-sitter's 0-indexed rows to 1-indexed lines.
func startLine(node *sitter.Node) int { return int(node.StartPosition().Row) + 1 }
func endLine(node *sitter.Node) int   { return int(node.EndPosition().Row) + 1 }

// docComment collects the block comments immediately preceding node and
// joins them with newlines, in source order. Line comments and detached
// comments are not documentation.
func docComment(node *sitter.Node, source []byte) string {
	var parts []string
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if prev.Kind() != "comment" {
			break
		}
		text := nodeText(prev, source)
		if !strings.HasPrefix(text, "/*") {
			break
		}
		parts = append(parts, text)
	}
	// Collected nearest-first; restore source order.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "\n")
}

// typeAnnotationText extracts the type from a type_annotation node, which
// includes the leading ":" in the grammar.
func typeAnnotationText(node *sitter.Node, source []byte) string {
	if node == nil {
		return anyType
	}
	text := strings.TrimSpace(nodeText(node, source))
	text = strings.TrimPrefix(text, ":")
	text = strings.TrimSpace(text)
	if text == "" {
		return anyType
	}
	return text
}

// findChildByType finds the first direct child with the given kind.
func findChildByType(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all direct children with the given kind.
func findChildrenByType(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}
