package parsers

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/codescope/codescope/internal/model"
)

// typeScriptParser parses TypeScript (.ts) and TSX (.tsx) files.
type typeScriptParser struct {
	*treeSitterParser
	tsLanguage  *sitter.Language
	tsxLanguage *sitter.Language
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() Parser {
	return &typeScriptParser{
		treeSitterParser: newTreeSitterParser("typescript", ".ts", ".tsx"),
		tsLanguage:       sitter.NewLanguage(typescript.LanguageTypescript()),
		tsxLanguage:      sitter.NewLanguage(typescript.LanguageTSX()),
	}
}

// ParseFile parses a TypeScript source file and extracts functions and classes.
func (p *typeScriptParser) ParseFile(ctx context.Context, path string) (*model.FileEntities, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	language := p.tsLanguage
	if hasAnyExtension(path, []string{".tsx", ".jsx"}) {
		language = p.tsxLanguage
	}
	return p.parseSource(path, source, language)
}

// parseSource runs tree-sitter over source and walks the top-level
// declarations. Shared with the JavaScript parser, which uses the same
// grammar.
func (p *typeScriptParser) parseSource(path string, source []byte, language *sitter.Language) (*model.FileEntities, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s file: %s", p.lang, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax error in %s", path)
	}

	entities := &model.FileEntities{
		Functions: []model.Function{},
		Classes:   []model.Class{},
	}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		p.extractTopLevel(child, child, path, source, entities)
	}

	return entities, nil
}

// extractTopLevel handles one top-level statement. docNode is the node whose
// preceding comments carry the documentation; for exported declarations that
// is the export_statement, not the inner declaration.
func (p *typeScriptParser) extractTopLevel(node, docNode *sitter.Node, path string, source []byte, entities *model.FileEntities) {
	switch node.Kind() {
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			p.extractTopLevel(decl, node, path, source, entities)
		}
	case "function_declaration", "generator_function_declaration":
		if fn, ok := p.extractFunction(node, docNode, path, source); ok {
			entities.Functions = append(entities.Functions, fn)
		}
	case "lexical_declaration", "variable_declaration":
		entities.Functions = append(entities.Functions, p.extractVariableFunctions(node, docNode, path, source)...)
	case "class_declaration":
		if class, ok := p.extractClass(node, docNode, path, source); ok {
			entities.Classes = append(entities.Classes, class)
		}
	}
}

// extractFunction extracts a named function declaration.
func (p *typeScriptParser) extractFunction(node, docNode *sitter.Node, path string, source []byte) (model.Function, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return model.Function{}, false
	}

	body := nodeText(node.ChildByFieldName("body"), source)
	if body == "" {
		body = nodeText(node, source)
	}

	return model.Function{
		Name:          nodeText(nameNode, source),
		Parameters:    p.extractParameters(node.ChildByFieldName("parameters"), source),
		ReturnType:    typeAnnotationText(node.ChildByFieldName("return_type"), source),
		Body:          body,
		Documentation: docComment(docNode, source),
		Location: model.Location{
			File:      path,
			StartLine: startLine(node),
			EndLine:   endLine(node),
		},
	}, true
}

// extractVariableFunctions extracts arrow functions and function expressions
// bound to a variable; the variable name becomes the function name. Other
// variable declarations are not entities.
func (p *typeScriptParser) extractVariableFunctions(node, docNode *sitter.Node, path string, source []byte) []model.Function {
	var functions []model.Function

	for _, decl := range findChildrenByType(node, "variable_declarator") {
		nameNode := decl.ChildByFieldName("name")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil {
			continue
		}
		kind := valueNode.Kind()
		if kind != "arrow_function" && kind != "function_expression" && kind != "function" {
			continue
		}

		body := nodeText(valueNode.ChildByFieldName("body"), source)
		if body == "" {
			body = nodeText(valueNode, source)
		}

		// Single-parameter arrow functions without parens expose the
		// parameter under a different field name.
		paramsNode := valueNode.ChildByFieldName("parameters")
		if paramsNode == nil {
			paramsNode = valueNode.ChildByFieldName("parameter")
		}

		functions = append(functions, model.Function{
			Name:          nodeText(nameNode, source),
			Parameters:    p.extractParameters(paramsNode, source),
			ReturnType:    typeAnnotationText(valueNode.ChildByFieldName("return_type"), source),
			Body:          body,
			Documentation: docComment(docNode, source),
			Location: model.Location{
				File:      path,
				StartLine: startLine(node),
				EndLine:   endLine(node),
			},
		})
	}
	return functions
}

// extractClass extracts a named class with its methods and properties.
// Anonymous classes are excluded.
func (p *typeScriptParser) extractClass(node, docNode *sitter.Node, path string, source []byte) (model.Class, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return model.Class{}, false
	}

	class := model.Class{
		Name:          nodeText(nameNode, source),
		Methods:       []model.Function{},
		Properties:    []model.Property{},
		Documentation: docComment(docNode, source),
		Location: model.Location{
			File:      path,
			StartLine: startLine(node),
			EndLine:   endLine(node),
		},
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return class, true
	}

	for i := uint(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		switch member.Kind() {
		case "method_definition":
			if method, ok := p.extractFunction(member, member, path, source); ok {
				class.Methods = append(class.Methods, method)
			}
		case "public_field_definition", "field_definition":
			if prop, ok := p.extractProperty(member, source); ok {
				class.Properties = append(class.Properties, prop)
			}
		}
	}
	return class, true
}

// extractProperty extracts a class field.
func (p *typeScriptParser) extractProperty(node *sitter.Node, source []byte) (model.Property, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return model.Property{}, false
	}
	return model.Property{
		Name:          nodeText(nameNode, source),
		Type:          typeAnnotationText(node.ChildByFieldName("type"), source),
		Documentation: docComment(node, source),
	}, true
}

// extractParameters extracts parameter names and best-effort types from a
// formal_parameters node.
func (p *typeScriptParser) extractParameters(paramsNode *sitter.Node, source []byte) []model.Parameter {
	parameters := []model.Parameter{}
	if paramsNode == nil {
		return parameters
	}

	// Single-identifier arrow function parameters have no surrounding parens.
	if paramsNode.Kind() == "identifier" {
		return append(parameters, model.Parameter{Name: nodeText(paramsNode, source), Type: anyType})
	}

	for i := uint(0); i < paramsNode.NamedChildCount(); i++ {
		param := paramsNode.NamedChild(i)
		switch param.Kind() {
		case "required_parameter", "optional_parameter", "rest_parameter":
			patternNode := param.ChildByFieldName("pattern")
			if patternNode == nil {
				continue
			}
			name := nodeText(patternNode, source)
			if param.Kind() == "rest_parameter" {
				name = "..." + name
			}
			parameters = append(parameters, model.Parameter{
				Name: name,
				Type: typeAnnotationText(param.ChildByFieldName("type"), source),
			})
		case "identifier":
			// Plain JavaScript parameters appear as bare identifiers.
			parameters = append(parameters, model.Parameter{Name: nodeText(param, source), Type: anyType})
		}
	}
	return parameters
}
