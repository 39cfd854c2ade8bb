package parsers

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/codescope/codescope/internal/model"
)

// pythonParser parses Python files. It is not part of the default registry;
// it is registered when "python" appears in the extra-languages config.
type pythonParser struct {
	*treeSitterParser
	language *sitter.Language
}

// NewPythonParser creates a new Python parser.
func NewPythonParser() Parser {
	return &pythonParser{
		treeSitterParser: newTreeSitterParser("python", ".py"),
		language:         sitter.NewLanguage(python.Language()),
	}
}

// ParseFile parses a Python source file.
func (p *pythonParser) ParseFile(ctx context.Context, path string) (*model.FileEntities, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse python file: %s", path)
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
		if child.Kind() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		switch child.Kind() {
		case "function_definition":
			if fn, ok := p.extractFunction(child, path, source); ok {
				entities.Functions = append(entities.Functions, fn)
			}
		case "class_definition":
			if class, ok := p.extractClass(child, path, source); ok {
				entities.Classes = append(entities.Classes, class)
			}
		}
	}
	return entities, nil
}

func (p *pythonParser) extractFunction(node *sitter.Node, path string, source []byte) (model.Function, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return model.Function{}, false
	}

	bodyNode := node.ChildByFieldName("body")
	body := nodeText(bodyNode, source)
	if body == "" {
		body = nodeText(node, source)
	}

	returnType := anyType
	if rt := node.ChildByFieldName("return_type"); rt != nil {
		returnType = strings.TrimSpace(nodeText(rt, source))
	}

	return model.Function{
		Name:          nodeText(nameNode, source),
		Parameters:    p.extractParameters(node.ChildByFieldName("parameters"), source),
		ReturnType:    returnType,
		Body:          body,
		Documentation: docstring(bodyNode, source),
		Location: model.Location{
			File:      path,
			StartLine: startLine(node),
			EndLine:   endLine(node),
		},
	}, true
}

func (p *pythonParser) extractClass(node *sitter.Node, path string, source []byte) (model.Class, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return model.Class{}, false
	}

	bodyNode := node.ChildByFieldName("body")
	class := model.Class{
		Name:          nodeText(nameNode, source),
		Methods:       []model.Function{},
		Properties:    []model.Property{},
		Documentation: docstring(bodyNode, source),
		Location: model.Location{
			File:      path,
			StartLine: startLine(node),
			EndLine:   endLine(node),
		},
	}
	if bodyNode == nil {
		return class, true
	}

	for i := uint(0); i < bodyNode.NamedChildCount(); i++ {
		member := bodyNode.NamedChild(i)
		if member.Kind() == "decorated_definition" {
			if def := member.ChildByFieldName("definition"); def != nil {
				member = def
			}
		}
		switch member.Kind() {
		case "function_definition":
			if method, ok := p.extractFunction(member, path, source); ok {
				class.Methods = append(class.Methods, method)
			}
		case "expression_statement":
			p.extractClassAttribute(member, source, &class)
		}
	}
	return class, true
}

// extractClassAttribute records class-level assignments as properties.
func (p *pythonParser) extractClassAttribute(node *sitter.Node, source []byte, class *model.Class) {
	assignment := findChildByType(node, "assignment")
	if assignment == nil {
		return
	}
	left := assignment.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}
	propType := anyType
	if t := assignment.ChildByFieldName("type"); t != nil {
		propType = strings.TrimSpace(nodeText(t, source))
	}
	class.Properties = append(class.Properties, model.Property{
		Name: nodeText(left, source),
		Type: propType,
	})
}

func (p *pythonParser) extractParameters(paramsNode *sitter.Node, source []byte) []model.Parameter {
	parameters := []model.Parameter{}
	if paramsNode == nil {
		return parameters
	}

	for i := uint(0); i < paramsNode.NamedChildCount(); i++ {
		param := paramsNode.NamedChild(i)
		switch param.Kind() {
		case "identifier":
			parameters = append(parameters, model.Parameter{Name: nodeText(param, source), Type: anyType})
		case "typed_parameter":
			name := ""
			if inner := param.NamedChild(0); inner != nil {
				name = nodeText(inner, source)
			}
			parameters = append(parameters, model.Parameter{
				Name: name,
				Type: strings.TrimSpace(nodeText(param.ChildByFieldName("type"), source)),
			})
		case "default_parameter", "typed_default_parameter":
			nameNode := param.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			paramType := anyType
			if t := param.ChildByFieldName("type"); t != nil {
				paramType = strings.TrimSpace(nodeText(t, source))
			}
			parameters = append(parameters, model.Parameter{Name: nodeText(nameNode, source), Type: paramType})
		}
	}
	return parameters
}

// docstring returns the leading string literal of a function or class body,
// Python's documentation convention.
func docstring(bodyNode *sitter.Node, source []byte) string {
	if bodyNode == nil || bodyNode.NamedChildCount() == 0 {
		return ""
	}
	first := bodyNode.NamedChild(0)
	if first.Kind() != "expression_statement" {
		return ""
	}
	str := findChildByType(first, "string")
	if str == nil {
		return ""
	}
	text := nodeText(str, source)
	text = strings.Trim(text, "\"'")
	return strings.TrimSpace(text)
}
