package parsers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the TypeScript parser:
// - Extract named top-level functions with parameters, types, body, docs
// - Extract arrow functions bound to a const, named after the variable
// - Extract classes with methods and properties, including member docs
// - Verify accurate 1-indexed line numbers
// - Exclude interfaces (not classes) from the class list
// - Reject syntactically invalid files with an error
// - Dispatch on .ts and .tsx extensions only

func TestTypeScriptParser_ParseFunctions(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()

	tsPath := filepath.Join("../../testdata/code/typescript/simple.ts")
	result, err := parser.ParseFile(context.Background(), tsPath)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Functions, 2)

	add := result.Functions[0]
	assert.Equal(t, "add", add.Name)
	require.Len(t, add.Parameters, 2)
	assert.Equal(t, "a", add.Parameters[0].Name)
	assert.Equal(t, "number", add.Parameters[0].Type)
	assert.Equal(t, "b", add.Parameters[1].Name)
	assert.Equal(t, "number", add.Parameters[1].Type)
	assert.Equal(t, "number", add.ReturnType)
	assert.Contains(t, add.Body, "return a + b")
	assert.Contains(t, add.Documentation, "Adds two numbers")
	assert.Equal(t, tsPath, add.Location.File)
	assert.Equal(t, 4, add.Location.StartLine)
	assert.Equal(t, 6, add.Location.EndLine)

	formatUser := result.Functions[1]
	assert.Equal(t, "formatUser", formatUser.Name)
	require.Len(t, formatUser.Parameters, 1)
	assert.Equal(t, "user", formatUser.Parameters[0].Name)
	assert.Equal(t, "User", formatUser.Parameters[0].Type)
	assert.Equal(t, "string", formatUser.ReturnType)
	assert.Contains(t, formatUser.Body, "return user.name")
	assert.Contains(t, formatUser.Documentation, "Formats a user for display")
	assert.Equal(t, 9, formatUser.Location.StartLine)
	assert.Equal(t, 11, formatUser.Location.EndLine)
}

func TestTypeScriptParser_ParseClass(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()

	tsPath := filepath.Join("../../testdata/code/typescript/simple.ts")
	result, err := parser.ParseFile(context.Background(), tsPath)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Interfaces are not classes.
	require.Len(t, result.Classes, 1)

	service := result.Classes[0]
	assert.Equal(t, "UserService", service.Name)
	assert.Contains(t, service.Documentation, "Stores users in memory")
	assert.Equal(t, 20, service.Location.StartLine)
	assert.Equal(t, 32, service.Location.EndLine)

	require.Len(t, service.Properties, 1)
	assert.Equal(t, "users", service.Properties[0].Name)
	assert.Equal(t, "User[]", service.Properties[0].Type)
	assert.Contains(t, service.Properties[0].Documentation, "Backing store")

	require.Len(t, service.Methods, 2)

	addMethod := service.Methods[0]
	assert.Equal(t, "add", addMethod.Name)
	assert.Equal(t, "void", addMethod.ReturnType)
	assert.Contains(t, addMethod.Documentation, "Adds a user")
	assert.Equal(t, 25, addMethod.Location.StartLine)
	assert.Equal(t, 27, addMethod.Location.EndLine)

	findMethod := service.Methods[1]
	assert.Equal(t, "find", findMethod.Name)
	assert.Equal(t, "User | undefined", findMethod.ReturnType)
	assert.Empty(t, findMethod.Documentation)
	require.Len(t, findMethod.Parameters, 1)
	assert.Equal(t, "name", findMethod.Parameters[0].Name)
	assert.Equal(t, "string", findMethod.Parameters[0].Type)
}

func TestTypeScriptParser_InvalidFile(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()

	_, err := parser.ParseFile(context.Background(), "../../testdata/code/typescript/invalid.ts")
	require.Error(t, err)
}

func TestTypeScriptParser_MissingFile(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()

	_, err := parser.ParseFile(context.Background(), "../../testdata/code/typescript/nope.ts")
	require.Error(t, err)
}

func TestTypeScriptParser_CanHandle(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()

	assert.True(t, parser.CanHandle("src/app.ts"))
	assert.True(t, parser.CanHandle("src/App.TSX"))
	assert.False(t, parser.CanHandle("src/app.js"))
	assert.False(t, parser.CanHandle("config.yml"))
	assert.False(t, parser.CanHandle("README.md"))
}
