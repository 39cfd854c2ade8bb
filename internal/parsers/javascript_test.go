package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the JavaScript parser:
// - Extract plain functions with untyped ("any") parameters
// - Extract arrow functions bound to a const, including expression bodies
// - Extract classes with fields and methods
// - Dispatch on .js and .jsx extensions only

func TestJavaScriptParser_ParseFile(t *testing.T) {
	t.Parallel()

	parser := NewJavaScriptParser()

	jsPath := "../../testdata/code/javascript/simple.js"
	result, err := parser.ParseFile(context.Background(), jsPath)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Functions, 2)

	greet := result.Functions[0]
	assert.Equal(t, "greet", greet.Name)
	require.Len(t, greet.Parameters, 1)
	assert.Equal(t, "name", greet.Parameters[0].Name)
	assert.Equal(t, "any", greet.Parameters[0].Type)
	assert.Equal(t, "any", greet.ReturnType)
	assert.Contains(t, greet.Documentation, "Greets someone by name")
	assert.Equal(t, 4, greet.Location.StartLine)
	assert.Equal(t, 6, greet.Location.EndLine)

	shout := result.Functions[1]
	assert.Equal(t, "shout", shout.Name)
	require.Len(t, shout.Parameters, 1)
	assert.Equal(t, "message", shout.Parameters[0].Name)
	assert.Equal(t, "any", shout.Parameters[0].Type)
	assert.Contains(t, shout.Body, "message.toUpperCase()")

	require.Len(t, result.Classes, 1)
	counter := result.Classes[0]
	assert.Equal(t, "Counter", counter.Name)
	require.Len(t, counter.Properties, 1)
	assert.Equal(t, "count", counter.Properties[0].Name)
	assert.Equal(t, "any", counter.Properties[0].Type)
	require.Len(t, counter.Methods, 1)
	assert.Equal(t, "increment", counter.Methods[0].Name)
}

func TestJavaScriptParser_CanHandle(t *testing.T) {
	t.Parallel()

	parser := NewJavaScriptParser()

	assert.True(t, parser.CanHandle("src/index.js"))
	assert.True(t, parser.CanHandle("src/App.jsx"))
	assert.False(t, parser.CanHandle("src/app.ts"))
	assert.False(t, parser.CanHandle("notes.txt"))
}
