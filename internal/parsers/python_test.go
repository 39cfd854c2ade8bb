package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Python parser:
// - Extract top-level functions with typed and defaulted parameters
// - Use docstrings as documentation
// - Extract classes with methods and class-level attributes

func TestPythonParser_ParseFile(t *testing.T) {
	t.Parallel()

	parser := NewPythonParser()

	result, err := parser.ParseFile(context.Background(), "../../testdata/code/python/sample.py")
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Functions, 1)
	fetch := result.Functions[0]
	assert.Equal(t, "fetch", fetch.Name)
	require.Len(t, fetch.Parameters, 2)
	assert.Equal(t, "url", fetch.Parameters[0].Name)
	assert.Equal(t, "str", fetch.Parameters[0].Type)
	assert.Equal(t, "timeout", fetch.Parameters[1].Name)
	assert.Equal(t, "int", fetch.Parameters[1].Type)
	assert.Equal(t, "str", fetch.ReturnType)
	assert.Contains(t, fetch.Documentation, "Fetch a URL")
	assert.Equal(t, 1, fetch.Location.StartLine)

	require.Len(t, result.Classes, 1)
	cache := result.Classes[0]
	assert.Equal(t, "Cache", cache.Name)
	assert.Contains(t, cache.Documentation, "Simple in-memory cache")
	require.Len(t, cache.Properties, 1)
	assert.Equal(t, "limit", cache.Properties[0].Name)
	require.Len(t, cache.Methods, 1)
	assert.Equal(t, "get", cache.Methods[0].Name)
	require.Len(t, cache.Methods[0].Parameters, 2)
	assert.Equal(t, "self", cache.Methods[0].Parameters[0].Name)
	assert.Equal(t, "key", cache.Methods[0].Parameters[1].Name)
}

func TestPythonParser_CanHandle(t *testing.T) {
	t.Parallel()

	parser := NewPythonParser()

	assert.True(t, parser.CanHandle("app/models.py"))
	assert.False(t, parser.CanHandle("app/models.ts"))
}
