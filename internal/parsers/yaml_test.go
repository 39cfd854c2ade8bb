package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the YAML parser:
// - Well-formed YAML yields empty (not nil) entity sets
// - Malformed YAML is a parse failure, not an empty result
// - Dispatch on .yml and .yaml extensions only

func TestYAMLParser_ValidFile(t *testing.T) {
	t.Parallel()

	parser := NewYAMLParser()

	result, err := parser.ParseFile(context.Background(), "../../testdata/code/yaml/valid.yml")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Functions)
	assert.Empty(t, result.Classes)
	assert.NotNil(t, result.Functions)
	assert.NotNil(t, result.Classes)
}

func TestYAMLParser_InvalidFile(t *testing.T) {
	t.Parallel()

	parser := NewYAMLParser()

	_, err := parser.ParseFile(context.Background(), "../../testdata/code/yaml/invalid.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestYAMLParser_CanHandle(t *testing.T) {
	t.Parallel()

	parser := NewYAMLParser()

	assert.True(t, parser.CanHandle("config.yml"))
	assert.True(t, parser.CanHandle("deploy/app.yaml"))
	assert.False(t, parser.CanHandle("main.ts"))
	assert.False(t, parser.CanHandle("data.json"))
}
