package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/internal/model"
)

// Test Plan for the search index:
// - Functions, classes and methods are all findable by name
// - Method hits carry the qualified Class.method name
// - Field filters (kind:) and limits behave
// - Documentation text is searchable

func buildIndex(t *testing.T) *Index {
	t.Helper()
	result := &model.AnalysisResult{
		Functions: []model.Function{
			{
				Name:          "parseConfig",
				Parameters:    []model.Parameter{{Name: "path", Type: "string"}},
				ReturnType:    "Config",
				Documentation: "/** reads the configuration file */",
				Location:      model.Location{File: "src/config.ts", StartLine: 4},
			},
			{
				Name:       "startServer",
				ReturnType: "void",
				Location:   model.Location{File: "src/server.ts", StartLine: 12},
			},
		},
		Classes: []model.Class{
			{
				Name: "UserService",
				Methods: []model.Function{
					{Name: "findUser", ReturnType: "User", Location: model.Location{File: "src/users.ts", StartLine: 30}},
				},
				Documentation: "/** manages user records */",
				Location:      model.Location{File: "src/users.ts", StartLine: 20},
			},
		},
	}

	ix, err := NewIndex(result)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestSearch_FunctionByName(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t)
	hits, err := ix.Search(context.Background(), "parseConfig", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "parseConfig", hits[0].Name)
	assert.Equal(t, "function", hits[0].Kind)
	assert.Equal(t, "src/config.ts", hits[0].File)
	assert.Equal(t, 4, hits[0].StartLine)
}

func TestSearch_MethodQualifiedName(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t)
	hits, err := ix.Search(context.Background(), "findUser", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "UserService.findUser", hits[0].Name)
	assert.Equal(t, "method", hits[0].Kind)
}

func TestSearch_KindFilter(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t)
	hits, err := ix.Search(context.Background(), "kind:class", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "UserService", hits[0].Name)
}

func TestSearch_Documentation(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t)
	hits, err := ix.Search(context.Background(), "configuration", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "parseConfig", hits[0].Name)
}

func TestSearch_Limit(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t)
	hits, err := ix.Search(context.Background(), "kind:function OR kind:method OR kind:class", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearch_NoMatches(t *testing.T) {
	t.Parallel()

	ix := buildIndex(t)
	hits, err := ix.Search(context.Background(), "nomatchanywhere", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
