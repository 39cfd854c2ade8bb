package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/internal/model"
)

// Test Plan for the chunker:
// - Totality: every function and class lands in exactly one chunk, and
//   concatenating chunks reassembles the original aggregate order
// - Chunks of fit-sized entities respect the budget
// - A single oversized function keeps its position but loses its body to the
//   placeholder text
// - A single oversized class is split into ordered partial-class records with
//   "Part i/N of large class" notes and shared name/properties/doc/location
// - Function and class packs merge positionally
// - Empty input still produces one chunk
// - A custom size estimator replaces the default

func makeFunction(name, body string) model.Function {
	return model.Function{
		Name:       name,
		Parameters: []model.Parameter{{Name: "x", Type: "number"}},
		ReturnType: "void",
		Body:       body,
		Location:   model.Location{File: "src/a.ts", StartLine: 1, EndLine: 3},
	}
}

func makeClass(name string, methods ...model.Function) model.Class {
	return model.Class{
		Name:    name,
		Methods: methods,
		Properties: []model.Property{
			{Name: "id", Type: "string"},
		},
		Location: model.Location{File: "src/b.ts", StartLine: 10, EndLine: 90},
	}
}

func TestChunk_TotalityAndOrder(t *testing.T) {
	t.Parallel()

	result := &model.AnalysisResult{
		Functions: []model.Function{
			makeFunction("alpha", "return 1;"),
			makeFunction("beta", "return 2;"),
			makeFunction("gamma", "return 3;"),
		},
		Classes: []model.Class{
			makeClass("First"),
			makeClass("Second"),
		},
	}

	// A tight budget forces several chunks.
	chunks := New().Chunk(result, 60)
	require.NotEmpty(t, chunks)

	var functions []string
	var classes []string
	for _, chunk := range chunks {
		for _, fn := range chunk.Functions {
			functions = append(functions, fn.Name)
		}
		for _, class := range chunk.Classes {
			classes = append(classes, class.Name)
		}
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, functions)
	assert.Equal(t, []string{"First", "Second"}, classes)
}

func TestChunk_RespectsBudgetForFitEntities(t *testing.T) {
	t.Parallel()

	result := &model.AnalysisResult{
		Functions: []model.Function{
			makeFunction("a", strings.Repeat("x", 100)),
			makeFunction("b", strings.Repeat("y", 100)),
			makeFunction("c", strings.Repeat("z", 100)),
		},
	}

	const budget = 80
	for _, fn := range result.Functions {
		require.LessOrEqual(t, EstimateJSONSize(fn), budget, "fixture must fit individually")
	}

	chunks := New().Chunk(result, budget)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, EstimateJSONSize(chunk.Functions), budget, "chunk %d over budget", i)
	}
	assert.Greater(t, len(chunks), 1, "budget should force a split")
}

func TestChunk_OversizedFunctionBodyElided(t *testing.T) {
	t.Parallel()

	result := &model.AnalysisResult{
		Functions: []model.Function{
			makeFunction("small", "return 0;"),
			makeFunction("huge", strings.Repeat("x", 4000)),
			makeFunction("after", "return 9;"),
		},
	}

	chunks := New().Chunk(result, 200)

	var names []string
	var huge *model.Function
	for _, chunk := range chunks {
		for i, fn := range chunk.Functions {
			names = append(names, fn.Name)
			if fn.Name == "huge" {
				huge = &chunk.Functions[i]
			}
		}
	}

	assert.Equal(t, []string{"small", "huge", "after"}, names, "elision must not reorder")
	require.NotNil(t, huge)
	assert.Equal(t, "body too large, truncated", huge.Body)
	assert.Equal(t, "huge", huge.Name)
	assert.Equal(t, result.Functions[1].Location, huge.Location)

	// The input is never mutated.
	assert.Equal(t, strings.Repeat("x", 4000), result.Functions[1].Body)
}

func TestChunk_OversizedClassSplit(t *testing.T) {
	t.Parallel()

	big := makeClass("Big",
		makeFunction("m1", strings.Repeat("a", 300)),
		makeFunction("m2", strings.Repeat("b", 300)),
		makeFunction("m3", strings.Repeat("c", 300)),
		makeFunction("m4", strings.Repeat("d", 300)),
	)
	big.Documentation = "/** a very large class */"
	result := &model.AnalysisResult{Classes: []model.Class{big}}

	chunks := New().Chunk(result, 100)

	var partials []model.Class
	for _, chunk := range chunks {
		partials = append(partials, chunk.Classes...)
	}
	require.Greater(t, len(partials), 1, "class must split")

	var methods []string
	for i, partial := range partials {
		assert.Equal(t, "Big", partial.Name)
		assert.Equal(t, big.Properties, partial.Properties)
		assert.Equal(t, big.Documentation, partial.Documentation)
		assert.Equal(t, big.Location, partial.Location)
		assert.Equal(t, fmt.Sprintf("Part %d/%d of large class", i+1, len(partials)), partial.Note)
		for _, m := range partial.Methods {
			methods = append(methods, m.Name)
		}
	}
	assert.Equal(t, []string{"m1", "m2", "m3", "m4"}, methods, "split must preserve method order")

	assert.Empty(t, result.Classes[0].Note, "input is never mutated")
}

func TestChunk_OversizedClassWithoutMethods(t *testing.T) {
	t.Parallel()

	lone := makeClass("Huge")
	lone.Documentation = strings.Repeat("long doc ", 200)
	result := &model.AnalysisResult{Classes: []model.Class{lone}}

	chunks := New().Chunk(result, 50)

	var partials []model.Class
	for _, chunk := range chunks {
		partials = append(partials, chunk.Classes...)
	}
	require.Len(t, partials, 1)
	assert.Equal(t, "Part 1/1 of large class", partials[0].Note)
	assert.Empty(t, partials[0].Methods)
}

func TestChunk_MergesFunctionAndClassPacks(t *testing.T) {
	t.Parallel()

	result := &model.AnalysisResult{
		Functions: []model.Function{makeFunction("only", "return;")},
		Classes: []model.Class{
			makeClass("A"),
			makeClass("B"),
			makeClass("C"),
		},
	}

	// Classes need several chunks here; functions fit in one. Trailing
	// chunks carry empty (non-nil) function lists.
	chunks := New().Chunk(result, 60)
	require.Greater(t, len(chunks), 1)

	assert.Equal(t, "only", chunks[0].Functions[0].Name)
	for _, chunk := range chunks[1:] {
		assert.NotNil(t, chunk.Functions)
		assert.Empty(t, chunk.Functions)
	}
}

func TestChunk_EmptyResult(t *testing.T) {
	t.Parallel()

	result := &model.AnalysisResult{
		Functions: []model.Function{},
		Classes:   []model.Class{},
	}

	chunks := New().Chunk(result, DefaultMaxChunkSize)
	require.Len(t, chunks, 1, "output is never empty")
	assert.Empty(t, chunks[0].Functions)
	assert.Empty(t, chunks[0].Classes)
}

func TestChunk_CustomEstimator(t *testing.T) {
	t.Parallel()

	// Charge every entity a flat unit, so the budget alone dictates grouping.
	c := New(WithSizeEstimator(func(v any) int { return 1 }))
	result := &model.AnalysisResult{
		Functions: []model.Function{
			makeFunction("a", ""),
			makeFunction("b", ""),
			makeFunction("c", ""),
			makeFunction("d", ""),
		},
	}

	chunks := c.Chunk(result, 2)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0].Functions, 2)
	assert.Len(t, chunks[1].Functions, 2)
}

func TestEstimateJSONSize(t *testing.T) {
	t.Parallel()

	// "four" marshals to six bytes including quotes; ceil(6/4) = 2.
	assert.Equal(t, 2, EstimateJSONSize("four"))
	assert.Equal(t, 1, EstimateJSONSize(1))
}
