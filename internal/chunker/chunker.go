// Package chunker partitions an analysis result into size-bounded chunks for
// a downstream consumer with a fixed input budget.
package chunker

import (
	"encoding/json"
	"fmt"

	"github.com/codescope/codescope/internal/model"
)

// DefaultMaxChunkSize is the default size budget, in estimated units.
const DefaultMaxChunkSize = 32000

// truncatedBody replaces the body of a function whose serialized form alone
// exceeds the budget. The placeholder text is part of the output contract.
const truncatedBody = "body too large, truncated"

// Chunk is one size-bounded unit. It is structurally an analysis result;
// classes inside it may be partial-class records (see model.Class.Note).
type Chunk struct {
	Functions []model.Function `json:"functions"`
	Classes   []model.Class    `json:"classes"`
}

// SizeEstimator estimates the budget cost of a value once serialized.
type SizeEstimator func(v any) int

// EstimateJSONSize is the default estimator: the JSON length divided by 4,
// rounded up. It approximates the consumer's token count; swapping in an
// exact tokenizer changes chunk counts, so the default is kept stable.
func EstimateJSONSize(v any) int {
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return (len(b) + 3) / 4
}

// Chunker packs functions and classes into budgeted chunks. It reads but
// never mutates the input result; every chunk holds derived copies.
type Chunker struct {
	estimate SizeEstimator
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithSizeEstimator overrides the default JSON-length estimator.
func WithSizeEstimator(estimate SizeEstimator) Option {
	return func(c *Chunker) {
		if estimate != nil {
			c.estimate = estimate
		}
	}
}

// New creates a Chunker.
func New(opts ...Option) *Chunker {
	c := &Chunker{estimate: EstimateJSONSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk partitions result so that every emitted chunk estimates at or below
// maxUnitSize. Functions and classes are packed in two independent passes
// and merged positionally. The returned sequence is never empty: when there
// is nothing to pack, a single chunk equal to the original result is
// returned.
//
// Oversized entities are handled asymmetrically: a function too large on its
// own keeps its place but loses its body to a placeholder, while a class too
// large on its own is split into method groups, each emitted as a partial-
// class record annotated "Part i/N of large class". A chunk holding such a
// reduced or split entity can still exceed the budget; the bound is soft for
// pathological single entities.
func (c *Chunker) Chunk(result *model.AnalysisResult, maxUnitSize int) []Chunk {
	functionChunks := c.packFunctions(result.Functions, maxUnitSize)
	classChunks := c.packClasses(result.Classes, maxUnitSize)

	total := len(functionChunks)
	if len(classChunks) > total {
		total = len(classChunks)
	}
	if total == 0 {
		return []Chunk{{Functions: result.Functions, Classes: result.Classes}}
	}

	chunks := make([]Chunk, total)
	for i := range chunks {
		chunks[i].Functions = []model.Function{}
		chunks[i].Classes = []model.Class{}
		if i < len(functionChunks) {
			chunks[i].Functions = functionChunks[i]
		}
		if i < len(classChunks) {
			chunks[i].Classes = classChunks[i]
		}
	}
	return chunks
}

// packFunctions groups functions greedily in aggregate order.
func (c *Chunker) packFunctions(functions []model.Function, maxUnitSize int) [][]model.Function {
	var packed [][]model.Function
	var current []model.Function
	currentSize := 0

	for _, fn := range functions {
		size := c.estimate(fn)
		if size > maxUnitSize {
			// Too large to pack whole: keep the function in place but elide
			// its body. The reduced entity stays in the current chunk even
			// if that overflows it.
			fn.Body = truncatedBody
			current = append(current, fn)
			currentSize += c.estimate(fn)
			continue
		}
		if currentSize+size > maxUnitSize && len(current) > 0 {
			packed = append(packed, current)
			current = nil
			currentSize = 0
		}
		current = append(current, fn)
		currentSize += size
	}
	if len(current) > 0 {
		packed = append(packed, current)
	}
	return packed
}

// packClasses groups classes greedily in aggregate order. An oversized class
// is decomposed into partial-class records, all of which land in the current
// chunk so the split stays together.
func (c *Chunker) packClasses(classes []model.Class, maxUnitSize int) [][]model.Class {
	var packed [][]model.Class
	var current []model.Class
	currentSize := 0

	for _, class := range classes {
		size := c.estimate(class)
		if size > maxUnitSize {
			for _, partial := range c.splitClass(class, maxUnitSize) {
				current = append(current, partial)
				currentSize += c.estimate(partial)
			}
			continue
		}
		if currentSize+size > maxUnitSize && len(current) > 0 {
			packed = append(packed, current)
			current = nil
			currentSize = 0
		}
		current = append(current, class)
		currentSize += size
	}
	if len(current) > 0 {
		packed = append(packed, current)
	}
	return packed
}

// splitClass packs the class's methods greedily into groups within the
// budget and re-emits one partial-class record per group, preserving method
// order. Every partial retains the class's name, properties, documentation
// and location.
func (c *Chunker) splitClass(class model.Class, maxUnitSize int) []model.Class {
	var groups [][]model.Function
	var current []model.Function
	currentSize := 0

	for _, method := range class.Methods {
		size := c.estimate(method)
		if currentSize+size > maxUnitSize && len(current) > 0 {
			groups = append(groups, current)
			current = nil
			currentSize = 0
		}
		current = append(current, method)
		currentSize += size
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	if len(groups) == 0 {
		// No methods to split on; the class is oversized through its other
		// fields and is emitted whole as its own single part.
		groups = [][]model.Function{{}}
	}

	partials := make([]model.Class, len(groups))
	for i, group := range groups {
		partials[i] = model.Class{
			Name:          class.Name,
			Methods:       group,
			Properties:    class.Properties,
			Documentation: class.Documentation,
			Location:      class.Location,
			Note:          fmt.Sprintf("Part %d/%d of large class", i+1, len(groups)),
		}
	}
	return partials
}
