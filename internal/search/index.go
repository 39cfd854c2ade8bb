// Package search provides full-text search over extracted entities.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/codescope/codescope/internal/model"
)

// entityDoc is the flattened document indexed per entity.
type entityDoc struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	File          string `json:"file"`
	Documentation string `json:"documentation"`
	Signature     string `json:"signature"`
	StartLine     int    `json:"start_line"`
}

// Hit is one search result.
type Hit struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	File      string  `json:"file"`
	StartLine int     `json:"start_line"`
	Score     float64 `json:"score"`
}

// Index is an in-memory full-text index over an analysis result.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewIndex builds the index from result. Functions, classes and methods are
// all indexed; method documents carry a "Class.method" name.
func NewIndex(result *model.AnalysisResult) (*Index, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	batch := index.NewBatch()
	for i, fn := range result.Functions {
		id := fmt.Sprintf("func:%d:%s", i, fn.Name)
		if err := batch.Index(id, functionDoc(fn, "function", fn.Name)); err != nil {
			index.Close()
			return nil, err
		}
	}
	for i, class := range result.Classes {
		id := fmt.Sprintf("class:%d:%s", i, class.Name)
		doc := entityDoc{
			Name:          class.Name,
			Kind:          "class",
			File:          class.Location.File,
			Documentation: class.Documentation,
			StartLine:     class.Location.StartLine,
		}
		if err := batch.Index(id, doc); err != nil {
			index.Close()
			return nil, err
		}
		for j, method := range class.Methods {
			mid := fmt.Sprintf("method:%d:%d:%s", i, j, method.Name)
			qualified := class.Name + "." + method.Name
			if err := batch.Index(mid, functionDoc(method, "method", qualified)); err != nil {
				index.Close()
				return nil, err
			}
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index entities: %w", err)
	}

	return &Index{index: index}, nil
}

func functionDoc(fn model.Function, kind, name string) entityDoc {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.Name + ": " + p.Type
	}
	return entityDoc{
		Name:          name,
		Kind:          kind,
		File:          fn.Location.File,
		Documentation: fn.Documentation,
		Signature:     fmt.Sprintf("%s(%s): %s", name, strings.Join(params, ", "), fn.ReturnType),
		StartLine:     fn.Location.StartLine,
	}
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = "standard"
	textField.Store = true

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = "keyword"
	keywordField.Store = true

	numericField := bleve.NewNumericFieldMapping()
	numericField.Store = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", textField)
	docMapping.AddFieldMappingsAt("kind", keywordField)
	docMapping.AddFieldMappingsAt("file", textField)
	docMapping.AddFieldMappingsAt("documentation", textField)
	docMapping.AddFieldMappingsAt("signature", textField)
	docMapping.AddFieldMappingsAt("start_line", numericField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Search runs a bleve query-string query and returns up to limit hits.
func (ix *Index) Search(ctx context.Context, queryStr string, limit int) ([]Hit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	query := bleve.NewQueryStringQuery(queryStr)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)
	request.Fields = []string{"name", "kind", "file", "start_line"}

	result, err := ix.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hit := Hit{Score: h.Score}
		if v, ok := h.Fields["name"].(string); ok {
			hit.Name = v
		}
		if v, ok := h.Fields["kind"].(string); ok {
			hit.Kind = v
		}
		if v, ok := h.Fields["file"].(string); ok {
			hit.File = v
		}
		if v, ok := h.Fields["start_line"].(float64); ok {
			hit.StartLine = int(v)
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Close releases the index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.index.Close()
}
