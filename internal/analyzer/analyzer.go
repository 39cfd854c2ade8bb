// Package analyzer drives the analysis pipeline: traversal, parser dispatch,
// aggregation, and per-file failure isolation.
package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/maypok86/otter"

	"github.com/codescope/codescope/internal/model"
	"github.com/codescope/codescope/internal/parsers"
	"github.com/codescope/codescope/internal/traverse"
)

// Analyzer aggregates per-file entity extractions across a project tree.
// Files are processed strictly sequentially, so the aggregate order is
// traversal order then in-file declaration order, and recorded failures are
// totally ordered as well.
type Analyzer struct {
	registry  *parsers.Registry
	traverser *traverse.Traverser
	progress  ProgressReporter
	cache     otter.Cache[string, *model.FileEntities]
	useCache  bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProgress installs a progress reporter.
func WithProgress(p ProgressReporter) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.progress = p
		}
	}
}

// WithCache enables a checksum-keyed parse cache with the given capacity.
// The cache only short-circuits re-parsing of byte-identical files; it does
// not change ordering or failure semantics. Useful for watch mode.
func WithCache(capacity int) Option {
	return func(a *Analyzer) {
		cache, err := otter.MustBuilder[string, *model.FileEntities](capacity).Build()
		if err != nil {
			return
		}
		a.cache = cache
		a.useCache = true
	}
}

// New creates an Analyzer over the given registry and traverser.
func New(registry *parsers.Registry, traverser *traverse.Traverser, opts ...Option) *Analyzer {
	a := &Analyzer{
		registry:  registry,
		traverser: traverser,
		progress:  NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases the parse cache, if any.
func (a *Analyzer) Close() {
	if a.useCache {
		a.cache.Close()
	}
}

// AnalyzeProject analyzes every recognized file under rootPath. It fails
// only when the root itself is invalid; individual file failures are
// recorded and returned alongside the aggregate, never propagated. Running
// it twice on an unchanged tree yields structurally identical results.
func (a *Analyzer) AnalyzeProject(ctx context.Context, rootPath string) (*model.AnalysisResult, []model.FileFailure, error) {
	rootPath = strings.TrimSpace(rootPath)
	if _, err := os.Stat(rootPath); err != nil {
		return nil, nil, &FileSystemError{Path: rootPath, Err: err}
	}

	files, err := a.traverser.Walk(rootPath)
	if err != nil {
		return nil, nil, &FileSystemError{Path: rootPath, Err: err}
	}

	// Files with no matching parser are skipped, not reported as errors.
	type matched struct {
		path   string
		parser parsers.Parser
	}
	var queue []matched
	for _, path := range files {
		if parser, ok := a.registry.ParserFor(path); ok {
			queue = append(queue, matched{path: path, parser: parser})
		}
	}
	a.progress.OnDiscoveryComplete(len(queue))

	result := &model.AnalysisResult{
		Functions: []model.Function{},
		Classes:   []model.Class{},
	}
	failures := []model.FileFailure{}

	for _, m := range queue {
		entities, err := a.parseFile(ctx, m.parser, m.path)
		a.progress.OnFileProcessed(m.path, err)
		if err != nil {
			parseErr := &ParseError{File: m.path, Err: err}
			failures = append(failures, model.FileFailure{File: m.path, Message: parseErr.Error()})
			continue
		}
		if entities == nil {
			continue
		}
		result.Functions = append(result.Functions, entities.Functions...)
		result.Classes = append(result.Classes, entities.Classes...)
	}

	a.progress.OnAnalysisComplete(len(result.Functions), len(result.Classes), len(failures))
	return result, failures, nil
}

// parseFile dispatches one file to its parser, consulting the checksum
// cache first when enabled.
func (a *Analyzer) parseFile(ctx context.Context, parser parsers.Parser, path string) (*model.FileEntities, error) {
	if !a.useCache {
		return parser.ParseFile(ctx, path)
	}

	key, err := cacheKey(path)
	if err != nil {
		return nil, err
	}
	if cached, ok := a.cache.Get(key); ok {
		return cached, nil
	}

	entities, err := parser.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	a.cache.Set(key, entities)
	return entities, nil
}

// cacheKey derives a path+content key so edits invalidate naturally.
func cacheKey(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return path + ":" + hex.EncodeToString(h.Sum(nil)), nil
}
