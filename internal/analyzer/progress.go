package analyzer

// ProgressReporter receives callbacks during an analysis run. Implementations
// must be cheap; they are invoked inline from the sequential file loop.
type ProgressReporter interface {
	// OnDiscoveryComplete is called once traversal and parser filtering are
	// done, with the number of files that will be parsed.
	OnDiscoveryComplete(totalFiles int)

	// OnFileProcessed is called after each file, err non-nil on parse failure.
	OnFileProcessed(path string, err error)

	// OnAnalysisComplete is called once with the aggregate counts.
	OnAnalysisComplete(functions, classes, failures int)
}

// NoOpProgressReporter ignores all progress events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(totalFiles int)                  {}
func (NoOpProgressReporter) OnFileProcessed(path string, err error)              {}
func (NoOpProgressReporter) OnAnalysisComplete(functions, classes, failures int) {}
