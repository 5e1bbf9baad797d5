package backend

import (
	"ynabviz/internal/blob"
	"ynabviz/internal/publish"
	"ynabviz/internal/workspace"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// SinkType names where refresh results go.
type SinkType string

const (
	S3Sink     SinkType = "s3"
	SQLiteSink SinkType = "sqlite"
	MemorySink SinkType = "memory"
	NotionSink SinkType = "notion"
	SheetsSink SinkType = "sheets"
)

func (st SinkType) String() string {
	return string(st)
}

// IsValid returns true if the sink type is valid
func (st SinkType) IsValid() bool {
	switch st {
	case S3Sink, SQLiteSink, MemorySink, NotionSink, SheetsSink:
		return true
	default:
		return false
	}
}

// IsWorkspace reports whether the sink is a document workspace.
func (st SinkType) IsWorkspace() bool {
	return st == NotionSink || st == SheetsSink
}

// SinkResult holds the constructed sink. Exactly one of Publisher and
// Workspace is set.
type SinkResult struct {
	Type      SinkType
	Publisher *publish.Publisher
	Workspace workspace.Writer
	// Objects serves published objects back for local sinks; nil for S3.
	Objects blob.ObjectReader
	Cleanup CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *SinkResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}
