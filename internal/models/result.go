package models

// Result type discriminators used in the wire encoding.
const (
	ResultTypeLine      = "line"
	ResultTypeDirectory = "directory"
	ResultTypeSearch    = "search"
)

// ReadResult is implemented by the three result value types. ResultType
// returns the wire discriminator for the concrete type.
type ReadResult interface {
	ResultType() string
}

// LineResult is the outcome of a Line mode read.
type LineResult struct {
	// Content is the selected lines joined with a single "\n".
	Content string `json:"content"`
	// TotalLines is the number of lines in the source file.
	TotalLines int `json:"total_lines"`
	// LinesReturned is the number of lines actually selected. It never
	// exceeds TotalLines.
	LinesReturned int `json:"lines_returned"`
}

// ResultType implements ReadResult.
func (*LineResult) ResultType() string { return ResultTypeLine }

// FileEntry describes one directory entry in a DirectoryResult.
type FileEntry struct {
	// Path is relative to the listed root, using the platform separator.
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	// Size is the entry's size in bytes; 0 for directories.
	Size int64 `json:"size"`
	// Modified is the last-modification time in epoch seconds. Omitted
	// from the encoding when the filesystem cannot supply it.
	Modified *int64 `json:"modified,omitempty"`
}

// DirectoryResult is the outcome of a Directory mode listing. Entries are in
// pre-order depth-first traversal order; the listed root itself is never
// included.
type DirectoryResult struct {
	Entries    []FileEntry `json:"entries"`
	TotalCount int         `json:"total_count"`
}

// ResultType implements ReadResult.
func (*DirectoryResult) ResultType() string { return ResultTypeDirectory }

// SearchMatch is a single pattern hit with its surrounding context.
type SearchMatch struct {
	FilePath string `json:"file_path"`
	// LineNumber is 1-based.
	LineNumber  int    `json:"line_number"`
	LineContent string `json:"line_content"`
	// ContextBefore holds the lines immediately preceding the match,
	// oldest first. Shorter than the requested window only at the start
	// of the file.
	ContextBefore []string `json:"context_before"`
	// ContextAfter holds the lines immediately following the match.
	// Shorter than the requested window only at the end of the file.
	ContextAfter []string `json:"context_after"`
}

// SearchResult is the outcome of a Search mode scan. Matches follow
// traversal order: file discovery order for directory targets, then
// ascending line number within each file.
type SearchResult struct {
	Matches      []SearchMatch `json:"matches"`
	TotalMatches int           `json:"total_matches"`
}

// ResultType implements ReadResult.
func (*SearchResult) ResultType() string { return ResultTypeSearch }
