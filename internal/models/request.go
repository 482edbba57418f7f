package models

// ReadMode selects one of the three read operations.
type ReadMode string

const (
	// ModeLine reads a bounded range of lines from a single file.
	ModeLine ReadMode = "Line"
	// ModeDirectory lists descendants of a directory up to a bounded depth.
	ModeDirectory ReadMode = "Directory"
	// ModeSearch scans a file or directory tree for a regular expression.
	ModeSearch ReadMode = "Search"
)

// DefaultContextLines is the number of context lines returned around a
// search match when the request does not specify one.
const DefaultContextLines = 2

// ReadRequest is a single file-inspection request. Mode-specific fields are
// flattened into the same record; only the fields belonging to the selected
// mode are consulted.
type ReadRequest struct {
	// Path is the filesystem path the operation targets.
	Path string `json:"path"`
	// Mode is the operation discriminator: "Line", "Directory" or "Search".
	Mode ReadMode `json:"mode"`

	// StartLine is the optional start of the range for Line mode.
	// 1-based when non-negative; negative values count back from the end
	// of the file (-1 is the last line).
	StartLine *int `json:"start_line,omitempty"`
	// EndLine is the optional inclusive end of the range for Line mode,
	// with the same sign convention as StartLine.
	EndLine *int `json:"end_line,omitempty"`

	// Depth bounds Directory mode traversal. 0 is treated as 1: only
	// immediate children.
	Depth uint `json:"depth,omitempty"`

	// Pattern is the regular expression for Search mode. Required there,
	// ignored elsewhere.
	Pattern string `json:"pattern,omitempty"`
	// ContextLines is the number of lines of context around each match in
	// Search mode. Nil means DefaultContextLines; an explicit 0 disables
	// context.
	ContextLines *uint `json:"context_lines,omitempty"`
}

// EffectiveContextLines resolves the context window size, applying the
// default when the field is absent.
func (r *ReadRequest) EffectiveContextLines() int {
	if r.ContextLines == nil {
		return DefaultContextLines
	}
	return int(*r.ContextLines)
}
