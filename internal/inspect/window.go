package inspect

// ContextWindow expands the matched line at index into its surrounding
// context: before holds up to contextLines lines preceding the match in
// original order, after holds up to contextLines lines following it. Both
// windows shrink at the file boundaries; the match line itself is in
// neither.
func ContextWindow(lines []string, index, contextLines int) (before, after []string) {
	start := index - contextLines
	if start < 0 {
		start = 0
	}
	before = append([]string{}, lines[start:index]...)

	end := index + 1 + contextLines
	if end > len(lines) {
		end = len(lines)
	}
	after = append([]string{}, lines[index+1:end]...)
	return before, after
}
