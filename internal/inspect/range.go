package inspect

import (
	"fs-inspect-server/internal/errors"
)

// ResolveRange maps the optional, signed start/end values of a Line request
// onto a half-open [begin, endExcl) index pair over a file with total lines.
// Non-negative values are 1-based line numbers (0 and 1 both select the
// first line; end is inclusive). Negative values count back from the end of
// the file, so start=-10 selects the last ten lines. Out-of-range values
// clamp to the file bounds rather than failing; the only failure is a begin
// index past the end index, which reports the original unresolved values.
func ResolveRange(start, end *int, total int) (int, int, *errors.Error) {
	begin := 0
	switch {
	case start == nil:
	case *start >= 0:
		if *start > 1 {
			begin = *start - 1
		}
		if begin > total {
			begin = total
		}
	default:
		begin = total - (-*start)
		if begin < 0 {
			begin = 0
		}
	}

	endExcl := total
	switch {
	case end == nil:
	case *end >= 0:
		// 1-based inclusive, so the exclusive bound is the value itself.
		endExcl = *end
		if endExcl > total {
			endExcl = total
		}
	default:
		if -*end > total {
			endExcl = 0
		} else {
			endExcl = total - (-*end) + 1
		}
	}

	if begin > endExcl {
		return 0, 0, errors.NewInvalidLineRange(valueOrZero(start), valueOrZero(end))
	}
	return begin, endExcl, nil
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
