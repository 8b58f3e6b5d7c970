package scoring

import "strings"

// Method is a pool's scoring rule set. It is fixed for the lifetime of a pool.
type Method string

const (
	// MethodAbsolute awards exactly one point per correct pick.
	MethodAbsolute Method = "ABSOLUTE"
	// MethodSixteenDown assigns each game a distinct weight drawn from a
	// descending sequence starting at 16.
	MethodSixteenDown Method = "SIXTEEN_DOWN"

	sixteenDownTop = 16
)

func ParseMethod(value string) (Method, bool) {
	switch Method(strings.ToUpper(strings.TrimSpace(value))) {
	case MethodAbsolute:
		return MethodAbsolute, true
	case MethodSixteenDown:
		return MethodSixteenDown, true
	default:
		return "", false
	}
}

func (m Method) Valid() bool {
	switch m {
	case MethodAbsolute, MethodSixteenDown:
		return true
	default:
		return false
	}
}

// ConfidenceValues returns the ordered weight list for a week with gameCount
// games. For SIXTEEN_DOWN the sequence always starts at 16 and its length
// equals the schedule size, not a fixed 16.
func (m Method) ConfidenceValues(gameCount int) ([]int, bool) {
	if gameCount < 0 {
		gameCount = 0
	}

	switch m {
	case MethodAbsolute:
		values := make([]int, gameCount)
		for i := range values {
			values[i] = 1
		}
		return values, true
	case MethodSixteenDown:
		values := make([]int, 0, gameCount)
		next := sixteenDownTop
		for i := 0; i < gameCount; i++ {
			values = append(values, next)
			next--
		}
		return values, true
	default:
		return nil, false
	}
}

// ConfidencesValid reports whether a batch confidence assignment fits the
// method. Nil entries are undecided slots and always pass; the batch length is
// the week's game count.
func (m Method) ConfidencesValid(confidences []*int) bool {
	switch m {
	case MethodAbsolute:
		return true
	case MethodSixteenDown:
		floor := sixteenDownTop - len(confidences) + 1
		seen := make(map[int]struct{}, len(confidences))
		for _, c := range confidences {
			if c == nil {
				continue
			}
			if *c > sixteenDownTop || *c < floor {
				return false
			}
			if _, dup := seen[*c]; dup {
				return false
			}
			seen[*c] = struct{}{}
		}
		return true
	default:
		return false
	}
}
