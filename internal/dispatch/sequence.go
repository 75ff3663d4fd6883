package dispatch

import (
	"math"
	"regexp"
	"strconv"
)

// CaseNumberPrefix starts every generated task identifier.
const CaseNumberPrefix = "TASK-"

var caseNumberPattern = regexp.MustCompile(`^TASK-(\d+)$`)

// NextCaseNumber returns one more than the highest TASK-<n> suffix among
// caseNumbers, or 1 when there is none. Identifiers that do not match the
// pattern, or whose suffix has no successor in int64, are ignored. The value is a hint for the model, not a reservation.
func NextCaseNumber(caseNumbers []string) int64 {
	var max int64
	for _, cn := range caseNumbers {
		m := caseNumberPattern.FindStringSubmatch(cn)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || n == math.MaxInt64 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
