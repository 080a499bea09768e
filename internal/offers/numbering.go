package offers

import (
	"fmt"
	"strconv"
	"strings"
)

// NextGroupIndex returns the index for a new group given the highest existing
// index within the offer (0 when the offer has no groups). Indices are never
// reused or compacted after deletion.
func NextGroupIndex(maxExisting int) int {
	return maxExisting + 1
}

// NextItemPosition returns the dotted position label for a new item: the
// group's index followed by one plus the highest sub-index already present.
// Positions are assigned once and survive sibling deletion unchanged.
func NextItemPosition(groupIndex int, existing []string) string {
	maxSub := 0
	for _, pos := range existing {
		if sub := parseSubIndex(pos); sub > maxSub {
			maxSub = sub
		}
	}
	return fmt.Sprintf("%d.%d", groupIndex, maxSub+1)
}

// parseSubIndex extracts the integer after the first dot; malformed labels
// count as zero.
func parseSubIndex(pos string) int {
	_, rest, ok := strings.Cut(pos, ".")
	if !ok {
		return 0
	}
	sub, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return sub
}
