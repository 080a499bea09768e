package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextGroupIndex(t *testing.T) {
	assert.Equal(t, 1, NextGroupIndex(0))
	assert.Equal(t, 4, NextGroupIndex(3))
}

func TestNextItemPosition(t *testing.T) {
	assert.Equal(t, "2.1", NextItemPosition(2, nil))
	assert.Equal(t, "2.3", NextItemPosition(2, []string{"2.1", "2.2"}))
}

func TestNextItemPositionSurvivesGaps(t *testing.T) {
	// Deleting "3.2" leaves the survivors untouched; the next item continues
	// from the highest sub-index ever assigned.
	assert.Equal(t, "3.4", NextItemPosition(3, []string{"3.1", "3.3"}))
}

func TestNextItemPositionIgnoresMalformed(t *testing.T) {
	assert.Equal(t, "1.3", NextItemPosition(1, []string{"1.2", "nonsense", "1."}))
}
