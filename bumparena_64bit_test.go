//go:build amd64 || arm64

package bumparena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArena_HugeAllocIsOutOfMemory(t *testing.T) {
	a := New()
	defer a.ReleaseAll()

	_, err := a.Alloc(math.MaxInt / 4)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 0, a.Len())
	assert.Zero(t, a.MemoryUsage(), "a failed acquisition is not charged")
	assert.Zero(t, a.PeakMemoryUsage())
}
