//go:build amd64 || arm64

package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bumparena/internal/block"
)

func TestArena_HugeRequestIsOutOfMemory(t *testing.T) {
	for _, size := range []int{1 << 50, math.MaxInt / 4} {
		a := New(0)

		_, err := a.Allocate(size)
		assert.ErrorIs(t, err, block.ErrOutOfMemory, "size=%d", size)
		assert.Equal(t, 0, a.Len())

		_, err = a.Allocate(10)
		require.NoError(t, err)
		_, err = a.Allocate(size)
		assert.ErrorIs(t, err, block.ErrOutOfMemory, "size=%d", size)
		assert.Equal(t, []int{10}, usages(a))
		require.NoError(t, a.ReleaseAll())
	}
}
