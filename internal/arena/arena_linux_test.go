package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bumparena/internal/memsys"
	"github.com/hupe1980/bumparena/internal/mmap"
)

func TestArena_OffHeapResetDiscardsPages(t *testing.T) {
	ps := mmap.PageSize()
	a := New(4*ps, WithMemorySystem(memsys.NewOffHeap()))
	defer a.ReleaseAll()

	p, err := a.Allocate(3 * ps)
	require.NoError(t, err)
	for i := range p {
		p[i] = 0xFF
	}

	a.Reset()
	assert.Equal(t, []BlockInfo{{Index: 0, Usage: 0, Capacity: 4 * ps, Current: true}}, a.Blocks(),
		"header survives the discard")

	q, err := a.Allocate(3 * ps)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), q[0], "bytes sharing the header page are kept")
	assert.Zero(t, q[ps])
	assert.Zero(t, q[3*ps-1-ps])
	assert.Equal(t, 1, a.Len())
}
