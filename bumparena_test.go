package bumparena

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	t.Run("SmallAllocation", func(t *testing.T) {
		a := New()
		defer a.ReleaseAll()

		p, err := a.Alloc(10)
		require.NoError(t, err)
		assert.Len(t, p, 10)
		assert.Equal(t, []BlockInfo{{Index: 0, Usage: 10, Capacity: 8192, Current: true}}, a.Blocks())
	})

	t.Run("LargeAllocation", func(t *testing.T) {
		a := New()
		defer a.ReleaseAll()

		_, err := a.Alloc(20000)
		require.NoError(t, err)
		assert.Equal(t, []BlockInfo{{Index: 0, Usage: 20000, Capacity: 32768, Current: true}}, a.Blocks())
	})

	t.Run("SecondBlock", func(t *testing.T) {
		a := New()
		defer a.ReleaseAll()

		_, err := a.Alloc(5000)
		require.NoError(t, err)
		_, err = a.Alloc(5000)
		require.NoError(t, err)

		blocks := a.Blocks()
		require.Len(t, blocks, 2)
		assert.Equal(t, 5000, blocks[0].Usage)
		assert.Equal(t, 5000, blocks[1].Usage)
		assert.True(t, blocks[1].Current)
	})

	t.Run("ReleaseTwice", func(t *testing.T) {
		sys := HeapMemory()
		a := New(WithMemorySystem(sys))

		_, err := a.Alloc(10)
		require.NoError(t, err)
		require.NoError(t, a.ReleaseAll())
		require.NoError(t, a.ReleaseAll())
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, uint64(1), a.Stats().BlocksReleased)
	})

	t.Run("DefaultCapacityOption", func(t *testing.T) {
		assert.Equal(t, DefaultCapacity, New(WithDefaultCapacity(0)).BaseCapacity())
		assert.Equal(t, 256, New(WithDefaultCapacity(256)).BaseCapacity())
	})

	t.Run("NilOptions", func(t *testing.T) {
		a := New(nil, WithLogger(nil), WithMetricsCollector(nil))
		defer a.ReleaseAll()

		_, err := a.Alloc(1)
		require.NoError(t, err)
	})
}

func TestArena_Errors(t *testing.T) {
	a := New(WithDefaultCapacity(64))
	defer a.ReleaseAll()

	_, err := a.Alloc(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSize)

	var allocErr *AllocError
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, "alloc", allocErr.Op)
	assert.Equal(t, 0, allocErr.Size)
	assert.Equal(t, ErrInvalidSize, allocErr.Kind())
	assert.Contains(t, err.Error(), "alloc 0 bytes")

	_, err = a.AllocAligned(8, 3)
	assert.ErrorIs(t, err, ErrInvalidAlignment)
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, ErrInvalidAlignment, allocErr.Kind())
	assert.Contains(t, err.Error(), "aligned to 3")

	_, err = a.AllocHandle(-4)
	assert.ErrorIs(t, err, ErrInvalidSize)

	assert.Equal(t, 0, a.Len(), "failed allocations must not acquire blocks")
}

func TestArena_MemoryLimit(t *testing.T) {
	limit := int64(2 * (HeaderSize + 128))
	a := New(WithDefaultCapacity(128), WithMemoryLimit(limit))
	assert.Equal(t, limit, a.MemoryLimit())

	_, err := a.Alloc(128)
	require.NoError(t, err)
	_, err = a.Alloc(128)
	require.NoError(t, err)
	assert.Equal(t, limit, a.MemoryUsage())

	before := a.Blocks()
	_, err = a.Alloc(1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, before, a.Blocks())

	var allocErr *AllocError
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, ErrOutOfMemory, allocErr.Kind())

	require.NoError(t, a.ReleaseAll())
	assert.Zero(t, a.MemoryUsage())
	assert.Equal(t, limit, a.PeakMemoryUsage())

	_, err = a.Alloc(1)
	require.NoError(t, err)
	require.NoError(t, a.ReleaseAll())
}

func TestArena_MemoryUsageWithoutLimit(t *testing.T) {
	a := New(WithDefaultCapacity(100))
	defer a.ReleaseAll()

	assert.Zero(t, a.MemoryLimit())
	assert.Zero(t, a.MemoryUsage())

	_, err := a.Alloc(150)
	require.NoError(t, err)
	assert.Equal(t, int64(200+HeaderSize), a.MemoryUsage())

	_, err = a.Alloc(100)
	require.NoError(t, err)
	assert.Equal(t, int64(300+2*HeaderSize), a.MemoryUsage())

	require.NoError(t, a.ReleaseAll())
	assert.Zero(t, a.MemoryUsage())
	assert.Equal(t, int64(300+2*HeaderSize), a.PeakMemoryUsage(), "usage is tracked without a limit")
}

func TestArena_OffHeap(t *testing.T) {
	a := New(WithOffHeap(), WithDefaultCapacity(4096))

	p, err := a.AllocAligned(100, 64)
	require.NoError(t, err)
	copy(p, "off heap")
	assert.Equal(t, "off heap", string(p[:8]))

	require.NoError(t, a.ReleaseAll())
}

func TestArena_HandlesAndReset(t *testing.T) {
	a := New(WithDefaultCapacity(64))
	defer a.ReleaseAll()

	h, err := a.AllocHandle(5)
	require.NoError(t, err)

	p, err := a.Resolve(h)
	require.NoError(t, err)
	copy(p, "hello")

	a.Reset()
	_, err = a.Resolve(h)
	assert.ErrorIs(t, err, ErrStaleHandle)
	assert.Equal(t, 1, a.Len())
	assert.Zero(t, a.Stats().BytesUsed)
}

func TestArena_MetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	a := New(
		WithDefaultCapacity(100),
		WithLogger(logger.WithName("test")),
		WithMetricsCollector(metrics),
	)

	_, err := a.Alloc(60)
	require.NoError(t, err)
	_, err = a.Alloc(60)
	require.NoError(t, err)
	_, err = a.Alloc(0)
	require.Error(t, err)
	a.Reset()
	require.NoError(t, a.ReleaseAll())

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.AllocCount)
	assert.Equal(t, int64(1), stats.AllocErrors)
	assert.Equal(t, int64(120), stats.AllocBytes)
	assert.Equal(t, int64(2), stats.BlocksAcquired)
	assert.Equal(t, int64(200), stats.BlockBytes)
	assert.Equal(t, int64(1), stats.ReleaseCount)
	assert.Equal(t, int64(2), stats.ReleasedBlocks)
	assert.Equal(t, int64(1), stats.ResetCount)

	out := buf.String()
	assert.Contains(t, out, "block acquired")
	assert.Contains(t, out, "allocation failed")
	assert.Contains(t, out, "arena reset")
	assert.Contains(t, out, "arena released")
	assert.Contains(t, out, "arena=test")
}

func TestArena_String(t *testing.T) {
	a := New()
	defer a.ReleaseAll()

	_, err := a.Alloc(4096)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, a.Usage(), 0.001)
	assert.Contains(t, a.String(), "blocks: 1")
}
