package mem

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}
	aligns := []int{1, 8, 16, 64, 4096}

	for _, align := range aligns {
		for _, size := range sizes {
			buf := AllocAligned(size, align)
			assert.Len(t, buf, size)
			assert.Equal(t, size, cap(buf))
			assert.True(t, IsAligned(buf, align), "size=%d align=%d", size, align)
		}
	}
}

func TestAllocAligned_Zeroed(t *testing.T) {
	buf := AllocAligned(256, 64)
	for i, b := range buf {
		assert.Zero(t, b, "byte %d", i)
	}
}

func TestAllocAligned_Invalid(t *testing.T) {
	assert.Nil(t, AllocAligned(0, 8))
	assert.Nil(t, AllocAligned(-1, 8))
	assert.Nil(t, AllocAligned(16, 0))
	assert.Nil(t, AllocAligned(16, 12))
}

func TestIsAligned_Empty(t *testing.T) {
	assert.False(t, IsAligned(nil, 8))
	assert.False(t, IsAligned([]byte{}, 8))
}

func BenchmarkAllocAligned(b *testing.B) {
	sizes := []int{64, 256, 1024, 8192}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = AllocAligned(size, 64)
			}
		})
	}
}
