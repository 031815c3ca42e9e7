//go:build amd64 || arm64

package memsys

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeap_AcquireBeyondRuntimeLimit(t *testing.T) {
	h := NewHeap()

	_, err := h.Acquire(math.MaxInt/4, 8)
	assert.ErrorIs(t, err, ErrExhausted)

	regions, bytes := h.Outstanding()
	assert.Zero(t, regions)
	assert.Zero(t, bytes)
}
