//go:build amd64 || arm64

package mem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned_BeyondRuntimeLimit(t *testing.T) {
	assert.Nil(t, AllocAligned(math.MaxInt/4, 1))
	assert.Nil(t, AllocAligned(math.MaxInt/4, 64))
	assert.Nil(t, AllocAligned(math.MaxInt, 64))
}
