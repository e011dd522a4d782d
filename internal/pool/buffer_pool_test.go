package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPoolResetsLength(t *testing.T) {
	bp := NewBufferPool(16)

	buf := bp.Get()
	assert.Equal(t, 0, len(*buf))
	assert.GreaterOrEqual(t, cap(*buf), 16)

	*buf = append(*buf, "hello"...)
	bp.Put(buf)

	again := bp.Get()
	assert.Equal(t, 0, len(*again))
}

func TestBufferPoolDropsOversized(t *testing.T) {
	bp := NewBufferPool(4)

	buf := make([]byte, 0, 64)
	bp.Put(&buf)

	// An oversized buffer is never handed out again.
	got := bp.Get()
	assert.LessOrEqual(t, cap(*got), 16)
}

func TestRuneBufferPool(t *testing.T) {
	rp := NewRuneBufferPool(8)

	buf := rp.Get()
	*buf = append(*buf, []rune("héllo")...)
	assert.Equal(t, 5, len(*buf))
	rp.Put(buf)

	assert.Equal(t, 0, len(*rp.Get()))
}
