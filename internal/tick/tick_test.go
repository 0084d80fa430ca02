package tick

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	var now uint32 = 100
	c := New(func() uint32 { return now })

	now = 130
	assert.Equal(t, uint32(30), c.Advance())
	assert.Equal(t, uint32(30), c.Tick())

	assert.Equal(t, uint32(0), c.Advance(), "no time passed")

	now = 135
	assert.Equal(t, uint32(5), c.Advance())
}

func TestAdvanceAcrossWrap(t *testing.T) {
	var now uint32 = math.MaxUint32 - 4
	c := New(func() uint32 { return now })
	now = 5
	assert.Equal(t, uint32(10), c.Advance())
}

func TestSince(t *testing.T) {
	m := Since(time.Now().Add(-2 * time.Second))
	assert.GreaterOrEqual(t, m(), uint32(2000))
}
