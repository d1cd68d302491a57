package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zugzwang-engine/zugzwang/board"
)

func TestNewTimeControlIsUnconstrained(t *testing.T) {
	tc := NewTimeControl(board.NewStartingPosition())
	tc.Start()
	assert.False(t, tc.Stopped())
	assert.EqualValues(t, 64, tc.Depth)
}

func TestFixedDepthTimeControlNeverTimesOut(t *testing.T) {
	tc := NewFixedDepthTimeControl(board.NewStartingPosition(), 3)
	tc.Start()
	assert.True(t, tc.NextDepth(3))
	assert.False(t, tc.NextDepth(4))
}

func TestStopIsImmediateAndIdempotent(t *testing.T) {
	tc := NewTimeControl(board.NewStartingPosition())
	tc.Start()
	require.False(t, tc.Stopped())
	tc.Stop()
	assert.True(t, tc.Stopped())
	tc.Stop()
	assert.True(t, tc.Stopped())
}

func TestNodeLimitStopsSearch(t *testing.T) {
	tc := NewTimeControl(board.NewStartingPosition())
	tc.NodeLimit = 100
	tc.Start()
	tc.AddNodes(50)
	assert.False(t, tc.Stopped())
	tc.AddNodes(60)
	assert.True(t, tc.Stopped())
	assert.EqualValues(t, 110, tc.Nodes())
}

func TestMoveTimeControlExpires(t *testing.T) {
	tc := NewMoveTimeControl(board.NewStartingPosition(), time.Millisecond)
	tc.Start()
	time.Sleep(5 * time.Millisecond)
	assert.True(t, tc.Stopped())
}
