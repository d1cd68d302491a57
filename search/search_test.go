package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zugzwang-engine/zugzwang/board"
	"github.com/zugzwang-engine/zugzwang/eval"
)

func TestSearcherFindsMateInOne(t *testing.T) {
	pos, err := board.PositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	tt := NewTable(1)
	s := NewSearcher(pos, tt, eval.Material, nil)
	tc := NewFixedDepthTimeControl(pos, 3)
	tc.Start()

	pv := s.Play(tc)
	require.NotEmpty(t, pv)
	assert.Equal(t, "a1a8", pv[0].String())
}

func TestSearcherReturnsEmptyPVInCheckmate(t *testing.T) {
	pos, err := board.PositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	require.True(t, pos.IsCheckmate())

	tt := NewTable(1)
	s := NewSearcher(pos, tt, eval.Material, nil)
	tc := NewFixedDepthTimeControl(pos, 3)
	tc.Start()

	pv := s.Play(tc)
	assert.Empty(t, pv)
}

func TestSearcherPrefersWinningCapture(t *testing.T) {
	// the black rook on a8 is undefended; white's queen can take it for free.
	pos, err := board.PositionFromFEN("r5k1/8/8/8/8/8/7P/Q6K w - - 0 1")
	require.NoError(t, err)

	tt := NewTable(1)
	s := NewSearcher(pos, tt, eval.Material, nil)
	tc := NewFixedDepthTimeControl(pos, 3)
	tc.Start()

	pv := s.Play(tc)
	require.NotEmpty(t, pv)
	assert.Equal(t, "a1a8", pv[0].String())
}

func TestNulLoggerDiscardsEverything(t *testing.T) {
	var l Logger = NulLogger{}
	l.BeginSearch()
	l.PrintPV(Stats{}, 0, nil)
	l.EndSearch()
}
