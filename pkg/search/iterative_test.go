package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerMoveStopsAtDepthLimit(t *testing.T) {
	stack := newStack(t, chess.InitialFEN)
	tt := search.NewTable(1 << 20)
	hist := search.NewHistory()

	_, out := search.Start(context.Background(), stack, tt, hist, eval.Material{}, eval.Random{}, search.PerMove(3))

	var depths []int
	for info := range out {
		depths = append(depths, info.Depth)
	}
	require.NotEmpty(t, depths)
	assert.Equal(t, 3, depths[len(depths)-1])
	for i, d := range depths {
		assert.Equal(t, i+1, d, "iterative deepening reports depths in strict increasing order from 1")
	}
}

func TestPerGameHonorsSoftLimit(t *testing.T) {
	stack := newStack(t, chess.InitialFEN)
	tt := search.NewTable(1 << 20)
	hist := search.NewHistory()

	start := time.Now()
	_, out := search.Start(context.Background(), stack, tt, hist, eval.Material{}, eval.Random{},
		search.PerGame(400*time.Millisecond, 0))

	var last search.Info
	for info := range out {
		last = info
	}
	elapsed := time.Since(start)

	assert.NotEqual(t, chess.Move{}, last.BestMove, "at least depth 1 always completes")
	assert.Less(t, elapsed, time.Second, "should not run drastically past the hard limit")
}

func TestHaltStopsSearchAndReturnsLastInfo(t *testing.T) {
	stack := newStack(t, chess.InitialFEN)
	tt := search.NewTable(1 << 20)
	hist := search.NewHistory()

	handle, out := search.Start(context.Background(), stack, tt, hist, eval.Material{}, eval.Random{}, search.PerMove(1))

	// Drain at least the first iteration so Halt has something to report.
	<-out

	info := handle.Halt()
	assert.GreaterOrEqual(t, info.Depth, 1)
}
