package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/engine"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineStartsAtInitialPosition(t *testing.T) {
	e := engine.New(context.Background(), "Test", "tester")
	assert.Equal(t, chess.InitialFEN, e.Position())
}

func TestEngineMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Test", "tester")

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, chess.InitialFEN, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, chess.InitialFEN, e.Position())

	assert.Error(t, e.TakeBack(ctx), "no move left to undo")
}

func TestEngineRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Test", "tester")
	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestEngineResetToCustomFEN(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Test", "tester")

	fen := "7k/8/6KQ/8/8/8/8/8 w - - 0 1"
	require.NoError(t, e.Reset(ctx, fen))
	assert.Equal(t, fen, e.Position())
}

func TestEngineThinkProducesBestMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Test", "tester", engine.WithOptions(engine.Options{Depth: 0, Hash: 1}))

	out, err := e.Think(ctx, search.PerMove(2))
	require.NoError(t, err)

	var last search.Info
	for info := range out {
		last = info
	}
	assert.NotEqual(t, chess.Move{}, last.BestMove)
}

func TestEngineThinkWithZeroOptionsDepthIsStillBounded(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Test", "tester", engine.WithOptions(engine.Options{Depth: 0}))

	out, err := e.Think(ctx, search.Limits{})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for range out {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Think with Options.Depth=0 and no explicit limits ran unbounded")
	}
}

func TestEngineRejectsConcurrentThink(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Test", "tester")

	_, err := e.Think(ctx, search.PerGame(time.Second, 0))
	require.NoError(t, err)

	_, err = e.Think(ctx, search.PerMove(1))
	assert.Error(t, err)

	_, _ = e.Halt(ctx)
}

func TestEngineHaltWithNoActiveSearch(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Test", "tester")
	_, err := e.Halt(ctx)
	assert.Error(t, err)
}
