package search

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// TimeControl is the PerGame search limit: wall-clock remaining for the side to
// move, plus its increment (accepted for interface completeness, unused by the
// reference time-management policy).
type TimeControl struct {
	Clock, Increment time.Duration
}

// limits returns the soft and hard deadlines for this clock: after the soft
// limit, no new iteration is started; the hard limit aborts an iteration
// in-flight (once a root move exists).
func (t TimeControl) limits() (soft, hard time.Duration) {
	return t.Clock / 40, t.Clock / 4
}

// Limits is the search's tagged-union stopping condition: exactly one of
// DepthLimit (PerMove) or TimeControl (PerGame) is expected to be set.
type Limits struct {
	DepthLimit  lang.Optional[int]
	TimeControl lang.Optional[TimeControl]
}

func PerMove(depth int) Limits {
	return Limits{DepthLimit: lang.Some(depth)}
}

func PerGame(clock, increment time.Duration) Limits {
	return Limits{TimeControl: lang.Some(TimeControl{Clock: clock, Increment: increment})}
}

// Info is sent on the channel returned by Start after every completed
// iterative-deepening depth.
type Info struct {
	Depth    int
	Nodes    uint64
	Eval     Score
	Time     time.Duration
	BestMove chess.Move
}

// Handle lets the caller cooperatively stop an in-progress search. Halt blocks
// until at least the first iteration has completed, then returns the last Info
// reported (the zero Info if the search never got that far).
type Handle interface {
	Halt() Info
}

// Start runs the iterative-deepening driver on its own goroutine: repeated
// negamax calls at depth 1, 2, ... up to maxDepth, each at the full window
// [-Infinity, +Infinity]. Returns a Handle to stop it and a channel of Info,
// closed when the search is exhausted or halted.
//
// The final best move reported is always the last completed iteration's; depth 1
// always completes (the hard limit is ignored until a root move exists), so a
// best move is always available whenever the position has a legal move.
func Start(ctx context.Context, stack *BoardStack, tt *Table, hist *History, evaluator eval.Evaluator, noise eval.Random, limits Limits) (Handle, <-chan Info) {
	out := make(chan Info, 1)
	h := &handle{init: iox.NewAsyncCloser(), quit: iox.NewAsyncCloser()}
	go h.process(ctx, stack, tt, hist, evaluator, noise, limits, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	mu   sync.Mutex
	info Info
}

func (h *handle) process(ctx context.Context, stack *BoardStack, tt *Table, hist *History, evaluator eval.Evaluator, noise eval.Random, limits Limits, out chan Info) {
	defer h.init.Close()
	defer close(out)

	maxDepth := math.MaxInt32
	if d, ok := limits.DepthLimit.V(); ok {
		maxDepth = d
	}

	hard := time.Duration(math.MaxInt64)
	var soft time.Duration
	useSoft := false
	if tc, ok := limits.TimeControl.V(); ok {
		soft, hard = tc.limits()
		useSoft = true
	}

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	r := &run{ctx: wctx, stack: stack, tt: tt, hist: hist, eval: evaluator, noise: noise, start: time.Now(), hard: hard}

	for depth := 1; depth <= maxDepth; depth++ {
		if h.quit.IsClosed() {
			return
		}

		score, ok := r.negamax(-Infinity, Infinity, depth, 0)
		if !ok {
			return // hard limit hit: do not report this iteration
		}

		info := Info{Depth: depth, Nodes: r.nodes, Eval: score, Time: time.Since(r.start), BestMove: r.rootBestMove}
		logw.Debugf(ctx, "Searched %v: depth=%v eval=%v nodes=%v time=%v pv=%v", stack.Get(), info.Depth, info.Eval, info.Nodes, info.Time, info.BestMove)

		h.mu.Lock()
		h.info = info
		h.mu.Unlock()

		select {
		case out <- info:
		case <-h.quit.Closed():
			return
		}

		h.init.Close()

		if useSoft && time.Since(r.start) >= soft {
			return
		}
	}
}

func (h *handle) Halt() Info {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.info
}
