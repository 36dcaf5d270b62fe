// Package engine wires the chess, eval and search packages into a single
// stateful object suitable for driving from a console or protocol front end:
// it owns the current position, the transposition table and history across
// moves, and the one active search at a time.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// defaultThinkDepth bounds Think when called with neither an explicit depth
// nor a time control and Options.Depth is zero, so an
// interactive go/think can never run forever on its own.
const defaultThinkDepth = 6

// Options are engine creation and runtime-adjustable options.
type Options struct {
	// Depth is the default search depth limit, used when Think is called with
	// neither a depth limit nor a time control. Zero selects defaultThinkDepth.
	Depth uint
	// Hash is the transposition table size in MB. Zero disables the table.
	Hash uint
	// Noise adds centipawn randomness to leaf evaluations, in [-Noise/2, Noise/2].
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game state, search and evaluation behind a single mutex.
// Safe for concurrent use; at most one search may be active at a time.
type Engine struct {
	name, author string
	evaluator    eval.Evaluator
	zt           *chess.ZobristTable
	seed         int64
	opts         Options

	mu     sync.Mutex
	stack  *search.BoardStack
	tt     *search.Table
	hist   *search.History
	noise  eval.Random
	active search.Handle
}

// Option is an engine creation option.
type Option func(*Engine)

// WithEvaluator configures the static evaluator used by the search. Defaults to
// eval.PieceSquare{}.
func WithEvaluator(e eval.Evaluator) Option {
	return func(e0 *Engine) {
		e0.evaluator = e
	}
}

// WithOptions sets the initial runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the Zobrist seed, instead of the default of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// New creates an engine in the starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:      name,
		author:    author,
		evaluator: eval.PieceSquare{},
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = chess.NewZobristTable(e.seed)

	_ = e.Reset(ctx, chess.InitialFEN)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(mb uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = mb
}

// ResizeTT reallocates the transposition table to the given size in bytes,
// discarding its current contents. A size of zero disables the table.
func (e *Engine) ResizeTT(bytes uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = uint(bytes >> 20)
	e.tt = search.NewTable(bytes)
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return chess.Encode(e.stack.Get())
}

// Reset discards the current game and TT/history, starting over from the given
// FEN. Halts any active search first.
func (e *Engine) Reset(ctx context.Context, fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, hash=%vMB, noise=%vcp", fen, e.opts.Depth, e.opts.Hash, e.opts.Noise)

	e.haltSearchIfActive(ctx)

	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return err
	}
	e.stack = search.NewBoardStack(e.zt, pos, nil)

	e.tt = search.NewTable(0)
	if e.opts.Hash > 0 {
		e.tt = search.NewTable(uint64(e.opts.Hash) << 20)
	}
	e.hist = search.NewHistory()

	e.noise = eval.Random{}
	if e.opts.Noise > 0 {
		e.noise = eval.NewRandom(int(e.opts.Noise), e.seed)
	}

	logw.Infof(ctx, "New position: %v", chess.Encode(pos))
	return nil
}

// Move plays move (pure coordinate notation, e.g. "e2e4") as the next move in
// the game, usually an opponent's.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := chess.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	for _, m := range e.stack.Get().LegalMoves() {
		if !m.Equals(candidate) {
			continue
		}
		e.stack.PlayUnchecked(m)
		logw.Infof(ctx, "Move %v: %v", m, chess.Encode(e.stack.Get()))
		return nil
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// TakeBack undoes the latest move played, if any.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	if !e.stack.CanUndo() {
		return fmt.Errorf("no move to take back")
	}
	e.stack.Undo()

	logw.Infof(ctx, "Takeback: %v", chess.Encode(e.stack.Get()))
	return nil
}

// Think starts a search of the current position under the given limits,
// falling back to the engine's configured default depth if limits carries
// neither a depth nor a time control. Only one search may be active at a time.
func (e *Engine) Think(ctx context.Context, limits search.Limits) (<-chan search.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	if _, hasDepth := limits.DepthLimit.V(); !hasDepth {
		if _, hasTime := limits.TimeControl.V(); !hasTime {
			depth := int(e.opts.Depth)
			if depth == 0 {
				depth = defaultThinkDepth
			}
			limits = search.PerMove(depth)
		}
	}

	logw.Infof(ctx, "Think %v, limits=%+v", chess.Encode(e.stack.Get()), limits)

	handle, out := search.Start(ctx, e.stack.Fork(), e.tt, e.hist, e.evaluator, e.noise, limits)
	e.active = handle
	return out, nil
}

// Halt stops the active search and returns its last reported Info.
func (e *Engine) Halt(ctx context.Context) (search.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	info, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.Info{}, fmt.Errorf("no active search")
	}
	return info, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.Info, bool) {
	if e.active != nil {
		info := e.active.Halt()
		logw.Infof(ctx, "Search halted: %+v", info)

		e.active = nil
		return info, true
	}
	return search.Info{}, false
}
