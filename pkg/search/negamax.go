package search

import (
	"context"
	"time"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// hardLimitPollInterval is how often (in nodes) the hard time limit is polled.
const hardLimitPollInterval = 1024

// run holds the mutable state of one negamax/quiescence tree walk: the board
// stack, the shared TT/history (borrowed exclusively for this Think call), node
// accounting and the cooperative time-abort condition. Not thread-safe,
// single-writer, matching the cooperative scheduling model.
type run struct {
	ctx   context.Context
	stack *BoardStack
	tt    *Table
	hist  *History
	eval  eval.Evaluator
	noise eval.Random

	start time.Time
	hard  time.Duration

	nodes        uint64
	rootBestMove chess.Move
	hasRootMove  bool
}

// timeUp reports whether negamax must abort (returning false as its bool): the
// hard time limit was reached, or the search was cooperatively cancelled via ctx
// (e.g. Handle.Halt), after a root best move was established. qsearch never aborts.
func (r *run) timeUp() bool {
	if !r.hasRootMove {
		return false
	}
	return time.Since(r.start) >= r.hard || contextx.IsCancelled(r.ctx)
}

// negamax implements the principal variation search described in the package
// doc: iterative-deepening driver (Start) wraps calls to negamax at increasing
// target depths. Returns (score, ok); ok is false iff the search was aborted by
// the hard time limit or by cancellation of ctx (see timeUp).
func (r *run) negamax(alpha, beta Score, depth, ply int) (Score, bool) {
	p := r.stack.Get()

	// (a) Check extension.
	if len(p.Checkers(p.Turn())) > 0 {
		if depth < 0 {
			depth = 0
		}
		depth++
	}

	// (b) Leaf to quiescence.
	if depth <= 0 {
		if r.stack.Repetitions() >= 3 {
			return 0, true
		}
		return r.qsearch(alpha, beta, ply), true
	}

	// (c) Node bookkeeping.
	r.nodes++
	if r.nodes%hardLimitPollInterval == 0 && r.timeUp() {
		return 0, false
	}

	// (d) Terminal status.
	switch p.Status().Outcome {
	case chess.Won:
		return -Checkmate + Score(ply), true
	case chess.Drawn:
		return 0, true
	}

	// (e) Repetition.
	if r.stack.Repetitions() >= 3 {
		return 0, true
	}

	// (f) PV detection.
	isPV := alpha+1 != beta

	// (g) TT probe.
	hash := r.stack.Hash()
	ttEntry, ttHit := r.tt.Load(hash)
	if ttHit && int(ttEntry.Depth) >= depth && !isPV {
		switch {
		case ttEntry.Bound == Exact:
			return ttEntry.Score, true
		case ttEntry.Bound == Lower && ttEntry.Score >= beta:
			return ttEntry.Score, true
		case ttEntry.Bound == Upper && ttEntry.Score <= alpha:
			return ttEntry.Score, true
		}
	}

	// (h) Static eval.
	staticEval := Score(r.eval.Evaluate(p)) + Score(r.noise.Noise())

	// (i) Reverse futility pruning.
	if !isPV && depth <= 4 {
		margin := Score(80 * depth)
		if staticEval-margin >= beta {
			return staticEval - margin, true
		}
	}

	// (j) Null-move pruning. Never while in check: a null move against an
	// unresolved check is not a legal position (the side to move would be
	// passing with its king attacked), so the returned score would reflect a
	// position that could never arise in the game.
	turn := p.Turn()
	if !isPV && depth >= 2 && len(p.Checkers(turn)) == 0 && p.HasNonPawnMaterial(turn) && staticEval >= beta {
		reduction := 2 + int(staticEval-beta)/200
		r.stack.PlayNullMove()
		score, ok := r.negamax(beta.Negate(), beta.Negate()+1, depth-1-reduction, ply+1)
		r.stack.Undo()
		if !ok {
			return 0, false
		}
		score = score.Negate()
		if score >= beta {
			return score, true
		}
	}

	// (k) Late-move pruning budget.
	quietsToCheck := lmpBudget(isPV, depth)

	// (l) Move loop.
	initAlpha := alpha
	var ttMove chess.Move
	if ttHit {
		ttMove = ttEntry.Move
	}
	moves := GetOrderedMoves(p, ttMove, r.hist, false)

	var bestMove chess.Move
	hasBestMove := false
	bestScore := -Infinity
	var quietsTried []chess.Move

	for i := 0; ; i++ {
		mv, ok := moves.Next()
		if !ok {
			break
		}
		capture := isCapture(mv)

		reduction := (i*10+depth*15)/100 - int(r.hist.GetQuietScore(turn, mv.Piece, mv.To))/200
		if reduction < 0 || capture {
			reduction = 0
		}

		if i != 0 && !capture {
			if quietsToCheck == 0 {
				break
			}
			quietsToCheck--
		}

		r.stack.PlayUnchecked(mv)

		var score Score
		if i != 0 {
			s, ok := r.negamax(alpha.Negate()-1, alpha.Negate(), depth-1-reduction, ply+1)
			if !ok {
				r.stack.Undo()
				return 0, false
			}
			score = s.Negate()

			if reduction != 0 && score > alpha {
				s, ok := r.negamax(alpha.Negate()-1, alpha.Negate(), depth-1, ply+1)
				if !ok {
					r.stack.Undo()
					return 0, false
				}
				score = s.Negate()
			}
		}
		if i == 0 || score > alpha {
			s, ok := r.negamax(beta.Negate(), alpha.Negate(), depth-1, ply+1)
			if !ok {
				r.stack.Undo()
				return 0, false
			}
			score = s.Negate()
		}

		r.stack.Undo()

		if score > bestScore {
			bestScore = score
			bestMove = mv
			hasBestMove = true
			if score > alpha {
				alpha = score
			}
		}

		if alpha >= beta {
			if !capture {
				r.hist.UpdateMove(turn, mv.Piece, mv.To, int32(depth*depth))
				for _, q := range quietsTried {
					r.hist.UpdateMove(turn, q.Piece, q.To, -int32(depth*depth))
				}
			}
			break
		}
		if !capture {
			quietsTried = append(quietsTried, mv)
		}
	}

	if !hasBestMove {
		panic("empty move list at a non-terminal node") // programming error: Status() said Ongoing
	}

	// (m) Root update.
	if ply == 0 {
		r.rootBestMove = bestMove
		r.hasRootMove = true
	}

	// (n) TT store. The move stored on a fail-low is inherited from the prior TT
	// entry (if any), not the loop's best_move, so an unsearched-better previous
	// PV move is never overwritten by a likely-wrong alternative.
	var bound Bound
	storedMove := bestMove
	switch {
	case alpha >= beta:
		bound = Lower
	case alpha > initAlpha:
		bound = Exact
	default:
		bound = Upper
		if ttHit {
			storedMove = ttEntry.Move
		} else {
			storedMove = chess.Move{}
		}
	}
	r.tt.Store(hash, Entry{Move: storedMove, Depth: clampDepth(depth), Score: bestScore, Bound: bound})

	return bestScore, true
}

func lmpBudget(isPV bool, depth int) int {
	if isPV {
		return 1 << 30
	}
	switch depth {
	case 1:
		return 10
	case 2:
		return 13
	case 3:
		return 16
	case 4:
		return 19
	default:
		return 1 << 30
	}
}

func clampDepth(depth int) uint8 {
	if depth < 0 {
		return 0
	}
	if depth > 255 {
		return 255
	}
	return uint8(depth)
}
