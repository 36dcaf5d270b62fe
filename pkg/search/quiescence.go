package search

import "github.com/kestrelchess/kestrel/pkg/chess"

// qsearch extends the search along capturing lines only, to avoid the horizon
// effect at the end of the main search. Never aborts on the hard time limit and
// never consults the transposition table for a cutoff -- only for move ordering.
func (r *run) qsearch(alpha, beta Score, ply int) Score {
	r.nodes++

	p := r.stack.Get()
	switch p.Status().Outcome {
	case chess.Won:
		return -Checkmate + Score(ply)
	case chess.Drawn:
		return 0
	}

	hash := r.stack.Hash()
	var ttMove chess.Move
	if e, ok := r.tt.Load(hash); ok {
		ttMove = e.Move
	}

	staticEval := Score(r.eval.Evaluate(p)) + Score(r.noise.Noise())
	bestScore := staticEval
	if bestScore > alpha {
		alpha = bestScore
	}
	if bestScore >= beta {
		return bestScore
	}

	moves := GetOrderedMoves(p, ttMove, r.hist, true)
	for {
		mv, ok := moves.Next()
		if !ok {
			break
		}

		r.stack.PlayUnchecked(mv)
		score := r.qsearch(beta.Negate(), alpha.Negate(), ply+1).Negate()
		r.stack.Undo()

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
			}
		}
		if score >= beta {
			break
		}
	}
	return bestScore
}
