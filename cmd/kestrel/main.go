// kestrel is a chess engine exposing a minimal line-oriented console protocol
// for debugging -- not a UCI implementation.
package main

import (
	"context"
	"flag"

	"github.com/kestrelchess/kestrel/pkg/engine"
	"github.com/kestrelchess/kestrel/pkg/engine/console"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 6, "Default search depth limit (zero for the built-in default)")
	hash  = flag.Uint("hash", 64, "Transposition table size, in MB (zero disables it)")
	noise = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "Kestrel", "kestrelchess",
		engine.WithEvaluator(eval.PieceSquare{}),
		engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}),
	)

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
	logw.Infof(ctx, "Exiting")
}
