// Package console implements a minimal line-oriented debugging protocol for
// the engine -- not UCI, just enough to drive a game from a terminal.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/engine"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

var (
	whitePiece = color.New(color.FgWhite, color.Bold)
	blackPiece = color.New(color.FgCyan, color.Bold)
)

// Driver reads commands from in and writes responses/board prints to the
// returned channel. Closing the driver halts any active search.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out    chan<- string
	active atomic.Bool // a "go"/"think" search is outstanding
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			d.dispatch(ctx, line)

		case <-d.Closed():
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) dispatch(ctx context.Context, line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "reset", "r":
		// reset [<fen ...>] [moves <m1> <m2> ...]
		d.ensureInactive(ctx)

		pos := chess.InitialFEN
		rest := args
		if len(args) > 0 && args[0] != "moves" {
			n := 6
			if n > len(args) {
				n = len(args)
			}
			pos = strings.Join(args[:n], " ")
			rest = args[n:]
		}
		if err := d.e.Reset(ctx, pos); err != nil {
			d.out <- fmt.Sprintf("invalid position: %v", err)
			return
		}
		move := false
		for _, arg := range rest {
			if arg == "moves" {
				move = true
				continue
			}
			if !move {
				continue
			}
			if err := d.e.Move(ctx, arg); err != nil {
				d.out <- fmt.Sprintf("invalid move %q: %v", arg, err)
				return
			}
		}
		d.printBoard(ctx)

	case "undo", "u":
		d.ensureInactive(ctx)
		if err := d.e.TakeBack(ctx); err != nil {
			d.out <- err.Error()
		}
		d.printBoard(ctx)

	case "print", "p":
		d.printBoard(ctx)

	case "go", "think", "g":
		// go depth <n> | go movetime <ms> | go
		d.ensureInactive(ctx)

		var limits search.Limits
		if len(args) >= 2 {
			switch args[0] {
			case "depth":
				n, _ := strconv.Atoi(args[1])
				limits = search.PerMove(n)
			case "movetime":
				// PerGame's soft limit is clock/40; inflate the synthetic
				// clock so the soft limit lands on the requested movetime.
				ms, _ := strconv.Atoi(args[1])
				limits = search.PerGame(time.Duration(ms)*time.Millisecond*40, 0)
			}
		}

		out, err := d.e.Think(ctx, limits)
		if err != nil {
			d.out <- fmt.Sprintf("think failed: %v", err)
			return
		}
		d.active.Store(true)

		go func() {
			var last search.Info
			for info := range out {
				last = info
				d.out <- formatInfo(info)
			}
			d.searchCompleted(last)
		}()

	case "depth", "d":
		if len(args) > 0 {
			n, _ := strconv.Atoi(args[0])
			d.e.SetDepth(uint(n))
		}

	case "hash":
		if len(args) > 0 {
			n, _ := strconv.Atoi(args[0])
			d.e.SetHash(uint(n))
		}

	case "nohash":
		d.e.SetHash(0)

	case "noise":
		if len(args) > 0 {
			n, _ := strconv.Atoi(args[0])
			d.e.SetNoise(uint(n))
		}

	case "nonoise":
		d.e.SetNoise(0)

	case "halt", "stop":
		if _, err := d.e.Halt(ctx); err != nil {
			d.out <- err.Error()
		}

	case "quit", "exit", "q":
		d.ensureInactive(ctx)
		d.Close()

	default:
		// Assume a move if not a recognized command.
		d.ensureInactive(ctx)
		if err := d.e.Move(ctx, cmd); err != nil {
			d.out <- fmt.Sprintf("invalid move: %q", cmd)
		} else {
			d.printBoard(ctx)
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(info search.Info) {
	if d.active.CompareAndSwap(true, false) {
		if info.BestMove != (chess.Move{}) {
			d.out <- fmt.Sprintf("bestmove %v", info.BestMove)
		}
	} // else: stale halt, already reported
}

func formatInfo(info search.Info) string {
	return fmt.Sprintf("depth %v score %v nodes %v time %v pv %v",
		info.Depth, info.Eval, info.Nodes, info.Time.Round(time.Millisecond), info.BestMove)
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	fen := d.e.Position()
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		d.out <- fmt.Sprintf("invalid position: %v", err)
		return
	}

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%d", rank+1) + vertical)
		for file := 0; file < 8; file++ {
			sq := chess.MakeSquare(file, rank)
			sb.WriteString(printOccupant(pos.PieceOn(sq)))
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen: %v", fen)

	status := pos.Status()
	d.out <- fmt.Sprintf("turn: %v, status: %v", pos.Turn(), status.Outcome)
	d.out <- ""
}

func printOccupant(o chess.Occupant) string {
	if !o.Present {
		return " "
	}
	s := o.Piece.String()
	if o.Color == chess.White {
		return whitePiece.Sprint(strings.ToUpper(s))
	}
	return blackPiece.Sprint(s)
}
