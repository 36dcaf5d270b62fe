package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/seekerror/logw"
)

// ReadStdinLines reads stdin lines into a channel, closed when stdin is exhausted.
func ReadStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// WriteStdoutLines writes lines from the given channel to stdout until it closes.
func WriteStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
