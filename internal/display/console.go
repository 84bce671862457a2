package display

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/session"
)

// Console runs a session as a plain line-by-line prompt
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	renderer *Renderer
	logger   *log.Logger
}

// NewConsole creates a console reading answers from in and writing to out
func NewConsole(in io.Reader, out io.Writer, renderer *Renderer, logger *log.Logger) *Console {
	if renderer == nil {
		renderer = NewRenderer(DefaultStyles())
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
		logger:   logger.WithPrefix("console"),
	}
}

// Run drives the session until it ends, input runs out or ctx is cancelled.
// Running out of input quits the session so final balances are still shown.
// Cancellation is noticed while waiting for an answer, not only between them.
func (c *Console) Run(ctx context.Context, s *session.Session) error {
	if err := c.write(s.Start()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		c.logger.Info("Console cancelled")
		return c.write(s.Quit())
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := c.readLines(done)

	for !s.Done() {
		select {
		case <-ctx.Done():
			c.logger.Info("Console cancelled")
			return c.write(s.Quit())
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				c.logger.Info("Input closed")
				return c.write(s.Quit())
			}
			if ctx.Err() != nil {
				c.logger.Info("Console cancelled")
				return c.write(s.Quit())
			}
			if err := c.write(s.Input(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

// readLines scans input on its own goroutine until EOF or done is closed.
// The scan error, if any, is sent on the second channel after lines closes.
func (c *Console) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for c.in.Scan() {
			select {
			case lines <- c.in.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- c.in.Err()
	}()
	return lines, errc
}

func (c *Console) write(out session.Output) error {
	for _, line := range out.Lines {
		if _, err := fmt.Fprintln(c.out, c.renderer.Line(line)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if out.Prompt != "" {
		if _, err := fmt.Fprint(c.out, c.renderer.Prompt(out.Prompt)+" "); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
