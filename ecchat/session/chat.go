package session

import (
	"context"
	"fmt"
	"strings"
)

// LineReader supplies local turns. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// Display shows the peer's turns.
type Display interface {
	Incoming(text string)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(text string)

func (f DisplayFunc) Incoming(text string) { f(text) }

// Run alternates turns until either side sends the sentinel: the initiator
// sends first, then each side waits for the other. Sends and receives never
// overlap. Blank lines are skipped without using up the turn. ctx is checked
// between turns only; a stalled peer blocks Run until the channel is closed.
func (s *Session) Run(ctx context.Context, in LineReader, out Display) error {
	if err := s.expect(KeysExchanged, Communicating); err != nil {
		return err
	}

	ourTurn := s.opts.Role == Initiator
	for {
		if err := ctx.Err(); err != nil {
			return s.fail(err)
		}

		if !ourTurn {
			text, done, err := s.Receive()
			if err != nil {
				return err
			}
			out.Incoming(string(text))
			if done {
				return nil
			}
			ourTurn = true
			continue
		}

		line, err := in.Readline()
		if err != nil {
			return s.fail(fmt.Errorf("session: input: %w", err))
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		done, err := s.Send([]byte(line))
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		ourTurn = false
	}
}
