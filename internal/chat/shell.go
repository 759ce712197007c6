package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Shell is the interactive read loop
type Shell struct {
	responder *Responder
	botLabel  string
	userLabel string
}

// NewShell creates a shell; empty labels default to "Biblio" and "You"
func NewShell(r *Responder, botLabel, userLabel string) *Shell {
	if botLabel == "" {
		botLabel = "Biblio"
	}
	if userLabel == "" {
		userLabel = "You"
	}
	return &Shell{responder: r, botLabel: botLabel, userLabel: userLabel}
}

// Banner is printed once when the shell starts
func (s *Shell) Banner() []string {
	return []string{
		fmt.Sprintf("Hi, I'm %s.", s.botLabel),
		"Type 'search for [topic]' to get information from Wikipedia or ask specific questions.",
		"For example, 'When was Albert Einstein born?' or 'What is the polar radius of Earth?'",
		"Type 'bye' to exit.",
	}
}

// Run reads lines from in and writes replies to out until the user leaves,
// in is exhausted or ctx is cancelled
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	for _, line := range s.Banner() {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s: ", s.userLabel); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		reply := s.responder.Respond(ctx, scanner.Text())
		if _, err := fmt.Fprintf(out, "%s: %s\n", s.botLabel, reply.Text); err != nil {
			return err
		}
		if reply.Ends() {
			return nil
		}
	}
}
