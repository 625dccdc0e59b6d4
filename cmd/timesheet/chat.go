package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
)

const sessionID = "cli"

func newChatCmd(a *app) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Log a time entry interactively",
		Long: `chat asks the guided questions one at a time. Pick an option by its number
or type an answer. /restart starts over, /retry resends the last entry and
/quit exits. With --open you describe your work freely instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := conversation.ModeGuided
			if open {
				mode = conversation.ModeOpen
			}
			return a.runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), mode)
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "describe your work freely (needs an LLM provider)")
	return cmd
}

func (a *app) runChat(ctx context.Context, in io.Reader, w io.Writer, mode conversation.Mode) error {
	out := &lockedWriter{w: w}
	uc, dispatcher, err := a.useCase(ctx, &printNotifier{out: out})
	if err != nil {
		return err
	}
	defer dispatcher.Wait()

	sc := localScope()
	reply, err := uc.Start(ctx, sc, conversation.StartInput{SessionID: sessionID, Mode: mode})
	if err != nil {
		return err
	}
	printReply(out, reply)

	scanner := bufio.NewScanner(in)
	for {
		out.printf("> ")
		if !scanner.Scan() {
			out.printf("\n")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		var next conversation.Reply
		switch line {
		case "/quit", "/exit":
			return nil
		case "/restart":
			next, err = uc.Restart(ctx, sc, sessionID)
		case "/retry":
			next, err = uc.RetryDelivery(ctx, sc, sessionID)
		default:
			next, err = uc.HandleMessage(ctx, sc, conversation.MessageInput{
				SessionID: sessionID,
				Text:      pickOption(line, reply.Prompt.Options),
			})
		}

		switch {
		case errors.Is(err, conversation.ErrNothingToRetry):
			out.printf("Nothing to resend yet.\n")
		case err != nil:
			return err
		default:
			reply = next
			printReply(out, reply)
		}
	}
}

// pickOption maps a 1-based option number to its text.
func pickOption(line string, options []string) string {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(options) {
		return line
	}
	return options[n-1]
}

func printReply(out *lockedWriter, r conversation.Reply) {
	if r.Notice != "" {
		out.printf("%s\n", r.Notice)
	}
	out.printf("%s\n", r.Prompt.Text)
	for i, o := range r.Prompt.Options {
		out.printf("  %d) %s\n", i+1, o)
	}
}

// printNotifier reports background delivery outcomes on the terminal.
type printNotifier struct {
	out *lockedWriter
}

func (n *printNotifier) Notify(ctx context.Context, sc model.Scope, entry model.TimeEntry, o submission.Outcome) {
	msg := conversation.NoticeFor(o.Status)
	if o.Err != nil {
		msg += " (" + o.Err.Error() + ")"
	}
	n.out.printf("\n[delivery %s] %s\n", o.DeliveryID, msg)
}

// lockedWriter serializes prompt output with notifications arriving from
// delivery goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format, args...)
}
