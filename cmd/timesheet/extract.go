package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/model"
)

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <transcript>",
		Short: "Extract a time entry from a saved conversation",
		Long: `extract reads a transcript and prints the entry the extractor finds in it.
A .json file holds a list of {"role", "content"} turns. Any other file is
plain text where lines start with "user:" or "assistant:"; unprefixed lines
continue the previous turn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			turns, err := parseTranscript(f, filepath.Ext(args[0]) == ".json")
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			uc, _, err := a.useCase(cmd.Context(), nil)
			if err != nil {
				return err
			}
			res, err := uc.Extract(cmd.Context(), conversation.ExtractInput{Turns: turns})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func parseTranscript(r io.Reader, isJSON bool) ([]model.Turn, error) {
	if isJSON {
		var turns []model.Turn
		if err := json.NewDecoder(r).Decode(&turns); err != nil {
			return nil, err
		}
		return turns, nil
	}

	var turns []model.Turn
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		role, content, ok := speaker(line)
		switch {
		case ok:
			turns = append(turns, model.Turn{Role: role, Content: content})
		case len(turns) > 0:
			last := &turns[len(turns)-1]
			last.Content += "\n" + line
		case strings.TrimSpace(line) != "":
			turns = append(turns, model.Turn{Role: model.RoleUser, Content: strings.TrimSpace(line)})
		}
	}
	return turns, scanner.Err()
}

func speaker(line string) (model.Role, string, bool) {
	prefix, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	switch strings.ToLower(strings.TrimSpace(prefix)) {
	case "user", "me":
		return model.RoleUser, strings.TrimSpace(rest), true
	case "assistant", "bot":
		return model.RoleAssistant, strings.TrimSpace(rest), true
	}
	return "", "", false
}
