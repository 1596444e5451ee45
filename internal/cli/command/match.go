package command

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/MONGU38/kkokko-project/internal/cli/connection"
	"github.com/MONGU38/kkokko-project/internal/cli/output"
)

// MatchCommand returns the match command.
func MatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Run matching for a participant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "participant",
				Aliases:  []string{"p"},
				Usage:    "Participant ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "category",
				Aliases:  []string{"c"},
				Usage:    "Matching category: missing, separated, friends",
				Required: true,
			},
		},
		Action: matchAction,
	}
}

func matchAction(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client(c).Post(ctx, "/api/find-matches", map[string]any{
		"participant_id": c.String("participant"),
		"category":       c.String("category"),
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Matches []struct {
			ParticipantID string `json:"participant_id"`
			Nickname      string `json:"nickname"`
			Score         int    `json:"score"`
			Category      string `json:"category"`
		} `json:"matches"`
		Total int `json:"total"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if c.String("output") == "json" {
		return formatter(c).Format(c.App.Writer, result)
	}

	if len(result.Matches) == 0 {
		fmt.Fprintln(c.App.Writer, "no matches found")
		return nil
	}

	table := &output.Table{Headers: []string{"RANK", "ID", "NICKNAME", "SCORE"}}
	for i, m := range result.Matches {
		table.AddRow(strconv.Itoa(i+1), m.ParticipantID, m.Nickname, strconv.Itoa(m.Score))
	}
	if err := formatter(c).Format(c.App.Writer, table); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d candidate(s) total\n", result.Total)
	return nil
}

// CompareCommand returns the compare command.
func CompareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare two participants' answers key by key",
		ArgsUsage: "PARTICIPANT_ID_1 PARTICIPANT_ID_2",
		Action:    compareAction,
	}
}

func compareAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected two participant IDs, got %d argument(s)", c.NArg())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client(c).Post(ctx, "/api/match-details", map[string]any{
		"participant_id_1": c.Args().Get(0),
		"participant_id_2": c.Args().Get(1),
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Comparison map[string]struct {
			Value1 json.RawMessage `json:"value1"`
			Value2 json.RawMessage `json:"value2"`
			Equal  bool            `json:"equal"`
		} `json:"comparison"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if c.String("output") == "json" {
		return formatter(c).Format(c.App.Writer, result)
	}

	keys := make([]string, 0, len(result.Comparison))
	for key := range result.Comparison {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := &output.Table{Headers: []string{"KEY", "VALUE1", "VALUE2", "EQUAL"}}
	for _, key := range keys {
		entry := result.Comparison[key]
		table.AddRow(key, string(entry.Value1), string(entry.Value2), strconv.FormatBool(entry.Equal))
	}
	return formatter(c).Format(c.App.Writer, table)
}
