package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/MONGU38/kkokko-project/internal/cli/connection"
)

// AnswersCommand returns the answers command.
func AnswersCommand() *cli.Command {
	return &cli.Command{
		Name:  "answers",
		Usage: "Submit a questionnaire answer set",
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
			&cli.StringSliceFlag{
				Name:    "answer",
				Aliases: []string{"a"},
				Usage:   "Answer as KEY=VALUE; comma-separated values form a sequence (e.g., color=red,blue)",
			},
		},
		Action: answersAction,
	}
}

func answersAction(c *cli.Context) error {
	answers, err := parseAnswers(c.StringSlice("answer"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client(c).Post(ctx, "/api/answers", map[string]any{
		"participant_id": c.String("participant"),
		"category":       c.String("category"),
		"answers":        answers,
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "answer set %s submitted\n", result.ID)
	return nil
}

// parseAnswers converts KEY=VALUE pairs into the answer map. A value
// containing commas becomes a sequence; anything else stays a scalar.
func parseAnswers(pairs []string) (map[string]any, error) {
	answers := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid answer %q, want KEY=VALUE", pair)
		}
		if strings.Contains(value, ",") {
			answers[key] = strings.Split(value, ",")
		} else {
			answers[key] = value
		}
	}
	return answers, nil
}
