package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/MONGU38/kkokko-project/internal/cli/connection"
	"github.com/MONGU38/kkokko-project/internal/cli/output"
)

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new participant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "nickname",
				Aliases: []string{"n"},
				Usage:   "Display name (optional, shown as \"anonymous\" when empty)",
			},
			&cli.StringFlag{
				Name:     "category",
				Aliases:  []string{"c"},
				Usage:    "Matching category: missing, separated, friends",
				Required: true,
			},
		},
		Action: registerAction,
	}
}

func registerAction(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client(c).Post(ctx, "/api/register", map[string]any{
		"nickname": c.String("nickname"),
		"category": c.String("category"),
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Participant struct {
			ID        string `json:"id"`
			Nickname  string `json:"nickname"`
			Category  string `json:"category"`
			CreatedAt int64  `json:"created_at"`
		} `json:"participant"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if c.String("output") == "json" {
		return formatter(c).Format(c.App.Writer, result.Participant)
	}

	table := &output.Table{Headers: []string{"ID", "NICKNAME", "CATEGORY", "CREATED"}}
	table.AddRow(
		result.Participant.ID,
		result.Participant.Nickname,
		result.Participant.Category,
		time.UnixMilli(result.Participant.CreatedAt).Format(time.RFC3339),
	)
	return formatter(c).Format(c.App.Writer, table)
}
