package command

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/MONGU38/kkokko-project/internal/cli/connection"
	"github.com/MONGU38/kkokko-project/internal/cli/output"
)

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show aggregate record counts",
		Action: statsAction,
	}
}

func statsAction(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client(c).Get(ctx, "/api/stats")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Stats struct {
			TotalParticipants int            `json:"total_participants"`
			TotalAnswerSets   int            `json:"total_answer_sets"`
			TotalMatchRecords int            `json:"total_match_records"`
			Categories        map[string]int `json:"categories"`
		} `json:"stats"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if c.String("output") == "json" {
		return formatter(c).Format(c.App.Writer, result.Stats)
	}

	table := &output.Table{Headers: []string{"METRIC", "COUNT"}}
	table.AddRow("participants", strconv.Itoa(result.Stats.TotalParticipants))
	table.AddRow("answer sets", strconv.Itoa(result.Stats.TotalAnswerSets))
	table.AddRow("match records", strconv.Itoa(result.Stats.TotalMatchRecords))

	categories := make([]string, 0, len(result.Stats.Categories))
	for category := range result.Stats.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		table.AddRow("category/"+category, strconv.Itoa(result.Stats.Categories[category]))
	}

	return formatter(c).Format(c.App.Writer, table)
}
