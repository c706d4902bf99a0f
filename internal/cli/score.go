package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Submit scores and view the leaderboard",
	}

	scoreCmd.AddCommand(newScoreSubmitCmd())
	scoreCmd.AddCommand(newScoreTopCmd())

	return scoreCmd
}

func newScoreSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <username> <score>",
		Short: "Submit a score for a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("score must be an integer: %q", args[1])
			}

			body := map[string]any{
				"username": args[0],
				"score":    value,
			}
			var result struct {
				Ok bool `json:"ok"`
			}
			if err := client.Post("/api/score/submit/", body, &result); err != nil {
				return err
			}

			fmt.Printf("submitted %d for %s\n", value, args[0])
			return nil
		},
	}
}

func newScoreTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Results []struct {
					Username string `json:"username"`
					Score    int    `json:"score"`
					Created  string `json:"created"`
				} `json:"results"`
			}
			path := fmt.Sprintf("/api/score/top/?limit=%d", limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			for i, entry := range result.Results {
				fmt.Printf("%2d. %-32s %6d  %s\n", i+1, entry.Username, entry.Score, entry.Created)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of entries (1-50)")
	return cmd
}
