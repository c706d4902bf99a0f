package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "View player profiles and update avatars",
	}

	profileCmd.AddCommand(newProfileGetCmd())
	profileCmd.AddCommand(newProfileAvatarCmd())

	return profileCmd
}

func newProfileGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show a player's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Ok      bool `json:"ok"`
				Profile struct {
					Username     string  `json:"username"`
					Avatar       string  `json:"avatar"`
					Created      string  `json:"created"`
					HighestScore int     `json:"highest_score"`
					TotalGames   int     `json:"total_games"`
					AverageScore float64 `json:"average_score"`
					RecentScores []struct {
						Score   int    `json:"score"`
						Created string `json:"created"`
					} `json:"recent_scores"`
				} `json:"profile"`
			}
			path := "/api/profile/?username=" + url.QueryEscape(args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			p := result.Profile
			fmt.Printf("%s %s (joined %s)\n", p.Avatar, p.Username, p.Created)
			fmt.Printf("highest: %d  games: %d  average: %.1f\n", p.HighestScore, p.TotalGames, p.AverageScore)
			for _, s := range p.RecentScores {
				fmt.Printf("  %6d  %s\n", s.Score, s.Created)
			}
			return nil
		},
	}
}

func newProfileAvatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <username> <avatar>",
		Short: "Update a player's avatar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Ok      bool   `json:"ok"`
				Message string `json:"message"`
				Avatar  string `json:"avatar"`
			}
			body := map[string]string{"username": args[0], "avatar": args[1]}
			if err := client.Post("/api/profile/avatar/", body, &result); err != nil {
				return err
			}

			fmt.Printf("%s: avatar is now %s\n", args[0], result.Avatar)
			return nil
		},
	}
}
