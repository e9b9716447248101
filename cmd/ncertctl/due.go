package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/repository/sqlite"
	"github.com/vytor/ncertflash/internal/services"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the flashcards a profile has due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, _ := cmd.Flags().GetInt64("profile")
		if profileID <= 0 {
			return fmt.Errorf("--profile is required")
		}

		ctx := cmd.Context()
		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := services.NewFlashcardService(sqlite.NewFlashcardRepository(database.DB), flashcard.Scheduler{}, nil)
		cards, err := svc.ListFlashcards(ctx, profileID, "due", "")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(cards) == 0 {
			fmt.Fprintln(out, "nothing due")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSUBJECT\tCHAPTER\tSTREAK\tEASE\tDUE SINCE\tFRONT")
		now := time.Now().UTC()
		for _, c := range cards {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\t%s\t%s\n",
				c.ID, c.Subject, c.Chapter, c.Streak, c.EaseFactor, now.Sub(c.NextReview).Truncate(time.Minute), truncate(c.Front, 48))
		}
		return tw.Flush()
	},
}

func init() {
	dueCmd.Flags().Int64("profile", 0, "Profile id")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
