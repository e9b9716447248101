package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/ncertflash/internal/ncert"
	"github.com/vytor/ncertflash/internal/repository/sqlite"
)

var verifyPDFsCmd = &cobra.Command{
	Use:   "verify-pdfs",
	Short: "Check that the chapter PDF links of a class are still published",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("class")
		if level < 1 || level > 12 {
			return fmt.Errorf("--class must be between 1 and 12")
		}
		delay, _ := cmd.Flags().GetDuration("delay")

		ctx := cmd.Context()
		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		repo := sqlite.NewCurriculumRepository(database.DB)
		subjects, err := repo.ListSubjects(ctx, level)
		if err != nil {
			return err
		}

		var targets []ncert.Target
		titles := make(map[int64]string)
		for _, s := range subjects {
			chapters, err := repo.ListChapters(ctx, s.ID)
			if err != nil {
				return err
			}
			for _, ch := range chapters {
				if ch.PDFURL == "" {
					continue
				}
				targets = append(targets, ncert.Target{ChapterID: ch.ID, URL: ch.PDFURL})
				titles[ch.ID] = fmt.Sprintf("%s %d. %s", s.Code, ch.ChapterNumber, ch.Title)
			}
		}

		out := cmd.OutOrStdout()
		if len(targets) == 0 {
			fmt.Fprintf(out, "no chapter pdfs for class %d\n", level)
			return nil
		}

		results, err := ncert.New(ncert.WithDelay(delay)).CheckChapters(ctx, targets)
		if err != nil {
			return err
		}

		missing := 0
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CHAPTER\tSTATUS\tURL")
		for _, r := range results {
			state := "ok"
			switch {
			case r.Err != nil:
				state = "error: " + r.Err.Error()
			case !r.Available:
				state = fmt.Sprintf("missing (%d)", r.StatusCode)
			}
			if !r.Available {
				missing++
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", truncate(titles[r.ChapterID], 48), state, r.URL)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d of %d chapter pdfs available\n", len(results)-missing, len(results))
		if missing > 0 {
			return fmt.Errorf("%d chapter pdfs unavailable", missing)
		}
		return nil
	},
}

func init() {
	verifyPDFsCmd.Flags().Int("class", 6, "Class level to check")
	verifyPDFsCmd.Flags().Duration("delay", time.Second, "Pause between requests")
}
