package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/ncertflash/internal/repository/sqlite"
	"github.com/vytor/ncertflash/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the NCERT curriculum and sample questions",
	Long: "Loads classes 1-12, the Class 6 subjects and Mathematics chapters, and the Fractions question bank.\n" +
		"With --profile, also gives that profile the starter flashcard deck. Safe to run repeatedly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		sum, err := seed.Curriculum(ctx, sqlite.NewCurriculumRepository(database.DB), sqlite.NewQuestionRepository(database.DB))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "classes: %d\nsubjects: %d\nchapters: %d\nquestions: %d\n", sum.Classes, sum.Subjects, sum.Chapters, sum.Questions)

		profileID, _ := cmd.Flags().GetInt64("profile")
		if profileID <= 0 {
			return nil
		}
		profile, err := sqlite.NewProfileRepository(database.DB).Get(ctx, profileID)
		if err != nil {
			return err
		}
		if profile == nil {
			return fmt.Errorf("profile %d not found", profileID)
		}
		added, err := seed.SampleDeck(ctx, sqlite.NewFlashcardRepository(database.DB), profileID, time.Now().UTC())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "flashcards added for %s: %d\n", profile.Username, added)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int64("profile", 0, "Profile id to receive the sample flashcard deck")
}
