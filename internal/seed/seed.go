// Package seed loads the bundled NCERT curriculum, sample quiz questions and
// the starter flashcard deck. Every step is an upsert or guarded insert, so
// running it twice leaves the database unchanged.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

const sourceSeed = "seed"

// Summary counts what a curriculum seed touched.
type Summary struct {
	Classes   int
	Subjects  int
	Chapters  int
	Questions int
}

// ChapterPDFURL is the NCERT download link for one chapter of a book.
func ChapterPDFURL(bookCode string, chapter int) string {
	return fmt.Sprintf("https://ncert.nic.in/textbook/pdf/%s%02d.pdf", bookCode, chapter)
}

// Curriculum seeds classes 1-12, the Class 6 subjects, the Class 6
// Mathematics chapters and the Fractions question bank.
func Curriculum(ctx context.Context, curriculum repository.CurriculumRepository, questions repository.QuestionRepository) (*Summary, error) {
	log := logger.FromContext(ctx).WithPrefix("seed")
	var sum Summary

	var class6ID int64
	for level := 1; level <= 12; level++ {
		id, err := curriculum.UpsertClass(ctx, models.Class{Name: fmt.Sprintf("Class %d", level), Level: level})
		if err != nil {
			return nil, fmt.Errorf("seed class %d: %w", level, err)
		}
		if level == 6 {
			class6ID = id
		}
		sum.Classes++
	}
	log.Debug("seeded %d classes", sum.Classes)

	var mathID int64
	var mathBook string
	for _, s := range class6Subjects {
		id, err := curriculum.UpsertSubject(ctx, models.Subject{
			ClassID:  class6ID,
			Name:     s.Name,
			Code:     s.Code,
			BookCode: s.BookCode,
		})
		if err != nil {
			return nil, fmt.Errorf("seed subject %s: %w", s.Code, err)
		}
		if s.Code == "MATH" {
			mathID, mathBook = id, s.BookCode
		}
		sum.Subjects++
	}

	var fractionsID int64
	for i, title := range class6MathChapters {
		number := i + 1
		id, err := curriculum.UpsertChapter(ctx, models.Chapter{
			SubjectID:     mathID,
			ChapterNumber: number,
			Title:         title,
			PDFURL:        ChapterPDFURL(mathBook, number),
		})
		if err != nil {
			return nil, fmt.Errorf("seed chapter %d: %w", number, err)
		}
		if number == fractionsChapter {
			fractionsID = id
		}
		sum.Chapters++
	}

	for _, q := range fractionQuestions {
		q.ChapterID = fractionsID
		q.Source = sourceSeed
		if _, err := questions.Upsert(ctx, q); err != nil {
			return nil, fmt.Errorf("seed question: %w", err)
		}
		sum.Questions++
	}

	log.Info("curriculum seeded: classes=%d subjects=%d chapters=%d questions=%d",
		sum.Classes, sum.Subjects, sum.Chapters, sum.Questions)
	return &sum, nil
}

// SampleDeck gives a profile the starter flashcards, all due at now. It does
// nothing when the profile already has cards and returns how many it added.
func SampleDeck(ctx context.Context, repo repository.FlashcardRepository, profileID int64, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("seed")

	existing, err := repo.Count(ctx, models.FlashcardFilter{ProfileID: profileID})
	if err != nil {
		return 0, fmt.Errorf("count flashcards: %w", err)
	}
	if existing > 0 {
		log.Debug("profile %d already has %d flashcards, skipping sample deck", profileID, existing)
		return 0, nil
	}

	for _, card := range sampleDeck {
		card.ProfileID = profileID
		card.CreatedAt = now
		if _, err := repo.Insert(ctx, flashcard.NewCard(card, now)); err != nil {
			return 0, fmt.Errorf("insert sample flashcard: %w", err)
		}
	}

	log.Info("sample deck added: profile_id=%d cards=%d", profileID, len(sampleDeck))
	return len(sampleDeck), nil
}
