package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

type curriculumRepository struct {
	db *sql.DB
}

// NewCurriculumRepository creates a new CurriculumRepository implementation
func NewCurriculumRepository(db *sql.DB) repository.CurriculumRepository {
	return &curriculumRepository{db: db}
}

func (r *curriculumRepository) UpsertClass(ctx context.Context, c models.Class) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO classes (name, level)
VALUES (?, ?)
ON CONFLICT(level) DO UPDATE SET name = excluded.name
RETURNING id
`, c.Name, c.Level).Scan(&id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("curriculum_repo").Error("failed to upsert class %d: %v", c.Level, err)
	}
	return id, err
}

func (r *curriculumRepository) UpsertSubject(ctx context.Context, s models.Subject) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO subjects (class_id, name, code, book_code)
VALUES (?, ?, ?, ?)
ON CONFLICT(class_id, code) DO UPDATE SET name = excluded.name, book_code = excluded.book_code
RETURNING id
`, s.ClassID, s.Name, s.Code, s.BookCode).Scan(&id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("curriculum_repo").Error("failed to upsert subject %s: %v", s.Code, err)
	}
	return id, err
}

func (r *curriculumRepository) UpsertChapter(ctx context.Context, c models.Chapter) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO chapters (subject_id, chapter_number, title, pdf_url)
VALUES (?, ?, ?, ?)
ON CONFLICT(subject_id, chapter_number) DO UPDATE SET title = excluded.title, pdf_url = excluded.pdf_url
RETURNING id
`, c.SubjectID, c.ChapterNumber, c.Title, c.PDFURL).Scan(&id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("curriculum_repo").Error("failed to upsert chapter %d: %v", c.ChapterNumber, err)
	}
	return id, err
}

func (r *curriculumRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	log := logger.FromContext(ctx).WithPrefix("curriculum_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, level FROM classes ORDER BY level ASC`)
	if err != nil {
		log.Error("failed to list classes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Level); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (r *curriculumRepository) querySubjects(ctx context.Context, q squirrel.SelectBuilder) ([]models.Subject, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("curriculum_repo").Error("failed to list subjects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.ClassID, &s.Name, &s.Code, &s.BookCode); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

var subjectColumns = []string{"s.id", "s.class_id", "s.name", "s.code", "s.book_code"}

func (r *curriculumRepository) ListSubjects(ctx context.Context, classLevel int) ([]models.Subject, error) {
	return r.querySubjects(ctx, sqlBuilder.Select(subjectColumns...).
		From("subjects s").
		Join("classes c ON c.id = s.class_id").
		Where(squirrel.Eq{"c.level": classLevel}).
		OrderBy("s.id ASC"))
}

func (r *curriculumRepository) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subjects, err := r.querySubjects(ctx, sqlBuilder.Select(subjectColumns...).
		From("subjects s").
		Where(squirrel.Eq{"s.id": id}))
	if err != nil || len(subjects) == 0 {
		return nil, err
	}
	return &subjects[0], nil
}

func (r *curriculumRepository) ListChapters(ctx context.Context, subjectID int64) ([]models.Chapter, error) {
	log := logger.FromContext(ctx).WithPrefix("curriculum_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, subject_id, chapter_number, title, pdf_url
FROM chapters
WHERE subject_id = ?
ORDER BY chapter_number ASC
`, subjectID)
	if err != nil {
		log.Error("failed to list chapters: %v", err)
		return nil, err
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var c models.Chapter
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.ChapterNumber, &c.Title, &c.PDFURL); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

func (r *curriculumRepository) GetChapter(ctx context.Context, id int64) (*models.Chapter, error) {
	var c models.Chapter
	err := r.db.QueryRowContext(ctx, `
SELECT id, subject_id, chapter_number, title, pdf_url FROM chapters WHERE id = ?
`, id).Scan(&c.ID, &c.SubjectID, &c.ChapterNumber, &c.Title, &c.PDFURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("curriculum_repo").Error("failed to get chapter: %v", err)
		return nil, err
	}
	return &c, nil
}
