package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/vark"
)

type classroomRepository struct {
	db *sql.DB
}

// NewClassroomRepository creates a new ClassroomRepository implementation
func NewClassroomRepository(db *sql.DB) repository.ClassroomRepository {
	return &classroomRepository{db: db}
}

var classroomColumns = []string{"c.id", "c.teacher_id", "c.name", "c.description", "c.class_level", "c.invite_code", "c.created_at"}

func scanClassroom(row interface{ Scan(...any) error }, extra ...any) (models.Classroom, error) {
	var c models.Classroom
	dest := append([]any{&c.ID, &c.TeacherID, &c.Name, &c.Description, &c.ClassLevel, &c.InviteCode, &c.CreatedAt}, extra...)
	err := row.Scan(dest...)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, err
}

func (r *classroomRepository) Create(ctx context.Context, c models.Classroom) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("classroom_repo")
	log.Debug("creating classroom: teacher_id=%d name=%s", c.TeacherID, c.Name)

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO classrooms (teacher_id, name, description, class_level, invite_code, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, c.TeacherID, c.Name, c.Description, c.ClassLevel, c.InviteCode, dbTime(createdAt))
	if err != nil {
		log.Error("failed to create classroom: %v", err)
		return 0, mapWriteError(err)
	}
	return res.LastInsertId()
}

func (r *classroomRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Classroom, error) {
	log := logger.FromContext(ctx).WithPrefix("classroom_repo")

	query, args, err := sqlBuilder.Select(classroomColumns...).From("classrooms c").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanClassroom(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get classroom: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *classroomRepository) Get(ctx context.Context, id int64) (*models.Classroom, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

func (r *classroomRepository) GetByInviteCode(ctx context.Context, code string) (*models.Classroom, error) {
	return r.getOne(ctx, squirrel.Eq{"c.invite_code": code})
}

func (r *classroomRepository) listSummaries(ctx context.Context, q squirrel.SelectBuilder) ([]models.ClassroomSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("classroom_repo")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list classrooms: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ClassroomSummary
	for rows.Next() {
		var s models.ClassroomSummary
		c, err := scanClassroom(rows, &s.StudentCount)
		if err != nil {
			log.Error("failed to scan classroom row: %v", err)
			return nil, err
		}
		s.Classroom = c
		out = append(out, s)
	}
	return out, rows.Err()
}

func summarySelect() squirrel.SelectBuilder {
	return sqlBuilder.Select(classroomColumns...).
		Column("(SELECT COUNT(*) FROM classroom_students cs WHERE cs.classroom_id = c.id)").
		From("classrooms c")
}

func (r *classroomRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.ClassroomSummary, error) {
	return r.listSummaries(ctx, summarySelect().
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		OrderBy("c.created_at DESC", "c.id DESC"))
}

func (r *classroomRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ClassroomSummary, error) {
	return r.listSummaries(ctx, summarySelect().
		Join("classroom_students e ON e.classroom_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.enrolled_at DESC", "c.id DESC"))
}

func (r *classroomRepository) Enroll(ctx context.Context, e models.Enrollment) error {
	log := logger.FromContext(ctx).WithPrefix("classroom_repo")
	log.Debug("enrolling student: classroom_id=%d student_id=%d", e.ClassroomID, e.StudentID)

	enrolledAt := e.EnrolledAt
	if enrolledAt.IsZero() {
		enrolledAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO classroom_students (classroom_id, student_id, enrolled_at)
VALUES (?, ?, ?)
`, e.ClassroomID, e.StudentID, dbTime(enrolledAt))
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, repository.ErrDuplicate) {
			log.Error("failed to enroll student: %v", err)
		}
	}
	return err
}

func (r *classroomRepository) queryStudents(ctx context.Context, q squirrel.SelectBuilder) ([]models.ClassroomStudent, error) {
	log := logger.FromContext(ctx).WithPrefix("classroom_repo")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list classroom students: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ClassroomStudent
	for rows.Next() {
		var s models.ClassroomStudent
		var dominant sql.NullString
		if err := rows.Scan(&s.ProfileID, &s.Username, &s.FullName, &dominant, &s.EnrolledAt); err != nil {
			log.Error("failed to scan classroom student: %v", err)
			return nil, err
		}
		s.DominantStyle = vark.Style(dominant.String)
		s.EnrolledAt = s.EnrolledAt.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *classroomRepository) Students(ctx context.Context, classroomID int64) ([]models.ClassroomStudent, error) {
	return r.queryStudents(ctx, sqlBuilder.
		Select("p.id", "p.username", "p.full_name", "ls.dominant_style", "e.enrolled_at").
		From("classroom_students e").
		Join("profiles p ON p.id = e.student_id").
		LeftJoin("learning_styles ls ON ls.profile_id = p.id").
		Where(squirrel.Eq{"e.classroom_id": classroomID}).
		OrderBy("e.enrolled_at ASC", "p.id ASC"))
}

func (r *classroomRepository) TeacherStudents(ctx context.Context, teacherID int64) ([]models.ClassroomStudent, error) {
	rows, err := r.queryStudents(ctx, sqlBuilder.
		Select("p.id", "p.username", "p.full_name", "ls.dominant_style", "e.enrolled_at").
		From("classroom_students e").
		Join("classrooms c ON c.id = e.classroom_id").
		Join("profiles p ON p.id = e.student_id").
		LeftJoin("learning_styles ls ON ls.profile_id = p.id").
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		OrderBy("e.enrolled_at ASC", "p.id ASC"))
	if err != nil {
		return nil, err
	}

	// A student enrolled in several classrooms is reported once, with the
	// earliest enrollment.
	seen := make(map[int64]bool, len(rows))
	students := rows[:0]
	for _, s := range rows {
		if seen[s.ProfileID] {
			continue
		}
		seen[s.ProfileID] = true
		students = append(students, s)
	}
	return students, nil
}
