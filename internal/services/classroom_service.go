package services

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"math/big"
	"strings"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/vark"
)

const (
	inviteCodeLength   = 6
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeAttempts = 5
)

// CreateClassroomInput is the data a teacher provides for a new classroom.
type CreateClassroomInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	ClassLevel  int    `json:"class_level" validate:"required,min=1,max=12"`
}

// ClassroomService handles classrooms, enrollment and learning-style insights
type ClassroomService interface {
	CreateClassroom(ctx context.Context, teacherID int64, input CreateClassroomInput) (*models.Classroom, error)
	JoinClassroom(ctx context.Context, studentID int64, code string) (*models.Classroom, error)
	ListClassrooms(ctx context.Context, profileID int64) ([]models.ClassroomSummary, error)
	GetInsights(ctx context.Context, teacherID, classroomID int64) (*models.ClassroomInsights, error)
	GetTeacherAnalytics(ctx context.Context, teacherID int64) (*models.TeacherAnalytics, error)
}

type classroomService struct {
	classroomRepo repository.ClassroomRepository
	profileRepo   repository.ProfileRepository
	clock         Clock
	newCode       func() (string, error)
}

// NewClassroomService creates a new ClassroomService
func NewClassroomService(classroomRepo repository.ClassroomRepository, profileRepo repository.ProfileRepository, clock Clock) ClassroomService {
	return &classroomService{
		classroomRepo: classroomRepo,
		profileRepo:   profileRepo,
		clock:         clock,
		newCode:       GenerateInviteCode,
	}
}

// GenerateInviteCode returns a random six character code of A-Z and 0-9.
func GenerateInviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	b := make([]byte, inviteCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// NormalizeInviteCode uppercases code and drops everything but letters and
// digits. ok is false unless exactly six characters remain.
func NormalizeInviteCode(code string) (normalized string, ok bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	normalized = b.String()
	return normalized, len(normalized) == inviteCodeLength
}

func (s *classroomService) profile(ctx context.Context, id int64) (*models.Profile, error) {
	p, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}
	return p, nil
}

func (s *classroomService) requireTeacher(ctx context.Context, id int64) (*models.Profile, error) {
	p, err := s.profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsTeacher() {
		return nil, errors.NewForbiddenError("only teachers can manage classrooms")
	}
	return p, nil
}

func (s *classroomService) CreateClassroom(ctx context.Context, teacherID int64, input CreateClassroomInput) (*models.Classroom, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if input.ClassLevel < 1 || input.ClassLevel > 12 {
		return nil, errors.NewValidationError("class_level", "must be between 1 and 12")
	}
	if _, err := s.requireTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	classroom := models.Classroom{
		TeacherID:   teacherID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ClassLevel:  input.ClassLevel,
		CreatedAt:   s.clock.now(),
	}

	for attempt := 1; attempt <= inviteCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			log.Error("failed to generate invite code: %v", err)
			return nil, errors.NewInternalError(err)
		}
		classroom.InviteCode = code

		id, err := s.classroomRepo.Create(ctx, classroom)
		if stderrors.Is(err, repository.ErrDuplicate) {
			log.Debug("invite code collision on attempt %d", attempt)
			continue
		}
		if err != nil {
			log.Error("failed to create classroom: %v", err)
			return nil, errors.NewInternalError(err)
		}
		classroom.ID = id
		log.Info("classroom created: id=%d teacher_id=%d code=%s", id, teacherID, code)
		return &classroom, nil
	}

	log.Error("could not find a free invite code after %d attempts", inviteCodeAttempts)
	return nil, errors.NewInternalError(stderrors.New("invite code space exhausted"))
}

func (s *classroomService) JoinClassroom(ctx context.Context, studentID int64, code string) (*models.Classroom, error) {
	log := logger.FromContext(ctx)

	normalized, ok := NormalizeInviteCode(code)
	if !ok {
		return nil, errors.NewValidationError("code", "must be 6 letters or digits")
	}

	student, err := s.profile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.IsTeacher() {
		return nil, errors.NewForbiddenError("teachers cannot join classrooms")
	}

	classroom, err := s.classroomRepo.GetByInviteCode(ctx, normalized)
	if err != nil {
		log.Error("failed to look up invite code: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if classroom == nil {
		return nil, errors.NewNotFoundError("classroom with code", normalized)
	}

	err = s.classroomRepo.Enroll(ctx, models.Enrollment{
		ClassroomID: classroom.ID,
		StudentID:   studentID,
		EnrolledAt:  s.clock.now(),
	})
	if stderrors.Is(err, repository.ErrDuplicate) {
		return nil, errors.NewConflictError("already enrolled in this classroom")
	}
	if err != nil {
		log.Error("failed to enroll student: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("student joined classroom: student_id=%d classroom_id=%d", studentID, classroom.ID)
	return classroom, nil
}

func (s *classroomService) ListClassrooms(ctx context.Context, profileID int64) ([]models.ClassroomSummary, error) {
	log := logger.FromContext(ctx)

	p, err := s.profile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var rooms []models.ClassroomSummary
	if p.IsTeacher() {
		rooms, err = s.classroomRepo.ListByTeacher(ctx, profileID)
	} else {
		rooms, err = s.classroomRepo.ListByStudent(ctx, profileID)
	}
	if err != nil {
		log.Error("failed to list classrooms: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rooms == nil {
		rooms = []models.ClassroomSummary{}
	}
	return rooms, nil
}

func dominantStyles(students []models.ClassroomStudent) []vark.Style {
	styles := make([]vark.Style, 0, len(students))
	for _, st := range students {
		if st.DominantStyle != "" {
			styles = append(styles, st.DominantStyle)
		}
	}
	return styles
}

func (s *classroomService) GetInsights(ctx context.Context, teacherID, classroomID int64) (*models.ClassroomInsights, error) {
	log := logger.FromContext(ctx)

	if _, err := s.requireTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	classroom, err := s.classroomRepo.Get(ctx, classroomID)
	if err != nil {
		log.Error("failed to get classroom: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if classroom == nil {
		return nil, errors.NewNotFoundError("classroom", classroomID)
	}
	if classroom.TeacherID != teacherID {
		return nil, errors.NewForbiddenError("classroom belongs to another teacher")
	}

	students, err := s.classroomRepo.Students(ctx, classroomID)
	if err != nil {
		log.Error("failed to list classroom students: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if students == nil {
		students = []models.ClassroomStudent{}
	}

	return &models.ClassroomInsights{
		Classroom:    *classroom,
		Students:     students,
		Distribution: vark.Distribute(dominantStyles(students), len(students)),
	}, nil
}

func (s *classroomService) GetTeacherAnalytics(ctx context.Context, teacherID int64) (*models.TeacherAnalytics, error) {
	log := logger.FromContext(ctx)

	if _, err := s.requireTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	rooms, err := s.classroomRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		log.Error("failed to list classrooms: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rooms == nil {
		rooms = []models.ClassroomSummary{}
	}
	students, err := s.classroomRepo.TeacherStudents(ctx, teacherID)
	if err != nil {
		log.Error("failed to list teacher students: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.TeacherAnalytics{
		Classrooms:   rooms,
		Distribution: vark.Distribute(dominantStyles(students), len(students)),
	}, nil
}
