package student

import (
	"context"
	"errors"
	"fmt"

	"cohort-service/internal/messaging"
	"cohort-service/internal/project"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmailTaken      = errors.New("email already registered")
)

// ProjectReferenceError reports a project_id that does not resolve to an
// existing project. The offending id is part of the client-facing message.
type ProjectReferenceError struct {
	ProjectID int
}

func (e *ProjectReferenceError) Error() string {
	return fmt.Sprintf("project %d does not exist", e.ProjectID)
}

type Service interface {
	CreateStudent(ctx context.Context, student *Student) (*Student, error)
	GetAllStudents(ctx context.Context) ([]Student, error)
	GetStudentByID(ctx context.Context, id int) (*Student, error)
	UpdateStudent(ctx context.Context, student *Student) (*Student, error)
	DeleteStudent(ctx context.Context, id int) error
	GetProjectStudents(ctx context.Context, projectID int) (*project.Project, []Student, error)
}

type service struct {
	repo     Repository
	projects project.Service
	events   *messaging.Producer
}

// NewService creates the student service. projects is consulted to validate
// project_id references; events may be nil when no broker is configured.
func NewService(repo Repository, projects project.Service, events *messaging.Producer) Service {
	return &service{
		repo:     repo,
		projects: projects,
		events:   events,
	}
}

func (s *service) CreateStudent(ctx context.Context, student *Student) (*Student, error) {
	if err := s.checkProjectReference(ctx, student.ProjectID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, err
	}
	s.events.Publish(messaging.Event{Entity: "student", Action: "created", ID: created.ID})
	return created, nil
}

func (s *service) GetAllStudents(ctx context.Context) ([]Student, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetStudentByID(ctx context.Context, id int) (*Student, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStudent(ctx context.Context, student *Student) (*Student, error) {
	if student.ID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := s.checkProjectReference(ctx, student.ProjectID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	// Reload so the response carries exactly what is stored.
	updated, err := s.repo.GetByID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(messaging.Event{Entity: "student", Action: "updated", ID: updated.ID})
	return updated, nil
}

func (s *service) DeleteStudent(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(messaging.Event{Entity: "student", Action: "deleted", ID: id})
	return nil
}

// GetProjectStudents returns a project together with its students, resolved
// eagerly. A project with no students yields an empty slice, not an error.
func (s *service) GetProjectStudents(ctx context.Context, projectID int) (*project.Project, []Student, error) {
	p, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	students, err := s.repo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []Student{}
	}
	return p, students, nil
}

func (s *service) checkProjectReference(ctx context.Context, projectID *int) error {
	if projectID == nil {
		return nil
	}
	if _, err := s.projects.GetProjectByID(ctx, *projectID); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) || errors.Is(err, project.ErrInvalidInput) {
			return &ProjectReferenceError{ProjectID: *projectID}
		}
		return err
	}
	return nil
}
