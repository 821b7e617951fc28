package project

import (
	"context"
	"errors"

	"cohort-service/internal/messaging"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service interface {
	CreateProject(ctx context.Context, project *Project) (*Project, error)
	GetAllProjects(ctx context.Context) ([]Project, error)
	GetProjectByID(ctx context.Context, id int) (*Project, error)
	UpdateProject(ctx context.Context, project *Project) (*Project, error)
	DeleteProject(ctx context.Context, id int) error
}

type service struct {
	repo   Repository
	events *messaging.Producer
}

// NewService creates the project service. events may be nil when no broker
// is configured.
func NewService(repo Repository, events *messaging.Producer) Service {
	return &service{
		repo:   repo,
		events: events,
	}
}

func (s *service) CreateProject(ctx context.Context, project *Project) (*Project, error) {
	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	s.events.Publish(messaging.Event{Entity: "project", Action: "created", ID: created.ID})
	return created, nil
}

func (s *service) GetAllProjects(ctx context.Context) ([]Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetProjectByID(ctx context.Context, id int) (*Project, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProject(ctx context.Context, project *Project) (*Project, error) {
	if project.ID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	// Reload so the response carries exactly what is stored.
	updated, err := s.repo.GetByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(messaging.Event{Entity: "project", Action: "updated", ID: updated.ID})
	return updated, nil
}

func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(messaging.Event{Entity: "project", Action: "deleted", ID: id})
	return nil
}
