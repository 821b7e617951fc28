package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	projectsCreated metric.Int64Counter
	projectsViewed  metric.Int64Counter
	projectsListed  metric.Int64Counter
	projectsUpdated metric.Int64Counter
	projectsDeleted metric.Int64Counter
	studentsCreated metric.Int64Counter
	studentsViewed  metric.Int64Counter
	studentsListed  metric.Int64Counter
	studentsUpdated metric.Int64Counter
	studentsDeleted metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	var err error
	counter := func(name, description, unit string) metric.Int64Counter {
		c, cerr := meter.Int64Counter(name,
			metric.WithDescription(description),
			metric.WithUnit(unit),
		)
		if cerr != nil && err == nil {
			err = cerr
		}
		return c
	}

	m := &Metrics{
		projectsCreated: counter("cohort_service.projects.created", "Total number of projects created", "{project}"),
		projectsViewed:  counter("cohort_service.projects.viewed", "Total number of single-project reads", "{view}"),
		projectsListed:  counter("cohort_service.projects.list_viewed", "Total number of times the project list was read", "{view}"),
		projectsUpdated: counter("cohort_service.projects.updated", "Total number of projects updated", "{project}"),
		projectsDeleted: counter("cohort_service.projects.deleted", "Total number of projects deleted", "{project}"),
		studentsCreated: counter("cohort_service.students.created", "Total number of students created", "{student}"),
		studentsViewed:  counter("cohort_service.students.viewed", "Total number of single-student reads", "{view}"),
		studentsListed:  counter("cohort_service.students.list_viewed", "Total number of times the student list was read", "{view}"),
		studentsUpdated: counter("cohort_service.students.updated", "Total number of students updated", "{student}"),
		studentsDeleted: counter("cohort_service.students.deleted", "Total number of students deleted", "{student}"),
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) RecordProjectCreated(ctx context.Context) {
	if m != nil && m.projectsCreated != nil {
		m.projectsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordProjectViewed(ctx context.Context) {
	if m != nil && m.projectsViewed != nil {
		m.projectsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordProjectsListed(ctx context.Context) {
	if m != nil && m.projectsListed != nil {
		m.projectsListed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordProjectUpdated(ctx context.Context) {
	if m != nil && m.projectsUpdated != nil {
		m.projectsUpdated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordProjectDeleted(ctx context.Context) {
	if m != nil && m.projectsDeleted != nil {
		m.projectsDeleted.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentCreated(ctx context.Context) {
	if m != nil && m.studentsCreated != nil {
		m.studentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentViewed(ctx context.Context) {
	if m != nil && m.studentsViewed != nil {
		m.studentsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentsListed(ctx context.Context) {
	if m != nil && m.studentsListed != nil {
		m.studentsListed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentUpdated(ctx context.Context) {
	if m != nil && m.studentsUpdated != nil {
		m.studentsUpdated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentDeleted(ctx context.Context) {
	if m != nil && m.studentsDeleted != nil {
		m.studentsDeleted.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
