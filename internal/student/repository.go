package student

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	GetAll(ctx context.Context) ([]Student, error)
	GetByID(ctx context.Context, id int) (*Student, error)
	GetByProject(ctx context.Context, projectID int) ([]Student, error)
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	_, err := r.db.NewInsert().Model(student).Returning("*").Exec(ctx)
	if err != nil {
		if isIntegrityViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return student, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Student, error) {
	var students []Student
	err := r.db.NewSelect().Model(&students).Scan(ctx)
	return students, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Student, error) {
	student := new(Student)
	err := r.db.NewSelect().Model(student).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// GetByProject resolves the project -> students association on demand.
func (r *repository) GetByProject(ctx context.Context, projectID int) ([]Student, error) {
	var students []Student
	err := r.db.NewSelect().
		Model(&students).
		Where("project_id = ?", projectID).
		Scan(ctx)
	return students, err
}

func (r *repository) Update(ctx context.Context, student *Student) error {
	result, err := r.db.NewUpdate().Model(student).WherePK().Exec(ctx)
	if err != nil {
		if isIntegrityViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	student := &Student{ID: id}
	result, err := r.db.NewDelete().Model(student).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// isIntegrityViolation reports whether err is a Postgres constraint failure,
// in practice the unique index on students.email.
func isIntegrityViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.IntegrityViolation()
}
