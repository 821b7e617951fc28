package project

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, project *Project) (*Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id int) (*Project, error)
	Update(ctx context.Context, project *Project) error
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

func (r *repository) Create(ctx context.Context, project *Project) (*Project, error) {
	_, err := r.db.NewInsert().Model(project).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := r.db.NewSelect().Model(&projects).Scan(ctx)
	return projects, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Project, error) {
	project := new(Project)
	err := r.db.NewSelect().Model(project).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (r *repository) Update(ctx context.Context, project *Project) error {
	result, err := r.db.NewUpdate().Model(project).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes a project and detaches its students in one transaction.
// Students are never deleted with their project, only unlinked.
func (r *repository) Delete(ctx context.Context, id int) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Table("students").
			Set("project_id = NULL").
			Where("project_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		result, err := tx.NewDelete().Model(&Project{ID: id}).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}
