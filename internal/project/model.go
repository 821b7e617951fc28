package project

import (
	"github.com/uptrace/bun"
)

type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID                 int    `bun:"id,pk,autoincrement" json:"id"`
	ProjectName        string `bun:"project_name,notnull" json:"project_name"`
	ProjectDescription string `bun:"project_description" json:"project_description"`
}

// Input is the request payload for create and update. Updates are full
// replacements: every column is overwritten from the payload.
type Input struct {
	ProjectName        string `json:"project_name" validate:"required"`
	ProjectDescription string `json:"project_description"`
}

func (in *Input) Row() *Project {
	return &Project{
		ProjectName:        in.ProjectName,
		ProjectDescription: in.ProjectDescription,
	}
}
