package student

import (
	"github.com/uptrace/bun"
)

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID                 int      `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull" json:"name"`
	Email              string   `bun:"email,notnull,unique" json:"email"`
	LinkedinProfile    *string  `bun:"linkedin_profile" json:"linkedin_profile"`
	AboutYou           *string  `bun:"about_you" json:"about_you"`
	Specialisation     *string  `bun:"specialisation" json:"specialisation"`
	CGPA               *float64 `bun:"cgpa" json:"cgpa"`
	FavouriteLanguage  *string  `bun:"favourite_language" json:"favourite_language"`
	FavouriteFramework *string  `bun:"favourite_framework" json:"favourite_framework"`
	IsLeader           bool     `bun:"is_leader,notnull,default:false" json:"is_leader"`

	// Nullable reference to projects.id. Validated by the service layer on
	// create and update; deleting a project sets it back to NULL.
	ProjectID *int `bun:"project_id" json:"project_id"`
}

// Input is the request payload for create and update. Updates are full
// replacements: omitted optional fields reset the stored column to NULL
// (or false for is_leader), never keep the previous value.
type Input struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	LinkedinProfile    *string  `json:"linkedin_profile"`
	AboutYou           *string  `json:"about_you"`
	Specialisation     *string  `json:"specialisation"`
	CGPA               *float64 `json:"cgpa"`
	FavouriteLanguage  *string  `json:"favourite_language"`
	FavouriteFramework *string  `json:"favourite_framework"`
	IsLeader           bool     `json:"is_leader"`
	ProjectID          *int     `json:"project_id"`
}

func (in *Input) Row() *Student {
	return &Student{
		Name:               in.Name,
		Email:              in.Email,
		LinkedinProfile:    in.LinkedinProfile,
		AboutYou:           in.AboutYou,
		Specialisation:     in.Specialisation,
		CGPA:               in.CGPA,
		FavouriteLanguage:  in.FavouriteLanguage,
		FavouriteFramework: in.FavouriteFramework,
		IsLeader:           in.IsLeader,
		ProjectID:          in.ProjectID,
	}
}
