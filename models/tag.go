package models

import "github.com/google/uuid"

// Tag is a uniquely-named label shared across projects
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tag_name"`

	Projects []Project `json:"projects,omitempty" gorm:"many2many:project_tags"`
}
