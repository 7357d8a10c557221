package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio project with its metadata
type Project struct {
	ID          uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string         `json:"title" db:"title" gorm:"type:text;not null;unique"`
	Description string         `json:"description" db:"description" gorm:"type:text;not null"`
	Links       datatypes.JSON `json:"links,omitempty" db:"links" gorm:"type:jsonb"`
	Tags        []Tag          `json:"tags,omitempty" gorm:"many2many:project_tags;constraint:OnDelete:CASCADE"`
	Images      []ProjectImage `json:"images,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Comments    []Comment      `json:"comments,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
