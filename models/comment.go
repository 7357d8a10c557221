package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a visitor comment on a project. Exactly one of AccountID and
// AuthorName is populated: comments from signed-in accounts carry the
// account reference and an empty AuthorName, comments from session
// identities carry the free-text AuthorName and a nil AccountID.
type Comment struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID  uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_comment_project_created,priority:1;constraint:OnDelete:CASCADE"`
	AccountID  *uuid.UUID `json:"account_id,omitempty" db:"account_id" gorm:"type:uuid;index:idx_comment_account_id"`
	AuthorName string     `json:"author_name,omitempty" db:"author_name" gorm:"type:text;not null;default:''"`
	Content    string     `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at" gorm:"not null;index:idx_comment_project_created,priority:2,sort:desc"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at" gorm:"not null"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}
