package models

import "github.com/google/uuid"

// ProjectImage is one image in a project's ordered gallery. ObjectKey is
// the key of the uploaded object in the image bucket; serving the bytes
// is the CDN's problem, not ours.
type ProjectImage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_image_project_id;constraint:OnDelete:CASCADE"`
	ObjectKey string    `json:"object_key" db:"object_key" gorm:"type:text;not null"`
	Position  int       `json:"position" db:"position" gorm:"not null;default:0"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}
