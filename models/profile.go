package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile stores display info for account commenters. AccountID is the
// identifier issued by the auth subsystem; accounts themselves live there.
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	AccountID   uuid.UUID `json:"account_id" db:"account_id" gorm:"type:uuid;not null;uniqueIndex:idx_profile_account_id"`
	DisplayName string    `json:"display_name" db:"display_name" gorm:"type:text;not null;default:''"`
	JoinedAt    time.Time `json:"joined_at" db:"joined_at" gorm:"not null"`
}
