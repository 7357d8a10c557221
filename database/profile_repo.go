package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindByAccountID returns the profile for an account, if one exists
func (r *ProfileRepo) FindByAccountID(accountID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("account_id = ?", accountID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile for an account or updates its display name.
func (r *ProfileRepo) Upsert(profile *models.Profile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
	}).Create(profile).Error
}
