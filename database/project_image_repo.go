package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ProjectImageRepo struct {
	db *gorm.DB
}

func NewProjectImageRepo(db *gorm.DB) *ProjectImageRepo {
	return &ProjectImageRepo{db}
}

// FindByProject returns a project's images in gallery order
func (r *ProjectImageRepo) FindByProject(projectID uuid.UUID) ([]*models.ProjectImage, error) {
	var images []*models.ProjectImage
	err := r.db.
		Where("project_id = ?", projectID).
		Order("position asc").
		Find(&images).Error
	return images, err
}

// Add inserts a new project image into the database
func (r *ProjectImageRepo) Add(image *models.ProjectImage) error {
	return r.db.Create(image).Error
}

// NextPosition returns the position for a new image appended to the
// project's gallery.
func (r *ProjectImageRepo) NextPosition(projectID uuid.UUID) (int, error) {
	var count int64
	err := r.db.Model(&models.ProjectImage{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return int(count), err
}

// Delete removes a project image from the database by id
func (r *ProjectImageRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectImage{}, "id = ?", id).Error
}
