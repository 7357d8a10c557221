package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects with their tags and ordered images
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID with tags and ordered images
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// ReplaceTags sets the project's tag association to exactly the given tags.
func (r *ProjectRepo) ReplaceTags(project *models.Project, tags []models.Tag) error {
	return r.db.Model(project).Association("Tags").Replace(tags)
}

// Delete removes a project from the database by id, along with its
// comments, images and tag associations. Tag rows themselves survive;
// they are shared across projects.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Select(clause.Associations).Delete(&models.Project{ID: id}).Error
}
