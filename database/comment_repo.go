package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByProject returns a project's comments, newest first
func (r *CommentRepo) FindByProject(projectID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

// FindByIDForProject returns the comment with the given id only if it
// belongs to the given project. A comment reached through the wrong
// project is treated the same as a missing one.
func (r *CommentRepo) FindByIDForProject(id, projectID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.
		Where("id = ? AND project_id = ?", id, projectID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// CountByProject returns the number of comments on a project
func (r *CommentRepo) CountByProject(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update updates an existing comment in the database
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment from the database by id
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
