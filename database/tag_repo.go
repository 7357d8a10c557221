package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags from the database
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}

// FindOrCreateByName returns the tag with the given name, creating it if
// it does not exist yet. Tag names are unique.
func (r *TagRepo) FindOrCreateByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where(models.Tag{Name: name}).
		Attrs(models.Tag{ID: uuid.New()}).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes a tag from the database by id
func (r *TagRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Tag{}, "id = ?", id).Error
}
