package database

import (
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo      *ProjectRepo
	tagRepo          *TagRepo
	commentRepo      *CommentRepo
	projectImageRepo *ProjectImageRepo
	profileRepo      *ProfileRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:      NewProjectRepo(db),
		tagRepo:          NewTagRepo(db),
		commentRepo:      NewCommentRepo(db),
		projectImageRepo: NewProjectImageRepo(db),
		profileRepo:      NewProfileRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) ProjectImageRepo() *ProjectImageRepo {
	return d.projectImageRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

// AutoMigrate creates or updates the schema for every model this service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tag{},
		&models.Project{},
		&models.ProjectImage{},
		&models.Comment{},
		&models.Profile{},
	)
}
