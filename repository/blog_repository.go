package repository

import (
	"blog-platform/pkg/models"

	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(blog *models.Blog) error
	GetByID(id string) (*models.Blog, error)
	List() ([]*models.Blog, error)
	Delete(id string) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

func (r *blogRepository) GetByID(id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List() ([]*models.Blog, error) {
	var blogs []*models.Blog
	if err := r.db.Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

// Delete removes one record. Deleting an id that does not exist is an
// error: the store reports nothing was affected and callers surface it.
func (r *blogRepository) Delete(id string) error {
	result := r.db.Delete(&models.Blog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
