package repository

import (
	"github.com/quizdesk/classroom/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindBySlug(slug string) (*model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	if err := r.db.Where("slug = ?", slug).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}
