package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-scheduler/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, includeInactive bool) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Retire(ctx context.Context, id string, updatedBy string) error
	CountActive(ctx context.Context) (int64, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var c model.Course
	err := r.db.WithContext(ctx).Where("course_id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) List(ctx context.Context, includeInactive bool) ([]model.Course, error) {
	var list []model.Course
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("status = ?", model.StatusActive)
	}
	err := db.Order("code ASC").Find(&list).Error
	return list, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Retire(ctx context.Context, id string, updatedBy string) error {
	return retire(ctx, r.db, &model.Course{}, "course_id", id, updatedBy)
}

func (r *courseRepo) CountActive(ctx context.Context) (int64, error) {
	return countActive(ctx, r.db, &model.Course{})
}
