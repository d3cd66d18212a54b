package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-scheduler/internal/model"
)

// SectionRepository 教学班数据访问接口
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	// GetByID 查询教学班，附带其 active 分组
	GetByID(ctx context.Context, id string) (*model.Section, error)
	List(ctx context.Context, includeInactive bool) ([]model.Section, error)
	Update(ctx context.Context, section *model.Section) error
	Retire(ctx context.Context, id string, updatedBy string) error
}

type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepo 创建 SectionRepository 实例
func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Omit("Groups").Create(section).Error
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	var s model.Section
	err := r.db.WithContext(ctx).
		Preload("Groups", "status = ?", model.StatusActive).
		Where("section_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sectionRepo) List(ctx context.Context, includeInactive bool) ([]model.Section, error) {
	var list []model.Section
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("status = ?", model.StatusActive)
	}
	err := db.Preload("Groups", "status = ?", model.StatusActive).
		Order("year ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *sectionRepo) Update(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Omit("Groups").Save(section).Error
}

func (r *sectionRepo) Retire(ctx context.Context, id string, updatedBy string) error {
	return retire(ctx, r.db, &model.Section{}, "section_id", id, updatedBy)
}

// GroupRepository 实验分组数据访问接口
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	ListBySection(ctx context.Context, sectionID string, includeInactive bool) ([]model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	Retire(ctx context.Context, id string, updatedBy string) error
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo 创建 GroupRepository 实例
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var g model.Group
	err := r.db.WithContext(ctx).Where("group_id = ?", id).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) ListBySection(ctx context.Context, sectionID string, includeInactive bool) ([]model.Group, error) {
	var list []model.Group
	db := r.db.WithContext(ctx).Where("section_id = ?", sectionID)
	if !includeInactive {
		db = db.Where("status = ?", model.StatusActive)
	}
	err := db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *groupRepo) Update(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *groupRepo) Retire(ctx context.Context, id string, updatedBy string) error {
	return retire(ctx, r.db, &model.Group{}, "group_id", id, updatedBy)
}
