package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-scheduler/internal/model"
)

// LabAssistantRepository 实验助教数据访问接口
type LabAssistantRepository interface {
	Create(ctx context.Context, assistant *model.LabAssistant) error
	GetByID(ctx context.Context, id string) (*model.LabAssistant, error)
	// GetActiveByLabAssistantID 按业务工号查询 active 助教
	GetActiveByLabAssistantID(ctx context.Context, labAssistantID string) (*model.LabAssistant, error)
	// ExistsLabAssistantID 业务工号是否被任意记录（含 inactive）占用
	ExistsLabAssistantID(ctx context.Context, labAssistantID string) (bool, error)
	// ListLabAssistantIDs 列出指定前缀的全部业务工号（含 inactive），供工号分配使用
	ListLabAssistantIDs(ctx context.Context, prefix string) ([]string, error)
	List(ctx context.Context, includeInactive bool) ([]model.LabAssistant, error)
	Update(ctx context.Context, assistant *model.LabAssistant) error
	UpdatePassword(ctx context.Context, id, passwordHash, updatedBy string) error
	Retire(ctx context.Context, id string, updatedBy string) error
	CountActive(ctx context.Context) (int64, error)
}

type labAssistantRepo struct {
	db *gorm.DB
}

// NewLabAssistantRepo 创建 LabAssistantRepository 实例
func NewLabAssistantRepo(db *gorm.DB) LabAssistantRepository {
	return &labAssistantRepo{db: db}
}

func (r *labAssistantRepo) Create(ctx context.Context, assistant *model.LabAssistant) error {
	return r.db.WithContext(ctx).Create(assistant).Error
}

func (r *labAssistantRepo) GetByID(ctx context.Context, id string) (*model.LabAssistant, error) {
	var a model.LabAssistant
	err := r.db.WithContext(ctx).Where("assistant_id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *labAssistantRepo) GetActiveByLabAssistantID(ctx context.Context, labAssistantID string) (*model.LabAssistant, error) {
	var a model.LabAssistant
	err := r.db.WithContext(ctx).
		Where("lab_assistant_id = ? AND status = ?", labAssistantID, model.StatusActive).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *labAssistantRepo) ExistsLabAssistantID(ctx context.Context, labAssistantID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.LabAssistant{}).
		Where("lab_assistant_id = ?", labAssistantID).
		Count(&n).Error
	return n > 0, err
}

func (r *labAssistantRepo) ListLabAssistantIDs(ctx context.Context, prefix string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.LabAssistant{}).
		Where("lab_assistant_id LIKE ?", prefix+"%").
		Pluck("lab_assistant_id", &ids).Error
	return ids, err
}

func (r *labAssistantRepo) List(ctx context.Context, includeInactive bool) ([]model.LabAssistant, error) {
	var list []model.LabAssistant
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("status = ?", model.StatusActive)
	}
	err := db.Order("lab_assistant_id ASC").Find(&list).Error
	return list, err
}

func (r *labAssistantRepo) Update(ctx context.Context, assistant *model.LabAssistant) error {
	return r.db.WithContext(ctx).
		Model(&model.LabAssistant{}).
		Where("assistant_id = ?", assistant.AssistantID).
		Updates(map[string]interface{}{
			"username":   assistant.Username,
			"first_name": assistant.FirstName,
			"last_name":  assistant.LastName,
			"email":      assistant.Email,
			"department": assistant.Department,
			"updated_by": assistant.UpdatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *labAssistantRepo) UpdatePassword(ctx context.Context, id, passwordHash, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.LabAssistant{}).
		Where("assistant_id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_by":    updatedBy,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

func (r *labAssistantRepo) Retire(ctx context.Context, id string, updatedBy string) error {
	return retire(ctx, r.db, &model.LabAssistant{}, "assistant_id", id, updatedBy)
}

func (r *labAssistantRepo) CountActive(ctx context.Context) (int64, error) {
	return countActive(ctx, r.db, &model.LabAssistant{})
}
