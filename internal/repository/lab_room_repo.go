package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-scheduler/internal/model"
)

// LabRoomRepository 实验室数据访问接口
type LabRoomRepository interface {
	Create(ctx context.Context, room *model.LabRoom) error
	GetByID(ctx context.Context, id string) (*model.LabRoom, error)
	List(ctx context.Context, includeInactive bool) ([]model.LabRoom, error)
	Update(ctx context.Context, room *model.LabRoom) error
	Retire(ctx context.Context, id string, updatedBy string) error
	CountActive(ctx context.Context) (int64, error)
}

type labRoomRepo struct {
	db *gorm.DB
}

// NewLabRoomRepo 创建 LabRoomRepository 实例
func NewLabRoomRepo(db *gorm.DB) LabRoomRepository {
	return &labRoomRepo{db: db}
}

func (r *labRoomRepo) Create(ctx context.Context, room *model.LabRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *labRoomRepo) GetByID(ctx context.Context, id string) (*model.LabRoom, error) {
	var room model.LabRoom
	err := r.db.WithContext(ctx).Where("lab_room_id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *labRoomRepo) List(ctx context.Context, includeInactive bool) ([]model.LabRoom, error) {
	var rooms []model.LabRoom
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("status = ?", model.StatusActive)
	}
	err := db.Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *labRoomRepo) Update(ctx context.Context, room *model.LabRoom) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *labRoomRepo) Retire(ctx context.Context, id string, updatedBy string) error {
	return retire(ctx, r.db, &model.LabRoom{}, "lab_room_id", id, updatedBy)
}

func (r *labRoomRepo) CountActive(ctx context.Context) (int64, error) {
	return countActive(ctx, r.db, &model.LabRoom{})
}

// ── 通用软删除 / 计数 ──

// retire 将 active 记录置为 inactive；已是 inactive 时不做任何修改
func retire(ctx context.Context, db *gorm.DB, m interface{}, pk, id, updatedBy string) error {
	return db.WithContext(ctx).
		Model(m).
		Where(pk+" = ? AND status = ?", id, model.StatusActive).
		Updates(map[string]interface{}{
			"status":     model.StatusInactive,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func countActive(ctx context.Context, db *gorm.DB, m interface{}) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(m).Where("status = ?", model.StatusActive).Count(&n).Error
	return n, err
}
