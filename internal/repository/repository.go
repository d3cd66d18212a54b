package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	LabRoom      LabRoomRepository
	LabAssistant LabAssistantRepository
	Course       CourseRepository
	Section      SectionRepository
	Group        GroupRepository
	TimeSlot     TimeSlotRepository
	Assignment   AssignmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		LabRoom:      NewLabRoomRepo(db),
		LabAssistant: NewLabAssistantRepo(db),
		Course:       NewCourseRepo(db),
		Section:      NewSectionRepo(db),
		Group:        NewGroupRepo(db),
		TimeSlot:     NewTimeSlotRepo(db),
		Assignment:   NewAssignmentRepo(db),
	}
}

// BeginTx 开启事务，调用方负责 Commit / Rollback
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到事务的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction 在 SERIALIZABLE 事务中执行 fn，fn 返回错误即回滚
// 序列化失败（40001）原样返回，由调用方决定是否重试
//
// 未绑定数据库（单元测试中的 mock 聚合）时直接以自身执行 fn
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
