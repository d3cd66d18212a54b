package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
)

// ── 业务错误分类 ──
//
// 四类错误互不重叠，调用方可用 errors.Is 判断类别、errors.As 取出详情。

var (
	ErrValidation = errors.New("参数校验失败")
	ErrConflict   = errors.New("资源冲突")
	ErrNotFound   = errors.New("记录不存在")
	ErrStore      = errors.New("存储暂不可用")
)

// ValidationError 字段缺失或格式错误、引用实体不存在或已停用、分组与教学班不匹配等
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError 操作目标 id 不存在
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s不存在: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictDimension 冲突维度，仅作提示；两种冲突同等严重
type ConflictDimension string

const (
	DimensionRoom             ConflictDimension = "room"
	DimensionAssistant        ConflictDimension = "assistant"
	DimensionRoomAndAssistant ConflictDimension = "room_and_assistant"
)

// Conflict 一条与候选排课冲突的 active 记录
type Conflict struct {
	Assignment model.ScheduleAssignment
	Dimension  ConflictDimension
}

// ConflictError 候选排课与已有 active 记录冲突，携带完整冲突集
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("与 %d 条已有排课冲突", len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Entries 转换为响应结构
func (e *ConflictError) Entries() []dto.ConflictEntryResponse {
	return toConflictEntries(e.Conflicts)
}

// StoreError 存储不可用或事务中止，可由调用方重试
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: 存储错误: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// ── 内部辅助 ──

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// isDomainError 业务错误原样向上传递，不做存储层包装或重试
func isDomainError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
}

// lookupErr 查询目标记录失败时的错误翻译
func lookupErr(op, entity, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return storeErr(op, err)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
