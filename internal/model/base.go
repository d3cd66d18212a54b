package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── PostgreSQL TEXT[] 自定义类型 ──

// StringSet 对应 PostgreSQL TEXT[] 类型，实现 GORM Scanner/Valuer 接口。
// 元素去重、去空白，保持首次出现的顺序。
type StringSet []string

// NewStringSet 规范化构造
func NewStringSet(items ...string) StringSet {
	seen := make(map[string]struct{}, len(items))
	set := make(StringSet, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		set = append(set, it)
	}
	return set
}

// Contains 判断是否包含元素
func (s StringSet) Contains(item string) bool {
	for _, it := range s {
		if it == item {
			return true
		}
	}
	return false
}

// Scan 将 PostgreSQL 返回的 {a,"b c"} 文本解析为 []string。
func (s *StringSet) Scan(src interface{}) error {
	if src == nil {
		*s = StringSet{}
		return nil
	}
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("StringSet.Scan: unsupported type %T", src)
	}

	if len(raw) < 2 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		return fmt.Errorf("StringSet.Scan: invalid array literal %q", raw)
	}
	body := raw[1 : len(raw)-1]

	var (
		items   []string
		cur     strings.Builder
		quoted  bool
		escaped bool
		inQuote bool
	)
	flush := func() {
		val := cur.String()
		if quoted || !strings.EqualFold(val, "NULL") {
			items = append(items, val)
		}
		cur.Reset()
		quoted = false
	}
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case escaped:
			cur.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			inQuote = !inQuote
			quoted = true
		case ch == ',' && !inQuote:
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	if inQuote || escaped {
		return fmt.Errorf("StringSet.Scan: unterminated element in %q", raw)
	}
	if body != "" {
		flush()
	}

	*s = NewStringSet(items...)
	return nil
}

// Value 将 []string 序列化为 PostgreSQL {"a","b c"} 文本，元素统一加引号。
func (s StringSet) Value() (driver.Value, error) {
	parts := make([]string, len(s))
	for i, it := range s {
		esc := strings.ReplaceAll(it, `\`, `\\`)
		esc = strings.ReplaceAll(esc, `"`, `\"`)
		parts[i] = `"` + esc + `"`
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
// CreatedBy/UpdatedBy 为身份服务中的用户 ID
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:varchar(64)"                   json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:varchar(64)"                   json:"updated_by,omitempty"`
}

// VersionedModel 支持乐观锁的模型
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}
