package service

import (
	"fmt"
	"strconv"
	"strings"
)

// LabAssistantIDPrefix 某年份的工号前缀，如 LA2024
func LabAssistantIDPrefix(year int) string {
	return fmt.Sprintf("LA%d", year)
}

// NextLabAssistantID 计算下一个助教工号 LA<year><seq>
//
// 只统计前缀为 LA<year> 且后缀为至少 3 位纯数字的工号，取最大序号加 1，
// 序号至少补足 3 位。超过 999 后继续递增为 4 位，保持单调。
// 调用方需传入全部历史工号（含已停用），停用工号不会被复用。
func NextLabAssistantID(existing []string, year int) string {
	prefix := LabAssistantIDPrefix(year)

	maxSeq := 0
	for _, id := range existing {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok || len(suffix) < 3 || !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > maxSeq {
			maxSeq = n
		}
	}

	return fmt.Sprintf("%s%03d", prefix, maxSeq+1)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
