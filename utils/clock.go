package utils

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DateLayout 接口中日期的格式
const DateLayout = "2006-01-02"

// EndOfDay "24:00"，只能作为时段的结束时刻
var EndOfDay = datatypes.NewTime(24, 0, 0, 0)

// ParseClock 解析 "HH:MM" 或 "HH:MM:SS" 格式的时刻，"24:00" 表示当天结束
func ParseClock(s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" || s == "24:00:00" {
		return EndOfDay, nil
	}
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", s)
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
}

// IsClock 判断字符串是否为合法时刻
func IsClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// ParseDate 解析 "YYYY-MM-DD" 格式的日期，统一使用UTC
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return datatypes.Date(t), nil
}

// FormatDate 将日期格式化为 "YYYY-MM-DD"
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// SameDay 两个日期是否为同一天
func SameDay(a, b datatypes.Date) bool {
	return FormatDate(a) == FormatDate(b)
}

// DateWithin 判断日期 d 是否位于 [from, to] 闭区间
func DateWithin(d, from, to datatypes.Date) bool {
	day := FormatDate(d)
	return day >= FormatDate(from) && day <= FormatDate(to)
}
