// Package timex 提供数据库与 JSON 友好的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat 序列化使用的时间格式
const TimeFormat = "2006-01-02 15:04:05"

// Time 是 time.Time 的别名类型，JSON 序列化为 "2006-01-02 15:04:05"，
// 可直接作为 gorm datetime 字段使用
// Time is an alias of time.Time that marshals to "2006-01-02 15:04:05"
// and satisfies the sql driver interfaces for gorm datetime columns.
type Time time.Time

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

// Time 转换回 time.Time
func (t Time) Time() time.Time {
	return time.Time(t)
}

// IsZero 判断是否为零值时间
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// Unix 返回秒级时间戳
func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

// UnixMilli 返回毫秒级时间戳
func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

// UnixMicro 返回微秒级时间戳
func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

// UnixNano 返回纳秒级时间戳
func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

// Format 按给定布局格式化
func (t Time) Format(layout string) string {
	return time.Time(t).Format(layout)
}

// String 实现 fmt.Stringer
func (t Time) String() string {
	return time.Time(t).Format(TimeFormat)
}

// MarshalJSON 实现 json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + time.Time(t).Format(TimeFormat) + `"`), nil
}

// UnmarshalJSON 实现 json.Unmarshaler
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := time.ParseInLocation(TimeFormat, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value 实现 driver.Valuer，零值时间写入 NULL
func (t Time) Value() (driver.Value, error) {
	if time.Time(t).IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan 实现 sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
		return nil
	case time.Time:
		*t = Time(value)
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(TimeFormat, string(value), time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	case string:
		parsed, err := time.ParseInLocation(TimeFormat, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	default:
		return fmt.Errorf("can not convert %v to timex.Time", v)
	}
}
