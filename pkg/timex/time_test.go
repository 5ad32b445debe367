package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	tt := Time(time.Date(2025, 6, 1, 12, 30, 45, 0, time.Local))

	data, err := json.Marshal(tt)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01 12:30:45"`, string(data))

	// 零值时间序列化为空串而不是 0001-01-01
	data, err = json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	var tt Time
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01 12:30:45"`), &tt))
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 45, 0, time.Local), tt.Time())

	// 空串与 null 都还原成零值
	require.NoError(t, json.Unmarshal([]byte(`""`), &tt))
	assert.True(t, tt.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &tt))
	assert.True(t, tt.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"06/01/2025"`), &tt))
}

func TestDriverValue(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)

	v, err := Time(now).Value()
	require.NoError(t, err)
	assert.Equal(t, now, v)

	// 零值时间落库为 NULL
	v, err = Time{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestScan(t *testing.T) {
	want := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)

	var tt Time
	require.NoError(t, tt.Scan(want))
	assert.Equal(t, want, tt.Time())

	require.NoError(t, tt.Scan("2025-06-01 08:00:00"))
	assert.Equal(t, want, tt.Time())

	require.NoError(t, tt.Scan([]byte("2025-06-01 08:00:00")))
	assert.Equal(t, want, tt.Time())

	require.NoError(t, tt.Scan(nil))
	assert.True(t, tt.IsZero())

	assert.Error(t, tt.Scan(12345))
}

func TestStringUsesTimeFormat(t *testing.T) {
	tt := Time(time.Date(2025, 6, 1, 12, 30, 45, 0, time.Local))
	assert.Equal(t, "2025-06-01 12:30:45", tt.String())
}
