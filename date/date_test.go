package date

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	// usually time.Time are not comparable (there is a pointer for the timezone) this
	// tests also checks that the property remain true
	assert.Equal(t, d1.time(), d2.time())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, 7, 1)},
		{in: "2025-7-1", want: New(2025, 7, 1)},
		{in: "2024-02-29", want: New(2024, 2, 29)},
		{in: "", wantErr: true},
		{in: "01/07/2025", wantErr: true},
		{in: "empty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	assert.Equal(t, "2025-03-01", New(2025, 2, 29).String())
	assert.Equal(t, "2024-12-31", New(2025, 1, 0).String())
}

func TestSub(t *testing.T) {
	from := New(2023, 1, 1)
	assert.Equal(t, 365, New(2024, 1, 1).Sub(from))
	assert.Equal(t, 731, New(2025, 1, 1).Sub(from))
	assert.Equal(t, -1, from.Add(-1).Sub(from))
	assert.Equal(t, 0, from.Sub(from))
}

func TestFixedClock(t *testing.T) {
	d := New(2025, 10, 19)
	assert.Equal(t, d, Fixed(d).Today())
	assert.False(t, System.Today().IsZero())
}

func TestJSON(t *testing.T) {
	d := New(2025, 7, 1)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-07-01"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-7-1"`), &back))
	assert.Equal(t, d, back)
}
