package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "zone-less date-time is read as UTC",
			input:    "2024-01-01T00:00:00",
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "zone-less with fraction",
			input:    "2024-03-05T10:20:30.250",
			expected: time.Date(2024, 3, 5, 10, 20, 30, 250_000_000, time.UTC),
		},
		{
			name:     "zone-less without seconds",
			input:    "2024-03-05T10:20",
			expected: time.Date(2024, 3, 5, 10, 20, 0, 0, time.UTC),
		},
		{
			name:     "offset is normalised to UTC",
			input:    "2024-01-01T02:00:00+02:00",
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "date only is rejected",
			input:   "2024-01-01",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDateTimeJSON(t *testing.T) {
	var payload struct {
		Registration DateTime `json:"registration"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"registration":"2024-01-01T00:00:00"}`), &payload))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), payload.Registration.Time)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"registration":"2024-01-01T00:00:00Z"}`, string(out))
}

func TestDateTimeJSONEmpty(t *testing.T) {
	var payload struct {
		Registration DateTime `json:"registration"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"registration":null}`), &payload))
	assert.True(t, payload.Registration.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"registration":""}`), &payload))
	assert.True(t, payload.Registration.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"registration":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"registration":20240101}`), &payload))
}

func TestDateTimeScanAndValue(t *testing.T) {
	ts := time.Date(2023, 7, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	var d DateTime
	require.NoError(t, d.Scan(ts))
	assert.Equal(t, time.UTC, d.Location())
	assert.True(t, ts.Equal(d.Time))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, ts.UTC(), v)

	require.NoError(t, d.Scan([]byte("2023-07-01T10:00:00")))
	assert.True(t, ts.Equal(d.Time))

	require.NoError(t, d.Scan(nil))
	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, d.Scan(42))
}
