package car

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarIsInactiveAndUnpersisted(t *testing.T) {
	c := New("BMW", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Spain")

	assert.False(t, c.Status)
	assert.False(t, c.IsPersisted())
	assert.True(t, c.CreatedAt.IsZero())
}

func TestOnCreateStampsBothTimestamps(t *testing.T) {
	c := New("BMW", time.Now(), "Spain")
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	c.OnCreate(now)

	assert.Equal(t, now, c.CreatedAt.Time)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

func TestOnUpdateNeverPrecedesCreatedAt(t *testing.T) {
	c := New("BMW", time.Now(), "Spain")
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.OnCreate(created)

	c.OnUpdate(created.Add(time.Minute))
	assert.Equal(t, created.Add(time.Minute), c.UpdatedAt.Time)
	assert.Equal(t, created, c.CreatedAt.Time)

	// clock skew
	c.OnUpdate(created.Add(-time.Hour))
	assert.Equal(t, created, c.UpdatedAt.Time)
	assert.False(t, c.UpdatedAt.Before(c.CreatedAt.Time))
}

func TestActivateIsOneWay(t *testing.T) {
	c := New("BMW", time.Now(), "Spain")

	c.Activate()
	c.Activate()

	assert.True(t, c.Status)
}

func TestCarJSON(t *testing.T) {
	var c Car
	require.NoError(t, json.Unmarshal([]byte(`{"brand":"BMW","registration":"2024-01-01T00:00:00","country":"Spain"}`), &c))

	assert.Equal(t, int64(0), c.ID)
	assert.Equal(t, "BMW", c.Brand)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.Registration.Time)
	assert.False(t, c.Status)

	out, err := json.Marshal(&c)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "2024-01-01T00:00:00Z", fields["registration"])
	assert.Nil(t, fields["created_at"])

	c.ID = 9
	out, err = json.Marshal(&c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":9`)
}
