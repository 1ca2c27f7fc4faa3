package querylog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edurank/teacher-directory-api/internal/snapshot"
)

type memStore struct {
	payload []byte
}

func (m *memStore) Load(_ context.Context, dest interface{}) error {
	if m.payload == nil {
		return snapshot.ErrEmpty
	}
	return json.Unmarshal(m.payload, dest)
}

func (m *memStore) Save(_ context.Context, src interface{}) error {
	payload, err := json.Marshal(src)
	if err != nil {
		return err
	}
	m.payload = payload
	return nil
}

func TestLogRecordAssignsSequentialIDs(t *testing.T) {
	mem := &memStore{}
	log, err := New(context.Background(), mem, Options{
		Now: func() time.Time { return time.Date(2025, 9, 1, 15, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)

	id1, err := log.Record(context.Background(), "u1", "ivanov")
	require.NoError(t, err)
	id2, err := log.Record(context.Background(), "u2", "databases")
	require.NoError(t, err)

	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
	assert.Equal(t, 2, log.Count())

	recent := log.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "databases", recent[0].Query)
	assert.Equal(t, "01.09.2025 15:04:05", recent[0].Date)
}

func TestLogSurvivesReload(t *testing.T) {
	mem := &memStore{}
	log, err := New(context.Background(), mem, Options{})
	require.NoError(t, err)
	_, err = log.Record(context.Background(), "u1", "ivanov")
	require.NoError(t, err)

	reloaded, err := New(context.Background(), mem, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Count())

	id, err := reloaded.Record(context.Background(), "u2", "petrova")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestLogRecentNewestFirst(t *testing.T) {
	mem := &memStore{}
	log, err := New(context.Background(), mem, Options{})
	require.NoError(t, err)

	for _, q := range []string{"first", "second", "third"} {
		_, err := log.Record(context.Background(), "u", q)
		require.NoError(t, err)
	}

	recent := log.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "third", recent[0].Query)
	assert.Equal(t, "first", recent[2].Query)
}
