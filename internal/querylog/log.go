// Package querylog keeps an append-only record of search requests behind
// its own snapshot store, separate from the directory corpus.
package querylog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edurank/teacher-directory-api/internal/models"
	"github.com/edurank/teacher-directory-api/internal/snapshot"
)

// Log is a single-writer search-request journal.
type Log struct {
	mu     sync.Mutex
	snap   snapshot.Store
	data   models.QueryLog
	logger *zap.Logger
	now    func() time.Time
}

// Options wires logging and the clock.
type Options struct {
	Logger *zap.Logger
	Now    func() time.Time
}

// New loads the persisted log, starting empty when the backend has none.
func New(ctx context.Context, snap snapshot.Store, opts Options) (*Log, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &Log{snap: snap, logger: opts.Logger, now: opts.Now}

	err := snap.Load(ctx, &l.data)
	switch {
	case errors.Is(err, snapshot.ErrEmpty):
		l.data = models.QueryLog{NextID: 1}
	case err != nil:
		return nil, fmt.Errorf("load query log snapshot: %w", err)
	}
	if l.data.NextID < 1 {
		l.data.NextID = 1
	}
	return l, nil
}

// Record appends one request and persists the log. A failed write keeps
// the in-memory log unchanged.
func (l *Log) Record(ctx context.Context, userID, query string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.data.Clone()
	id := next.NextID
	next.Records = append(next.Records, models.QueryRecord{
		ID:     id,
		UserID: userID,
		Query:  query,
		Date:   l.now().Format(models.QueryDateLayout),
	})
	next.NextID++

	if err := l.snap.Save(ctx, next); err != nil {
		return 0, fmt.Errorf("persist query log: %w", err)
	}
	l.data = next
	return id, nil
}

// Recent returns up to limit records, newest first.
func (l *Log) Recent(limit int) []models.QueryRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.data.Records)
	if limit <= 0 || limit > n {
		limit = n
	}
	result := make([]models.QueryRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, l.data.Records[i])
	}
	return result
}

// Count returns the number of recorded requests.
func (l *Log) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.data.Records)
}
