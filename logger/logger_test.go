package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

type entry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recordingLogger) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level: level, msg: msg})
}

func (r *recordingLogger) Debug(msg string, _ ...interface{}) { r.add("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...interface{})  { r.add("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...interface{})  { r.add("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...interface{}) { r.add("error", msg) }
func (r *recordingLogger) Fatal(msg string, _ ...interface{}) { r.add("fatal", msg) }
func (r *recordingLogger) With(...interface{}) Logger         { return r }
func (r *recordingLogger) Sync() error                        { return nil }

func (r *recordingLogger) last(t *testing.T) entry {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.entries)
	return r.entries[len(r.entries)-1]
}

func newGormLogger(rec *recordingLogger) gormlogger.Interface {
	return gormlogger.New(GormWriter{Log: rec}, gormlogger.Config{
		SlowThreshold: 100 * time.Millisecond,
		LogLevel:      gormlogger.Info,
		Colorful:      false,
	})
}

func TestGormWriterLevels(t *testing.T) {
	ctx := context.Background()
	rec := &recordingLogger{}
	l := newGormLogger(rec)

	l.Error(ctx, "failed to connect %s", "db")
	assert.Equal(t, "error", rec.last(t).level)
	assert.Contains(t, rec.last(t).msg, "failed to connect db")

	l.Warn(ctx, "deprecated option")
	assert.Equal(t, "warn", rec.last(t).level)

	l.Info(ctx, "migrated")
	assert.Equal(t, "info", rec.last(t).level)
}

func TestGormWriterTraceLevels(t *testing.T) {
	ctx := context.Background()
	rec := &recordingLogger{}
	l := newGormLogger(rec)
	query := func() (string, int64) { return "SELECT * FROM reservations", 1 }

	l.Trace(ctx, time.Now(), query, errors.New("table is locked"))
	assert.Equal(t, "error", rec.last(t).level)
	assert.Contains(t, rec.last(t).msg, "table is locked")

	l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	assert.Equal(t, "warn", rec.last(t).level)
	assert.Contains(t, rec.last(t).msg, "SLOW SQL")

	l.Trace(ctx, time.Now(), query, nil)
	assert.Equal(t, "info", rec.last(t).level)
	assert.Contains(t, rec.last(t).msg, "SELECT * FROM reservations")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel(" DEBUG ").String())
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("loud").String())
}
