package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-reservations/events"
	"hotel-reservations/logger"
	"hotel-reservations/metrics"
	"hotel-reservations/models"
)

// fixedToday is the "current" instant for all service tests.
var fixedToday = time.Date(2025, time.January, 5, 9, 30, 0, 0, time.Local)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reservations.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// tickingClock returns strictly increasing instants so created_at ordering
// is deterministic.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func newTestStore(t *testing.T) *GormReservationStore {
	t.Helper()
	return NewGormReservationStore(openTestDB(t)).WithClock(tickingClock(fixedToday))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReservationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Events() []events.ReservationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.ReservationEvent(nil), p.events...)
}

type serviceFixture struct {
	svc       *ReservationService
	store     *GormReservationStore
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func newServiceFixture(t *testing.T, strict bool) serviceFixture {
	t.Helper()

	store := newTestStore(t)
	pub := &recordingPublisher{}
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	svc := NewReservationService(store, pub, m, logger.NewNop(), strict).
		WithClock(func() time.Time { return fixedToday })

	return serviceFixture{svc: svc, store: store, publisher: pub, metrics: m}
}

func validInput() models.CreateReservationInput {
	return models.CreateReservationInput{
		GuestFirstName: "Ana",
		GuestLastName:  "Gomez",
		Email:          "ana@example.com",
		Phone:          "3001234567",
		CheckInDate:    "2025-01-10",
		CheckOutDate:   "2025-01-12",
		RoomType:       "double",
		OccupantCount:  "2",
	}
}
