package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-reservations/events"
	"hotel-reservations/logger"
	"hotel-reservations/metrics"
	"hotel-reservations/models"
	"hotel-reservations/utils"
)

// ReservationService ผูก validation -> store -> events ของแต่ละ operation
// ไม่มี state ระหว่าง request
type ReservationService struct {
	Store             ReservationStore
	Publisher         events.Publisher
	Metrics           *metrics.Metrics
	Log               logger.Logger
	StrictTransitions bool

	now func() time.Time
}

func NewReservationService(
	store ReservationStore,
	publisher events.Publisher,
	m *metrics.Metrics,
	log logger.Logger,
	strictTransitions bool,
) *ReservationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ReservationService{
		Store:             store,
		Publisher:         publisher,
		Metrics:           m,
		Log:               log,
		StrictTransitions: strictTransitions,
		now:               time.Now,
	}
}

// WithClock กำหนด "วันนี้" ที่ใช้ตรวจ check-in (ใช้ใน test)
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// Create ตรวจ input แล้วบันทึก; validation ล้มเหลวจะไม่แตะ store
func (s *ReservationService) Create(ctx context.Context, input models.CreateReservationInput) (models.Reservation, error) {
	validated, err := ValidateNewReservation(input, s.now())
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.ValidationFailures.Inc()
		}
		return models.Reservation{}, err
	}

	created, err := s.Store.Insert(ctx, newReservationRecord(validated))
	if err != nil {
		s.storeFailed("insert", err)
		return models.Reservation{}, err
	}

	if s.Metrics != nil {
		s.Metrics.ReservationsCreated.Inc()
	}
	s.Log.Info("reservation created",
		"reservation_id", created.ID, "email", utils.MaskEmail(created.Email), "room_type", created.RoomType)
	s.publish(ctx, events.NewReservationEvent(events.TypeReservationCreated, created, "", s.now()))

	return created, nil
}

// List คืนผลว่างได้โดยไม่ถือว่าเป็น error
func (s *ReservationService) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	list, err := s.Store.List(ctx, filter)
	if err != nil {
		s.storeFailed("list", err)
		return nil, err
	}
	return list, nil
}

func (s *ReservationService) ListByEmail(ctx context.Context, email string) ([]models.Reservation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, newValidationError("email is required")
	}

	list, err := s.Store.ListByEmail(ctx, email)
	if err != nil {
		s.storeFailed("list_by_email", err)
		return nil, err
	}
	s.Log.Debug("reservations looked up by email", "email", utils.MaskEmail(email), "count", len(list))
	return list, nil
}

// Transition เปลี่ยนสถานะตามตาราง transition (หรือเขียนทับตรงๆ เมื่อปิด strict)
func (s *ReservationService) Transition(ctx context.Context, id uint, status string) (models.Reservation, error) {
	target := models.ReservationStatus(strings.TrimSpace(status))
	if target == "" {
		return models.Reservation{}, newValidationError("status is required")
	}
	if s.StrictTransitions {
		target = models.ReservationStatus(strings.ToLower(string(target)))
		if !KnownStatus(target) {
			return models.Reservation{}, newValidationError("unknown status %q (expected active, completed or cancelled)", status)
		}
	}

	var previous models.ReservationStatus
	guard := transitionGuard(s.StrictTransitions, target)
	recordPrevious := func(current models.ReservationStatus) error {
		previous = current
		if guard != nil {
			return guard(current)
		}
		return nil
	}

	updated, err := s.Store.UpdateStatus(ctx, id, target, recordPrevious)
	if err != nil {
		var te *TransitionError
		if !errors.Is(err, ErrNotFound) && !errors.As(err, &te) {
			s.storeFailed("update_status", err)
		}
		return models.Reservation{}, err
	}

	if previous != updated.Status {
		if s.Metrics != nil {
			s.Metrics.StatusTransitions.WithLabelValues(string(updated.Status)).Inc()
		}
		s.Log.Info("reservation status changed",
			"reservation_id", updated.ID, "from", previous, "to", updated.Status)
		s.publish(ctx, events.NewReservationEvent(events.TypeReservationStatusChanged, updated, previous, s.now()))
	}

	return updated, nil
}

// Cancel = Transition(id, cancelled); แถวยังอยู่
func (s *ReservationService) Cancel(ctx context.Context, id uint) (models.Reservation, error) {
	return s.Transition(ctx, id, string(models.StatusCancelled))
}

// Statistics นับการจองของเดือนปัจจุบัน แยกตามสถานะและประเภทห้อง
func (s *ReservationService) Statistics(ctx context.Context) (models.ReservationStats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats, err := s.Store.Stats(ctx, monthStart)
	if err != nil {
		s.storeFailed("stats", err)
		return models.ReservationStats{}, err
	}
	return stats, nil
}

// StoreReachable runs a live ping; used by the status/health endpoints.
func (s *ReservationService) StoreReachable(ctx context.Context) bool {
	return s.Store.Ping(ctx) == nil
}

func (s *ReservationService) storeFailed(op string, err error) {
	if s.Metrics != nil {
		s.Metrics.StoreErrors.WithLabelValues(op).Inc()
	}
	s.Log.Error("reservation store failure", "operation", op, "error", err)
}

func (s *ReservationService) publish(ctx context.Context, event events.ReservationEvent) {
	if err := s.Publisher.Publish(ctx, event); err != nil {
		if s.Metrics != nil {
			s.Metrics.EventPublishErrors.Inc()
		}
		s.Log.Warn("failed to publish reservation event",
			"type", event.Type, "reservation_id", event.ReservationID, "error", err)
	}
}
