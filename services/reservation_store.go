package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-reservations/models"
)

// StatusGuard ถูกเรียกด้วยสถานะปัจจุบันภายใน transaction ก่อนเขียนทับ
type StatusGuard func(current models.ReservationStatus) error

// ReservationStore คือ persistence ของตาราง reservations
type ReservationStore interface {
	Insert(ctx context.Context, r models.Reservation) (models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	ListByEmail(ctx context.Context, email string) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status models.ReservationStatus, guard StatusGuard) (models.Reservation, error)
	Cancel(ctx context.Context, id uint) (models.Reservation, error)
	Stats(ctx context.Context, monthStart time.Time) (models.ReservationStats, error)
	Ping(ctx context.Context) error
}

// GormReservationStore เป็น wrapper รอบ *gorm.DB สำหรับตาราง reservations
type GormReservationStore struct {
	DB  *gorm.DB
	now func() time.Time

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewGormReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{DB: db, now: time.Now}
}

// WithClock เปลี่ยนนาฬิกาที่ใช้ตั้ง created_at (ใช้ใน test)
func (s *GormReservationStore) WithClock(now func() time.Time) *GormReservationStore {
	s.now = now
	return s
}

// Ping checks reachability on every call instead of trusting a startup flag.
func (s *GormReservationStore) Ping(ctx context.Context) error {
	if s.DB == nil {
		return ErrStoreUnavailable
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ensureReady = ping + สร้างตารางถ้ายังไม่มี (ทำจนกว่าจะสำเร็จครั้งแรก)
func (s *GormReservationStore) ensureReady(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return err
	}

	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}

	migrator := s.DB.WithContext(ctx).Migrator()
	if !migrator.HasTable(&models.Reservation{}) {
		if err := migrator.CreateTable(&models.Reservation{}); err != nil {
			// another process may have won the race
			if !migrator.HasTable(&models.Reservation{}) {
				return wrapStoreError("create reservations table", err)
			}
		}
	}
	s.schemaReady = true
	return nil
}

func (s *GormReservationStore) Insert(ctx context.Context, r models.Reservation) (models.Reservation, error) {
	if err := s.ensureReady(ctx); err != nil {
		return models.Reservation{}, err
	}

	r.ID = 0
	r.Status = models.StatusActive
	r.CreatedAt = s.now()

	if err := s.DB.WithContext(ctx).Create(&r).Error; err != nil {
		return models.Reservation{}, wrapStoreError("insert reservation", err)
	}
	return r, nil
}

func (s *GormReservationStore) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	if err := s.ensureReady(ctx); err != nil {
		return nil, err
	}

	list := []models.Reservation{}
	if err := s.DB.WithContext(ctx).
		Scopes(applyFilter(filter), newestFirst).
		Find(&list).Error; err != nil {
		return nil, wrapStoreError("list reservations", err)
	}
	return list, nil
}

func (s *GormReservationStore) ListByEmail(ctx context.Context, email string) ([]models.Reservation, error) {
	if err := s.ensureReady(ctx); err != nil {
		return nil, err
	}

	list := []models.Reservation{}
	if err := s.DB.WithContext(ctx).
		Where("email = ?", email).
		Scopes(newestFirst).
		Find(&list).Error; err != nil {
		return nil, wrapStoreError("list reservations by email", err)
	}
	return list, nil
}

// UpdateStatus เขียนทับ status ภายใน transaction เดียว (lock แถวก่อน)
func (s *GormReservationStore) UpdateStatus(
	ctx context.Context,
	id uint,
	status models.ReservationStatus,
	guard StatusGuard,
) (models.Reservation, error) {
	if err := s.ensureReady(ctx); err != nil {
		return models.Reservation{}, err
	}

	var updated models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if guard != nil {
			if err := guard(current.Status); err != nil {
				return err
			}
		}

		if current.Status != status {
			if err := tx.Model(&models.Reservation{}).
				Where("id = ?", id).
				Update("status", status).Error; err != nil {
				return err
			}
		}

		current.Status = status
		updated = current
		return nil
	})
	if err != nil {
		return models.Reservation{}, wrapStoreError("update reservation status", err)
	}
	return updated, nil
}

// Cancel = UpdateStatus(id, cancelled) โดยไม่ลบแถว
func (s *GormReservationStore) Cancel(ctx context.Context, id uint) (models.Reservation, error) {
	return s.UpdateStatus(ctx, id, models.StatusCancelled, nil)
}

// Stats นับจำนวนการจองสำหรับหน้า admin
func (s *GormReservationStore) Stats(ctx context.Context, monthStart time.Time) (models.ReservationStats, error) {
	stats := models.ReservationStats{
		ByStatus:   []models.StatusCount{},
		ByRoomType: []models.RoomTypeCount{},
	}
	if err := s.ensureReady(ctx); err != nil {
		return stats, err
	}

	db := s.DB.WithContext(ctx).Model(&models.Reservation{})

	if err := db.Session(&gorm.Session{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.CurrentMonth).Error; err != nil {
		return stats, wrapStoreError("count reservations this month", err)
	}

	if err := db.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Order("status").
		Scan(&stats.ByStatus).Error; err != nil {
		return stats, wrapStoreError("count reservations by status", err)
	}

	if err := db.Session(&gorm.Session{}).
		Select("room_type, COUNT(*) AS total").
		Group("room_type").
		Order("total DESC").
		Order("room_type").
		Scan(&stats.ByRoomType).Error; err != nil {
		return stats, wrapStoreError("count reservations by room type", err)
	}

	return stats, nil
}

// newReservationRecord สร้าง model จาก input ที่ผ่านการตรวจแล้ว
func newReservationRecord(v ValidatedReservation) models.Reservation {
	return models.Reservation{
		GuestFirstName: v.GuestFirstName,
		GuestLastName:  v.GuestLastName,
		Email:          v.Email,
		Phone:          v.Phone,
		CheckInDate:    datatypes.Date(v.CheckInDate),
		CheckOutDate:   datatypes.Date(v.CheckOutDate),
		RoomType:       v.RoomType,
		OccupantCount:  v.OccupantCount,
		Status:         models.StatusActive,
	}
}
