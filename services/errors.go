package services

import (
	"database/sql/driver"
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"hotel-reservations/models"
)

var (
	// ErrNotFound: ไม่มี reservation ที่มี id นี้
	ErrNotFound = errors.New("reservation not found")
	// ErrStoreUnavailable: ติดต่อฐานข้อมูลไม่ได้ในขณะที่เรียก
	ErrStoreUnavailable = errors.New("reservation store unavailable")
)

// ValidationError คือความผิดพลาดฝั่ง client (400)
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// TransitionError: ตาราง transition ไม่อนุญาตให้เปลี่ยนสถานะนี้ (409)
type TransitionError struct {
	From models.ReservationStatus
	To   models.ReservationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %q to %q", e.From, e.To)
}

// StoreOperationError ห่อ error ที่ไม่คาดคิดจาก driver
type StoreOperationError struct {
	Op  string
	Err error
}

func (e *StoreOperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreOperationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries a client-side reason.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// wrapStoreError แปลง error จาก gorm ให้เป็น taxonomy ของ store
func wrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	var te *TransitionError
	if errors.As(err, &te) {
		return err
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return &StoreOperationError{Op: op, Err: err}
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}
