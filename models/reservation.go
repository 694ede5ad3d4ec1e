package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ReservationStatus คือสถานะใน lifecycle ของการจอง
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation เป็น entity เดียวของระบบ (ตาราง reservations)
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GuestFirstName string `gorm:"column:guest_first_name;size:100;not null" json:"guest_first_name"`
	GuestLastName  string `gorm:"column:guest_last_name;size:100;not null" json:"guest_last_name"`
	Email          string `gorm:"column:email;size:255;not null;index" json:"email"`
	Phone          string `gorm:"column:phone;size:20;not null" json:"phone"`

	CheckInDate   datatypes.Date `gorm:"column:check_in_date;not null;index" json:"check_in_date"`
	CheckOutDate  datatypes.Date `gorm:"column:check_out_date;not null" json:"check_out_date"`
	RoomType      string         `gorm:"column:room_type;size:50;not null" json:"room_type"`
	OccupantCount int            `gorm:"column:occupant_count;not null" json:"occupant_count"`

	Status    ReservationStatus `gorm:"column:status;size:20;default:active" json:"status"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// CreateReservationInput คือ payload ของการสร้างการจอง
// ทุก field บังคับ; ตรวจสอบจริงที่ services.ValidateNewReservation
type CreateReservationInput struct {
	GuestFirstName string      `json:"guest_first_name" validate:"required"`
	GuestLastName  string      `json:"guest_last_name" validate:"required"`
	Email          string      `json:"email" validate:"required"`
	Phone          string      `json:"phone" validate:"required"`
	CheckInDate    string      `json:"check_in_date" validate:"required"`
	CheckOutDate   string      `json:"check_out_date" validate:"required"`
	RoomType       string      `json:"room_type" validate:"required"`
	OccupantCount  json.Number `json:"occupant_count" validate:"required"`
}

// TransitionInput คือ payload ของ PUT /api/reservations/:id
type TransitionInput struct {
	Status string `json:"status"`
}

// ReservationFilter เงื่อนไขค้นหา (ทุกตัว optional)
type ReservationFilter struct {
	Status   string
	RoomType string
	DateFrom *time.Time
	DateTo   *time.Time
}

// IsEmpty คืน true เมื่อไม่มีเงื่อนไขใดถูกตั้ง
func (f ReservationFilter) IsEmpty() bool {
	return f.Status == "" && f.RoomType == "" && f.DateFrom == nil && f.DateTo == nil
}

// StatusCount / RoomTypeCount ใช้ใน statistics
type StatusCount struct {
	Status ReservationStatus `json:"status"`
	Total  int64             `json:"total"`
}

type RoomTypeCount struct {
	RoomType string `json:"room_type"`
	Total    int64  `json:"total"`
}

type ReservationStats struct {
	CurrentMonth int64           `json:"current_month"`
	ByStatus     []StatusCount   `json:"by_status"`
	ByRoomType   []RoomTypeCount `json:"by_room_type"`
}
