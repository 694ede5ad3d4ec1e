package services

import (
	"gorm.io/gorm"

	"hotel-reservations/models"
)

// applyFilter แปลง ReservationFilter เป็น gorm scopes
// field ว่าง = ไม่ใส่เงื่อนไข (ไม่ใช่ = '')
func applyFilter(filter models.ReservationFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.RoomType != "" {
			db = db.Where("room_type = ?", filter.RoomType)
		}
		if filter.DateFrom != nil {
			db = db.Where("check_in_date >= ?", dateOnly(*filter.DateFrom))
		}
		if filter.DateTo != nil {
			db = db.Where("check_in_date <= ?", dateOnly(*filter.DateTo))
		}
		return db
	}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
