package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel-reservations/models"
)

const dateLayout = "2006-01-02"

var (
	// \s ของ RE2 มีแค่ ASCII จึงเพิ่ม \v, \p{Z} และ BOM ให้เท่ากับ whitespace ของ browser
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

	inputValidator = newInputValidator()
)

// ValidatedReservation คือ input ที่ผ่านการตรวจแล้ว พร้อมบันทึก
type ValidatedReservation struct {
	GuestFirstName string
	GuestLastName  string
	Email          string
	Phone          string
	CheckInDate    time.Time
	CheckOutDate   time.Time
	RoomType       string
	OccupantCount  int
}

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so reasons match the payload keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateNewReservation runs the creation rules in order and returns the
// first failure as a *ValidationError. now decides what "today" is.
func ValidateNewReservation(input models.CreateReservationInput, now time.Time) (ValidatedReservation, error) {
	in := trimInput(input)

	// 1) required fields
	if err := inputValidator.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return ValidatedReservation{}, newValidationError("%s is required", fieldErrs[0].Field())
		}
		return ValidatedReservation{}, newValidationError("invalid reservation payload: %v", err)
	}

	// 2) email
	if !emailPattern.MatchString(in.Email) {
		return ValidatedReservation{}, newValidationError("invalid email address")
	}

	// 3) check-in
	checkIn, err := parseStayDate(in.CheckInDate)
	if err != nil {
		return ValidatedReservation{}, newValidationError("invalid checkin date")
	}
	if checkIn.Before(dateOnly(now)) {
		return ValidatedReservation{}, newValidationError("checkin cannot be before today")
	}

	// 4) check-out
	checkOut, err := parseStayDate(in.CheckOutDate)
	if err != nil {
		return ValidatedReservation{}, newValidationError("invalid checkout date")
	}
	if !checkOut.After(checkIn) {
		return ValidatedReservation{}, newValidationError("checkout must be after checkin")
	}

	// 5) occupants
	occupants, err := strconv.Atoi(in.OccupantCount.String())
	if err != nil || occupants <= 0 {
		return ValidatedReservation{}, newValidationError("occupant count must be a positive integer")
	}

	return ValidatedReservation{
		GuestFirstName: in.GuestFirstName,
		GuestLastName:  in.GuestLastName,
		Email:          in.Email,
		Phone:          in.Phone,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		RoomType:       in.RoomType,
		OccupantCount:  occupants,
	}, nil
}

func trimInput(in models.CreateReservationInput) models.CreateReservationInput {
	in.GuestFirstName = strings.TrimSpace(in.GuestFirstName)
	in.GuestLastName = strings.TrimSpace(in.GuestLastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.CheckInDate = strings.TrimSpace(in.CheckInDate)
	in.CheckOutDate = strings.TrimSpace(in.CheckOutDate)
	in.RoomType = strings.TrimSpace(in.RoomType)
	in.OccupantCount = json.Number(strings.TrimSpace(in.OccupantCount.String()))
	return in
}

// parseStayDate รับทั้ง "2006-01-02" และ RFC3339 (ใช้เฉพาะส่วนวันที่)
func parseStayDate(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return dateOnly(t), nil
}

// ParseDate parses a calendar date used by query filters.
func ParseDate(raw string) (time.Time, error) {
	return parseStayDate(strings.TrimSpace(raw))
}

// dateOnly ตัดเวลาออก เหลือเที่ยงคืนของวันนั้นใน time.Local
// ต้องตรงกับ loc ของ DSN (mysql driver แปลง time.Time ด้วย In(cfg.Loc) ก่อนส่ง)
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
