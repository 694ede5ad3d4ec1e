package services

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-reservations/logger"
	"hotel-reservations/models"
)

// mysqlTimeLayout is how go-sql-driver/mysql renders a time.Time parameter
// after converting it with In(cfg.Loc); cfg.Loc is time.Local in config/db.go.
const mysqlTimeLayout = "2006-01-02 15:04:05"

var nonUTCZones = []string{"America/New_York", "Asia/Bangkok", "Pacific/Kiritimati"}

func withLocalZone(t *testing.T, name string) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	previous := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = previous })
}

func asSentToMySQL(t *testing.T, v any) string {
	t.Helper()
	ts, ok := v.(time.Time)
	require.True(t, ok, "expected time.Time, got %T", v)
	return ts.In(time.Local).Format(mysqlTimeLayout)
}

func TestStayDatesKeepCalendarDayInDriverLocation(t *testing.T) {
	for _, zone := range nonUTCZones {
		t.Run(zone, func(t *testing.T) {
			withLocalZone(t, zone)

			now := time.Date(2025, time.January, 5, 9, 30, 0, 0, time.Local)
			validated, err := ValidateNewReservation(validInput(), now)
			require.NoError(t, err)

			record := newReservationRecord(validated)

			checkIn, err := record.CheckInDate.Value()
			require.NoError(t, err)
			assert.Equal(t, "2025-01-10 00:00:00", asSentToMySQL(t, checkIn))

			checkOut, err := record.CheckOutDate.Value()
			require.NoError(t, err)
			assert.Equal(t, "2025-01-12 00:00:00", asSentToMySQL(t, checkOut))
		})
	}
}

func TestRFC3339StayDateUsesItsOwnCalendarDay(t *testing.T) {
	withLocalZone(t, "Asia/Bangkok")

	in := validInput()
	// 20:00 in New York is already the 11th in Bangkok; the guest meant the 10th
	in.CheckInDate = "2025-01-10T20:00:00-05:00"

	validated, err := ValidateNewReservation(in, time.Date(2025, time.January, 5, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)

	v, err := newReservationRecord(validated).CheckInDate.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10 00:00:00", asSentToMySQL(t, v))
}

func TestFilterBoundsAreLocalMidnight(t *testing.T) {
	for _, zone := range nonUTCZones {
		t.Run(zone, func(t *testing.T) {
			withLocalZone(t, zone)

			from, err := ParseDate("2025-01-10")
			require.NoError(t, err)
			to, err := ParseDate("2025-01-12T23:30:00Z")
			require.NoError(t, err)

			db := openTestDB(t)
			stmt := db.Session(&gorm.Session{DryRun: true}).
				Scopes(applyFilter(models.ReservationFilter{DateFrom: &from, DateTo: &to})).
				Find(&[]models.Reservation{}).Statement

			require.Len(t, stmt.Vars, 2)
			assert.Equal(t, "2025-01-10 00:00:00", asSentToMySQL(t, stmt.Vars[0]))
			assert.Equal(t, "2025-01-12 00:00:00", asSentToMySQL(t, stmt.Vars[1]))
		})
	}
}

func TestStoreRoundTripUnderNonUTCLocal(t *testing.T) {
	for _, zone := range nonUTCZones {
		t.Run(zone, func(t *testing.T) {
			withLocalZone(t, zone)
			ctx := context.Background()

			store := newTestStore(t)
			svc := NewReservationService(store, nil, nil, logger.NewNop(), true).
				WithClock(func() time.Time { return time.Date(2025, time.January, 5, 9, 30, 0, 0, time.Local) })

			created, err := svc.Create(ctx, validInput())
			require.NoError(t, err)
			assert.Equal(t, "2025-01-10", time.Time(created.CheckInDate).Format(dateLayout))

			day, err := ParseDate("2025-01-10")
			require.NoError(t, err)
			list, err := svc.List(ctx, models.ReservationFilter{DateFrom: &day, DateTo: &day})
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "2025-01-10", time.Time(list[0].CheckInDate).In(time.Local).Format(dateLayout))
			assert.Equal(t, "2025-01-12", time.Time(list[0].CheckOutDate).In(time.Local).Format(dateLayout))
		})
	}
}
