package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel-reservations/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.ReservationStatus
		want     bool
	}{
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusCancelled, true},
		{models.StatusActive, models.StatusActive, true},
		{models.StatusCancelled, models.StatusActive, true},
		{models.StatusCancelled, models.StatusCancelled, true},
		{models.StatusCancelled, models.StatusCompleted, false},
		{models.StatusCompleted, models.StatusActive, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestKnownStatus(t *testing.T) {
	assert.True(t, KnownStatus(models.StatusActive))
	assert.True(t, KnownStatus(models.StatusCompleted))
	assert.True(t, KnownStatus(models.StatusCancelled))
	assert.False(t, KnownStatus("activa"))
	assert.False(t, KnownStatus(""))
}

func TestTransitionGuard(t *testing.T) {
	assert.Nil(t, transitionGuard(false, models.StatusActive))

	guard := transitionGuard(true, models.StatusActive)
	assert.NoError(t, guard(models.StatusCancelled))

	err := guard(models.StatusCompleted)
	var te *TransitionError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, models.StatusCompleted, te.From)
	assert.Equal(t, models.StatusActive, te.To)
}
