// controllers/reservation_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-reservations/logger"
	"hotel-reservations/models"
	"hotel-reservations/services"
	"hotel-reservations/utils"
)

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	ReservationSvc *services.ReservationService
	Log            logger.Logger
}

func NewReservationController(svc *services.ReservationService, log logger.Logger) *ReservationController {
	return &ReservationController{ReservationSvc: svc, Log: log}
}

// ---------------------------
// Helper: map service errors -> HTTP
// ---------------------------
func (ctrl *ReservationController) respondServiceError(c *gin.Context, err error, failMsg string) {
	var ve *services.ValidationError
	var te *services.TransitionError
	var se *services.StoreOperationError

	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "reservation not found")
	case errors.As(err, &te):
		utils.JSONError(c, http.StatusConflict, te.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, failMsg+": database unavailable")
	case errors.As(err, &se):
		utils.JSONError(c, http.StatusInternalServerError, failMsg+": "+se.Err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, failMsg+": "+err.Error())
	}
}

// ---------------------------
// Helper: parse :id
// ---------------------------
func parseReservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
		return 0, false
	}
	return uint(id), true
}

// ---------------------------
// Helper: query string -> ReservationFilter
// ---------------------------
func parseFilter(c *gin.Context) (models.ReservationFilter, error) {
	filter := models.ReservationFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		RoomType: strings.TrimSpace(c.Query("room_type")),
	}

	if raw := strings.TrimSpace(c.Query("date_from")); raw != "" {
		t, err := services.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid date_from (expected YYYY-MM-DD)")
		}
		filter.DateFrom = &t
	}
	if raw := strings.TrimSpace(c.Query("date_to")); raw != "" {
		t, err := services.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid date_to (expected YYYY-MM-DD)")
		}
		filter.DateTo = &t
	}
	return filter, nil
}

// ---------------------------
// POST /api/reservations
// ---------------------------

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var input models.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ctrl.Log.Warn("CreateReservation bind error", "error", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reservation, err := ctrl.ReservationSvc.Create(c.Request.Context(), input)
	if err != nil {
		ctrl.respondServiceError(c, err, "failed to create reservation")
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "reservation created", reservation)
}

// ---------------------------
// GET /api/reservations
// ---------------------------

func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	list, err := ctrl.ReservationSvc.List(c.Request.Context(), filter)
	if err != nil {
		ctrl.respondServiceError(c, err, "failed to fetch reservations")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, list)
}

// ---------------------------
// GET /api/reservations/email/:email
// ---------------------------

func (ctrl *ReservationController) GetReservationsByEmail(c *gin.Context) {
	list, err := ctrl.ReservationSvc.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		ctrl.respondServiceError(c, err, "failed to fetch reservations")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, list)
}

// ---------------------------
// PUT /api/reservations/:id
// ---------------------------

func (ctrl *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	var input models.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reservation, err := ctrl.ReservationSvc.Transition(c.Request.Context(), id, input.Status)
	if err != nil {
		ctrl.respondServiceError(c, err, "failed to update reservation")
		return
	}

	utils.JSONMessage(c, http.StatusOK, "reservation updated", reservation)
}

// ---------------------------
// DELETE /api/reservations/:id (cancel, row is kept)
// ---------------------------

func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	reservation, err := ctrl.ReservationSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		ctrl.respondServiceError(c, err, "failed to cancel reservation")
		return
	}

	utils.JSONMessage(c, http.StatusOK, "reservation cancelled", reservation)
}

// ---------------------------
// GET /api/statistics
// ---------------------------

func (ctrl *ReservationController) GetStatistics(c *gin.Context) {
	stats, err := ctrl.ReservationSvc.Statistics(c.Request.Context())
	if err != nil {
		ctrl.respondServiceError(c, err, "failed to compute statistics")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, stats)
}
