package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	clock      timezone.Clock
	book       *appointment.BookAppointment
	list       *appointment.ListAppointments
	get        *appointment.GetAppointment
	cancel     *appointment.CancelAppointment
	reschedule *appointment.RescheduleAppointment
	complete   *appointment.CompleteAppointment
	noShow     *appointment.MarkNoShow
	remove     *appointment.DeleteAppointment
}

func NewAppointmentHandler(d appointment.Deps) *AppointmentHandler {
	if d.Clock == nil {
		d.Clock = timezone.SystemClock("")
	}
	return &AppointmentHandler{
		clock:      d.Clock,
		book:       appointment.NewBookAppointment(d),
		list:       appointment.NewListAppointments(d),
		get:        appointment.NewGetAppointment(d),
		cancel:     appointment.NewCancelAppointment(d),
		reschedule: appointment.NewRescheduleAppointment(d),
		complete:   appointment.NewCompleteAppointment(d),
		noShow:     appointment.NewMarkNoShow(d),
		remove:     appointment.NewDeleteAppointment(d),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	PatientID uint   `json:"patient_id"` // admins only; patients book for themselves
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	Date      string `json:"appointment_date" binding:"required"`
	Time      string `json:"appointment_time" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"appointment_date" binding:"required"`
	Time string `json:"appointment_time" binding:"required"`
}

type CompleteRequest struct {
	Notes *string `json:"notes"`
}

func (h *AppointmentHandler) respond(c *gin.Context, status int, ap *models.Appointment) {
	c.JSON(status, dto.NewAppointmentDTO(ap, domain.IsUpcoming(ap, h.clock())))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	date, at, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	patientID := req.PatientID
	if patientID == 0 || !caller.IsAdmin() {
		patientID = caller.UserID
	}

	ap, err := h.book.Execute(c.Request.Context(), caller, appointment.BookInput{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      at,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respond(c, http.StatusCreated, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var (
		f   domain.Filter
		err error
	)

	if f.PatientID, err = optionalUint(c, "patient_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.DoctorID, err = optionalUint(c, "doctor_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.Date, err = optionalDate(c, "date"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if raw := c.Query("status"); raw != "" {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		f.Status = &st
	}

	list, err := h.list.Execute(c.Request.Context(), middleware.CallerFrom(c), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respond(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	date, at, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), middleware.CallerFrom(c), appointment.RescheduleInput{
		AppointmentID: id,
		Date:          date,
		Time:          at,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respond(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	// body is optional
	var req CompleteRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), middleware.CallerFrom(c), id, req.Notes)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respond(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respond(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
