package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	usecase "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/directory"
)

// ======================================================
// HANDLER
// ======================================================

type DoctorHandler struct {
	doctors *usecase.Doctors
	slots   *appointment.CheckAvailability
}

func NewDoctorHandler(doctors *usecase.Doctors, slots *appointment.CheckAvailability) *DoctorHandler {
	return &DoctorHandler{doctors: doctors, slots: slots}
}

// ======================================================
// REQUESTS
// ======================================================

// DoctorRequest carries availability in the stored text form:
// "Mon,Tue,Wed" and "09:00-17:00".
type DoctorRequest struct {
	Name            string          `json:"name" binding:"required"`
	Specialty       string          `json:"specialty" binding:"required"`
	CategoryID      *uint           `json:"category_id"`
	Details         string          `json:"details"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	AvailableDays   string          `json:"available_days" binding:"required"`
	AvailableHours  string          `json:"available_hours" binding:"required"`
	IsActive        *bool           `json:"is_active"`
}

func (r DoctorRequest) input() (usecase.DoctorInput, error) {
	desc, err := availability.ParseDescriptor(r.AvailableDays, r.AvailableHours)
	if err != nil {
		return usecase.DoctorInput{}, err
	}
	return usecase.DoctorInput{
		Name:            r.Name,
		Specialty:       r.Specialty,
		CategoryID:      r.CategoryID,
		Details:         r.Details,
		ExperienceYears: r.ExperienceYears,
		ConsultationFee: r.ConsultationFee,
		AvailableDays:   desc.Days,
		AvailableHours:  desc.Hours,
		IsActive:        r.IsActive,
	}, nil
}

// ======================================================
// PUBLIC
// ======================================================

func (h *DoctorHandler) List(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	categoryID, err := optionalUint(c, "category_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f := directory.DoctorFilter{
		CategoryID: categoryID,
		Specialty:  c.Query("specialty"),
		Query:      c.Query("q"),
	}
	if include, _ := strconv.ParseBool(c.Query("include_inactive")); include && caller.IsAdmin() {
		f.IncludeInactive = true
	}

	list, err := h.doctors.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	d, err := h.doctors.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

// Slots lists the doctor's slots on ?date= with their free flag.
func (h *DoctorHandler) Slots(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	date, err := availability.ParseDate(c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	slots, err := h.slots.Slots(c.Request.Context(), domain.AvailabilityInput{DoctorID: id, Date: date})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	free := make([]availability.TimeOfDay, 0, len(slots))
	for _, s := range slots {
		if s.Free {
			free = append(free, s.Time)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor_id": id,
		"date":      date.Format("2006-01-02"),
		"slots":     slots,
		"available": free,
	})
}

// ======================================================
// ADMIN
// ======================================================

func (h *DoctorHandler) Create(c *gin.Context) {
	var req DoctorRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	d, err := h.doctors.Create(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, d)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req DoctorRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	d, err := h.doctors.Update(c.Request.Context(), middleware.CallerFrom(c), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

func (h *DoctorHandler) Deactivate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	d, err := h.doctors.Deactivate(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}
