package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	usecase "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/directory"
)

type Maintainer interface {
	Reset(ctx context.Context) error
	Clear(ctx context.Context) error
}

type CacheFlusher interface {
	Flush(ctx context.Context) error
}

type AuditReader interface {
	List(ctx context.Context, q audit.Query) (*audit.Page, error)
}

// ======================================================
// HANDLER
// ======================================================

// AdminHandler serves the /api/admin routes that are not appointment or
// doctor specific. Every route sits behind middleware.RequireAdmin; the use
// cases check the role again.
type AdminHandler struct {
	users     *usecase.Users
	stats     *appointment.GetStats
	dashboard *appointment.GetDashboard
	schema    Maintainer
	cache     CacheFlusher
	logs      AuditReader
	audit     audit.Sink
	log       *zap.Logger
}

func NewAdminHandler(
	users *usecase.Users,
	stats *appointment.GetStats,
	dashboard *appointment.GetDashboard,
	schema Maintainer,
	cache CacheFlusher,
	logs AuditReader,
	sink audit.Sink,
	log *zap.Logger,
) *AdminHandler {
	if sink == nil {
		sink = audit.Nop
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{
		users:     users,
		stats:     stats,
		dashboard: dashboard,
		schema:    schema,
		cache:     cache,
		logs:      logs,
		audit:     sink,
		log:       log,
	}
}

// ======================================================
// USERS
// ======================================================

type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var role *identity.Role
	if raw := c.Query("role"); raw != "" {
		r := identity.Role(raw)
		role = &r
	}

	list, err := h.users.List(c.Request.Context(), middleware.CallerFrom(c), role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), middleware.CallerFrom(c), usecase.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     identity.Role(req.Role),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, user)
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.SetActive(c.Request.Context(), middleware.CallerFrom(c), id, *req.Active)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, user)
}

// ======================================================
// STATS
// ======================================================

func (h *AdminHandler) Stats(c *gin.Context) {
	s, err := h.stats.Execute(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

// ======================================================
// AUDIT LOGS
// ======================================================

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	from, err := optionalDate(c, "from")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.logs.List(c.Request.Context(), audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// MAINTENANCE
// ======================================================

type MaintenanceRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *AdminHandler) Reset(c *gin.Context) {
	h.maintain(c, "reset", audit.ActionMaintenanceReset, h.schema.Reset)
}

func (h *AdminHandler) Clear(c *gin.Context) {
	h.maintain(c, "clear", audit.ActionMaintenanceClear, h.schema.Clear)
}

func (h *AdminHandler) maintain(c *gin.Context, op, action string, run func(context.Context) error) {
	caller := middleware.CallerFrom(c)
	if err := caller.RequireAdmin(); err != nil {
		httperr.Respond(c, err)
		return
	}

	var req MaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Confirm {
		httperr.BadRequest(c, "confirmation_required", `Send {"confirm": true} to proceed.`)
		return
	}

	ctx := c.Request.Context()
	if err := run(ctx); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.cache.Flush(ctx); err != nil {
		h.log.Warn("cache flush after maintenance failed", zap.String("op", op), zap.Error(err))
	}

	h.audit.Dispatch(audit.Event{
		ActorID:   audit.Ptr(caller.UserID),
		ActorRole: string(caller.Role),
		Action:    action,
		Entity:    "schema",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok", "operation": op})
}
