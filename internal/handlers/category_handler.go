package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	usecase "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/directory"
)

type CategoryHandler struct {
	categories *usecase.Categories
}

func NewCategoryHandler(categories *usecase.Categories) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	include, _ := strconv.ParseBool(c.Query("include_inactive"))

	list, err := h.categories.List(c.Request.Context(), middleware.CallerFrom(c), include)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	cat, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), middleware.CallerFrom(c), req.Name, req.Description)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, cat)
}
