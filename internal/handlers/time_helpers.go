package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// --------------------------------------------------
// Request parsing shared by the handlers. Dates are calendar days in the
// clinic's zone ("2006-01-02"), times are wall clock "15:04".
// --------------------------------------------------

func parseDateTime(dateStr, timeStr string) (time.Time, availability.TimeOfDay, error) {
	date, err := availability.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, 0, err
	}
	at, err := availability.ParseTimeOfDay(timeStr)
	if err != nil {
		return time.Time{}, 0, err
	}
	return date, at, nil
}

// optionalDate parses a query parameter, returning nil when it is absent.
func optionalDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := availability.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalUint(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, httperr.InvalidArgument("invalid_" + name)
	}
	id := uint(n)
	return &id, nil
}

// paramID reads a positive path id, answering 400 itself on failure.
func paramID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(n), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}
