package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-bot/internal/middleware"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	return page, limit, (page - 1) * limit
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// dateQuery reads a YYYY-MM-DD query value in loc.
func dateQuery(c *gin.Context, name string, loc *time.Location) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := timezone.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// actorID is the signed-in admin, recorded on audit events.
func actorID(c *gin.Context) *int64 {
	v, ok := c.Get(middleware.ContextAdminID)
	if !ok {
		return nil
	}
	id := int64(v.(uint))
	return &id
}
