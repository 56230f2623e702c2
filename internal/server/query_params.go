package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vendahub/salesops/internal/period"
)

// periodParams reads year, month and week from the query string, defaulting
// each missing piece from the current business week.
func (s *Server) periodParams(c *gin.Context) (year int, month time.Month, week int, ok bool) {
	nowYear, nowMonth, nowWeek := period.Current(s.clock.Now())

	year = queryInt(c, "year", nowYear)
	monthNum := queryInt(c, "month", int(nowMonth))
	week = queryInt(c, "week", nowWeek)

	if year < 2000 || year > 2200 || monthNum < 1 || monthNum > 12 || week < 1 || week > 5 {
		AbortWithError(c, ErrInvalidRequest)
		return 0, 0, 0, false
	}
	return year, time.Month(monthNum), week, true
}

// monthParams is periodParams without the week component.
func (s *Server) monthParams(c *gin.Context) (year int, month time.Month, ok bool) {
	nowYear, nowMonth, _ := period.Current(s.clock.Now())

	year = queryInt(c, "year", nowYear)
	monthNum := queryInt(c, "month", int(nowMonth))

	if year < 2000 || year > 2200 || monthNum < 1 || monthNum > 12 {
		AbortWithError(c, ErrInvalidRequest)
		return 0, 0, false
	}
	return year, time.Month(monthNum), true
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}

func queryBool(c *gin.Context, key string) bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query(key)))
	return raw == "1" || raw == "true"
}
