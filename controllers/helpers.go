package controllers

import (
	"strconv"
	"strings"
	"time"

	apperrors "eduplatform/errors"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/response"
	"eduplatform/validator"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body and writes a 400 on failure.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.Error(c, validator.Translate(err))
		return false
	}
	return true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, apperrors.InvalidFormat("Invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, models.Role, bool) {
	id, role, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
	}
	return id, role, ok
}

func invalidQuery(name string) error {
	return apperrors.InvalidFormat("Invalid query parameter " + name)
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalidQuery(name)
	}
	return &n, nil
}

func queryUint(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, invalidQuery(name)
	}
	u := uint(n)
	return &u, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidQuery(name)
	}
	return &b, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates. A plain dateTo
// covers the whole day.
func queryTime(c *gin.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, invalidQuery(name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// queryList merges repeated and comma separated values.
func queryList(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func pageParams(c *gin.Context) (int, int, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	p, l := 0, 0
	if page != nil {
		p = *page
	}
	if limit != nil {
		l = *limit
	}
	return p, l, nil
}
