package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/campusfront/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func requireParam(c *gin.Context, key string) (string, bool) {
	value := strings.TrimSpace(c.Param(key))
	if value == "" {
		respondError(c, http.StatusBadRequest, "missing "+key)
		return "", false
	}
	return value, true
}

func parsePositiveIntQuery(c *gin.Context, key string) (int, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, false, errors.New("invalid " + key)
	}
	return value, true, nil
}

// respondServiceError 将服务层错误映射为 HTTP 状态码。
// 写入路径的错误必须原样传给编辑端，不允许静默吞掉。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrNewsNotFound),
		errors.Is(err, service.ErrRemoteNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPageInvalidInput),
		errors.Is(err, service.ErrSectionInvalidInput),
		errors.Is(err, service.ErrNewsInvalidInput),
		errors.Is(err, service.ErrSectionOrder),
		errors.Is(err, service.ErrSectionPageMismatch),
		errors.Is(err, service.ErrRemoteInvalidInput),
		errors.Is(err, service.ErrPageSlugTaken),
		errors.Is(err, service.ErrNewsSlugTaken):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRemoteUnavailable):
		respondError(c, http.StatusBadGateway, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
