package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ipss-cms/helper"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	storage string
	log     *zap.Logger
}

func NewHealthHandler(db Pinger, storageBackend string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, storage: storageBackend, log: log}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok", "storage": h.storage, "time": time.Now().UTC()}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("health check: database unreachable", zap.Error(err))
		status["status"] = "degraded"
		status["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, helper.Response{Success: false, Data: status})
		return
	}
	c.JSON(http.StatusOK, helper.Response{Success: true, Data: status})
}
