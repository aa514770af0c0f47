// Package system exposes basic process and host health for dashboards.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"wavecast-server-go/internal/platform/logging"
)

// Service reports server status.
type Service struct {
	startedAt time.Time
	version   string
	logger    *logging.Logger
}

func NewService(version string, logger *logging.Logger) *Service {
	return &Service{
		startedAt: time.Now(),
		version:   version,
		logger:    logger,
	}
}

// Register registers the status route.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/system/status", s.handleStatus)
	return nil
}

func (s *Service) handleStatus(c *gin.Context) {
	status := gin.H{
		"version":        s.version,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		status["cpu_percent"] = percentages[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_percent"] = vm.UsedPercent
		status["memory_used_mb"] = vm.Used / 1024 / 1024
	}

	c.JSON(http.StatusOK, status)
}
