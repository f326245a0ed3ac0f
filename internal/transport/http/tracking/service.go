package tracking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bagtrack-server-go/internal/domain/tracking/service"
	"bagtrack-server-go/internal/platform/errors"
	"bagtrack-server-go/internal/platform/logging"
	httptransport "bagtrack-server-go/internal/transport/http"
)

// Service exposes the telemetry fetch operation over HTTP.
type Service struct {
	logger   *logging.Logger
	tracking *service.TrackingService
}

func NewService(tracking *service.TrackingService, logger *logging.Logger) (*Service, error) {
	if tracking == nil {
		return nil, errors.New(errors.KindConfig, "tracking.new", "tracking service is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "tracking.new", "logger is required")
	}

	return &Service{
		logger:   logger,
		tracking: tracking,
	}, nil
}

// Register attaches the tracking routes to the API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/data", s.handleTrack)

	s.logger.InfoTag("HTTP", "tracking routes registered")
	return nil
}

type trackRequest struct {
	Account  string `json:"account"`
	IMEI     string `json:"imei"`
	Password string `json:"password"`
}

func (s *Service) handleTrack(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c, errors.New(errors.KindValidation, "tracking.track", "account, imei, and password are required"))
		return
	}

	reading, err := s.tracking.Track(c.Request.Context(), req.Account, req.IMEI, req.Password)
	if err != nil {
		s.logger.ErrorTag("HTTP", "telemetry fetch failed for imei %s: %v", req.IMEI, err)
		httptransport.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Device tracked successfully!",
		"trackingData": reading,
	})
}
