package devices

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bagtrack-server-go/internal/domain/registration/resolver"
	"bagtrack-server-go/internal/domain/registration/service"
	"bagtrack-server-go/internal/platform/errors"
	"bagtrack-server-go/internal/platform/logging"
	httptransport "bagtrack-server-go/internal/transport/http"
)

// Service exposes device registration over HTTP.
type Service struct {
	logger        *logging.Logger
	registrations *service.RegistrationService
}

func NewService(registrations *service.RegistrationService, logger *logging.Logger) (*Service, error) {
	if registrations == nil {
		return nil, errors.New(errors.KindConfig, "devices.new", "registration service is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "devices.new", "logger is required")
	}

	return &Service{
		logger:        logger,
		registrations: registrations,
	}, nil
}

// Register attaches the device routes to the API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/register-device", s.handleRegisterDevice)

	s.logger.InfoTag("HTTP", "device routes registered")
	return nil
}

type registerDeviceRequest struct {
	DeviceID string `json:"deviceId"`
	Scanned  string `json:"scanned"`
}

func (s *Service) handleRegisterDevice(c *gin.Context) {
	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c, errors.New(errors.KindValidation, "devices.register", "must supply a device id or scan"))
		return
	}

	resolved, err := resolver.Resolve(resolver.Input{
		DeviceID: req.DeviceID,
		Scanned:  req.Scanned,
	})
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}

	result, err := s.registrations.Register(c.Request.Context(), resolved.DeviceID, resolved.Location)
	if err != nil {
		s.logger.ErrorTag("HTTP", "device registration failed for %s: %v", resolved.DeviceID, err)
		httptransport.RespondError(c, err)
		return
	}

	s.logger.InfoTag("HTTP", "device %s registered", resolved.DeviceID)
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Device registered successfully.",
		"navigateTo": result.NavigateTo,
	})
}
