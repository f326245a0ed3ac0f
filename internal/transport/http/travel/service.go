package travel

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bagtrack-server-go/internal/domain/travelplan"
	"bagtrack-server-go/internal/platform/errors"
	"bagtrack-server-go/internal/platform/logging"
	httptransport "bagtrack-server-go/internal/transport/http"
)

// Service exposes travel plan generation over HTTP.
type Service struct {
	logger *logging.Logger
	plans  *travelplan.Service
}

func NewService(plans *travelplan.Service, logger *logging.Logger) (*Service, error) {
	if plans == nil {
		return nil, errors.New(errors.KindConfig, "travel.new", "travel plan service is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "travel.new", "logger is required")
	}

	return &Service{
		logger: logger,
		plans:  plans,
	}, nil
}

// Register attaches the travel plan routes to the API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/travelPlanGenerator", s.handleGenerate)

	s.logger.InfoTag("HTTP", "travel plan routes registered")
	return nil
}

func (s *Service) handleGenerate(c *gin.Context) {
	var prefs travelplan.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		httptransport.RespondError(c, errors.New(errors.KindValidation, "travel.generate", "missing required fields"))
		return
	}

	plan, err := s.plans.Generate(c.Request.Context(), prefs)
	if err != nil {
		s.logger.ErrorTag("HTTP", "travel plan generation failed: %v", err)
		httptransport.RespondError(c, err)
		return
	}

	httptransport.RespondSuccess(c, http.StatusOK, plan, "Travel plan generated successfully.")
}
