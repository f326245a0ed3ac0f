package luggage

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bagtrack-server-go/internal/domain/luggage/service"
	"bagtrack-server-go/internal/platform/errors"
	"bagtrack-server-go/internal/platform/logging"
	httptransport "bagtrack-server-go/internal/transport/http"
)

// Service exposes luggage registration, listing and removal over HTTP.
type Service struct {
	logger  *logging.Logger
	luggage *service.LuggageService
}

func NewService(luggage *service.LuggageService, logger *logging.Logger) (*Service, error) {
	if luggage == nil {
		return nil, errors.New(errors.KindConfig, "luggage.new", "luggage service is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "luggage.new", "logger is required")
	}

	return &Service{
		logger:  logger,
		luggage: luggage,
	}, nil
}

// Register attaches the luggage routes to the API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/register-luggage", s.handleRegister)
	router.GET("/registered-luggage", s.handleList)
	router.DELETE("/registered-luggage/:luggageId", s.handleDelete)

	s.logger.InfoTag("HTTP", "luggage routes registered")
	return nil
}

type registerLuggageRequest struct {
	UserID      string `json:"userId"`
	LuggageName string `json:"luggageName"`
	Account     string `json:"account"`
	IMEI        string `json:"imei"`
	Password    string `json:"password"`
}

func (s *Service) handleRegister(c *gin.Context) {
	var req registerLuggageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c, errors.New(errors.KindValidation, "luggage.register", "userId, luggageName, account, imei, and password are required"))
		return
	}

	record, err := s.luggage.Register(c.Request.Context(), service.RegisterParams{
		UserID:      req.UserID,
		LuggageName: req.LuggageName,
		Account:     req.Account,
		IMEI:        req.IMEI,
		Password:    req.Password,
	})
	if err != nil {
		s.logger.ErrorTag("HTTP", "luggage registration failed for user %s: %v", req.UserID, err)
		httptransport.RespondError(c, err)
		return
	}

	httptransport.RespondSuccess(c, http.StatusOK, record, "Luggage registered successfully.")
}

func (s *Service) handleList(c *gin.Context) {
	userID := c.Query("userId")

	records, err := s.luggage.List(c.Request.Context(), userID)
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"luggage": records,
	})
}

func (s *Service) handleDelete(c *gin.Context) {
	rawID := c.Param("luggageId")

	if err := s.luggage.Delete(c.Request.Context(), rawID); err != nil {
		// This endpoint predates the uniform envelope; the companion UI
		// reads the error field directly.
		c.JSON(errors.HTTPStatus(err), gin.H{
			"error": errors.ClientMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Luggage deleted successfully.",
	})
}
