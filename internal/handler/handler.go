/**
* Name: 			handler.go
* Description: 		HTTP 핸들러 공통 타입과 에러 매핑
* Workflow: 		Handler 생성 -> 라우트 등록 -> 에러를 상태 코드로 변환
 */
package handler

import (
	"context"
	"errors"
	"net/http"

	"HRPolicyGateway/internal/answer"
	"HRPolicyGateway/internal/auth"
	"HRPolicyGateway/internal/gateway"
	"HRPolicyGateway/internal/metrics"
	"HRPolicyGateway/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service is the question-answering surface the handlers expose.
type Service interface {
	Ask(ctx context.Context, caller gateway.Caller, q gateway.Question) (*models.AnswerResponse, error)
	Profile(ctx context.Context, caller gateway.Caller, subject string) (map[string]any, error)
}

// PasswordChecker verifies a login password. *storage.DB satisfies it.
type PasswordChecker interface {
	VerifyPassword(ctx context.Context, username, password string) error
}

type Deps struct {
	Tokens  *auth.TokenService
	Service Service
	// Passwords is consulted on login only when non-nil.
	Passwords PasswordChecker
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

type Handler struct {
	tokens    *auth.TokenService
	service   Service
	passwords PasswordChecker
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		tokens:    d.Tokens,
		service:   d.Service,
		passwords: d.Passwords,
		metrics:   d.Metrics,
		logger:    logger,
	}
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

// statusFor maps a service error to its HTTP status and client message.
// Internal details stay in the log.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, gateway.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, gateway.ErrSubjectNotFound):
		return http.StatusNotFound, gateway.ErrSubjectNotFound.Error()
	case errors.Is(err, gateway.ErrGeneration):
		return http.StatusBadGateway, gateway.ErrGeneration.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	case errors.Is(err, answer.ErrNoTemplate):
		return http.StatusInternalServerError, "internal error"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, ErrorResponse{Error: msg})
}
