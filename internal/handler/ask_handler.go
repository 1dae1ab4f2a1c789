package handler

import (
	"context"
	"net/http"

	"HRPolicyGateway/internal/gateway"
	"HRPolicyGateway/internal/middleware"
	"HRPolicyGateway/internal/models"

	"github.com/gin-gonic/gin"
)

// /ask 요청 바디
type AskRequest struct {
	User     string `json:"user,omitempty" example:"carol"`
	Question string `json:"question" example:"What's my overtime rate?"`
}

// Ask godoc
// @Summary      질문 (Ask)
// @Description  HR/정책 질문에 답합니다. 개인 정보는 호출자 권한으로 허용된 필드만 사용됩니다.
// @Tags         API (Protected)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.AskRequest true "질문"
// @Success      200 {object} models.AnswerResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      502 {object} handler.ErrorResponse "답변 생성 실패"
// @Router       /ask [post]
func (h *Handler) Ask(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}
	resp, err := h.ask(c.Request.Context(), caller, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ask(ctx context.Context, caller gateway.Caller, req AskRequest) (*models.AnswerResponse, error) {
	return h.service.Ask(ctx, caller, gateway.Question{User: req.User, Text: req.Question})
}

// Healthz godoc
// @Summary      상태 확인
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
