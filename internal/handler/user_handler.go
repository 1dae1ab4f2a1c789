/**
* Name: 			user_handler.go
* Description: 		로그인(토큰 발급)과 프로필 조회 핸들러
* Workflow: 		요청 검증 -> (선택) 비밀번호 확인 -> JWT 발급 / 권한별 프로필 필드 반환
 */
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"HRPolicyGateway/internal/middleware"
	"HRPolicyGateway/internal/models"
	"HRPolicyGateway/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// /auth/login 요청 바디
type LoginRequest struct {
	User     string   `json:"user" example:"carol"`
	Roles    []string `json:"roles" example:"employee"`
	Password string   `json:"password,omitempty" example:"password123"`
}

type LoginSuccessResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// roles는 리스트 여부를 직접 확인하기 위해 RawMessage로 받음
type loginBody struct {
	User     json.RawMessage `json:"user"`
	Roles    json.RawMessage `json:"roles"`
	Password string          `json:"password"`
}

// Login godoc
// @Summary      로그인 (Login)
// @Description  사용자명과 역할 목록으로 JWT 토큰을 발급받습니다.
// @Description  HRGW_REQUIRE_PASSWORD=true 이면 password가 저장된 해시와 일치해야 합니다.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "로그인 요청 정보"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse "user 누락 또는 roles 형식 오류"
// @Failure      401 {object} handler.ErrorResponse "인증 실패 (자격 증명 오류)"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	rawData, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}
	var body loginBody
	if err := json.Unmarshal(rawData, &body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	var user string
	if len(body.User) > 0 {
		_ = json.Unmarshal(body.User, &user)
	}
	user = models.NormalizeUser(user)
	if user == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user required"})
		return
	}

	roles, ok := parseRoles(body.Roles)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "roles must be list"})
		return
	}

	if h.passwords != nil {
		if err := h.passwords.VerifyPassword(c.Request.Context(), user, body.Password); err != nil {
			if errors.Is(err, storage.ErrBadCredentials) {
				h.metrics.IncAuthFailure("credentials")
				c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
				return
			}
			h.logger.Error("Login(): password check failed", zap.String("user", user), zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			return
		}
	}

	tokenString, err := h.tokens.Issue(user, roles)
	if err != nil {
		h.logger.Error("Login(): failed to issue token", zap.String("user", user), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, LoginSuccessResponse{AccessToken: tokenString, TokenType: "bearer"})
}

// parseRoles accepts a JSON array or an absent/null value. Non-string
// entries are dropped.
func parseRoles(raw json.RawMessage) ([]string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []string{}, true
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	roles := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles, true
}

// Profile godoc
// @Summary      프로필 조회 (Profile)
// @Description  호출자에게 허용된 필드만 포함한 사용자 프로필을 반환합니다. (JWT 필요)
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        user path string true "조회 대상 사용자명"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} handler.ErrorResponse "인증 토큰 누락 또는 만료"
// @Failure      404 {object} handler.ErrorResponse "사용자 없음"
// @Router       /profile/{user} [get]
func (h *Handler) Profile(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), caller, models.NormalizeUser(c.Param("user")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
