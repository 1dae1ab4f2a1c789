package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"HRPolicyGateway/internal/gateway"
	"HRPolicyGateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsReadLimit  = 64 << 10
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleAskConnection godoc
// @Summary      질문 WebSocket 연결
// @Description  하나의 연결에서 여러 질문을 주고받기 위한 WebSocket 연결을 시작합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Description  각 텍스트 프레임 `{"user"?, "question"}` 에 대해 /ask 와 같은 JSON 또는 `{"error": ...}` 를 응답합니다.
// @Tags         WebSocket (Ask)
// @Param        token    query     string  true  "로그인 시 발급받은 JWT 토큰"
// @Success      101      {string}  string  "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)"
// @Failure      401      {object}  handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/ask [get]
func (h *Handler) HandleAskConnection(c *gin.Context) {
	// 업그레이드 전에 토큰 검증
	tokenString := c.Query("token")
	if tokenString == "" {
		h.metrics.IncAuthFailure("missing")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}
	caller, err := middleware.Authenticate(h.tokens, tokenString)
	if err != nil {
		h.metrics.IncAuthFailure(middleware.FailureReason(err))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("HandleAskConnection(): failed to upgrade", zap.String("user", caller.User), zap.Error(err))
		return
	}
	defer conn.Close()
	h.logger.Info("WebSocket connection established", zap.String("user", caller.User))

	h.manageAskSession(c, conn, caller)
}

// manageAskSession answers frames in order until the client goes away.
func (h *Handler) manageAskSession(c *gin.Context, conn *websocket.Conn, caller gateway.Caller) {
	ctx := c.Request.Context()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("manageAskSession(): read failed", zap.String("user", caller.User), zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var reply any
		var req AskRequest
		if err := json.Unmarshal(data, &req); err != nil {
			reply = ErrorResponse{Error: "invalid request"}
		} else if resp, err := h.ask(ctx, caller, req); err != nil {
			if ctx.Err() != nil {
				return
			}
			_, msg := statusFor(err)
			reply = ErrorResponse{Error: msg}
		} else {
			reply = resp
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("manageAskSession(): write failed", zap.String("user", caller.User), zap.Error(err))
			return
		}
	}
}
