package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	apperrors "github.com/lacreme/bakery-backend/internal/errors"
	"github.com/lacreme/bakery-backend/internal/middleware"
	ws "github.com/lacreme/bakery-backend/internal/websocket"
)

// WebSocketController 실시간 알림 연결
type WebSocketController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketController Origin 검사는 CORS 허용 목록을 그대로 사용한다
func NewWebSocketController(hub *ws.Hub, allowedOrigins []string) *WebSocketController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &WebSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// 브라우저가 아닌 클라이언트
				if origin == "" {
					return true
				}
				return allowed[origin]
			},
		},
	}
}

// Connect WebSocket 연결 처리
// GET /api/v1/ws?token=
// 토큰은 쿼리로 받지만 로깅하지 않음
func (ctrl *WebSocketController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, userID)
	ctrl.hub.Register(client)

	go client.Serve()

	log.Info("WebSocket connection established", map[string]interface{}{
		"user_id": userID,
	})
}
