package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/lacreme/bakery-backend/pkg/logger"
)

// 알림 푸시 세션: 서버 → 클라이언트가 기본 방향이고 클라이언트는 ping만 보낸다
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10 // pongWait보다 짧아야 함

	// {"type":"ping"} 외에는 받을 것이 없음
	maxClientFrame = 512

	// 한 번 깨어날 때 밀어 넣는 최대 알림 수. 나머지는 다음 루프에서
	pushBatch = 16
)

// Conn gorilla 연결 래퍼
type Conn struct {
	*websocket.Conn
}

// Serve 세션 시작. 푸시 루프는 별도 goroutine, keepalive 수신은 호출한 goroutine에서 돈다
func (c *Client) Serve() {
	go c.pushLoop()
	c.listen()
}

// listen 연결이 끊기거나 pong이 끊기면 Hub에서 세션을 내린다
func (c *Client) listen() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxClientFrame)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Notification session dropped", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			return
		}
		c.Hub.HandleClientMessage(c, frame)
	}
}

// pushLoop Send 큐의 알림을 프레임 단위로 내보내고 주기적으로 ping
func (c *Client) pushLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			if !ok {
				// Hub가 세션을 닫음 (로그아웃, 서버 종료, 버퍼 초과)
				c.writeFrame(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
				return
			}
			if !c.push(payload) {
				return
			}

		case <-ticker.C:
			if err := c.writeFrame(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push first와 이미 쌓여 있는 알림을 최대 pushBatch개까지 보낸다
func (c *Client) push(first []byte) bool {
	if err := c.writeFrame(websocket.TextMessage, first); err != nil {
		logger.Error("Failed to push notification", err, map[string]interface{}{
			"user_id": c.UserID,
		})
		return false
	}

	for i := 1; i < pushBatch; i++ {
		select {
		case payload, ok := <-c.Send:
			if !ok {
				return false
			}
			if err := c.writeFrame(websocket.TextMessage, payload); err != nil {
				logger.Error("Failed to push queued notification", err, map[string]interface{}{
					"user_id": c.UserID,
					"batch":   i,
				})
				return false
			}
		default:
			return true
		}
	}
	return true
}

func (c *Client) writeFrame(messageType int, data []byte) error {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}
