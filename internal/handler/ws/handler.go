package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/eaglechat/eaglechat/internal/handler/chat"
	"github.com/eaglechat/eaglechat/pkg/utils"
)

// Handler answers chat messages over a websocket. Every inbound frame gets
// exactly one outbound frame holding the whole reply or an error.
type Handler struct {
	replier  chat.Replier
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// New 创建WebSocket处理器
func New(replier chat.Replier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		replier: replier,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleWebSocket)
}

// Frame is sent by the gateway in reply to each inbound message.
type Frame struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	if !h.track(conn) {
		_ = conn.WriteControl(websocket.CloseMessage, goingAway(), time.Now().Add(time.Second))
		conn.Close()
		return
	}
	defer h.untrack(conn)

	conn.SetReadLimit(chat.MaxRequestBytes)
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read ended", zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		frame := h.answer(r, data)
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

// Shutdown closes every open connection with a going-away frame and refuses
// new ones. Register it with http.Server.RegisterOnShutdown.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage, goingAway(), deadline)
		conn.Close()
	}
}

func (h *Handler) track(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[conn] = struct{}{}
	return true
}

func (h *Handler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

func goingAway() []byte {
	return websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
}

func (h *Handler) answer(r *http.Request, data []byte) Frame {
	var payload chat.Request
	if err := json.Unmarshal(data, &payload); err != nil {
		return Frame{Error: chat.MsgMessageRequired}
	}

	_, body := chat.Answer(r.Context(), h.replier, payload.Message)
	return toFrame(body)
}

func toFrame(body any) Frame {
	switch v := body.(type) {
	case chat.Response:
		return Frame{Reply: v.Reply}
	case utils.ErrorResponse:
		return Frame{Error: v.Error}
	default:
		return Frame{Error: chat.MsgFailedToGetReply}
	}
}
