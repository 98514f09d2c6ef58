package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	aiService "github.com/eaglechat/eaglechat/internal/service/ai"
	"github.com/eaglechat/eaglechat/pkg/utils"
)

// Client-facing error texts. Provider details never reach the caller.
const (
	MsgMessageRequired  = "Message is required"
	MsgMessageTooLarge  = "Message is too large"
	MsgFailedToGetReply = "Failed to get response"
)

// MaxRequestBytes caps one request body or websocket frame.
const MaxRequestBytes = 64 << 10

// Replier answers one message.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

var _ Replier = (*aiService.Service)(nil)

// Request is the body of POST /chat.
type Request struct {
	Message string `json:"message"`
}

// Response is the success body of POST /chat.
type Response struct {
	Reply string `json:"reply"`
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	replier Replier
}

// New 创建聊天处理器
func New(replier Replier) *Handler {
	return &Handler{replier: replier}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat forwards one message to the gateway and returns its reply.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)

	var payload Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(w, http.StatusRequestEntityTooLarge, MsgMessageTooLarge)
			return
		}
		utils.RespondError(w, http.StatusBadRequest, MsgMessageRequired)
		return
	}

	status, body := Answer(r.Context(), h.replier, payload.Message)
	utils.RespondJSON(w, status, body)
}

// Answer maps one gateway call to its HTTP status and body. The websocket
// transport reuses it so both surfaces return the same payloads.
func Answer(ctx context.Context, replier Replier, message string) (int, any) {
	if message == "" {
		return http.StatusBadRequest, utils.ErrorResponse{Error: MsgMessageRequired}
	}

	reply, err := replier.Reply(ctx, message)
	if err != nil {
		if errors.Is(err, aiService.ErrMessageRequired) {
			return http.StatusBadRequest, utils.ErrorResponse{Error: MsgMessageRequired}
		}
		return http.StatusInternalServerError, utils.ErrorResponse{Error: MsgFailedToGetReply}
	}

	return http.StatusOK, Response{Reply: reply}
}
