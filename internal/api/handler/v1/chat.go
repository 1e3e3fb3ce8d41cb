package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pinswap/api/internal/api/handler/v1/request"
	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/service"
)

const (
	chatWriteWait      = 10 * time.Second
	chatPongWait       = 60 * time.Second
	chatPingPeriod     = chatPongWait * 9 / 10
	chatMaxMessageSize = 4096
	chatReplyTimeout   = 30 * time.Second
)

type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

type chatClient struct {
	conn *websocket.Conn
	send chan response.ChatFrame
	// done is closed when writePump exits.
	done chan struct{}
}

func (c *chatClient) push(frame response.ChatFrame) bool {
	select {
	case c.send <- frame:
		return true
	case <-c.done:
		return false
	}
}

// ChatHandler answers chat questions over plain HTTP and over websocket
// sessions. Run must be started before sessions are accepted.
type ChatHandler struct {
	svc      ChatService
	upgrader websocket.Upgrader

	clients      map[*chatClient]struct{}
	clientsMutex sync.RWMutex
	register     chan *chatClient
	unregister   chan *chatClient
	stopped      chan struct{}
}

func NewChatHandler(svc ChatService, allowedOrigins []string) *ChatHandler {
	return &ChatHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		clients:    make(map[*chatClient]struct{}),
		register:   make(chan *chatClient),
		unregister: make(chan *chatClient),
		stopped:    make(chan struct{}),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}

		return false
	}
}

// Run tracks open sessions until ctx is done, then closes them all.
func (h *ChatHandler) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case <-ctx.Done():
			h.clientsMutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.conn.Close()
			}
			h.clientsMutex.Unlock()

			return
		}
	}
}

func (h *ChatHandler) sessions() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	return len(h.clients)
}

// HandleChat godoc
// @Summary      Ask the assistant a question
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      request.ChatRequest  true  "request body"
// @Success      200      {object}  response.ChatResponse
// @Failure      400      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Failure      502      {object}  response.Err
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(ctx *gin.Context) {
	var req request.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reply, err := h.svc.Reply(ctx.Request.Context(), req.Message)
	if err != nil {
		response.RenderErr(ctx, chatErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ChatResponse{Reply: reply})
}

func chatErr(err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		return response.ErrBadRequest(err)
	case errors.Is(err, service.ErrChatUpstream):
		return response.ErrBadGateway(err)
	default:
		return response.ErrInternalServerError(fmt.Errorf("v1.HandleChat -> h.svc.Reply -> %w", err))
	}
}

// HandleChatWebSocket godoc
// @Summary      Open a chat session over websocket
// @Description  Send {"message": "..."} frames; each one is answered with a reply or error frame.
// @Tags         chat
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      400  {object}  response.Err
// @Router       /chat/ws [get]
func (h *ChatHandler) HandleChatWebSocket(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// the upgrader has already written the error response
		zap.L().Debug("chat websocket upgrade failed", zap.Error(err))
		return
	}

	client := &chatClient{
		conn: conn,
		send: make(chan response.ChatFrame, 16),
		done: make(chan struct{}),
	}
	select {
	case h.register <- client:
	case <-h.stopped:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *chatClient) writePump() {
	ticker := time.NewTicker(chatPingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *chatClient) readPump(h *ChatHandler) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.stopped:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(chatMaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(chatPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(chatPongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("chat websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var req request.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if !c.push(response.ChatFrame{Type: "error", Message: "invalid message frame"}) {
				return
			}
			continue
		}

		replyCtx, cancel := context.WithTimeout(context.Background(), chatReplyTimeout)
		reply, err := h.svc.Reply(replyCtx, req.Message)
		cancel()
		if err != nil {
			e := chatErr(err)
			if e.Status >= http.StatusInternalServerError {
				zap.L().Error("chat reply failed", zap.Error(e.Err))
			}
			if !c.push(response.ChatFrame{Type: "error", Message: e.Message}) {
				return
			}
			continue
		}

		if !c.push(response.ChatFrame{Type: "reply", Reply: reply}) {
			return
		}
	}
}
