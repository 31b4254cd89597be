package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/FocuswithJustin/tamilbible/internal/locator"
	"github.com/FocuswithJustin/tamilbible/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096

	// Per-client lookup rate; bursts of twice the rate are allowed.
	messagesPerSecond = 10
)

// LookupMessage is a lookup request sent over the websocket.
type LookupMessage struct {
	RequestID string `json:"requestId"`
	Passage   string `json:"passage,omitempty"`
	Ref       string `json:"ref,omitempty"`
	Source    string `json:"source,omitempty"`
	BibleID   string `json:"bibleId,omitempty"`
}

// Client is one websocket connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	server  *Server
}

// Hub tracks connected clients and closes them on shutdown.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a hub. It does nothing until Run is called.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run handles registration until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", n)
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// reply queues msg for the client, dropping it when the client is not
// keeping up.
func (c *Client) reply(msg LookupResponse) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("failed to marshal lookup response", "error", err)
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if !c.hub.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		logging.Warn("websocket send buffer full, dropping response", "request_id", msg.RequestID)
	}
}

// readPump reads lookup requests and answers them in order.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.WarnContext(ctx, "websocket unexpected close", "error", err)
			}
			return
		}

		var msg LookupMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(LookupResponse{Error: "Invalid message"})
			continue
		}
		if !c.limiter.Allow() {
			logging.SecurityEvent("websocket_rate_limited", "api", "request_id", msg.RequestID)
			c.reply(LookupResponse{RequestID: msg.RequestID, Error: "Rate limit exceeded"})
			continue
		}

		resp, _ := c.server.lookup(ctx, locator.Request{
			Passage: msg.Passage,
			Ref:     msg.Ref,
			Source:  msg.Source,
			BibleID: msg.BibleID,
		})
		resp.RequestID = msg.RequestID
		c.reply(resp)
	}
}

// writePump writes queued responses and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleWebSocket upgrades the connection and serves lookups on it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "WebSocket hub not initialized")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.SecurityEvent("websocket_upgrade_rejected", "api",
			"origin", r.Header.Get("Origin"),
			"error", err.Error())
		return
	}

	client := &Client{
		hub:     s.hub,
		conn:    conn,
		send:    make(chan []byte, 64),
		limiter: rate.NewLimiter(messagesPerSecond, 2*messagesPerSecond),
		server:  s,
	}
	if !s.hub.add(client) {
		conn.Close()
		return
	}

	// The request context ends when this handler returns.
	ctx := logging.WithRequestID(s.baseCtx, logging.GetRequestID(r.Context()))
	go client.writePump()
	go client.readPump(ctx)
}
