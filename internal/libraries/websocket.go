package libraries

import (
	"context"
	"encoding/json"
	"sync"

	"planify-backend/internal/auth"
	"planify-backend/internal/cache"
	"planify-backend/internal/models"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type WebSocketMessageType string

const (
	WebSocketMessageTypePing             WebSocketMessageType = "ping"
	WebSocketMessageTypePong             WebSocketMessageType = "pong"
	WebSocketMessageTypeError            WebSocketMessageType = "error"
	WebSocketMessageTypeSubscribe        WebSocketMessageType = "subscribe"
	WebSocketMessageTypeUnsubscribe      WebSocketMessageType = "unsubscribe"
	WebSocketMessageTypeSubscribed       WebSocketMessageType = "subscribed"
	WebSocketMessageTypeBoardInvalidated WebSocketMessageType = "board_invalidated"
	WebSocketMessageTypeOrgInvalidated   WebSocketMessageType = "organization_invalidated"
)

type WebSocketMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data interface{}          `json:"data,omitempty"`
}

type SubscribePayload struct {
	BoardId string `json:"board_id"`
}

type InvalidatedPayload struct {
	Path string `json:"path"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type Client struct {
	ID     string
	OrgID  string
	Conn   *websocket.Conn
	Send   chan []byte
	boards map[uuid.UUID]struct{}

	mu     sync.Mutex
	closed bool
}

func NewClient(orgID string) *Client {
	return &Client{
		ID:     uuid.NewString(),
		OrgID:  orgID,
		Send:   make(chan []byte, 256),
		boards: make(map[uuid.UUID]struct{}),
	}
}

type subscription struct {
	client  *Client
	boardID uuid.UUID
	on      bool
}

type invalidation struct {
	path    string
	boardID uuid.UUID
	orgID   string
}

// BoardLookup confirms a board belongs to the subscriber's organization.
type BoardLookup interface {
	GetBoard(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error)
}

// Hub tracks connected clients and the boards each one watches. All client
// state is owned by the Run goroutine.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	subscribe  chan subscription
	broadcast  chan invalidation
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		broadcast:  make(chan invalidation, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client.ID] = client
		case client := <-h.unregister:
			h.drop(client)
		case s := <-h.subscribe:
			if _, ok := h.clients[s.client.ID]; !ok {
				continue
			}
			if s.on {
				s.client.boards[s.boardID] = struct{}{}
			} else {
				delete(s.client.boards, s.boardID)
			}
		case inv := <-h.broadcast:
			h.fanOut(inv)
		}
	}
}

// push never blocks and never writes to a closed channel.
func (c *Client) push(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (h *Hub) drop(client *Client) {
	if _, exists := h.clients[client.ID]; exists {
		delete(h.clients, client.ID)
		client.close()
	}
}

func (h *Hub) fanOut(inv invalidation) {
	msg := WebSocketMessage{Type: WebSocketMessageTypeBoardInvalidated, Data: &InvalidatedPayload{Path: inv.path}}
	if inv.orgID != "" {
		msg.Type = WebSocketMessageTypeOrgInvalidated
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("failed to marshal invalidation")
		return
	}
	for _, client := range h.clients {
		if inv.orgID != "" && client.OrgID != inv.orgID {
			continue
		}
		if inv.orgID == "" {
			if _, watching := client.boards[inv.boardID]; !watching {
				continue
			}
		}
		if !client.push(payload) {
			log.WithField("client_id", client.ID).Warn("websocket send buffer full, dropping invalidation")
		}
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Subscribe(client *Client, boardID uuid.UUID) {
	h.setSubscription(subscription{client: client, boardID: boardID, on: true})
}

func (h *Hub) Unsubscribe(client *Client, boardID uuid.UUID) {
	h.setSubscription(subscription{client: client, boardID: boardID})
}

func (h *Hub) setSubscription(s subscription) {
	select {
	case h.subscribe <- s:
	case <-h.done:
	}
}

// Invalidate pushes a stale-path notice to the clients watching it.
func (h *Hub) Invalidate(ctx context.Context, path string) {
	inv := invalidation{path: path}
	if id, ok := cache.ParseBoardPath(path); ok {
		inv.boardID = id
	} else if orgID, ok := cache.ParseOrgPath(path); ok {
		inv.orgID = orgID
	} else {
		return
	}
	select {
	case h.broadcast <- inv:
	case <-ctx.Done():
	case <-h.done:
	default:
		log.WithField("path", path).Warn("websocket hub busy, dropping invalidation")
	}
}

func send(client *Client, msg WebSocketMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("failed to marshal websocket message")
		return
	}
	client.push(payload)
}

func SendErrorMessage(client *Client, errorMsg string) {
	send(client, WebSocketMessage{Type: WebSocketMessageTypeError, Data: &ErrorPayload{Message: errorMsg}})
}

// parseWebSocketMessage parses incoming websocket message and returns the message structure
func parseWebSocketMessage(msg []byte) (*WebSocketMessage, error) {
	var rawMessage struct {
		Type WebSocketMessageType `json:"type"`
		Data json.RawMessage      `json:"data,omitempty"`
	}
	if err := json.Unmarshal(msg, &rawMessage); err != nil {
		return nil, err
	}

	message := &WebSocketMessage{Type: rawMessage.Type}
	if len(rawMessage.Data) > 0 {
		switch rawMessage.Type {
		case WebSocketMessageTypeSubscribe, WebSocketMessageTypeUnsubscribe:
			var p SubscribePayload
			if err := json.Unmarshal(rawMessage.Data, &p); err != nil {
				return nil, err
			}
			message.Data = &p
		default:
			var data interface{}
			if err := json.Unmarshal(rawMessage.Data, &data); err != nil {
				return nil, err
			}
			message.Data = data
		}
	}
	return message, nil
}

// HandleMessage applies one client frame to the hub.
func (h *Hub) HandleMessage(ctx context.Context, boards BoardLookup, client *Client, raw []byte) {
	message, err := parseWebSocketMessage(raw)
	if err != nil {
		SendErrorMessage(client, "Invalid JSON format")
		return
	}

	switch message.Type {
	case WebSocketMessageTypePing:
		send(client, WebSocketMessage{Type: WebSocketMessageTypePong})
	case WebSocketMessageTypeSubscribe, WebSocketMessageTypeUnsubscribe:
		p, ok := message.Data.(*SubscribePayload)
		if !ok || p.BoardId == "" {
			SendErrorMessage(client, "Board ID is required")
			return
		}
		boardID, err := uuid.Parse(p.BoardId)
		if err != nil {
			SendErrorMessage(client, "Invalid board ID")
			return
		}
		if message.Type == WebSocketMessageTypeUnsubscribe {
			h.Unsubscribe(client, boardID)
			return
		}
		if _, err := boards.GetBoard(ctx, client.OrgID, boardID); err != nil {
			SendErrorMessage(client, "Board not found")
			return
		}
		h.Subscribe(client, boardID)
		send(client, WebSocketMessage{Type: WebSocketMessageTypeSubscribed, Data: p})
	default:
		SendErrorMessage(client, "Type is invalid or not provided")
	}
}

// WebSocketHandler expects auth.Middleware to have stored the principal in locals.
func WebSocketHandler(hub *Hub, boards BoardLookup) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		p, _ := conn.Locals("principal").(auth.Principal)
		client := NewClient(p.OrgID)
		client.Conn = conn
		if !hub.Register(client) {
			conn.Close()
			return
		}
		ctx := auth.WithPrincipal(context.Background(), p)

		// Write loop
		go func() {
			defer func() {
				hub.Unregister(client)
				conn.Close()
			}()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.WithError(err).WithField("client_id", client.ID).Debug("websocket write failed")
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.WithError(err).WithField("client_id", client.ID).Debug("websocket read ended")
				break
			}
			hub.HandleMessage(ctx, boards, client, msg)
		}

		hub.Unregister(client)
		conn.Close()
	})
}
