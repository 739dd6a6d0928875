package events

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"vehicle-auctions/utils"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Hub keeps websocket subscribers grouped by auction and implements Publisher
type Hub struct {
	mu       sync.RWMutex
	subs     map[string]map[*client]struct{} // key: auctionID
	upgrader websocket.Upgrader
	origins  map[string]struct{}
}

// NewHub accepts same-origin upgrades plus any origin listed in
// allowedOrigins ("https://app.example.com"). A "*" entry allows every origin.
func NewHub(allowedOrigins ...string) *Hub {
	h := &Hub{
		subs:    make(map[string]map[*client]struct{}),
		origins: make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, o := range allowedOrigins {
		h.origins[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin guards the ?token= handshake against cross-site pages.
// Requests without an Origin header are not from browsers and pass.
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if _, ok := h.origins["*"]; ok {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	_, ok := h.origins[strings.ToLower(u.Scheme+"://"+u.Host)]
	return ok
}

// Publish sends e to every subscriber of its auction. Clients whose buffer is
// full are disconnected instead of stalling the caller.
func (h *Hub) Publish(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		utils.Error("events: failed to marshal event", map[string]any{
			"type":       e.Type,
			"auction_id": e.AuctionID,
			"error":      err.Error(),
		})
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.subs[e.AuctionID] {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		utils.Warn("events: dropping slow subscriber", map[string]any{
			"auction_id": e.AuctionID,
			"user_id":    c.userID,
		})
		h.unsubscribe(c)
	}
}

// Serve upgrades the request and streams events for auctionID until the peer goes away
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, auctionID, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:       h,
		conn:      conn,
		auctionID: auctionID,
		userID:    userID,
		send:      make(chan []byte, sendBuffer),
	}
	h.subscribe(c)

	go c.writePump()
	go c.readPump()
	return nil
}

// Subscribers reports how many clients are watching auctionID
func (h *Hub) Subscribers(auctionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[auctionID])
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*client
	for _, set := range h.subs {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.Unlock()

	for _, c := range all {
		h.unsubscribe(c)
	}
}

func (h *Hub) subscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[c.auctionID]
	if !ok {
		set = make(map[*client]struct{})
		h.subs[c.auctionID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	if set, ok := h.subs[c.auctionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, c.auctionID)
		}
	}
	h.mu.Unlock()

	c.close()
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	auctionID string
	userID    string
	send      chan []byte
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump discards inbound frames; the feed is one-way
func (c *client) readPump() {
	defer c.hub.unsubscribe(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
