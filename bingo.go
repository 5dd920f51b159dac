// Bingohub rooms
//
// Each websocket connection on /ws is one participant. The connection drives
// its own room.Client against the shared store, and every change that client
// sees is pushed back down the socket as a "state" message.
//
// Features:
// - Create a room, or join one by its 6-character code (case-insensitive)
// - Host-only start, calling, settings and bots; others' attempts are refused
// - Manual or automatic calling, with a phrase for each number
// - Bots that mark their own cards, capped per room by --max-bots
// - A join page and PNG QR code for each room, backed by go-qrcode
// - Idle rooms reaped after --room-timeout; their players see the room close

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/bingohub/internal/bingo"
	"github.com/Seednode/bingohub/internal/room"
	"github.com/Seednode/bingohub/internal/store"
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
	qrSize         = 320
)

// Messages coming from clients
type ClientMessage struct {
	Type   string            `json:"type"`             // create, join, start, call, mark, bingo, chat, config, leave, add_bot, remove_bot
	Name   string            `json:"name,omitempty"`   // create / join
	Code   string            `json:"code,omitempty"`   // join
	Row    *int              `json:"row,omitempty"`    // mark
	Col    *int              `json:"col,omitempty"`    // mark
	Text   string            `json:"text,omitempty"`   // chat
	Config *room.ConfigPatch `json:"config,omitempty"` // config
	BotID  string            `json:"botId,omitempty"`  // remove_bot
}

// StateMessage carries the participant's whole view after any change.
type StateMessage struct {
	Type string `json:"type"` // "state"
	room.View
}

// CalledMessage answers the host's "call".
type CalledMessage struct {
	Type   string `json:"type"` // "called"
	Number int    `json:"number"`
	Label  string `json:"label"`
	Phrase string `json:"phrase,omitempty"`
}

// ErrorMessage reports a failed request. The connection stays open.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Client struct {
	hub    *bingoHub
	conn   *websocket.Conn
	send   chan any
	done   chan struct{}
	once   sync.Once
	player *room.Client

	mu   sync.Mutex
	bots []*room.Client
}

type bingoHub struct {
	cfg     *Config
	store   *store.Memory
	phrases room.PhraseGenerator

	mu      sync.Mutex
	clients map[*Client]bool
}

func newBingoHub(cfg *Config) *bingoHub {
	return &bingoHub{
		cfg:     cfg,
		store:   store.NewMemory(store.WithRules(room.Rules{})),
		phrases: cfg.phrases(),
		clients: make(map[*Client]bool),
	}
}

func (h *bingoHub) options(onChange func(room.View)) room.Options {
	return room.Options{
		Phrases:       h.phrases,
		PhraseTimeout: h.cfg.phraseTimeout,
		Defaults:      h.cfg.roomDefaults(),
		Logger:        h.cfg.logger(),
		OnChange:      onChange,
	}
}

func (h *bingoHub) connect(conn *websocket.Conn) *Client {
	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan any, 32),
		done: make(chan struct{}),
	}
	c.player = room.NewClient(h.store, h.options(c.pushState))

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	return c
}

func (h *bingoHub) forget(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// reap closes rooms idle since before now minus --room-timeout.
func (h *bingoHub) reap(now time.Time) []string {
	removed := h.store.Sweep(now.Add(-h.cfg.roomTimeout))
	for _, code := range removed {
		logf(h.cfg, "GAMES: Closed idle room %s", code)
	}
	return removed
}

// reaperLoop periodically removes rooms that have been idle longer than
// --room-timeout.
func (h *bingoHub) reaperLoop(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.roomTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.reap(now)
		}
	}
}

// close disconnects every client and stops the store.
func (h *bingoHub) close() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	h.store.Close()
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// push queues msg without blocking. A client too slow to drain its queue is
// disconnected.
func (c *Client) push(msg any) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.send <- msg:
	default:
		logf(c.hub.cfg, "WS: Dropping slow client %s", c.player.PlayerID())
		c.close()
	}
}

func (c *Client) pushState(v room.View) {
	c.push(StateMessage{Type: "state", View: v})
}

func (c *Client) pushError(err error) {
	c.push(ErrorMessage{Type: "error", Code: errorCode(err), Message: err.Error()})
}

func (c *Client) readPump() {
	defer c.disconnect()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.pushError(fmt.Errorf("%w: %w", errUnknownMessage, err))
			continue
		}

		if err := c.handle(msg); err != nil {
			logf(c.hub.cfg, "GAMES: %s from %s failed: %v", msg.Type, c.player.PlayerID(), err)
			c.pushError(err)
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// disconnect leaves the room the connection was in, along with its bots.
func (c *Client) disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), c.hub.cfg.requestTimeout)
	defer cancel()

	c.dropBots(ctx)
	if err := c.player.Leave(ctx); err != nil {
		logf(c.hub.cfg, "GAMES: Leave on disconnect failed: %v", err)
	}

	c.hub.forget(c)
	c.close()
}

func (c *Client) handle(msg ClientMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.hub.cfg.requestTimeout)
	defer cancel()

	switch msg.Type {
	case "create":
		sess, err := c.player.Create(ctx, msg.Name)
		if err == nil {
			logf(c.hub.cfg, "GAMES: Created room %s", sess.ID)
		}
		return err

	case "join":
		sess, err := c.player.Join(ctx, msg.Code, msg.Name)
		if err == nil {
			logf(c.hub.cfg, "GAMES: Player %q joined %s", msg.Name, sess.ID)
		}
		return err

	case "start":
		return c.player.Start(ctx)

	case "call":
		n, phrase, err := c.player.CallNext(ctx)
		if err != nil {
			return err
		}
		c.push(CalledMessage{Type: "called", Number: n, Label: bingo.Label(n), Phrase: phrase})
		return nil

	case "mark":
		if msg.Row == nil || msg.Col == nil {
			return fmt.Errorf("%w: row and col are required", room.ErrInvalidCell)
		}
		_, err := c.player.Mark(ctx, *msg.Row, *msg.Col)
		return err

	case "bingo":
		return c.player.DeclareWin(ctx)

	case "chat":
		return c.player.Chat(ctx, msg.Text)

	case "config":
		if msg.Config == nil {
			return fmt.Errorf("%w: no settings given", room.ErrInvalidConfig)
		}
		return c.player.UpdateConfig(ctx, *msg.Config)

	case "leave":
		c.dropBots(ctx)
		return c.player.Leave(ctx)

	case "add_bot":
		return c.addBot(ctx)

	case "remove_bot":
		return c.removeBot(ctx, msg.BotID)
	}

	return fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
}

func (c *Client) addBot(ctx context.Context) error {
	if !c.player.IsHost() {
		return room.ErrAccessDenied
	}

	c.mu.Lock()
	live := c.bots[:0]
	for _, b := range c.bots {
		if b.RoomID() != "" {
			live = append(live, b)
		}
	}
	c.bots = live
	full := len(c.bots) >= c.hub.cfg.maxBots
	c.mu.Unlock()

	if full {
		return errTooManyBots
	}

	bot := room.NewBot(c.hub.store, c.hub.options(nil))
	if _, err := bot.Join(ctx, c.player.RoomID(), bot.BotName()); err != nil {
		return err
	}

	c.mu.Lock()
	c.bots = append(c.bots, bot)
	c.mu.Unlock()

	logf(c.hub.cfg, "GAMES: Bot %s added to %s", bot.PlayerID(), c.player.RoomID())

	return nil
}

// removeBot removes the bot with the given player id, or the newest bot when
// id is empty.
func (c *Client) removeBot(ctx context.Context, id string) error {
	if !c.player.IsHost() {
		return room.ErrAccessDenied
	}

	c.mu.Lock()
	idx := -1
	for i, b := range c.bots {
		if id == "" || b.PlayerID() == id {
			idx = i
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return errNoBot
	}
	bot := c.bots[idx]
	c.bots = append(c.bots[:idx], c.bots[idx+1:]...)
	c.mu.Unlock()

	return bot.Leave(ctx)
}

func (c *Client) dropBots(ctx context.Context) {
	c.mu.Lock()
	bots := c.bots
	c.bots = nil
	c.mu.Unlock()

	for _, b := range bots {
		if err := b.Leave(ctx); err != nil {
			logf(c.hub.cfg, "GAMES: Bot %s failed to leave: %v", b.PlayerID(), err)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(cfg *Config, hub *bingoHub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade from %s failed: %v", realIP(r), err)
			return
		}

		logf(cfg, "WS: %s connected", realIP(r))

		c := hub.connect(conn)
		go c.writePump()
		c.readPump()
	}
}

func joinURL(cfg *Config, r *http.Request, code string) string {
	// Respect TLS and X-Forwarded-Proto if present.
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix + "/join/" + code
}

// lookupStatus is the HTTP status for a failed room lookup.
func lookupStatus(err error) int {
	if errors.Is(err, room.ErrServiceUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusNotFound
}

func serveJoinPage(cfg *Config, hub *bingoHub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		sess, err := room.Lookup(r.Context(), hub.store, ps.ByName("code"))
		if err != nil {
			status := lookupStatus(err)
			w.WriteHeader(status)
			if status == http.StatusServiceUnavailable {
				_, _ = w.Write([]byte(newPage("Try again", "<p>Rooms are unavailable right now. Reload to retry.</p>")))
				return
			}
			_, _ = w.Write([]byte(newPage("Room not found", "<p>That room does not exist or has closed.</p>")))
			return
		}

		var body strings.Builder
		fmt.Fprintf(&body, "<h1>Room %s</h1>", html.EscapeString(sess.ID))
		fmt.Fprintf(&body, "<p>%d players, %s</p>", len(sess.Players), html.EscapeString(string(sess.Status)))
		fmt.Fprintf(&body, `<img alt="QR code for room %[1]s" src="%[2]s/join/%[1]s/qr" width="%[3]d" height="%[3]d">`,
			html.EscapeString(sess.ID), cfg.prefix, qrSize)

		_, err = w.Write([]byte(newPage("Join room "+sess.ID, body.String())))
		if err != nil {
			errs <- err
		}
	}
}

// QR handler: generates a PNG QR code for a room's join URL using go-qrcode.
func serveQR(cfg *Config, hub *bingoHub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		sess, err := room.Lookup(r.Context(), hub.store, ps.ByName("code"))
		if err != nil {
			http.Error(w, http.StatusText(lookupStatus(err)), lookupStatus(err))
			return
		}

		png, err := qrcode.Encode(joinURL(cfg, r, sess.ID), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: QR code for %s (%s) to %s in %s",
			sess.ID,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerBingo sets up routes so that:
//   - /ws              → WebSocket for one participant
//   - /join/:code      → join page for a room
//   - /join/:code/qr   → PNG QR code for that page
func registerBingo(cfg *Config, hub *bingoHub, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/ws", serveWS(cfg, hub))

	mux.GET(cfg.prefix+"/join/:code", serveJoinPage(cfg, hub, errs))

	mux.GET(cfg.prefix+"/join/:code/qr", serveQR(cfg, hub, errs))
}
