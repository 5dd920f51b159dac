package room

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Seednode/bingohub/internal/bingo"
	"github.com/Seednode/bingohub/internal/store"
)

const (
	maxNameRunes  = 32
	maxChatRunes  = 500
	maxAttempts   = 5
	maxCodeTries  = 8
	callTimeout   = 15 * time.Second
	defaultPhrase = 3 * time.Second
)

// PhraseGenerator produces the caller's flourish for a drawn number.
type PhraseGenerator interface {
	Generate(ctx context.Context, number int, lang string) (string, error)
}

type Options struct {
	// Phrases is optional. Without it numbers are called with no phrase.
	Phrases PhraseGenerator
	// PhraseTimeout bounds the wait for a phrase. A late phrase is dropped.
	PhraseTimeout time.Duration
	// Defaults is the config of rooms this client creates.
	Defaults Config
	Logger   *zap.SugaredLogger
	Rand     *rand.Rand
	Now      func() time.Time
	// Tick is the length of one CallSpeed unit. Zero means a second.
	Tick time.Duration
	// OnChange receives a fresh View after every local or remote change.
	OnChange func(View)
	// Bot makes the client mark called numbers on its own.
	Bot bool
}

// View is what a participant sees: the shared session plus their own card.
type View struct {
	PlayerID string      `json:"playerId,omitempty"`
	IsHost   bool        `json:"isHost"`
	Session  *Session    `json:"session,omitempty"`
	Card     *bingo.Card `json:"card,omitempty"`
	Closed   bool        `json:"closed,omitempty"`
}

// Client is one participant's handle on a room. It holds at most one room at
// a time and is safe for concurrent use.
type Client struct {
	store  store.Store
	opts   Options
	log    *zap.SugaredLogger
	caller *autoCaller

	rngMu sync.Mutex
	rng   *rand.Rand

	mu       sync.Mutex
	epoch    uint64
	roomID   string
	player   Player
	host     bool
	card     bingo.Card
	session  *Session
	cancel   store.Cancel
	declared bool
	holdAuto bool
}

func NewClient(st store.Store, opts Options) *Client {
	if opts.PhraseTimeout <= 0 {
		opts.PhraseTimeout = defaultPhrase
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Defaults == (Config{}) {
		opts.Defaults = DefaultConfig()
	}
	if cfg, err := opts.Defaults.Normalize(); err == nil {
		opts.Defaults = cfg
	} else {
		opts.Defaults = DefaultConfig()
	}

	c := &Client{
		store: st,
		opts:  opts,
		log:   opts.Logger,
		rng:   opts.Rand,
	}
	c.caller = newAutoCaller(c.autoCall)

	return c
}

// NewBot returns a client that plays by itself once it joins a room.
func NewBot(st store.Store, opts Options) *Client {
	opts.Bot = true
	return NewClient(st, opts)
}

func (c *Client) now() time.Time {
	return c.opts.Now()
}

func (c *Client) intN(n int) int {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	return c.rng.IntN(n)
}

func (c *Client) deal() bingo.Card {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	return bingo.NewCard(c.rng)
}

func (c *Client) draw(called []int) (int, error) {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	return bingo.Draw(called, c.rng)
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if utf8.RuneCountInString(name) > maxNameRunes {
		name = string([]rune(name)[:maxNameRunes])
	}
	return name, nil
}

func newPlayerID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (c *Client) newPlayer(name string) Player {
	return Player{
		ID:     newPlayerID(),
		Name:   name,
		Avatar: avatars[c.intN(len(avatars))],
		IsBot:  c.opts.Bot,
	}
}

// Create opens a new room with the caller as host and only member.
func (c *Client) Create(ctx context.Context, name string) (*Session, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if c.RoomID() != "" {
		return nil, ErrAlreadyInRoom
	}

	player := c.newPlayer(name)
	fields := store.Fields{
		fieldStatus:    StatusLobby,
		fieldConfig:    c.opts.Defaults,
		fieldHost:      player.ID,
		fieldCreatedAt: c.now().UnixMilli(),
	}
	fields[playerField(player.ID)] = player

	for range maxCodeTries {
		code, err := NewCode()
		if err != nil {
			return nil, err
		}

		err = c.store.Create(ctx, player.ID, code, fields)
		if errors.Is(err, store.ErrExists) {
			c.log.Debugw("room code collision", "room", code)
			continue
		}
		if err != nil {
			return nil, translate(err)
		}

		c.log.Infow("room created", "room", code, "player", player.ID)

		return c.enter(ctx, code, player)
	}

	return nil, ErrServiceUnavailable
}

// Join adds the caller to an existing room in any state. Joining mid-round
// deals a card that can still win; joining an ended room waits for the next.
func (c *Client) Join(ctx context.Context, code, name string) (*Session, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	code, ok := NormalizeCode(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if c.RoomID() != "" {
		return nil, ErrAlreadyInRoom
	}

	exists, err := c.store.Exists(ctx, code)
	if err != nil {
		return nil, translate(err)
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	player := c.newPlayer(name)
	if err := c.store.Set(ctx, player.ID, code, playerField(player.ID), player); err != nil {
		return nil, translate(err)
	}

	sess, err := c.enter(ctx, code, player)
	if err != nil {
		return nil, err
	}

	c.announce(ctx, code, player.ID, KindSystem, message(sess.Config.Language, msgJoined, player.Name))
	c.log.Infow("room joined", "room", code, "player", player.ID, "bot", player.IsBot)

	return sess, nil
}

// enter installs local state for a room the caller is already a member of
// and subscribes to it.
func (c *Client) enter(ctx context.Context, code string, player Player) (*Session, error) {
	_, sess, err := c.read(ctx, code)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.roomID = code
	c.player = player
	c.host = sess.HostID == player.ID
	c.card = c.deal()
	c.session = sess
	c.declared = false
	c.holdAuto = false
	c.mu.Unlock()

	cancel, err := c.store.Subscribe(ctx, code, func(snap *store.Snapshot) {
		c.onSnapshot(epoch, snap)
	})
	if err != nil {
		c.mu.Lock()
		if c.epoch == epoch {
			c.resetLocked()
		}
		c.mu.Unlock()
		return nil, translate(err)
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		cancel()
		return nil, ErrRoomNotFound
	}
	c.cancel = cancel
	view := c.viewLocked()
	c.mu.Unlock()

	c.emit(view)

	return sess, nil
}

// Start begins a round. Calls from anyone but the host are ignored, as are
// calls while a round is already playing.
func (c *Client) Start(ctx context.Context) error {
	roomID, me, host, err := c.identity()
	if err != nil {
		return err
	}
	if !host {
		c.log.Debugw("start ignored for non-host", "room", roomID, "player", me.ID)
		return nil
	}

	for range maxAttempts {
		snap, sess, err := c.read(ctx, roomID)
		if err != nil {
			return err
		}
		if sess.HostID != me.ID || sess.Status == StatusPlaying {
			return nil
		}

		err = c.store.UpdateIf(ctx, me.ID, roomID, snap.Version, store.Fields{
			fieldStatus:  StatusPlaying,
			fieldCalled:  nil,
			fieldCurrent: nil,
			fieldPhrase:  nil,
			fieldWinner:  nil,
		})
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return translate(err)
		}

		c.log.Infow("round started", "room", roomID)
		c.announce(ctx, roomID, me.ID, KindSystem, message(sess.Config.Language, msgStarted))

		return nil
	}

	return ErrStale
}

// CallNext draws and publishes the next number. Only the host may call. When
// the pool is empty the round ends and ErrExhausted is returned.
func (c *Client) CallNext(ctx context.Context) (int, string, error) {
	n, phrase, err := c.callNext(ctx, nil)
	if errors.Is(err, ErrExhausted) {
		if endErr := c.endExhausted(ctx); endErr != nil {
			c.log.Warnw("could not end exhausted round", "error", endErr)
		}
	}

	return n, phrase, err
}

func (c *Client) callNext(ctx context.Context, guard func(publish func() error) error) (int, string, error) {
	roomID, me, _, err := c.identity()
	if err != nil {
		return 0, "", err
	}

	_, sess, err := c.read(ctx, roomID)
	if err != nil {
		return 0, "", err
	}
	if err := canCall(sess, me.ID); err != nil {
		return 0, "", err
	}

	n, err := c.draw(sess.CalledNumbers)
	if err != nil {
		return 0, "", err
	}
	phrase := c.phrase(ctx, n, sess.Config.Language)

	for range maxAttempts {
		// The phrase wait may have overlapped other writes, so the log is
		// re-read and the publish is conditional on what was read.
		snap, sess, err := c.read(ctx, roomID)
		if err != nil {
			return 0, "", err
		}
		if err := canCall(sess, me.ID); err != nil {
			return 0, "", err
		}
		if sess.IsCalled(n) {
			if n, err = c.draw(sess.CalledNumbers); err != nil {
				return 0, "", err
			}
			phrase = c.phrase(ctx, n, sess.Config.Language)
			continue
		}

		fields := store.Fields{
			fieldCalled:  append(slices.Clone(sess.CalledNumbers), n),
			fieldCurrent: n,
			fieldPhrase:  phrase,
		}
		publish := func() error {
			return c.store.UpdateIf(ctx, me.ID, roomID, snap.Version, fields)
		}

		if guard != nil {
			err = guard(publish)
		} else {
			err = publish()
		}
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			if errors.Is(err, errCallerStopped) {
				return 0, "", err
			}
			return 0, "", translate(err)
		}

		c.log.Debugw("number called", "room", roomID, "number", bingo.Label(n), "phrase", phrase)

		return n, phrase, nil
	}

	return 0, "", ErrStale
}

func canCall(sess *Session, me string) error {
	if sess.HostID != me {
		return ErrAccessDenied
	}
	if sess.Status != StatusPlaying {
		return ErrNotPlaying
	}
	return nil
}

// phrase asks the generator for a flourish and gives up after PhraseTimeout,
// whether or not the generator honours its context.
func (c *Client) phrase(ctx context.Context, n int, lang string) string {
	if c.opts.Phrases == nil {
		return ""
	}

	pctx, cancel := context.WithTimeout(ctx, c.opts.PhraseTimeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := c.opts.Phrases.Generate(pctx, n, lang)
		ch <- result{text, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			c.log.Debugw("phrase generation failed", "number", n, "error", r.err)
			return ""
		}
		return strings.TrimSpace(r.text)
	case <-pctx.Done():
		c.log.Debugw("phrase generation timed out", "number", n)
		return ""
	}
}

func (c *Client) endExhausted(ctx context.Context) error {
	roomID, me, _, err := c.identity()
	if err != nil {
		return err
	}

	for range maxAttempts {
		snap, sess, err := c.read(ctx, roomID)
		if err != nil {
			return err
		}
		if sess.Status != StatusPlaying || len(bingo.Remaining(sess.CalledNumbers)) > 0 {
			return nil
		}

		err = c.store.UpdateIf(ctx, me.ID, roomID, snap.Version, store.Fields{
			fieldStatus: StatusEnded,
		})
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return translate(err)
		}

		c.log.Infow("round exhausted", "room", roomID)
		c.announce(ctx, roomID, me.ID, KindSystem, message(sess.Config.Language, msgExhausted))

		return nil
	}

	return ErrStale
}

// Mark marks a cell on the caller's card. The number must already have been
// called. If the mark completes a line and nobody has won yet, Mark declares
// the win and reports true.
func (c *Client) Mark(ctx context.Context, row, col int) (bool, error) {
	c.mu.Lock()
	if c.roomID == "" {
		c.mu.Unlock()
		return false, ErrNoSession
	}
	sess := c.session
	if sess == nil || sess.Status != StatusPlaying {
		c.mu.Unlock()
		return false, ErrNotPlaying
	}
	cell, ok := c.card.Cell(row, col)
	if !ok {
		c.mu.Unlock()
		return false, ErrInvalidCell
	}
	if !cell.IsFree() && !sess.IsCalled(cell.Value) {
		c.mu.Unlock()
		return false, ErrNotCalled
	}

	c.card.Mark(row, col)
	claim := !c.declared && sess.Winner == nil && bingo.IsWinning(c.card)
	if claim {
		c.declared = true
	}
	view := c.viewLocked()
	c.mu.Unlock()

	c.emit(view)

	if !claim {
		return false, nil
	}

	if err := c.DeclareWin(ctx); err != nil {
		if !errors.Is(err, ErrWinnerDeclared) && !errors.Is(err, ErrNotPlaying) {
			c.mu.Lock()
			c.declared = false
			c.mu.Unlock()
		}
		return false, err
	}

	return true, nil
}

// DeclareWin claims the round for the caller. The first claim recorded wins;
// later claims get ErrWinnerDeclared.
func (c *Client) DeclareWin(ctx context.Context) error {
	roomID, me, _, err := c.identity()
	if err != nil {
		return err
	}

	c.mu.Lock()
	card := c.card
	c.mu.Unlock()

	line, ok := bingo.WinningLine(card)
	if !ok {
		return ErrNotWinning
	}

	for range maxAttempts {
		snap, sess, err := c.read(ctx, roomID)
		if err != nil {
			return err
		}
		if sess.Winner != nil {
			if sess.Winner.ID == me.ID {
				return nil
			}
			return ErrWinnerDeclared
		}
		if sess.Status != StatusPlaying {
			return ErrNotPlaying
		}

		player, ok := sess.Player(me.ID)
		if !ok {
			return ErrAccessDenied
		}
		player.Score++

		fields := store.Fields{
			fieldStatus: StatusEnded,
			fieldWinner: player,
		}
		fields[playerField(me.ID)] = player

		err = c.store.UpdateIf(ctx, me.ID, roomID, snap.Version, fields)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return translate(err)
		}

		c.log.Infow("bingo", "room", roomID, "player", me.ID, "line", line.String())
		c.announce(ctx, roomID, me.ID, KindWin, message(sess.Config.Language, msgWon, player.Name, line.String()))

		return nil
	}

	return ErrStale
}

// Chat posts a message as the caller. Blank messages are dropped.
func (c *Client) Chat(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) > maxChatRunes {
		text = string([]rune(text)[:maxChatRunes])
	}

	roomID, me, _, err := c.identity()
	if err != nil {
		return err
	}

	return c.post(ctx, roomID, me.ID, ChatMessage{
		SenderID:   me.ID,
		SenderName: me.Name,
		Content:    text,
		Kind:       KindChat,
	})
}

func (c *Client) post(ctx context.Context, roomID, actor string, m ChatMessage) error {
	m.Timestamp = c.now().UnixMilli()

	_, err := c.store.Push(ctx, actor, roomID, collectionChat, m)

	return translate(err)
}

// announce posts a system message. Failures are logged, not returned.
func (c *Client) announce(ctx context.Context, roomID, actor string, kind ChatKind, text string) {
	err := c.post(ctx, roomID, actor, ChatMessage{
		SenderID:   SystemSender,
		SenderName: SystemSender,
		Content:    text,
		Kind:       kind,
	})
	if err != nil {
		c.log.Warnw("could not post announcement", "room", roomID, "error", err)
	}
}

// UpdateConfig applies a host's settings change. Turning auto-call off stops
// local calling at once, before the write is confirmed.
func (c *Client) UpdateConfig(ctx context.Context, patch ConfigPatch) error {
	roomID, me, host, err := c.identity()
	if err != nil {
		return err
	}
	if !host {
		return ErrAccessDenied
	}

	if patch.AutoCall != nil && !*patch.AutoCall {
		c.mu.Lock()
		c.holdAuto = true
		c.caller.stop()
		c.mu.Unlock()
	}

	err = c.updateConfig(ctx, roomID, me.ID, patch)
	if err != nil {
		c.mu.Lock()
		c.holdAuto = false
		c.reconcileLocked()
		c.mu.Unlock()
	}

	return err
}

func (c *Client) updateConfig(ctx context.Context, roomID, me string, patch ConfigPatch) error {
	for range maxAttempts {
		snap, sess, err := c.read(ctx, roomID)
		if err != nil {
			return err
		}
		if sess.HostID != me {
			return ErrAccessDenied
		}

		cfg, err := sess.Config.apply(patch).Normalize()
		if err != nil {
			return err
		}

		err = c.store.UpdateIf(ctx, me, roomID, snap.Version, store.Fields{fieldConfig: cfg})
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return translate(err)
		}

		c.log.Infow("room config updated", "room", roomID, "autoCall", cfg.AutoCall, "callSpeed", cfg.CallSpeed, "language", cfg.Language)

		return nil
	}

	return ErrStale
}

// Leave drops local state at once. A host leaving closes the room for
// everyone; a player leaving removes their own entry. Leaving when not in a
// room does nothing.
func (c *Client) Leave(ctx context.Context) error {
	c.mu.Lock()
	if c.roomID == "" {
		c.mu.Unlock()
		return nil
	}
	roomID, player, host := c.roomID, c.player, c.host
	lang := ""
	if c.session != nil {
		lang = c.session.Config.Language
	}
	c.resetLocked()
	c.mu.Unlock()

	c.emit(View{})

	if host {
		err := c.store.Remove(ctx, player.ID, roomID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return translate(err)
		}
		c.log.Infow("room closed", "room", roomID)
		return nil
	}

	// Announce while still a member; chat is closed to non-members.
	c.announce(ctx, roomID, player.ID, KindSystem, message(lang, msgLeft, player.Name))

	err := c.store.Set(ctx, player.ID, roomID, playerField(player.ID), nil)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return translate(err)
	}

	c.log.Infow("room left", "room", roomID, "player", player.ID)

	return nil
}

// resetLocked forgets the current room. Callers hold c.mu.
func (c *Client) resetLocked() {
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.caller.stop()
	c.roomID = ""
	c.player = Player{}
	c.host = false
	c.card = bingo.Card{}
	c.session = nil
	c.declared = false
	c.holdAuto = false
}

func (c *Client) onSnapshot(epoch uint64, snap *store.Snapshot) {
	c.mu.Lock()
	if epoch != c.epoch || c.roomID == "" {
		c.mu.Unlock()
		return
	}

	if snap == nil {
		roomID := c.roomID
		c.resetLocked()
		c.mu.Unlock()
		c.log.Infow("room closed by host", "room", roomID)
		c.emit(View{Closed: true})
		return
	}

	sess, err := Decode(snap)
	if err != nil {
		c.mu.Unlock()
		c.log.Warnw("undecodable room record", "room", snap.Key, "error", err)
		return
	}

	prev := c.session
	if prev != nil && sess.Version <= prev.Version {
		c.mu.Unlock()
		return
	}

	if newRound(prev, sess) {
		c.card = c.deal()
		c.declared = false
	}
	if !sess.Config.AutoCall {
		c.holdAuto = false
	}
	c.session = sess
	c.host = sess.HostID == c.player.ID
	c.reconcileLocked()
	view := c.viewLocked()
	bot := c.opts.Bot
	c.mu.Unlock()

	c.emit(view)

	if bot {
		c.autoMark(epoch)
	}
}

// newRound reports whether next starts a round that prev had not. A shrinking
// call log catches an ended-then-restarted round whose snapshots coalesced.
func newRound(prev, next *Session) bool {
	if prev == nil || next.Status != StatusPlaying {
		return false
	}
	if prev.Status == StatusEnded {
		return true
	}
	return len(next.CalledNumbers) < len(prev.CalledNumbers)
}

// reconcileLocked matches the auto-caller to the current session.
func (c *Client) reconcileLocked() {
	sess := c.session
	on := c.host && !c.holdAuto && sess != nil &&
		sess.Status == StatusPlaying && sess.Config.AutoCall
	speed := DefaultConfig().CallSpeed
	if sess != nil {
		speed = min(max(sess.Config.CallSpeed, MinCallSpeed), MaxCallSpeed)
	}

	c.caller.reconcile(on, time.Duration(speed)*c.opts.Tick)
}

// autoCall is one auto-caller tick. It reports whether calling should go on.
func (c *Client) autoCall(gen uint64) bool {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	_, _, err := c.callNext(ctx, func(publish func() error) error {
		return c.caller.guard(gen, publish)
	})

	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrExhausted):
		if endErr := c.endExhausted(ctx); endErr != nil {
			c.log.Warnw("could not end exhausted round", "error", endErr)
		}
		return false
	case errors.Is(err, errCallerStopped),
		errors.Is(err, ErrNotPlaying),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrNoSession),
		errors.Is(err, ErrRoomNotFound):
		return false
	}

	c.log.Warnw("auto-call failed", "error", err)

	return true
}

func (c *Client) read(ctx context.Context, roomID string) (*store.Snapshot, *Session, error) {
	snap, err := c.store.Get(ctx, roomID)
	if err != nil {
		return nil, nil, translate(err)
	}

	sess, err := Decode(snap)
	if err != nil {
		return nil, nil, err
	}

	return snap, sess, nil
}

func (c *Client) identity() (string, Player, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.roomID == "" {
		return "", Player{}, false, ErrNoSession
	}
	return c.roomID, c.player, c.host, nil
}

func (c *Client) viewLocked() View {
	if c.roomID == "" {
		return View{}
	}

	card := c.card

	return View{
		PlayerID: c.player.ID,
		IsHost:   c.host,
		Session:  c.session,
		Card:     &card,
	}
}

func (c *Client) emit(v View) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(v)
	}
}

// View returns the caller's current view.
func (c *Client) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.viewLocked()
}

// Session returns the most recent session, or nil outside a room.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session
}

// Card returns a copy of the caller's card.
func (c *Client) Card() (bingo.Card, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.card, c.roomID != ""
}

func (c *Client) RoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.roomID
}

func (c *Client) PlayerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.player.ID
}

func (c *Client) IsHost() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.host
}

// AutoCalling reports whether this client is currently calling numbers on
// a timer.
func (c *Client) AutoCalling() bool {
	return c.caller.running()
}
