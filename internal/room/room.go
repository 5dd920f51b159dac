// Package room runs one participant's side of a shared bingo room.
//
// There is no game loop process. Every participant drives a Client that
// subscribes to the room's record in a shared store and writes only the fields
// it owns: the host writes the room status, configuration and call log, each
// player writes their own player entry, and any member may chat or, once per
// round, declare themselves the winner. Cards never leave the Client.
package room

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Seednode/bingohub/internal/store"
)

// Status is the lifecycle stage of a room.
type Status string

const (
	// StatusLobby accepts joins; nothing has been called.
	StatusLobby Status = "lobby"
	// StatusPlaying means numbers are being called and cards can be marked.
	StatusPlaying Status = "playing"
	// StatusEnded follows a win or an exhausted pool. The host may start again.
	StatusEnded Status = "ended"
)

// ChatKind distinguishes player chat from announcements.
type ChatKind string

const (
	KindChat   ChatKind = "chat"
	KindSystem ChatKind = "system"
	KindWin    ChatKind = "win"
)

// SystemSender is the reserved sender id for announcements.
const SystemSender = "system"

// Record field names.
const (
	fieldStatus    = "status"
	fieldConfig    = "config"
	fieldCalled    = "calledNumbers"
	fieldCurrent   = "currentNumber"
	fieldPhrase    = "currentPhrase"
	fieldWinner    = "winner"
	fieldHost      = "hostId"
	fieldCreatedAt = "createdAt"

	playersPrefix  = "players/"
	collectionChat = "chat"
)

func playerField(id string) string {
	return playersPrefix + id
}

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Score  int    `json:"score"`
	IsBot  bool   `json:"isBot"`
}

type ChatMessage struct {
	ID         string   `json:"id,omitempty"`
	SenderID   string   `json:"senderId"`
	SenderName string   `json:"senderName"`
	Content    string   `json:"content"`
	Timestamp  int64    `json:"timestamp"`
	Kind       ChatKind `json:"kind"`
}

// Session is a decoded view of a room record. Sessions are never modified
// after Decode returns them.
type Session struct {
	ID            string        `json:"id"`
	Version       uint64        `json:"version"`
	Status        Status        `json:"status"`
	Config        Config        `json:"config"`
	CalledNumbers []int         `json:"calledNumbers"`
	CurrentNumber int           `json:"currentNumber,omitempty"`
	CurrentPhrase string        `json:"currentPhrase,omitempty"`
	Winner        *Player       `json:"winner,omitempty"`
	HostID        string        `json:"hostId"`
	Players       []Player      `json:"players"`
	Chat          []ChatMessage `json:"chat"`
	CreatedAt     int64         `json:"createdAt"`
}

// Player looks up a member by id.
func (s *Session) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// IsCalled reports whether n is in the call log.
func (s *Session) IsCalled(n int) bool {
	for _, c := range s.CalledNumbers {
		if c == n {
			return true
		}
	}
	return false
}

// Decode builds a Session from a room record. Players keep join order and
// chat is ordered by timestamp, ties keeping arrival order.
func Decode(snap *store.Snapshot) (*Session, error) {
	s := &Session{
		ID:      snap.Key,
		Version: snap.Version,
		Status:  StatusLobby,
		Config:  DefaultConfig(),
	}

	fields := []struct {
		name string
		v    any
	}{
		{fieldStatus, &s.Status},
		{fieldConfig, &s.Config},
		{fieldCalled, &s.CalledNumbers},
		{fieldCurrent, &s.CurrentNumber},
		{fieldPhrase, &s.CurrentPhrase},
		{fieldHost, &s.HostID},
		{fieldCreatedAt, &s.CreatedAt},
	}
	for _, f := range fields {
		if _, err := snap.Decode(f.name, f.v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}

	var winner Player
	ok, err := snap.Decode(fieldWinner, &winner)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldWinner, err)
	}
	if ok {
		s.Winner = &winner
	}

	names := snap.Prefixed(playersPrefix)
	s.Players = make([]Player, 0, len(names))
	for _, name := range names {
		var p Player
		if _, err := snap.Decode(name, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		s.Players = append(s.Players, p)
	}

	entries := snap.Children[collectionChat]
	s.Chat = make([]ChatMessage, 0, len(entries))
	for _, e := range entries {
		var m ChatMessage
		if err := json.Unmarshal(e.Value, &m); err != nil {
			return nil, fmt.Errorf("decode chat %s: %w", e.Key, err)
		}
		m.ID = e.Key
		s.Chat = append(s.Chat, m)
	}
	sort.SliceStable(s.Chat, func(i, j int) bool {
		return s.Chat[i].Timestamp < s.Chat[j].Timestamp
	})

	if s.CalledNumbers == nil {
		s.CalledNumbers = []int{}
	}

	return s, nil
}

// Lookup reads the room a typed code refers to. A malformed or unknown code is
// ErrRoomNotFound; a store that cannot answer is ErrServiceUnavailable.
func Lookup(ctx context.Context, st store.Store, code string) (*Session, error) {
	code, ok := NormalizeCode(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	snap, err := st.Get(ctx, code)
	if err != nil {
		return nil, translate(err)
	}

	return Decode(snap)
}
