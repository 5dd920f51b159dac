package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/bingohub/internal/store"
)

const (
	hostID  = "host"
	guestID = "guest"
	otherID = "other"
	code    = "ABC123"
)

func seededRoom(t *testing.T, status Status) *store.Memory {
	t.Helper()
	ctx := context.Background()
	st := newStore()

	fields := store.Fields{
		fieldStatus: status,
		fieldConfig: DefaultConfig(),
		fieldHost:   hostID,
	}
	fields[playerField(hostID)] = Player{ID: hostID, Name: "Host"}
	require.NoError(t, st.Create(ctx, hostID, code, fields))
	require.NoError(t, st.Set(ctx, guestID, code, playerField(guestID), Player{ID: guestID, Name: "Guest"}))

	return st
}

func TestRulesCreate(t *testing.T) {
	ctx := context.Background()
	st := newStore()

	err := st.Create(ctx, guestID, code, store.Fields{
		fieldHost:            hostID,
		playerField(guestID): Player{ID: guestID},
	})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	err = st.Create(ctx, hostID, code, store.Fields{fieldHost: hostID})
	assert.ErrorIs(t, err, store.ErrAccessDenied)
}

func TestRulesWrite(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		actor  string
		fields func() store.Fields
		ok     bool
	}{
		{"host sets status", StatusLobby, hostID, func() store.Fields { return store.Fields{fieldStatus: StatusPlaying} }, true},
		{"guest sets status", StatusLobby, guestID, func() store.Fields { return store.Fields{fieldStatus: StatusPlaying} }, false},
		{"guest writes config", StatusLobby, guestID, func() store.Fields { return store.Fields{fieldConfig: DefaultConfig()} }, false},
		{"guest writes call log", StatusPlaying, guestID, func() store.Fields { return store.Fields{fieldCalled: []int{1}} }, false},
		{"guest writes own entry", StatusLobby, guestID, func() store.Fields {
			return store.Fields{playerField(guestID): Player{ID: guestID, Name: "G2"}}
		}, true},
		{"guest writes host entry", StatusLobby, guestID, func() store.Fields {
			return store.Fields{playerField(hostID): Player{ID: hostID}}
		}, false},
		{"host writes guest entry", StatusLobby, hostID, func() store.Fields {
			return store.Fields{playerField(guestID): nil}
		}, true},
		{"stranger joins", StatusPlaying, otherID, func() store.Fields {
			return store.Fields{playerField(otherID): Player{ID: otherID}}
		}, true},
		{"guest claims win", StatusPlaying, guestID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: guestID}, fieldStatus: StatusEnded}
		}, true},
		{"guest claims win in lobby", StatusLobby, guestID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: guestID}, fieldStatus: StatusEnded}
		}, false},
		{"guest claims win for host", StatusPlaying, guestID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: hostID}}
		}, false},
		{"stranger claims win", StatusPlaying, otherID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: otherID}}
		}, false},
		{"guest ends round without winning", StatusPlaying, guestID, func() store.Fields {
			return store.Fields{fieldStatus: StatusEnded}
		}, false},
		{"guest clears winner", StatusPlaying, guestID, func() store.Fields {
			return store.Fields{fieldWinner: nil}
		}, false},
		{"guest claims win without ending round", StatusPlaying, guestID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: guestID}}
		}, false},
		{"guest claims win and restarts round", StatusPlaying, guestID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: guestID}, fieldStatus: StatusPlaying}
		}, false},
		{"host claims win without ending round", StatusPlaying, hostID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: hostID}}
		}, false},
		{"host claims win", StatusPlaying, hostID, func() store.Fields {
			return store.Fields{fieldWinner: Player{ID: hostID}, fieldStatus: StatusEnded}
		}, true},
		{"host returns playing room to lobby", StatusPlaying, hostID, func() store.Fields {
			return store.Fields{fieldStatus: StatusLobby}
		}, false},
		{"host returns ended room to lobby", StatusEnded, hostID, func() store.Fields {
			return store.Fields{fieldStatus: StatusLobby}
		}, false},
		{"host restarts ended room", StatusEnded, hostID, func() store.Fields {
			return store.Fields{fieldStatus: StatusPlaying}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := seededRoom(t, tt.status)
			err := st.Update(context.Background(), tt.actor, code, tt.fields())
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, store.ErrAccessDenied)
			}
		})
	}
}

func TestRulesWinnerIsWrittenOnce(t *testing.T) {
	ctx := context.Background()
	st := seededRoom(t, StatusPlaying)

	require.NoError(t, st.Update(ctx, guestID, code, store.Fields{
		fieldWinner: Player{ID: guestID},
		fieldStatus: StatusEnded,
	}))

	err := st.Update(ctx, hostID, code, store.Fields{fieldWinner: Player{ID: hostID}, fieldStatus: StatusEnded})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	err = st.Update(ctx, guestID, code, store.Fields{fieldWinner: Player{ID: guestID, Score: 9}, fieldStatus: StatusEnded})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	// A new round must clear the previous winner in the same write.
	err = st.Update(ctx, hostID, code, store.Fields{fieldStatus: StatusPlaying})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	err = st.Update(ctx, hostID, code, store.Fields{fieldStatus: StatusLobby, fieldWinner: nil})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	assert.NoError(t, st.Update(ctx, hostID, code, store.Fields{fieldStatus: StatusPlaying, fieldWinner: nil}))

	snap, err := st.Get(ctx, code)
	require.NoError(t, err)
	sess, err := Decode(snap)
	require.NoError(t, err)
	assert.Equal(t, StatusPlaying, sess.Status)
	assert.Nil(t, sess.Winner)
}

func TestRulesPushAndRemove(t *testing.T) {
	ctx := context.Background()
	st := seededRoom(t, StatusLobby)

	_, err := st.Push(ctx, guestID, code, collectionChat, ChatMessage{SenderID: guestID, Content: "hi", Kind: KindChat})
	assert.NoError(t, err)

	_, err = st.Push(ctx, guestID, code, collectionChat, ChatMessage{SenderID: SystemSender, Content: "x", Kind: KindSystem})
	assert.NoError(t, err)

	_, err = st.Push(ctx, guestID, code, collectionChat, ChatMessage{SenderID: hostID, Content: "spoof", Kind: KindChat})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	_, err = st.Push(ctx, otherID, code, collectionChat, ChatMessage{SenderID: otherID, Content: "hi", Kind: KindChat})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	_, err = st.Push(ctx, guestID, code, "cards", ChatMessage{SenderID: guestID, Kind: KindChat})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	_, err = st.Push(ctx, guestID, code, collectionChat, ChatMessage{SenderID: guestID, Kind: "shout"})
	assert.ErrorIs(t, err, store.ErrAccessDenied)

	assert.ErrorIs(t, st.Remove(ctx, guestID, code), store.ErrAccessDenied)
	assert.NoError(t, st.Remove(ctx, hostID, code))
}

func TestDecodeOrdersChatByTimestamp(t *testing.T) {
	ctx := context.Background()
	st := seededRoom(t, StatusLobby)

	for _, m := range []ChatMessage{
		{SenderID: guestID, Content: "third", Timestamp: 300, Kind: KindChat},
		{SenderID: guestID, Content: "first", Timestamp: 100, Kind: KindChat},
		{SenderID: hostID, Content: "second-a", Timestamp: 200, Kind: KindChat},
		{SenderID: guestID, Content: "second-b", Timestamp: 200, Kind: KindChat},
	} {
		sender := m.SenderID
		_, err := st.Push(ctx, sender, code, collectionChat, m)
		require.NoError(t, err)
	}

	snap, err := st.Get(ctx, code)
	require.NoError(t, err)
	sess, err := Decode(snap)
	require.NoError(t, err)

	var got []string
	for _, m := range sess.Chat {
		got = append(got, m.Content)
		assert.NotEmpty(t, m.ID)
	}
	assert.Equal(t, []string{"first", "second-a", "second-b", "third"}, got)

	require.Len(t, sess.Players, 2)
	assert.Equal(t, hostID, sess.Players[0].ID)
	assert.Equal(t, guestID, sess.Players[1].ID)
	assert.Empty(t, sess.CalledNumbers)
	assert.NotNil(t, sess.CalledNumbers)
}
