package room

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Seednode/bingohub/internal/store"
)

// Rules enforces field ownership on room records.
//
// The host owns the room: status, config, the call log, hostId, createdAt,
// clearing the winner, and removing the record. Each player owns their own
// entry under players/ and the host may rewrite any entry. Members may push
// chat as themselves or as the system sender, and may claim the win for
// themselves once per round while the game is playing, in the same write that
// ends the round. A winner only exists in an ended round, and a room never
// returns to the lobby once started.
type Rules struct{}

var _ store.Rules = Rules{}

func denied(format string, args ...any) error {
	return fmt.Errorf("%w: %s", store.ErrAccessDenied, fmt.Sprintf(format, args...))
}

func (Rules) CanCreate(actor, _ string, fields map[string]json.RawMessage) error {
	var host string
	raw, ok := fields[fieldHost]
	if !ok || json.Unmarshal(raw, &host) != nil || host != actor || actor == "" {
		return denied("room creator must be its host")
	}

	if _, ok := fields[playerField(actor)]; !ok {
		return denied("host must be a member of the room it creates")
	}

	return nil
}

func (Rules) CanWrite(actor string, cur *store.Snapshot, fields map[string]json.RawMessage) error {
	var host string
	_, _ = cur.Decode(fieldHost, &host)
	isHost := actor != "" && actor == host

	var status Status
	_, _ = cur.Decode(fieldStatus, &status)

	claiming, clearing := false, false
	if raw, ok := fields[fieldWinner]; ok {
		claiming, clearing = !store.IsNull(raw), store.IsNull(raw)
	}

	var next Status
	setsStatus := false
	if raw, ok := fields[fieldStatus]; ok {
		if json.Unmarshal(raw, &next) != nil {
			return denied("malformed status")
		}
		setsStatus = true
	}

	for name, raw := range fields {
		switch {
		case strings.HasPrefix(name, playersPrefix):
			if strings.TrimPrefix(name, playersPrefix) != actor && !isHost {
				return denied("%s is not %s", name, actor)
			}

		case name == fieldWinner:
			if store.IsNull(raw) {
				if !isHost {
					return denied("only the host clears the winner")
				}
				continue
			}

			var w Player
			if json.Unmarshal(raw, &w) != nil || w.ID != actor {
				return denied("winner must be the caller")
			}
			if !cur.Has(playerField(actor)) {
				return denied("%s is not a member", actor)
			}
			if cur.Has(fieldWinner) {
				return denied("winner already declared")
			}
			if status != StatusPlaying {
				return denied("no round in progress")
			}
			if !setsStatus || next != StatusEnded {
				return denied("a win must end the round")
			}

		case name == fieldStatus:
			if next == StatusLobby && status != StatusLobby {
				return denied("a started room cannot return to the lobby")
			}
			if next != StatusEnded && cur.Has(fieldWinner) && !clearing {
				return denied("the winner must be cleared before a new round")
			}
			if isHost {
				continue
			}
			if next != StatusEnded || !claiming {
				return denied("only the host sets status")
			}

		default:
			if !isHost {
				return denied("only the host writes %s", name)
			}
		}
	}

	return nil
}

func (Rules) CanPush(actor string, cur *store.Snapshot, collection string, value json.RawMessage) error {
	if collection != collectionChat {
		return denied("unknown collection %s", collection)
	}

	if !cur.Has(playerField(actor)) {
		return denied("%s is not a member", actor)
	}

	var m ChatMessage
	if err := json.Unmarshal(value, &m); err != nil {
		return denied("malformed chat message")
	}
	if m.SenderID != actor && m.SenderID != SystemSender {
		return denied("cannot chat as %s", m.SenderID)
	}

	switch m.Kind {
	case KindChat, KindSystem, KindWin:
	default:
		return denied("unknown chat kind %q", m.Kind)
	}

	return nil
}

func (Rules) CanRemove(actor string, cur *store.Snapshot) error {
	var host string
	_, _ = cur.Decode(fieldHost, &host)
	if actor == "" || actor != host {
		return denied("only the host closes the room")
	}

	return nil
}
