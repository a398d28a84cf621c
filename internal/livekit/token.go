// Package livekit wraps the LiveKit server APIs used by the intake service:
// access-token minting for room join and best-effort room teardown.
package livekit

import (
	"time"

	"github.com/livekit/protocol/auth"
)

// DefaultTokenTTL matches the two-hour session window handed to callers.
const DefaultTokenTTL = 2 * time.Hour

// MintToken creates a room-join access token for a participant.
func MintToken(apiKey, apiSecret, room, identity string, ttl time.Duration) (string, error) {
	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     room,
	}
	grant.SetCanPublish(true)
	grant.SetCanSubscribe(true)

	at := auth.NewAccessToken(apiKey, apiSecret).
		SetIdentity(identity).
		SetName(identity).
		SetVideoGrant(grant).
		SetValidFor(ttl)

	return at.ToJWT()
}
