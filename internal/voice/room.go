// Package voice provides the LiveKit-backed implementation of the
// orchestrator's pipeline and broadcast interfaces. Audio transport, VAD and
// speech processing ride on the hosted platform; this package handles the
// text lane: data messages in, model replies out.
package voice

import (
	"github.com/rs/zerolog"

	lksdk "github.com/livekit/server-sdk-go/v2"
)

// ConnectOptions configure the agent's room connection.
type ConnectOptions struct {
	URL       string
	APIKey    string
	APISecret string
	Room      string
	Identity  string

	// OnUserText receives text data messages sent by room participants.
	OnUserText func(identity, text string)
}

// Room is the agent's connection to a LiveKit room.
type Room struct {
	room   *lksdk.Room
	logger zerolog.Logger
}

// Connect joins the room as the agent participant.
func Connect(opts ConnectOptions, logger zerolog.Logger) (*Room, error) {
	cb := lksdk.NewRoomCallback()
	cb.ParticipantCallback.OnDataPacket = func(data lksdk.DataPacket, params lksdk.DataReceiveParams) {
		pkt, ok := data.(*lksdk.UserDataPacket)
		if !ok || opts.OnUserText == nil {
			return
		}
		opts.OnUserText(params.SenderIdentity, string(pkt.Payload))
	}

	room, err := lksdk.ConnectToRoom(opts.URL, lksdk.ConnectInfo{
		APIKey:              opts.APIKey,
		APISecret:           opts.APISecret,
		RoomName:            opts.Room,
		ParticipantIdentity: opts.Identity,
	}, cb)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("room", room.Name()).Str("identity", opts.Identity).Msg("connected to room")
	return &Room{room: room, logger: logger}, nil
}

// PublishData sends a reliable data message to all room participants.
func (r *Room) PublishData(payload []byte) error {
	return r.room.LocalParticipant.PublishData(payload, lksdk.WithDataPublishReliable(true))
}

// Name returns the room name.
func (r *Room) Name() string {
	return r.room.Name()
}

// Disconnect leaves the room.
func (r *Room) Disconnect() {
	r.room.Disconnect()
}
