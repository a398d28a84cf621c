package livekit

import (
	"context"

	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// RoomClient talks to the LiveKit room service. Deleting a room disconnects
// all of its participants; the transcript in the store is untouched.
type RoomClient struct {
	svc *lksdk.RoomServiceClient
}

// NewRoomClient creates a room service client.
func NewRoomClient(url, apiKey, apiSecret string) *RoomClient {
	return &RoomClient{svc: lksdk.NewRoomServiceClient(url, apiKey, apiSecret)}
}

// DeleteRoom deletes a live room.
func (c *RoomClient) DeleteRoom(ctx context.Context, room string) error {
	_, err := c.svc.DeleteRoom(ctx, &livekit.DeleteRoomRequest{Room: room})
	return err
}
