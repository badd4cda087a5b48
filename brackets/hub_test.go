package brackets

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DoneClosesWhenRunReturns(t *testing.T) {
	t.Parallel()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- hub.Run(ctx) }()

	select {
	case <-hub.Done():
		t.Fatal("done closed while the hub is running")
	default:
	}

	cancel()
	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	select {
	case <-hub.Done():
	default:
		t.Fatal("done not closed after Run returned")
	}
	assert.Zero(t, hub.RoomSize(RoomForTournament("t-1")))
}

func TestHub_BroadcastToRoom(t *testing.T) {
	t.Parallel()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.Run(ctx) }()

	room := RoomForTournament("t-1")
	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: room}
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(RoomForTournament("other"), WebSocketMessage{Type: MessageCategoryUpdated})
	hub.BroadcastToRoom(room, WebSocketMessage{Type: MessageCategoryFinished, RoomID: room})
	msg := <-client.Send
	assert.JSONEq(t, `{"type":"CATEGORY_FINISHED","payload":null,"room_id":"tournament_t-1"}`, string(msg))

	// a full buffer drops the message instead of blocking
	hub.BroadcastToRoom(room, WebSocketMessage{Type: MessageCategoryUpdated})
	hub.BroadcastToRoom(room, WebSocketMessage{Type: MessageCategoryUpdated})
	assert.Len(t, client.Send, 1)

	hub.Unregister <- client
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, time.Second, 5*time.Millisecond)
}
