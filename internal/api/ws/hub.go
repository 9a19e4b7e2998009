package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

// PubSub is the message relay behind the hub. Implemented by
// redis.Client and memory.PubSub.
type PubSub interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// Hub manages WebSocket connections backed by pub/sub.
type Hub struct {
	pubsub PubSub
}

// NewHub creates a new WebSocket hub.
func NewHub(pubsub PubSub) *Hub {
	return &Hub{pubsub: pubsub}
}

// ServeBoards streams collection-level events (boards created, renamed or
// deleted) to the client.
func (h *Hub) ServeBoards(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, BoardsChannel)
}

// ServeBoard streams every event for one board, including column and task
// changes, to the client.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	if boardID == "" {
		http.Error(w, "missing board id", http.StatusBadRequest)
		return
	}

	h.serve(w, r, BoardChannel(boardID))
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request, channel string) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	// Clients only listen; CloseRead handles control frames and cancels ctx
	// when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	messages, cleanup, err := h.pubsub.Subscribe(ctx, channel)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}

// Publish sends an event payload to a channel.
func (h *Hub) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := h.pubsub.Publish(ctx, channel, payload); err != nil {
		return fmt.Errorf("ws.Hub.Publish: %w", err)
	}
	return nil
}

// PublishBoardEvent encodes ev and publishes it on every channel it belongs
// to. Used by API handlers after a successful mutation.
func (h *Hub) PublishBoardEvent(ctx context.Context, ev BoardEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("ws.Hub.PublishBoardEvent: %w", err)
	}

	for _, channel := range ev.channels() {
		if err := h.Publish(ctx, channel, payload); err != nil {
			return err
		}
	}
	return nil
}
