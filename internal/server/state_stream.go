package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/workbench/internal/store"
)

const stateWriteTimeout = 5 * time.Second

// StateMessage is sent over the state websocket. The first message has type
// "snapshot"; every later one has type "state" and follows a changed dispatch.
type StateMessage struct {
	Type   string      `json:"type"`
	Seq    uint64      `json:"seq"`
	Action string      `json:"action,omitempty"`
	State  store.State `json:"state"`
}

// StateStreamHandler pushes the full state to websocket clients after every change.
// Bursts are coalesced: a slow client skips intermediate states, never the latest one.
type StateStreamHandler struct {
	store   *store.Store
	devMode bool
	log     zerolog.Logger
}

// NewStateStreamHandler creates a new state stream handler. In dev mode
// cross-origin clients are accepted.
func NewStateStreamHandler(s *store.Store, devMode bool, log zerolog.Logger) *StateStreamHandler {
	return &StateStreamHandler{
		store:   s,
		devMode: devMode,
		log:     log.With().Str("component", "state_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/ws
func (h *StateStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: h.devMode,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket handshake failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	// Clients only listen; CloseRead handles their close frames
	ctx := conn.CloseRead(r.Context())

	pending := make(chan store.Change, 1)
	unsubscribe := h.store.Subscribe(func(change store.Change, _ store.State) {
		select {
		case pending <- change:
			return
		default:
		}
		// replace the queued change with the newer one
		select {
		case <-pending:
		default:
		}
		select {
		case pending <- change:
		default:
		}
	})
	defer unsubscribe()

	state := h.store.State()
	if err := h.write(ctx, conn, StateMessage{Type: "snapshot", Seq: state.Seq, State: state}); err != nil {
		return
	}
	h.log.Info().Uint64("seq", state.Seq).Msg("Client connected to state stream")

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Client disconnected from state stream")
			conn.Close(websocket.StatusNormalClosure, "")
			return

		case change := <-pending:
			state := h.store.State()
			msg := StateMessage{Type: "state", Seq: state.Seq, Action: change.Action, State: state}
			if err := h.write(ctx, conn, msg); err != nil {
				return
			}
		}
	}
}

func (h *StateStreamHandler) write(ctx context.Context, conn *websocket.Conn, msg StateMessage) error {
	ctx, cancel := context.WithTimeout(ctx, stateWriteTimeout)
	defer cancel()

	if err := wsjson.Write(ctx, conn, msg); err != nil {
		h.log.Debug().Err(err).Msg("State stream write failed")
		return err
	}
	return nil
}
