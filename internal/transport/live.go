package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rpggio/caredesk/internal/apierror"
	"github.com/rpggio/caredesk/internal/app"
	"github.com/rpggio/caredesk/internal/docstore"
)

const liveWriteWait = 10 * time.Second

// Subscriber opens snapshot subscriptions.
type Subscriber interface {
	Subscribe(ctx context.Context, collection string) (<-chan docstore.Snapshot, error)
}

// LiveFrame is one rendered table pushed over a live connection.
type LiveFrame struct {
	Collection string          `json:"collection"`
	At         time.Time       `json:"at"`
	Result     any             `json:"result,omitempty"`
	Error      *apierror.Error `json:"error,omitempty"`
}

// handleLive streams res rendered under the request's query, one frame per
// pushed snapshot, until the client goes away.
func (s *Server) handleLive(res app.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := res.ParseQuery(queryParams(r))
		if err != nil {
			WriteError(w, r, s.logger, err)
			return
		}
		if s.subscriber == nil {
			WriteError(w, r, s.logger, errLiveUnavailable)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Debug("live upgrade failed", "collection", res.Name, "error", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Clients never send; reading only notices the close.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		snaps, err := s.subscriber.Subscribe(ctx, res.Name)
		if err != nil {
			_ = conn.WriteJSON(LiveFrame{Collection: res.Name, Error: apierror.Map(err)})
			return
		}
		s.logger.Debug("live view opened", "collection", res.Name)

		for {
			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(liveWriteWait))
				return
			case snap, ok := <-snaps:
				if !ok {
					return
				}
				frame := LiveFrame{Collection: res.Name, At: snap.At}
				out, err := res.Render(ctx, snap, q)
				if err != nil {
					frame.Error = apierror.Map(err)
				} else {
					frame.Result = out
				}
				_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
				if err := conn.WriteJSON(frame); err != nil {
					s.logger.Debug("live view closed", "collection", res.Name, "error", err)
					return
				}
			}
		}
	}
}
