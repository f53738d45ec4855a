package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pai-recommender/internal/platform/metrics"
	"github.com/p-n-ai/pai-recommender/internal/platform/validation"
)

const (
	wsReadLimit    = 16 << 10
	wsWriteTimeout = 5 * time.Second
	wsIdleTimeout  = 10 * time.Minute
)

// wsReply wraps either a recommendation or an error for a websocket frame.
type wsReply struct {
	Result *RecommendResponse `json:"result,omitempty"`
	Error  *errorResponse     `json:"error,omitempty"`
}

// handleWebSocket runs an interactive session: every text frame carries a
// RecommendRequest and gets exactly one reply frame. Bad frames are
// answered with an error and the session continues.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(wsReadLimit)

	metrics.WebSocketSessions.Inc()
	defer metrics.WebSocketSessions.Dec()

	ctx := r.Context()
	for {
		reply, err := h.serveFrame(ctx, conn)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				conn.Close(websocket.StatusNormalClosure, "")
			default:
				if !errors.Is(err, context.Canceled) {
					slog.Debug("websocket session ended", "error", err)
				}
			}
			return
		}

		writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
		err = wsjson.Write(writeCtx, conn, reply)
		cancel()
		if err != nil {
			slog.Debug("websocket write failed", "error", err)
			return
		}
	}
}

func (h *Handler) serveFrame(ctx context.Context, conn *websocket.Conn) (reply wsReply, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.HTTPPanics.Inc()
			slog.Error("panic serving websocket frame", "panic", rec)
			reply, err = wsReply{Error: &errorResponse{Error: "unexpected error", Detail: fmt.Sprint(rec)}}, nil
		}
	}()

	readCtx, cancel := context.WithTimeout(ctx, wsIdleTimeout)
	defer cancel()

	typ, data, err := conn.Read(readCtx)
	if err != nil {
		return wsReply{}, err
	}
	if typ != websocket.MessageText {
		return wsReply{Error: &errorResponse{Error: "expected a text frame"}}, nil
	}

	var req RecommendRequest
	if err := decodeRequest(bytes.NewReader(data), &req); err != nil {
		return wsReply{Error: &errorResponse{Error: "invalid request", Detail: err.Error()}}, nil
	}

	resp, err := h.recommend(ctx, req)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return wsReply{Error: &errorResponse{Error: "validation failed", Detail: verr.Error(), Fields: verr.Fields}}, nil
		}
		return wsReply{Error: &errorResponse{Error: "internal error", Detail: err.Error()}}, nil
	}
	return wsReply{Result: &resp}, nil
}
