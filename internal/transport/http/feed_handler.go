package http

import (
	"log"
	"net/http"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/domain"
	"github.com/gorilla/websocket"
)

// FeedHandler streams paper library events to websocket clients.
type FeedHandler struct {
	service  *app.PaperService
	upgrader websocket.Upgrader
}

func NewFeedHandler(service *app.PaperService) *FeedHandler {
	return &FeedHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and forwards every paper event until the client goes away.
func (h *FeedHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.service.Subscribe(r.Context())
	defer cancel()

	// Reads only detect the client closing; the feed is one-way.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(outboundMessage[struct{}]{Type: "subscribed"}); err != nil {
		return
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[domain.PaperEvent]{Type: ev.Type, Payload: ev}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
