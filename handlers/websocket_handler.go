package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/vamshigadde09/PickleMatch-sub001/brackets"
	"github.com/vamshigadde09/PickleMatch-sub001/middleware"
	"github.com/vamshigadde09/PickleMatch-sub001/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebsocketHandler struct {
	hub         *brackets.Hub
	roomService services.RoomService
	logger      *slog.Logger
}

func NewWebsocketHandler(hub *brackets.Hub, roomService services.RoomService, logger *slog.Logger) *WebsocketHandler {
	return &WebsocketHandler{hub: hub, roomService: roomService, logger: logger}
}

// Subscribe upgrades the connection and streams live game events for a
// room to the caller. Members only.
func (h *WebsocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	roomID, err := getIDFromURL(r, "roomID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	member, err := h.roomService.IsMember(r.Context(), roomID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !member {
		errorResponse(w, http.StatusForbidden, "not a member of this room")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "room_id", roomID, "error", err)
		return
	}

	client := &brackets.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		RoomID: strconv.Itoa(roomID),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
