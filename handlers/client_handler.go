package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dungeonmania/server/dungeon"
	"dungeonmania/server/messages"
	"dungeonmania/server/models"
	"dungeonmania/server/network"
	"dungeonmania/server/services"
)

// ClientHandler manages a single client connection
type ClientHandler struct {
	conn          *network.Connection
	gameService   *services.GameService
	clientManager *ClientManager
	log           *zap.Logger
	gameID        string
}

// inbound mirrors messages.BaseMessage with the payload left undecoded
type inbound struct {
	Type    messages.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

// HandleClientConnection serves one websocket until it closes
func HandleClientConnection(wsConn *websocket.Conn, gameService *services.GameService, clientManager *ClientManager, log *zap.Logger) {
	conn := network.NewConnection(wsConn, log)
	handler := &ClientHandler{
		conn:          conn,
		gameService:   gameService,
		clientManager: clientManager,
		log:           log.With(zap.String("remote", wsConn.RemoteAddr().String())),
	}
	handler.log.Info("client connected")

	go conn.WritePump()
	conn.ReadPump(handler)

	if handler.gameID != "" {
		clientManager.RemoveClient(handler.gameID, handler)
	}
	handler.log.Info("client disconnected", zap.String("game_id", handler.gameID))
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var msg inbound
	if err := json.Unmarshal(message, &msg); err != nil {
		h.sendError("BAD_MESSAGE", "message is not valid JSON")
		return
	}
	h.log.Debug("received", zap.String("type", string(msg.Type)), zap.String("game_id", h.gameID))

	switch msg.Type {
	case messages.MessageTypeNewGame:
		var req messages.NewGameMessage
		if h.decode(msg.Payload, &req) {
			h.startGame(h.gameService.NewGame(req.Mode, req.Layout))
		}
	case messages.MessageTypeJoinGame:
		var req messages.JoinGameMessage
		if h.decode(msg.Payload, &req) {
			h.startGame(h.gameService.State(req.GameID))
		}
	case messages.MessageTypeLoad:
		var req messages.LoadMessage
		if h.decode(msg.Payload, &req) {
			h.startGame(h.gameService.Load(req.GameID))
		}
	case messages.MessageTypeMove:
		var req messages.MoveMessage
		if h.requireGame() && h.decode(msg.Payload, &req) {
			h.publish(h.gameService.Move(h.gameID, req.Direction))
		}
	case messages.MessageTypeWait:
		if h.requireGame() {
			h.publish(h.gameService.Wait(h.gameID))
		}
	case messages.MessageTypeUseItem:
		var req messages.UseItemMessage
		if h.requireGame() && h.decode(msg.Payload, &req) {
			h.publish(h.gameService.UseItem(h.gameID, req.ItemID))
		}
	case messages.MessageTypeBuild:
		var req messages.BuildMessage
		if h.requireGame() && h.decode(msg.Payload, &req) {
			h.publish(h.gameService.Build(h.gameID, req.Recipe))
		}
	case messages.MessageTypeInteract:
		var req messages.InteractMessage
		if h.requireGame() && h.decode(msg.Payload, &req) {
			h.publish(h.gameService.Interact(h.gameID, req.EntityID))
		}
	case messages.MessageTypeRewind:
		var req messages.RewindMessage
		if h.requireGame() && h.decode(msg.Payload, &req) {
			h.publish(h.gameService.Rewind(h.gameID, req.Ticks))
		}
	case messages.MessageTypeSave:
		if !h.requireGame() {
			return
		}
		saved, err := h.gameService.Save(h.gameID)
		if err != nil {
			h.sendFailure(err)
			return
		}
		h.send(messages.MessageTypeSaved, saved)
	default:
		h.log.Warn("unknown message type", zap.String("type", string(msg.Type)))
		h.sendError("UNKNOWN_MESSAGE_TYPE", "Unknown message type received")
	}
}

func (h *ClientHandler) decode(payload json.RawMessage, v interface{}) bool {
	if len(payload) == 0 {
		return true
	}
	if err := json.Unmarshal(payload, v); err != nil {
		h.sendError("BAD_PAYLOAD", err.Error())
		return false
	}
	return true
}

func (h *ClientHandler) requireGame() bool {
	if h.gameID == "" {
		h.sendError("NO_GAME", "start, join or load a game first")
		return false
	}
	return true
}

// startGame attaches this client to the game in update
func (h *ClientHandler) startGame(update *messages.UpdateMessage, err error) {
	if err != nil {
		h.sendFailure(err)
		return
	}
	if h.gameID != "" && h.gameID != update.GameID {
		h.clientManager.RemoveClient(h.gameID, h)
	}
	h.gameID = update.GameID
	h.clientManager.AddClient(h.gameID, h)

	h.send(messages.MessageTypeGameStarted, messages.GameStartedMessage{GameID: update.GameID, Mode: update.Mode})
	h.clientManager.BroadcastToGame(h.gameID, messages.BaseMessage{Type: messages.MessageTypeUpdate, Payload: update})
}

// publish sends the result of an action to everyone watching the game
func (h *ClientHandler) publish(update *messages.UpdateMessage, err error) {
	if err != nil {
		h.sendFailure(err)
		return
	}
	h.clientManager.BroadcastToGame(h.gameID, messages.BaseMessage{Type: messages.MessageTypeUpdate, Payload: update})
}

func (h *ClientHandler) send(t messages.MessageType, payload interface{}) {
	if err := h.conn.SendMessage(messages.BaseMessage{Type: t, Payload: payload}); err != nil {
		h.log.Warn("send failed", zap.String("type", string(t)), zap.Error(err))
	}
}

func (h *ClientHandler) sendError(code, message string) {
	h.send(messages.MessageTypeError, messages.ErrorMessage{Code: code, Message: message})
}

func (h *ClientHandler) sendFailure(err error) {
	code := ErrorCode(err)
	if code == "INTERNAL" {
		h.log.Error("request failed", zap.String("game_id", h.gameID), zap.Error(err))
	}
	h.sendError(code, err.Error())
}

// ErrorCode maps domain errors to protocol error codes
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, dungeon.ErrBlocked):
		return "MOVE_BLOCKED"
	case errors.Is(err, dungeon.ErrOutOfBounds):
		return "OUT_OF_BOUNDS"
	case errors.Is(err, dungeon.ErrGameOver):
		return "GAME_OVER"
	case errors.Is(err, services.ErrGameNotFound):
		return "GAME_NOT_FOUND"
	case errors.Is(err, dungeon.ErrEntityNotFound):
		return "ENTITY_NOT_FOUND"
	case errors.Is(err, dungeon.ErrMissingItem), errors.Is(err, models.ErrInsufficientMaterials):
		return "MISSING_ITEM"
	case errors.Is(err, dungeon.ErrNotInteractable),
		errors.Is(err, dungeon.ErrNotUsable),
		errors.Is(err, dungeon.ErrOutOfRange),
		errors.Is(err, dungeon.ErrInvalidRewind),
		errors.Is(err, models.ErrUnknownRecipe),
		errors.Is(err, models.ErrInvalidDirection),
		errors.Is(err, models.ErrUnknownMode),
		errors.Is(err, services.ErrUnknownLayout):
		return "INVALID_ACTION"
	}
	return "INTERNAL"
}
