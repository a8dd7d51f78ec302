package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dungeonmania/server/dungeon"
	"dungeonmania/server/messages"
	"dungeonmania/server/models"
	"dungeonmania/server/persistence"
	"dungeonmania/server/services"
)

type envelope struct {
	Type    messages.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

// Server goroutines can outlive the test, so these tests log to a no-op
// logger rather than zaptest.
func newTestServer(t *testing.T) (*httptest.Server, *services.GameService) {
	t.Helper()
	store, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("NewJSONStore() failed: %v", err)
	}
	log := zap.NewNop()
	gs := services.NewGameService(store, log)
	cm := NewClientManager(log)
	srv := httptest.NewServer(NewRouter(gs, cm, websocket.Upgrader{}, log))
	t.Cleanup(func() {
		srv.Close()
		gs.Shutdown()
	})
	return srv, gs
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) failed: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType messages.MessageType, payload interface{}) {
	t.Helper()
	if err := conn.WriteJSON(messages.BaseMessage{Type: msgType, Payload: payload}); err != nil {
		t.Fatalf("WriteJSON(%s) failed: %v", msgType, err)
	}
}

func receive(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg envelope
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return msg
}

func expect(t *testing.T, conn *websocket.Conn, want messages.MessageType, v interface{}) {
	t.Helper()
	msg := receive(t, conn)
	if msg.Type != want {
		t.Fatalf("received %s (%s), want %s", msg.Type, msg.Payload, want)
	}
	if v != nil {
		if err := json.Unmarshal(msg.Payload, v); err != nil {
			t.Fatalf("decoding %s payload: %v", want, err)
		}
	}
}

// awaitTick reads updates until one reaches tick
func awaitTick(t *testing.T, conn *websocket.Conn, tick int) messages.UpdateMessage {
	t.Helper()
	for i := 0; i < 10; i++ {
		var update messages.UpdateMessage
		expect(t, conn, messages.MessageTypeUpdate, &update)
		if update.Tick == tick {
			return update
		}
	}
	t.Fatalf("no update for tick %d", tick)
	return messages.UpdateMessage{}
}

func startGame(t *testing.T, conn *websocket.Conn, mode string) messages.GameStartedMessage {
	t.Helper()
	send(t, conn, messages.MessageTypeNewGame, messages.NewGameMessage{Mode: mode, Layout: "empty"})
	var started messages.GameStartedMessage
	expect(t, conn, messages.MessageTypeGameStarted, &started)
	if started.GameID == "" || started.Mode != mode {
		t.Fatalf("game_started = %+v", started)
	}
	awaitTick(t, conn, 0)
	return started
}

func TestWebsocket_PlayAndSave(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)
	started := startGame(t, conn, "standard")

	send(t, conn, messages.MessageTypeMove, messages.MoveMessage{Direction: "right"})
	update := awaitTick(t, conn, 1)
	if update.Player.X != 1 || update.Player.Y != 0 {
		t.Errorf("player at (%d, %d), want (1, 0)", update.Player.X, update.Player.Y)
	}

	send(t, conn, messages.MessageTypeWait, nil)
	awaitTick(t, conn, 2)

	send(t, conn, messages.MessageTypeSave, nil)
	var saved messages.SavedMessage
	expect(t, conn, messages.MessageTypeSaved, &saved)
	if saved.GameID != started.GameID || saved.Tick != 2 {
		t.Errorf("saved = %+v, want game %s at tick 2", saved, started.GameID)
	}

	resp, err := http.Get(srv.URL + "/games")
	if err != nil {
		t.Fatalf("GET /games failed: %v", err)
	}
	defer resp.Body.Close()
	var listed map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decoding /games: %v", err)
	}
	if len(listed["games"]) != 1 || listed["games"][0] != started.GameID {
		t.Errorf("/games = %v, want [%s]", listed, started.GameID)
	}
}

func TestWebsocket_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	tests := []struct {
		name    string
		msgType messages.MessageType
		payload interface{}
		code    string
	}{
		{"no game yet", messages.MessageTypeWait, nil, "NO_GAME"},
		{"unknown type", messages.MessageType("dance"), nil, "UNKNOWN_MESSAGE_TYPE"},
		{"unknown mode", messages.MessageTypeNewGame, messages.NewGameMessage{Mode: "nightmare"}, "INVALID_ACTION"},
		{"missing game", messages.MessageTypeJoinGame, messages.JoinGameMessage{GameID: "nope"}, "GAME_NOT_FOUND"},
		{"missing save", messages.MessageTypeLoad, messages.LoadMessage{GameID: "nope"}, "GAME_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, conn, tt.msgType, tt.payload)
			var errMsg messages.ErrorMessage
			expect(t, conn, messages.MessageTypeError, &errMsg)
			if errMsg.Code != tt.code {
				t.Errorf("code = %s (%s), want %s", errMsg.Code, errMsg.Message, tt.code)
			}
		})
	}

	startGame(t, conn, "peaceful")
	send(t, conn, messages.MessageTypeMove, messages.MoveMessage{Direction: "up"})
	var errMsg messages.ErrorMessage
	expect(t, conn, messages.MessageTypeError, &errMsg)
	if errMsg.Code != "OUT_OF_BOUNDS" {
		t.Errorf("move off the map code = %s, want OUT_OF_BOUNDS", errMsg.Code)
	}
}

func TestWebsocket_BadJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage() failed: %v", err)
	}
	var errMsg messages.ErrorMessage
	expect(t, conn, messages.MessageTypeError, &errMsg)
	if errMsg.Code != "BAD_MESSAGE" {
		t.Errorf("code = %s, want BAD_MESSAGE", errMsg.Code)
	}
}

func TestWebsocket_SpectatorSeesUpdates(t *testing.T) {
	srv, _ := newTestServer(t)
	player := dial(t, srv)
	spectator := dial(t, srv)

	started := startGame(t, player, "standard")

	send(t, spectator, messages.MessageTypeJoinGame, messages.JoinGameMessage{GameID: started.GameID})
	var joined messages.GameStartedMessage
	expect(t, spectator, messages.MessageTypeGameStarted, &joined)
	if joined.GameID != started.GameID {
		t.Fatalf("joined %s, want %s", joined.GameID, started.GameID)
	}
	awaitTick(t, spectator, 0)

	send(t, player, messages.MessageTypeMove, messages.MoveMessage{Direction: "down"})
	update := awaitTick(t, spectator, 1)
	if update.Player.Y != 1 {
		t.Errorf("spectator saw player y = %d, want 1", update.Player.Y)
	}
}

func TestRouter_GameState(t *testing.T) {
	srv, gs := newTestServer(t)

	start, err := gs.NewGame("hard", "empty")
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}

	resp, err := http.Get(fmt.Sprintf("%s/games/%s", srv.URL, start.GameID))
	if err != nil {
		t.Fatalf("GET game failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var update messages.UpdateMessage
	if err := json.NewDecoder(resp.Body).Decode(&update); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if update.GameID != start.GameID || update.Mode != "hard" {
		t.Errorf("state = %+v", update)
	}

	missing, err := http.Get(srv.URL + "/games/unknown")
	if err != nil {
		t.Fatalf("GET unknown game failed: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", missing.StatusCode)
	}

	health, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", health.StatusCode)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&dungeon.MoveError{Reason: dungeon.ErrBlocked}, "MOVE_BLOCKED"},
		{dungeon.ErrGameOver, "GAME_OVER"},
		{fmt.Errorf("%w: g1", services.ErrGameNotFound), "GAME_NOT_FOUND"},
		{models.ErrInsufficientMaterials, "MISSING_ITEM"},
		{dungeon.ErrInvalidRewind, "INVALID_ACTION"},
		{errors.New("disk on fire"), "INTERNAL"},
	}
	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
