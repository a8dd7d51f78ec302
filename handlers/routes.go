package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dungeonmania/server/services"
)

// NewRouter wires the websocket endpoint and the small HTTP API
func NewRouter(gameService *services.GameService, clientManager *ClientManager, upgrader websocket.Upgrader, log *zap.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Warn("failed to upgrade connection", zap.Error(err))
			return
		}
		HandleClientConnection(conn, gameService, clientManager, log)
	})

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/games", func(w http.ResponseWriter, _ *http.Request) {
		ids, err := gameService.SavedGames()
		if err != nil {
			log.Error("listing saved games failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
			return
		}
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, map[string][]string{"games": ids})
	}).Methods(http.MethodGet)

	r.HandleFunc("/games/{id}", func(w http.ResponseWriter, req *http.Request) {
		update, err := gameService.State(mux.Vars(req)["id"])
		if errors.Is(err, services.ErrGameNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, update)
	}).Methods(http.MethodGet)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
