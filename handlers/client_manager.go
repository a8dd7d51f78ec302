package handlers

import (
	"sync"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"
)

// ClientManager tracks which connected clients watch which game
type ClientManager struct {
	games map[string]mapset.Set[*ClientHandler]
	log   *zap.Logger
	mutex sync.RWMutex
}

// NewClientManager creates a new client manager
func NewClientManager(log *zap.Logger) *ClientManager {
	return &ClientManager{
		games: make(map[string]mapset.Set[*ClientHandler]),
		log:   log,
	}
}

// AddClient attaches a client to a game
func (cm *ClientManager) AddClient(gameID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	clients, ok := cm.games[gameID]
	if !ok {
		clients = mapset.New[*ClientHandler]()
		cm.games[gameID] = clients
	}
	clients.Put(handler)
}

// RemoveClient detaches a client from a game
func (cm *ClientManager) RemoveClient(gameID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	clients, ok := cm.games[gameID]
	if !ok {
		return
	}
	clients.Remove(handler)
	if clients.Size() == 0 {
		delete(cm.games, gameID)
	}
}

// ClientCount returns how many clients watch a game
func (cm *ClientManager) ClientCount(gameID string) int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if clients, ok := cm.games[gameID]; ok {
		return clients.Size()
	}
	return 0
}

// BroadcastToGame sends a message to every client attached to a game
func (cm *ClientManager) BroadcastToGame(gameID string, msg interface{}) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	clients, ok := cm.games[gameID]
	if !ok {
		return
	}
	clients.Each(func(client *ClientHandler) {
		if err := client.conn.SendMessage(msg); err != nil {
			cm.log.Warn("broadcast failed", zap.String("game_id", gameID), zap.Error(err))
		}
	})
}
