package messages

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeNewGame     MessageType = "new_game"
	MessageTypeJoinGame    MessageType = "join_game"
	MessageTypeGameStarted MessageType = "game_started"
	MessageTypeMove        MessageType = "move"
	MessageTypeWait        MessageType = "wait"
	MessageTypeUseItem     MessageType = "use_item"
	MessageTypeBuild       MessageType = "build"
	MessageTypeInteract    MessageType = "interact"
	MessageTypeRewind      MessageType = "rewind"
	MessageTypeSave        MessageType = "save"
	MessageTypeLoad        MessageType = "load"
	MessageTypeSaved       MessageType = "saved"
	MessageTypeUpdate      MessageType = "update"
	MessageTypeError       MessageType = "error"
)

// BaseMessage is the envelope for every message in both directions
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewGameMessage starts a session
type NewGameMessage struct {
	Mode   string `json:"mode"`   // peaceful, standard, hard
	Layout string `json:"layout"` // built-in layout name
}

// JoinGameMessage attaches the connection to a running game as a spectator
type JoinGameMessage struct {
	GameID string `json:"game_id"`
}

// GameStartedMessage answers new_game, join_game and load
type GameStartedMessage struct {
	GameID string `json:"game_id"`
	Mode   string `json:"mode"`
}

// MoveMessage represents a player movement request
type MoveMessage struct {
	Direction string `json:"direction"` // up, down, left, right (or north, south, west, east)
}

type UseItemMessage struct {
	ItemID string `json:"item_id"`
}

type BuildMessage struct {
	Recipe string `json:"recipe"`
}

type InteractMessage struct {
	EntityID string `json:"entity_id"`
}

type RewindMessage struct {
	Ticks int `json:"ticks"`
}

type LoadMessage struct {
	GameID string `json:"game_id"`
}

type SavedMessage struct {
	GameID string `json:"game_id"`
	Tick   int    `json:"tick"`
}

// UpdateMessage is the full visible state of a game after an action
type UpdateMessage struct {
	GameID   string       `json:"game_id"`
	Mode     string       `json:"mode"`
	Tick     int          `json:"tick"`
	Over     bool         `json:"over"`
	Width    int          `json:"width,omitempty"`
	Height   int          `json:"height,omitempty"`
	Player   PlayerView   `json:"player"`
	Entities []EntityView `json:"entities"`
}

type PlayerView struct {
	ID              string     `json:"id"`
	X               int        `json:"x"`
	Y               int        `json:"y"`
	Health          int        `json:"health"`
	InvincibleTicks int        `json:"invincible_ticks"`
	InvisibleTicks  int        `json:"invisible_ticks"`
	Inventory       []ItemView `json:"inventory"`
	Buildable       []string   `json:"buildable"`
}

type ItemView struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Durability int    `json:"durability,omitempty"`
}

type EntityView struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Health       int    `json:"health,omitempty"`
	State        string `json:"state,omitempty"`
	Hostile      bool   `json:"hostile,omitempty"`
	Interactable bool   `json:"interactable,omitempty"`
	Item         string `json:"item,omitempty"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
