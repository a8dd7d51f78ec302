package models

import "time"

// GameSnapshot is the persisted form of a game session
type GameSnapshot struct {
	ID       string           `json:"id"`
	Mode     string           `json:"mode"`
	Tick     int              `json:"tick"`
	Over     bool             `json:"over"`
	Width    int              `json:"width,omitempty"`
	Height   int              `json:"height,omitempty"`
	Player   PlayerSnapshot   `json:"player"`
	Entities []EntitySnapshot `json:"entities"`
	SavedAt  time.Time        `json:"saved_at"`
}

type PlayerSnapshot struct {
	ID              string     `json:"id"`
	Position        Position   `json:"position"`
	Health          int        `json:"health"`
	Attack          int        `json:"attack"`
	Inventory       []*Item    `json:"inventory"`
	History         []Position `json:"history"`
	InvincibleTicks int        `json:"invincible_ticks"`
	InvisibleTicks  int        `json:"invisible_ticks"`
}

// EntitySnapshot covers every non-player entity kind; unused fields stay zero
type EntitySnapshot struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Position Position       `json:"position"`
	Health   int            `json:"health,omitempty"`
	Attack   int            `json:"attack,omitempty"`
	Hostile  bool           `json:"hostile,omitempty"`
	Item     *Item          `json:"item,omitempty"`
	Colour   string         `json:"colour,omitempty"`
	State    *StateSnapshot `json:"state,omitempty"`
}

// StateSnapshot records a behaviour state and its cursor
type StateSnapshot struct {
	Name string     `json:"name"`
	Path []Position `json:"path,omitempty"`
	Step int        `json:"step"`
	Loop int        `json:"loop,omitempty"`
	Fuse int        `json:"fuse,omitempty"`
}
