package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingDamageMultiplier = errors.New("mode damage multiplier must be set explicitly")
	ErrUnknownMode             = errors.New("unknown mode")
)

// Mode is a difficulty preset. It is chosen once per game and never mutated.
type Mode struct {
	name                    string
	damageMultiplier        float64
	tickRate                int
	initialHealth           int
	invincibilityMultiplier int
}

// ModeParams describes a custom mode. DamageMultiplier has no default.
type ModeParams struct {
	DamageMultiplier        *float64
	TickRate                int
	InitialHealth           int
	InvincibilityMultiplier int
}

// NewMode validates params and builds a Mode
func NewMode(name string, p ModeParams) (Mode, error) {
	if p.DamageMultiplier == nil {
		return Mode{}, fmt.Errorf("%s: %w", name, ErrMissingDamageMultiplier)
	}
	if *p.DamageMultiplier < 0 {
		return Mode{}, fmt.Errorf("%s: damage multiplier %v is negative", name, *p.DamageMultiplier)
	}
	if p.TickRate <= 0 {
		return Mode{}, fmt.Errorf("%s: tick rate must be positive", name)
	}
	if p.InitialHealth <= 0 {
		return Mode{}, fmt.Errorf("%s: initial health must be positive", name)
	}
	if p.InvincibilityMultiplier < 0 {
		return Mode{}, fmt.Errorf("%s: invincibility multiplier is negative", name)
	}
	return Mode{
		name:                    name,
		damageMultiplier:        *p.DamageMultiplier,
		tickRate:                p.TickRate,
		initialHealth:           p.InitialHealth,
		invincibilityMultiplier: p.InvincibilityMultiplier,
	}, nil
}

func mustMode(name string, p ModeParams) Mode {
	m, err := NewMode(name, p)
	if err != nil {
		panic(err)
	}
	return m
}

func multiplier(v float64) *float64 { return &v }

var (
	Peaceful = mustMode("peaceful", ModeParams{
		DamageMultiplier:        multiplier(0),
		TickRate:                1,
		InitialHealth:           100,
		InvincibilityMultiplier: 1,
	})
	Standard = mustMode("standard", ModeParams{
		DamageMultiplier:        multiplier(1),
		TickRate:                2,
		InitialHealth:           100,
		InvincibilityMultiplier: 1,
	})
	// Hard sets its damage multiplier explicitly; invincibility potions do nothing.
	Hard = mustMode("hard", ModeParams{
		DamageMultiplier:        multiplier(1),
		TickRate:                3,
		InitialHealth:           80,
		InvincibilityMultiplier: 0,
	})
)

// ModeByName looks up a built-in mode, case-insensitively
func ModeByName(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "peaceful":
		return Peaceful, nil
	case "standard", "":
		return Standard, nil
	case "hard":
		return Hard, nil
	}
	return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

func (m Mode) Name() string                 { return m.name }
func (m Mode) DamageMultiplier() float64    { return m.damageMultiplier }
func (m Mode) TickRate() int                { return m.tickRate }
func (m Mode) InitialHealth() int           { return m.initialHealth }
func (m Mode) InvincibilityMultiplier() int { return m.invincibilityMultiplier }

// ScaleDamage applies the damage multiplier, rounding down
func (m Mode) ScaleDamage(base int) int {
	return int(float64(base) * m.damageMultiplier)
}
