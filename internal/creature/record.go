package creature

import (
	"context"
	"errors"
	"fmt"

	"github.com/l1jgo/databeast/internal/combat"
)

// MaxID is the highest creature id the upstream serves.
const MaxID = 1025

// ErrUnknownCreature is returned for ids outside [1, MaxID].
var ErrUnknownCreature = errors.New("unknown creature")

// Record is a resolved base-stat record.
type Record struct {
	ID             int
	Name           string
	BaseExperience int
	Stats          combat.BaseStats
	Types          []string // upstream typing names, primary first
	Sprite         string
	Fallback       bool
}

// Source fetches a record from the upstream.
type Source interface {
	Fetch(ctx context.Context, id int) (Record, error)
}

// Validate rejects ids the upstream cannot serve.
func Validate(id int) error {
	if id < 1 || id > MaxID {
		return fmt.Errorf("creature %d: %w", id, ErrUnknownCreature)
	}
	return nil
}

var (
	fallbackNames = [...]string{"Glitchmon", "Errormon", "Nullmon", "Voidmon", "Corruptmon"}
	fallbackTypes = [...]string{"normal", "fire", "water", "electric", "grass", "psychic", "dark", "ghost"}
)

// SpriteURL is the default sprite for a creature id.
func SpriteURL(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id)
}

// Fallback is the deterministic record substituted when the upstream is
// unreachable. It depends on the id only.
func Fallback(id int) Record {
	if id < 0 {
		id = -id
	}
	return Record{
		ID:             id,
		Name:           fallbackNames[id%len(fallbackNames)],
		BaseExperience: 50 + id%200,
		Stats: combat.BaseStats{
			HP:            45 + id%60,
			Attack:        40 + id%80,
			Defense:       35 + id%70,
			SpecialAttack: 40 + id%80,
			Speed:         45 + id%60,
		},
		Types:    []string{fallbackTypes[id%len(fallbackTypes)]},
		Sprite:   SpriteURL(id),
		Fallback: true,
	}
}
