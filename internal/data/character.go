package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// CharacterStats is a playable character's starting stat block.
type CharacterStats struct {
	HP         int     `yaml:"hp"`
	Mana       int     `yaml:"mana"`
	Attack     int     `yaml:"attack"`
	Defense    int     `yaml:"defense"`
	Speed      int     `yaml:"speed"`
	CritRate   float64 `yaml:"crit_rate"`
	CritDamage float64 `yaml:"crit_damage"`
}

// StatusInfo is a status payload attached to a skill.
type StatusInfo struct {
	Kind      string  `yaml:"kind"`
	Magnitude float64 `yaml:"magnitude"`
	Duration  float64 `yaml:"duration"` // seconds
	Stackable bool    `yaml:"stackable"`
}

// SkillInfo describes one ability slot. The slot decides the hitbox shape;
// the numbers here only scale it.
type SkillInfo struct {
	Name       string      `yaml:"name"`
	Damage     float64     `yaml:"damage"`
	Range      float64     `yaml:"range"`
	CooldownMs int         `yaml:"cooldown_ms"`
	ManaCost   float64     `yaml:"mana_cost"`
	Type       string      `yaml:"type"` // physical, magical, true
	Status     *StatusInfo `yaml:"status"`
}

type CharacterInfo struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Language    string               `yaml:"language"`
	Description string               `yaml:"description"`
	Passive     string               `yaml:"passive"` // "", "regen", "overclock"
	Stats       CharacterStats       `yaml:"stats"`
	Skills      map[string]SkillInfo `yaml:"skills"` // keyed Q, W, E, R
}

type characterListFile struct {
	Characters []CharacterInfo `yaml:"characters"`
}

// CharacterTable holds playable characters indexed by id.
type CharacterTable struct {
	chars map[string]*CharacterInfo
}

// Get returns a character by id, or nil if not found.
func (t *CharacterTable) Get(id string) *CharacterInfo {
	return t.chars[id]
}

func (t *CharacterTable) Count() int {
	return len(t.chars)
}

// IDs returns the character ids in sorted order.
func (t *CharacterTable) IDs() []string {
	ids := make([]string, 0, len(t.chars))
	for id := range t.chars {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadCharacterTable loads characters from a YAML file, or the built-in
// table when path is empty.
func LoadCharacterTable(path string) (*CharacterTable, error) {
	raw := builtinCharacters
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read characters: %w", err)
		}
	}
	return parseCharacterTable(raw)
}

func parseCharacterTable(raw []byte) (*CharacterTable, error) {
	var f characterListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse characters: %w", err)
	}
	t := &CharacterTable{chars: make(map[string]*CharacterInfo, len(f.Characters))}
	for i := range f.Characters {
		c := &f.Characters[i]
		if c.ID == "" {
			return nil, fmt.Errorf("parse characters: entry %d has no id", i)
		}
		t.chars[c.ID] = c
	}
	return t, nil
}
