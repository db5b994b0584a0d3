package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChapterInfo is one campaign stage and the creature id range its enemies
// are drawn from.
type ChapterInfo struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MinCreature int    `yaml:"min_creature"`
	MaxCreature int    `yaml:"max_creature"`
}

type chapterListFile struct {
	Chapters []ChapterInfo `yaml:"chapters"`
}

// ChapterTable holds stages indexed by id (1-based).
type ChapterTable struct {
	chapters map[int]*ChapterInfo
	max      int
}

// Get returns a chapter by id, or nil if not found.
func (t *ChapterTable) Get(id int) *ChapterInfo {
	return t.chapters[id]
}

func (t *ChapterTable) Count() int {
	return len(t.chapters)
}

// Max returns the highest chapter id.
func (t *ChapterTable) Max() int {
	return t.max
}

// LoadChapterTable loads chapters from a YAML file, or the built-in table
// when path is empty.
func LoadChapterTable(path string) (*ChapterTable, error) {
	raw := builtinChapters
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read chapters: %w", err)
		}
	}
	var f chapterListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse chapters: %w", err)
	}
	t := &ChapterTable{chapters: make(map[int]*ChapterInfo, len(f.Chapters))}
	for i := range f.Chapters {
		c := &f.Chapters[i]
		if c.MinCreature < 1 || c.MaxCreature < c.MinCreature {
			return nil, fmt.Errorf("parse chapters: chapter %d has bad creature range %d-%d", c.ID, c.MinCreature, c.MaxCreature)
		}
		t.chapters[c.ID] = c
		t.max = max(t.max, c.ID)
	}
	return t, nil
}
