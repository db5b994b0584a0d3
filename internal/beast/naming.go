package beast

import (
	"math/rand"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	prefixes = [...]string{"Glitch_", "Null_", "Segfault_", "Void_", "Error_", "NaN_"}
	suffixes = [...]string{".exe", ".dll", "_BROKEN", ".tmp", "_404", "_v2"}
	glyphs   = [...]rune{'█', '▓', '░', '▒'}
	leet     = map[rune]rune{'A': '4', 'E': '3', 'I': '1', 'O': '0', 'S': '5', 'T': '7', 'L': '1'}
)

// CorruptName mutates a creature name by corruption level. All randomness
// comes from rng, so a fixed seed gives a fixed name.
//
//	>30 leet substitution, each candidate with probability c/100
//	>40 prefix from the first three, >70 from all six
//	>50 suffix
//	>60 one position replaced with a glitch glyph
func CorruptName(base string, c int, rng *rand.Rand) string {
	name := []rune(cases.Upper(language.Und).String(base))

	if c > 30 {
		p := float64(c) / 100
		for i, r := range name {
			if sub, ok := leet[r]; ok && rng.Float64() < p {
				name[i] = sub
			}
		}
	}
	if c > 60 && len(name) > 0 {
		name[rng.Intn(len(name))] = glyphs[rng.Intn(len(glyphs))]
	}

	prefix := ""
	switch {
	case c > 70:
		prefix = prefixes[rng.Intn(len(prefixes))]
	case c > 40:
		prefix = prefixes[rng.Intn(3)]
	}
	suffix := ""
	if c > 50 {
		suffix = suffixes[rng.Intn(len(suffixes))]
	}
	return prefix + string(name) + suffix
}

// Tint is the display tint for a corruption level.
func Tint(c int) uint32 {
	switch {
	case c > 80:
		return 0xff2222
	case c > 60:
		return 0xff6600
	case c > 40:
		return 0x00ff88
	case c > 20:
		return 0x00ffff
	}
	return 0xffffff
}
