package records

const settingsKey = "settings"

// Settings are the player's presentation preferences. The core never reads
// them; they are persisted for the presentation layer.
type Settings struct {
	MasterVolume      float64 `json:"masterVolume"`
	MusicVolume       float64 `json:"musicVolume"`
	SFXVolume         float64 `json:"sfxVolume"`
	GraphicsQuality   string  `json:"graphicsQuality"`
	ShowDamageNumbers bool    `json:"showDamageNumbers"`
	ShowFPS           bool    `json:"showFPS"`
	ParticleEffects   bool    `json:"particleEffects"`
	ScreenShake       bool    `json:"screenShake"`
	Language          string  `json:"language"`
}

func DefaultSettings() Settings {
	return Settings{
		MasterVolume:      0.8,
		MusicVolume:       0.6,
		SFXVolume:         0.8,
		GraphicsQuality:   "high",
		ShowDamageNumbers: true,
		ParticleEffects:   true,
		ScreenShake:       true,
		Language:          "en",
	}
}

// LoadSettings decodes the saved record over the defaults, so keys missing
// from an older save keep their default values.
func LoadSettings(s Store) (Settings, error) {
	out := DefaultSettings()
	if _, err := loadJSON(s, settingsKey, &out); err != nil {
		return DefaultSettings(), err
	}
	return out, nil
}

func SaveSettings(s Store, v Settings) error {
	return saveJSON(s, settingsKey, v)
}
