package creature

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/l1jgo/databeast/internal/combat"
)

// PokeAPI fetches base records over HTTP.
type PokeAPI struct {
	baseURL string
	client  *http.Client
}

func NewPokeAPI(baseURL string, timeout time.Duration) *PokeAPI {
	return &PokeAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type pokemonResponse struct {
	Name           string `json:"name"`
	BaseExperience int    `json:"base_experience"`
	Stats          []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

func (p *PokeAPI) Fetch(ctx context.Context, id int) (Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/pokemon/%d", p.baseURL, id), nil)
	if err != nil {
		return Record{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("fetch creature %d: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Record{}, fmt.Errorf("fetch creature %d: status %d", id, resp.StatusCode)
	}

	var body pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Record{}, fmt.Errorf("decode creature %d: %w", id, err)
	}
	return body.record(id), nil
}

func (r *pokemonResponse) record(id int) Record {
	stat := map[string]int{}
	for _, s := range r.Stats {
		stat[s.Stat.Name] = s.BaseStat
	}
	// missing or zero stats default to 45
	get := func(name string) int {
		if v := stat[name]; v > 0 {
			return v
		}
		return 45
	}

	types := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		types = append(types, t.Type.Name)
	}

	sprite := r.Sprites.Other.OfficialArtwork.FrontDefault
	if sprite == "" {
		sprite = r.Sprites.FrontDefault
	}
	if sprite == "" {
		sprite = SpriteURL(id)
	}
	exp := r.BaseExperience
	if exp <= 0 {
		exp = 50
	}

	return Record{
		ID:             id,
		Name:           r.Name,
		BaseExperience: exp,
		Stats: combat.BaseStats{
			HP:            get("hp"),
			Attack:        get("attack"),
			Defense:       get("defense"),
			SpecialAttack: get("special-attack"),
			Speed:         get("speed"),
		},
		Types:  types,
		Sprite: sprite,
	}
}
