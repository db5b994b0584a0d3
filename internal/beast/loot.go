package beast

import "math/rand"

func genLoot(c int, boss bool) []LootEntry {
	potionChance, potionMax := 20.0, 1
	if boss {
		potionChance, potionMax = 50, 3
	}
	loot := []LootEntry{
		{ItemID: "code_fragment", Name: "Code Fragment", Chance: 100, Min: 1, Max: 2 + c/25},
		{ItemID: "data_crystal", Name: "Data Crystal", Chance: 30 + float64(c)/2, Min: 1, Max: max(1, c/40)},
		{ItemID: "health_potion", Name: "Health Potion", Chance: potionChance, Min: 1, Max: potionMax},
	}
	if c > 70 {
		loot = append(loot, LootEntry{ItemID: "corrupted_core", Name: "Corrupted Core", Chance: 5 + float64(c-70)/3, Min: 1, Max: 1})
	}
	if boss {
		loot = append(loot,
			LootEntry{ItemID: "legendary_shard", Name: "Legendary Shard", Chance: 100, Min: 1, Max: 1},
			LootEntry{ItemID: "system_key", Name: "System Key", Chance: 100, Min: 1, Max: 1},
		)
	}
	return loot
}

// RollLoot rolls every entry once: rng·100 < chance drops, with a quantity
// uniform in [Min, Max].
func RollLoot(table []LootEntry, rng *rand.Rand) map[string]int {
	drops := make(map[string]int)
	for _, e := range table {
		if rng.Float64()*100 >= e.Chance {
			continue
		}
		qty := e.Min
		if e.Max > e.Min {
			qty += rng.Intn(e.Max - e.Min + 1)
		}
		if qty > 0 {
			drops[e.ItemID] += qty
		}
	}
	return drops
}
