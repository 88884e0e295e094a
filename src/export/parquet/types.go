package parquet

import "github.com/BielosX/wombat/pokedex/src/pokedex"

type Pokemon struct {
	Position int32  `parquet:"name=position, type=INT32"`
	Name     string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Sprite   string `parquet:"name=sprite_url, type=BYTE_ARRAY, convertedtype=UTF8"`
	Liked    bool   `parquet:"name=liked, type=BOOLEAN"`
}

// ToPokemon converts the entry shown at position into an export row.
func ToPokemon(position int, entry pokedex.Entry) Pokemon {
	return Pokemon{
		Position: int32(position),
		Name:     entry.Name,
		Sprite:   entry.SpriteURL,
		Liked:    entry.Liked,
	}
}
