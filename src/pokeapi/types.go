package pokeapi

type PokemonSprites struct {
	FrontDefault string `json:"front_default"`
}

type PokemonResponse struct {
	Name    string          `json:"name"`
	Sprites *PokemonSprites `json:"sprites"`
}

// Pokemon is the part of a PokeAPI record the Pokédex displays.
type Pokemon struct {
	Name      string `json:"name"`
	SpriteURL string `json:"spriteUrl"`
}
