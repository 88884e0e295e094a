package csv

import (
	"io"
	"testing"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/google/go-cmp/cmp"
)

func TestPokemonWriter(t *testing.T) {
	w := NewPokemonWriter()
	if err := w.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	err := w.WriteList(pokedex.List{
		{Name: "pikachu", SpriteURL: "https://img.example/25.png", Liked: true},
		{Name: "mr. mime, the second"},
	})
	if err != nil {
		t.Fatalf("WriteList: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	size := w.Size()
	data, err := io.ReadAll(w.BufferReader())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := "position,name,sprite_url,liked\n" +
		"0,pikachu,https://img.example/25.png,true\n" +
		"1,\"mr. mime, the second\",,false\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("csv (-want +got):\n%s", diff)
	}
	if size != len(want) {
		t.Errorf("Size = %d, want %d", size, len(want))
	}
}

func TestParquetTagToKeyValue(t *testing.T) {
	got := parquetTagToKeyValue("name=sprite_url, type=BYTE_ARRAY, convertedtype=UTF8, bogus")
	want := map[string]string{"name": "sprite_url", "type": "BYTE_ARRAY", "convertedtype": "UTF8"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
