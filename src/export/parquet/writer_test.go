package parquet

import (
	"io"
	"testing"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/google/go-cmp/cmp"
	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"
)

func TestPokemonWriterRoundTrip(t *testing.T) {
	list := pokedex.List{
		{Name: "pikachu", SpriteURL: "https://img.example/25.png", Liked: true},
		{Name: "missingno"},
	}

	w, err := NewPokemonWriter()
	if err != nil {
		t.Fatalf("NewPokemonWriter: %v", err)
	}
	if err := w.WriteList(list); err != nil {
		t.Fatalf("WriteList: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	data, err := io.ReadAll(w.BufferReader())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(data) != w.Size() {
		t.Errorf("read %d bytes, Size() = %d", len(data), w.Size())
	}

	pr, err := reader.NewParquetReader(buffer.NewBufferFileFromBytes(data), new(Pokemon), 1)
	if err != nil {
		t.Fatalf("NewParquetReader: %v", err)
	}
	defer pr.ReadStop()

	rows := make([]Pokemon, pr.GetNumRows())
	if err := pr.Read(&rows); err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []Pokemon{
		{Position: 0, Name: "pikachu", Sprite: "https://img.example/25.png", Liked: true},
		{Position: 1, Name: "missingno"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}
