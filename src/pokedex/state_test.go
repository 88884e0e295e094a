package pokedex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleList() List {
	return List{
		{Name: "bulbasaur", SpriteURL: "https://img.example/1.png"},
		{Name: "pikachu", SpriteURL: "https://img.example/25.png", Liked: true},
		{Name: "mew", SpriteURL: "https://img.example/151.png"},
	}
}

func TestReduce_AppendGrowsByOne(t *testing.T) {
	before := sampleList()
	entry := Entry{Name: "eevee", SpriteURL: "https://img.example/133.png"}

	after := Reduce(before, Append{Entry: entry})

	if len(after) != len(before)+1 {
		t.Fatalf("len = %d, want %d", len(after), len(before)+1)
	}
	if diff := cmp.Diff(sampleList(), after[:len(before)]); diff != "" {
		t.Errorf("prior entries changed (-want +got):\n%s", diff)
	}
	if after[len(after)-1] != entry {
		t.Errorf("last = %+v, want %+v", after[len(after)-1], entry)
	}
	if diff := cmp.Diff(sampleList(), before); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestReduce_AppendDoesNotAliasSpareCapacity(t *testing.T) {
	base := make(List, 1, 8)
	base[0] = Entry{Name: "a"}

	first := Reduce(base, Append{Entry: Entry{Name: "b"}})
	second := Reduce(base, Append{Entry: Entry{Name: "c"}})

	if first[1].Name != "b" || second[1].Name != "c" {
		t.Errorf("appends share storage: first=%v second=%v", first, second)
	}
}

func TestReduce_ToggleLikeFlipsOnlyIndex(t *testing.T) {
	for i := range sampleList() {
		before := sampleList()
		after := Reduce(before, ToggleLike{Index: i})

		want := sampleList()
		want[i].Liked = !want[i].Liked
		if diff := cmp.Diff(want, after); diff != "" {
			t.Errorf("toggle %d (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(sampleList(), before); diff != "" {
			t.Errorf("toggle %d mutated input (-want +got):\n%s", i, diff)
		}
	}
}

func TestReduce_ToggleTwiceRestores(t *testing.T) {
	list := Reduce(Reduce(sampleList(), ToggleLike{Index: 1}), ToggleLike{Index: 1})
	if diff := cmp.Diff(sampleList(), list); diff != "" {
		t.Errorf("double toggle (-want +got):\n%s", diff)
	}
}

func TestReduce_ReplaceOnlyIndex(t *testing.T) {
	before := sampleList()
	entry := Entry{Name: "ditto", SpriteURL: "https://img.example/132.png"}

	after := Reduce(before, Replace{Index: 0, Entry: entry})

	want := sampleList()
	want[0] = entry
	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("replace (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sampleList(), before); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestReduce_OutOfRangeIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{"toggle negative", ToggleLike{Index: -1}},
		{"toggle past end", ToggleLike{Index: 3}},
		{"replace past end", Replace{Index: 10, Entry: Entry{Name: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(sampleList(), Reduce(sampleList(), tt.action)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	for _, s := range []string{"like", "next"} {
		v, err := ParseVariant(s)
		if err != nil || string(v) != s {
			t.Errorf("ParseVariant(%q) = %q, %v", s, v, err)
		}
	}
	if _, err := ParseVariant("delete"); err == nil {
		t.Error("ParseVariant(delete) succeeded, want error")
	}
}
