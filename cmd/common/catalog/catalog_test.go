package catalog

import (
	"testing"

	"github.com/nitaidas/sadhana/cmd/common/progress"
)

func TestAll_DisjointIDs(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("All() returned no lectures")
	}

	seen := map[int]Catalog{}
	for _, l := range all {
		if other, dup := seen[l.ID]; dup {
			t.Errorf("id %d appears in both %s and %s", l.ID, other, l.Catalog)
		}
		seen[l.ID] = l.Catalog
	}
}

func TestAll_IDRangesPerCatalog(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	for _, l := range all {
		switch l.Catalog {
		case Gita:
			if l.ID >= bhagavatamIDBase {
				t.Errorf("BG lecture %q has id %d outside its range", l.Title, l.ID)
			}
		case Bhagavatam:
			if l.ID < bhagavatamIDBase || l.ID >= nectarIDBase {
				t.Errorf("SB lecture %q has id %d outside its range", l.Title, l.ID)
			}
		case Nectar:
			if l.ID < nectarIDBase {
				t.Errorf("NOD lecture %q has id %d outside its range", l.Title, l.ID)
			}
		}
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		wantCat Catalog
		wantErr bool
	}{
		{"bg", Gita, false},
		{"sb", Bhagavatam, false},
		{"nod", Nectar, false},
		{"all", "", false},
		{"", "", false},
		{"upanishads", "", true},
	}

	for _, tt := range tests {
		lectures, err := ByName(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ByName(%q) expected error, got %d lectures", tt.name, len(lectures))
			}
			continue
		}
		if err != nil {
			t.Errorf("ByName(%q) error: %v", tt.name, err)
			continue
		}
		if tt.wantCat != "" {
			for _, l := range lectures {
				if l.Catalog != tt.wantCat {
					t.Errorf("ByName(%q) returned lecture from %s", tt.name, l.Catalog)
					break
				}
			}
		}
	}
}

func TestFind(t *testing.T) {
	bg, err := BG()
	if err != nil {
		t.Fatalf("BG() error: %v", err)
	}

	got, err := Find(bg[0].ID)
	if err != nil {
		t.Fatalf("Find(%d) error: %v", bg[0].ID, err)
	}
	if got.Title != bg[0].Title {
		t.Errorf("Find(%d).Title = %q, want %q", bg[0].ID, got.Title, bg[0].Title)
	}

	if _, err := Find(999999); err == nil {
		t.Error("Find(999999) expected error")
	}
}

func TestLecture_CapabilityAccessors(t *testing.T) {
	nod, err := NOD()
	if err != nil {
		t.Fatalf("NOD() error: %v", err)
	}

	foundNilChapter := false
	for _, l := range nod {
		if _, ok := l.HasChapter(); !ok {
			foundNilChapter = true
		}
	}
	if !foundNilChapter {
		t.Error("NOD catalog has no chapterless lecture to exercise the nil case")
	}

	sb, err := SB()
	if err != nil {
		t.Fatalf("SB() error: %v", err)
	}
	for _, l := range sb {
		if l.Canto == 0 {
			t.Errorf("SB lecture %q has no canto", l.Title)
		}
		if l.Verses() == "" {
			t.Errorf("SB lecture %q has no verse label", l.Title)
		}
	}
}

func TestLecture_Reference(t *testing.T) {
	ch2 := 2
	tests := []struct {
		lecture  Lecture
		expected string
	}{
		{Lecture{Catalog: Gita, Chapter: &ch2, VerseRange: "13"}, "BG 2.13"},
		{Lecture{Catalog: Bhagavatam, Canto: 1, Chapter: &ch2, Verse: "6"}, "SB 1.2.6"},
		{Lecture{Catalog: Bhagavatam, Canto: 3}, "SB Canto 3"},
		{Lecture{Catalog: Nectar, Chapter: &ch2}, "NOD Ch. 2"},
		{Lecture{Catalog: Nectar}, "NOD"},
	}

	for _, tt := range tests {
		if got := tt.lecture.Reference(); got != tt.expected {
			t.Errorf("Reference() = %q, want %q", got, tt.expected)
		}
	}
}

func TestFilter_Apply(t *testing.T) {
	bg, err := BG()
	if err != nil {
		t.Fatalf("BG() error: %v", err)
	}

	p := progress.Defaults()
	p = progress.ToggleListened(bg[0].ID)(p)
	p = progress.ToggleBookmarked(bg[1].ID)(p)

	if got := FilterListened.Apply(bg, p); len(got) != 1 || got[0].ID != bg[0].ID {
		t.Errorf("listened filter returned %d lectures", len(got))
	}
	if got := FilterUnlistened.Apply(bg, p); len(got) != len(bg)-1 {
		t.Errorf("unlistened filter returned %d lectures, want %d", len(got), len(bg)-1)
	}
	if got := FilterBookmarked.Apply(bg, p); len(got) != 1 || got[0].ID != bg[1].ID {
		t.Errorf("bookmarked filter returned %d lectures", len(got))
	}
	if got := FilterAll.Apply(bg, p); len(got) != len(bg) {
		t.Errorf("all filter returned %d lectures, want %d", len(got), len(bg))
	}
}

func TestStatsFor(t *testing.T) {
	bg, err := BG()
	if err != nil {
		t.Fatalf("BG() error: %v", err)
	}

	p := progress.Defaults()
	p = progress.ToggleListened(bg[0].ID)(p)
	p = progress.ToggleListened(bg[1].ID)(p)
	p = progress.ToggleBookmarked(bg[0].ID)(p)

	s := StatsFor(bg, p)
	if s.Total != len(bg) || s.Listened != 2 || s.Bookmarked != 1 {
		t.Errorf("StatsFor = %+v, want total=%d listened=2 bookmarked=1", s, len(bg))
	}

	if zero := (Stats{}); zero.Percent() != 0 {
		t.Errorf("empty Stats.Percent() = %v, want 0", zero.Percent())
	}
}

func TestChapters(t *testing.T) {
	bg, err := BG()
	if err != nil {
		t.Fatalf("BG() error: %v", err)
	}

	chapters := Chapters(bg)
	if len(chapters) == 0 {
		t.Fatal("no chapters found in BG catalog")
	}
	for i := 1; i < len(chapters); i++ {
		if chapters[i-1] >= chapters[i] {
			t.Errorf("chapters not sorted/distinct: %v", chapters)
			break
		}
	}
}
