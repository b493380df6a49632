// Package catalog provides the bundled lecture catalogs. The catalog data
// is static and read-only; all mutable per-lecture state (listened,
// bookmarked, notes) lives in the progress store, keyed by lecture id.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/samber/lo"
)

//go:embed data/*.json
var dataFS embed.FS

var ErrLectureNotFound = errors.New("lecture not found")

// Catalog identifies which lecture series a lecture belongs to.
type Catalog string

const (
	Gita       Catalog = "bg"  // Bhagavad-gita
	Bhagavatam Catalog = "sb"  // Srimad-Bhagavatam
	Nectar     Catalog = "nod" // Nectar of Devotion
)

// Id ranges per catalog after merge. Raw ids in the bundled data are
// small per-catalog integers; the loader shifts them so that ids are
// globally unique across catalogs.
const (
	gitaIDBase       = 0
	bhagavatamIDBase = 10000
	nectarIDBase     = 20000
)

// Lecture is one playable recording. The three catalogs share the common
// fields; Canto is only meaningful for SB, Chapter may be nil for NOD
// introduction lectures, and the verse label differs per series.
type Lecture struct {
	ID         int     `json:"id"`
	Catalog    Catalog `json:"catalog"`
	Canto      int     `json:"canto,omitempty"`
	Chapter    *int    `json:"chapter"`
	VerseRange string  `json:"verseRange,omitempty"`
	Verse      string  `json:"verse,omitempty"`
	Location   string  `json:"location"`
	Date       string  `json:"date"`
	Title      string  `json:"title"`
	Filename   string  `json:"filename,omitempty"`
	AudioURL   string  `json:"audioUrl"`
}

// HasChapter reports the chapter number, if the lecture has one.
func (l Lecture) HasChapter() (int, bool) {
	if l.Chapter == nil {
		return 0, false
	}
	return *l.Chapter, true
}

// Verses returns the verse label regardless of which series the lecture
// comes from ("" if none).
func (l Lecture) Verses() string {
	if l.VerseRange != "" {
		return l.VerseRange
	}
	return l.Verse
}

// Reference returns a short human-readable scripture reference, e.g.
// "BG 2.13" or "SB 1.2.6".
func (l Lecture) Reference() string {
	ch, hasCh := l.HasChapter()
	switch l.Catalog {
	case Gita:
		if v := l.Verses(); v != "" && hasCh {
			return fmt.Sprintf("BG %d.%s", ch, v)
		}
		return "BG"
	case Bhagavatam:
		if v := l.Verses(); v != "" && hasCh {
			return fmt.Sprintf("SB %d.%d.%s", l.Canto, ch, v)
		}
		return fmt.Sprintf("SB Canto %d", l.Canto)
	case Nectar:
		if hasCh {
			return fmt.Sprintf("NOD Ch. %d", ch)
		}
		return "NOD"
	default:
		return string(l.Catalog)
	}
}

func load(name string, cat Catalog, idBase int) ([]Lecture, error) {
	data, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", name, err)
	}

	var lectures []Lecture
	if err := json.Unmarshal(data, &lectures); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", name, err)
	}

	for i := range lectures {
		lectures[i].Catalog = cat
		lectures[i].ID += idBase
	}
	return lectures, nil
}

// BG returns the Bhagavad-gita lecture catalog.
func BG() ([]Lecture, error) {
	return load("bg_lectures.json", Gita, gitaIDBase)
}

// SB returns the Srimad-Bhagavatam lecture catalog.
func SB() ([]Lecture, error) {
	return load("sb_lectures.json", Bhagavatam, bhagavatamIDBase)
}

// NOD returns the Nectar of Devotion lecture catalog.
func NOD() ([]Lecture, error) {
	return load("nod_lectures.json", Nectar, nectarIDBase)
}

// All returns every catalog merged, ordered BG, SB, NOD. Ids are disjoint
// across catalogs (see the id base constants).
func All() ([]Lecture, error) {
	var all []Lecture
	for _, f := range []func() ([]Lecture, error){BG, SB, NOD} {
		lectures, err := f()
		if err != nil {
			return nil, err
		}
		all = append(all, lectures...)
	}
	return all, nil
}

// ByName returns one catalog by its short name, or all of them for "all".
func ByName(name string) ([]Lecture, error) {
	switch Catalog(name) {
	case Gita:
		return BG()
	case Bhagavatam:
		return SB()
	case Nectar:
		return NOD()
	default:
		if name == "all" || name == "" {
			return All()
		}
		return nil, fmt.Errorf("unknown catalog %q (want bg, sb, nod or all)", name)
	}
}

// Find returns the lecture with the given (post-merge) id.
func Find(id int) (Lecture, error) {
	all, err := All()
	if err != nil {
		return Lecture{}, err
	}
	for _, l := range all {
		if l.ID == id {
			return l, nil
		}
	}
	return Lecture{}, fmt.Errorf("%w: id %d", ErrLectureNotFound, id)
}

// Filter selects lectures by engagement state.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterListened   Filter = "listened"
	FilterUnlistened Filter = "unlistened"
	FilterBookmarked Filter = "bookmarked"
)

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterListened, FilterUnlistened, FilterBookmarked:
		return true
	}
	return false
}

// Apply returns the lectures matching the filter against the given
// progress snapshot.
func (f Filter) Apply(lectures []Lecture, p progress.UserProgress) []Lecture {
	switch f {
	case FilterListened:
		return lo.Filter(lectures, func(l Lecture, _ int) bool { return p.IsListened(l.ID) })
	case FilterUnlistened:
		return lo.Filter(lectures, func(l Lecture, _ int) bool { return !p.IsListened(l.ID) })
	case FilterBookmarked:
		return lo.Filter(lectures, func(l Lecture, _ int) bool { return p.IsBookmarked(l.ID) })
	default:
		return lectures
	}
}

// Stats summarizes engagement with a set of lectures.
type Stats struct {
	Total      int
	Listened   int
	Bookmarked int
}

// Percent returns listened completion in percent (0 for an empty set).
func (s Stats) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Listened) / float64(s.Total) * 100
}

// StatsFor computes engagement stats for the given lectures.
func StatsFor(lectures []Lecture, p progress.UserProgress) Stats {
	s := Stats{Total: len(lectures)}
	for _, l := range lectures {
		if p.IsListened(l.ID) {
			s.Listened++
		}
		if p.IsBookmarked(l.ID) {
			s.Bookmarked++
		}
	}
	return s
}

// Chapters returns the sorted distinct chapter numbers present in the
// given lectures. Lectures without a chapter are skipped.
func Chapters(lectures []Lecture) []int {
	seen := map[int]bool{}
	var chapters []int
	for _, l := range lectures {
		if ch, ok := l.HasChapter(); ok && !seen[ch] {
			seen[ch] = true
			chapters = append(chapters, ch)
		}
	}
	sort.Ints(chapters)
	return chapters
}
