package sqlite

import (
	"testing"

	"microscope/internal/domain"
)

func sampleTimeline(t *testing.T) *domain.Timeline {
	t.Helper()
	tl := domain.NewDemoTimeline()
	second, err := tl.Find(domain.Path{Period: 2})
	if err != nil {
		t.Fatal(err)
	}
	ev := domain.NewEvent("Fusion power goes online", domain.ToneLight)
	if _, err := second.Children.InsertAt(0, ev); err != nil {
		t.Fatal(err)
	}
	sc := domain.NewScene("Who controls the grid?", "Geneva, 2051", "The 100%_ committee", domain.ToneDark)
	if _, err := ev.Children.InsertAt(0, sc); err != nil {
		t.Fatal(err)
	}
	return tl
}

func openIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := idx.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return idx
}

func TestSync_CountsCards(t *testing.T) {
	idx := openIndex(t)
	stats, err := idx.Sync(sampleTimeline(t))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if stats.Periods != 4 || stats.Events != 1 || stats.Scenes != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if n, _ := idx.Count(); n != stats.Cards() {
		t.Errorf("Count() = %d, want %d", n, stats.Cards())
	}
}

func TestSearch(t *testing.T) {
	idx := openIndex(t)
	if err := idx.Rebuild(sampleTimeline(t)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		query string
		want  []domain.Path
	}{
		{"label word", "prosperity", []domain.Path{{Period: 2}}},
		{"case insensitive", "FUSION", []domain.Path{{Period: 2, Event: 1}}},
		{"scene setting", "geneva", []domain.Path{{Period: 2, Event: 1, Scene: 1}}},
		{"all words must match", "grid geneva", []domain.Path{{Period: 2, Event: 1, Scene: 1}}},
		{"words across cards", "fusion geneva", nil},
		{"like wildcards are literal", "100%_", []domain.Path{{Period: 2, Event: 1, Scene: 1}}},
		{"percent alone", "%", []domain.Path{{Period: 2, Event: 1, Scene: 1}}},
		{"blank query", "   ", nil},
		{"several periods", "humanity", []domain.Path{{Period: 1}, {Period: 3}, {Period: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := idx.Search(tt.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(hits) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d hits, want %d: %+v", tt.query, len(hits), len(tt.want), hits)
			}
			for i, h := range hits {
				if h.Path != tt.want[i] {
					t.Errorf("hit %d path = %v, want %v", i, h.Path, tt.want[i])
				}
			}
		})
	}
}

func TestSearch_HitFields(t *testing.T) {
	idx := openIndex(t)
	if err := idx.Rebuild(sampleTimeline(t)); err != nil {
		t.Fatal(err)
	}
	hits, err := idx.Search("grid")
	if err != nil || len(hits) != 1 {
		t.Fatalf("Search = %v, %v", hits, err)
	}
	h := hits[0]
	if h.Kind != domain.KindScene || h.Title != "Who controls the grid?" {
		t.Errorf("hit = %+v", h)
	}
}

func TestRebuild_ReplacesContents(t *testing.T) {
	idx := openIndex(t)
	if err := idx.Rebuild(sampleTimeline(t)); err != nil {
		t.Fatal(err)
	}
	if err := idx.Rebuild(domain.NewTimeline()); err != nil {
		t.Fatal(err)
	}
	if n, _ := idx.Count(); n != 0 {
		t.Errorf("Count() = %d after rebuilding an empty timeline", n)
	}
}

func BenchmarkSync(b *testing.B) {
	tl := domain.NewDemoTimeline()
	for _, period := range tl.Periods().Contents() {
		for range 20 {
			ev := domain.NewEvent("event", domain.ToneLight)
			_, _ = period.Children.InsertAt(0, ev)
			for range 5 {
				_, _ = ev.Children.InsertAt(0, domain.NewScene("question", "setting", "answer", domain.ToneLight))
			}
		}
	}

	idx, err := Open()
	if err != nil {
		b.Fatal(err)
	}
	defer idx.Close()

	for b.Loop() {
		if _, err := idx.Sync(tl); err != nil {
			b.Fatalf("sync failed: %v", err)
		}
	}
}
