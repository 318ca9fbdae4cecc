package domain

import (
	"errors"
	"testing"
)

func buildTimeline(t *testing.T) *Timeline {
	t.Helper()
	tl := NewTimeline()
	for _, p := range []string{"p1", "p2"} {
		period := NewPeriod(p, ToneLight)
		if _, err := tl.Periods().InsertAt(tl.Periods().Len()-1, period); err != nil {
			t.Fatal(err)
		}
		for _, e := range []string{"e1", "e2"} {
			ev := NewEvent(p+e, ToneDark)
			if _, err := period.Children.InsertAt(period.Children.Len()-1, ev); err != nil {
				t.Fatal(err)
			}
			for _, s := range []string{"s1", "s2", "s3"} {
				sc := NewScene(p+e+s, "setting", "answer", ToneLight)
				if _, err := ev.Children.InsertAt(ev.Children.Len()-1, sc); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	return tl
}

func TestTimeline_FindAndPathOf(t *testing.T) {
	tl := buildTimeline(t)

	tests := []struct {
		path  Path
		title string
	}{
		{Path{Period: 1}, "p1"},
		{Path{Period: 2, Event: 1}, "p2e1"},
		{Path{Period: 2, Event: 2, Scene: 3}, "p2e2s3"},
	}

	for _, tt := range tests {
		t.Run(tt.path.String(), func(t *testing.T) {
			card, err := tl.Find(tt.path)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if card.Title() != tt.title {
				t.Errorf("Title() = %q, want %q", card.Title(), tt.title)
			}
			if got := tl.PathOf(card); got != tt.path {
				t.Errorf("PathOf() = %v, want %v", got, tt.path)
			}
		})
	}
}

func TestTimeline_FindMissing(t *testing.T) {
	tl := buildTimeline(t)
	for _, p := range []Path{{}, {Period: 3}, {Period: 1, Event: 3}, {Period: 1, Event: 1, Scene: 4}, {Period: 1, Scene: 1}} {
		if _, err := tl.Find(p); !errors.Is(err, ErrNotFound) {
			t.Errorf("Find(%v) error = %v, want ErrNotFound", p, err)
		}
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{"2", Path{Period: 2}, false},
		{"2.1", Path{Period: 2, Event: 1}, false},
		{" 3.4.5 ", Path{Period: 3, Event: 4, Scene: 5}, false},
		{"", Path{}, true},
		{"0", Path{}, true},
		{"1.x", Path{}, true},
		{"1.2.3.4", Path{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePath(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeline_VerifyDetectsCorruption(t *testing.T) {
	tl := buildTimeline(t)
	if err := tl.Verify(); err != nil {
		t.Fatalf("Verify on fresh tree: %v", err)
	}

	ev, _ := tl.Find(Path{Period: 1, Event: 2})
	ev.Parent = nil
	if err := tl.Verify(); err == nil {
		t.Error("expected Verify to report broken parent reference")
	}
}

func TestTimeline_WalkVisitsEveryCard(t *testing.T) {
	tl := buildTimeline(t)
	count := 0
	tl.Walk(func(*Card) { count++ })

	// 5 period-level cards, 2 event lists of 5, 4 scene lists of 7
	want := 5 + 2*5 + 4*7
	if count != want {
		t.Errorf("Walk visited %d cards, want %d", count, want)
	}
}

func TestSceneCountLabel(t *testing.T) {
	ev := NewEvent("e", ToneLight)
	if ev.SceneCountLabel() != "" {
		t.Errorf("empty event label = %q, want hidden", ev.SceneCountLabel())
	}

	_, _ = ev.Children.InsertAt(0, NewScene("a", "", "", ToneLight))
	_, _ = ev.Children.InsertAt(0, NewScene("b", "", "", ToneLight))
	if got := ev.SceneCountLabel(); got != "2 scenes" {
		t.Errorf("label = %q, want %q", got, "2 scenes")
	}

	_, _ = ev.Children.DeleteAt(1)
	if got := ev.SceneCountLabel(); got != "1 scene" {
		t.Errorf("label = %q, want %q", got, "1 scene")
	}

	_, _ = ev.Children.DeleteAt(1)
	if got := ev.SceneCountLabel(); got != "" {
		t.Errorf("label = %q, want hidden", got)
	}
}

func TestSceneCount_MatchesContentCount(t *testing.T) {
	ev := NewEvent("e", ToneLight)
	for k := 0; k < 10; k++ {
		if ev.SceneCount() != ev.Children.ContentCount() || ev.SceneCount() != k {
			t.Fatalf("k=%d: SceneCount() = %d, ContentCount() = %d", k, ev.SceneCount(), ev.Children.ContentCount())
		}
		_, _ = ev.Children.InsertAt(2*k, NewScene("s", "", "", ToneLight))
	}
}

func TestNewDemoTimeline(t *testing.T) {
	tl := NewDemoTimeline()
	if got := tl.Periods().ContentCount(); got != len(DemoPeriods) {
		t.Fatalf("ContentCount() = %d, want %d", got, len(DemoPeriods))
	}
	third, _ := tl.Find(Path{Period: 3})
	if third.Tone != ToneDark {
		t.Errorf("third period tone = %s, want dark", third.Tone)
	}
	if err := tl.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestCardPressState(t *testing.T) {
	c := NewPeriod("p", ToneLight)
	if c.Pressed() {
		t.Fatal("new card should be raised")
	}
	c.Press()
	if !c.Pressed() {
		t.Error("Press() should sink the card")
	}
	c.Release()
	if c.Pressed() {
		t.Error("Release() should raise the card")
	}
}
