package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"microscope/internal/adapters/canvas"
	"microscope/internal/adapters/memory"
	"microscope/internal/application"
	"microscope/internal/application/controller"
	"microscope/internal/application/layout"
	"microscope/internal/domain"
)

func newController(t *testing.T, tl *domain.Timeline) *controller.Controller {
	t.Helper()
	surface := canvas.New()
	ctrl, err := controller.New(tl, surface, memory.NewPanel(), layout.NewEngine(surface, layout.DefaultConfig()))
	if err != nil {
		t.Fatalf("controller.New: %v", err)
	}
	return ctrl
}

func TestInsertCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     InsertCommand
		wantErr string
	}{
		{"period", InsertCommand{}, ""},
		{"event", InsertCommand{Parent: "1", Fields: CardFields{Label: "Uplift"}}, ""},
		{"scene", InsertCommand{Parent: "1.2", Fields: CardFields{Question: "Why?"}}, ""},
		{"negative position", InsertCommand{Position: -1}, "position must be positive"},
		{"bad parent", InsertCommand{Parent: "x"}, "invalid path"},
		{"scene parent", InsertCommand{Parent: "1.1.1"}, "scenes cannot hold cards"},
		{"label on scene", InsertCommand{Parent: "1.1", Fields: CardFields{Label: "oops"}}, "instead of a label"},
		{"answer on period", InsertCommand{Fields: CardFields{Answer: "oops"}}, "only have a label"},
		{"bad tone", InsertCommand{Fields: CardFields{Tone: "grey"}}, "invalid tone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
			var ve *application.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error %T is not a ValidationError", err)
			}
		})
	}
}

func TestInsertCommand_Execute(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, domain.NewDemoTimeline())

	res, err := NewInsertCommand(ctrl, "", 1, CardFields{Label: "Before Time", Tone: "dark"}).Execute(ctx)
	if err != nil {
		t.Fatalf("insert period: %v", err)
	}
	if res.Path != (domain.Path{Period: 1}) || res.Card.Label != "Before Time" || res.Card.Tone != domain.ToneDark {
		t.Errorf("result = %+v", res)
	}
	if got := ctrl.Timeline().Periods().ContentCount(); got != len(domain.DemoPeriods)+1 {
		t.Errorf("period count = %d", got)
	}

	res, err = NewInsertCommand(ctrl, "1", 0, CardFields{}).Execute(ctx)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	if res.Card.Label != domain.NewEventLabel || res.Path != (domain.Path{Period: 1, Event: 1}) {
		t.Errorf("placeholder event = %+v", res)
	}

	res, err = NewInsertCommand(ctrl, "1.1", 0, CardFields{Question: "Who wakes first?"}).Execute(ctx)
	if err != nil {
		t.Fatalf("insert scene: %v", err)
	}
	if res.Card.Question != "Who wakes first?" || res.Card.Parent.SceneCountLabel() != "1 scene" {
		t.Errorf("scene = %+v", res.Card)
	}

	if _, err := NewInsertCommand(ctrl, "", 99, CardFields{}).Execute(ctx); err == nil {
		t.Error("expected error for position past the end")
	}
	if _, err := NewInsertCommand(ctrl, "9.1", 0, CardFields{}).Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("missing parent error = %v, want ErrNotFound", err)
	}
	if err := ctrl.Timeline().Verify(); err != nil {
		t.Error(err)
	}
}

func TestEditCommand(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, domain.NewDemoTimeline())
	if _, err := NewInsertCommand(ctrl, "2", 0, CardFields{Label: "Cure for cancer"}).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	res, err := NewEditCommand(ctrl, "2.1", CardFields{Tone: "dark"}).Execute(ctx)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if res.Card.Label != "Cure for cancer" || res.Card.Tone != domain.ToneDark {
		t.Errorf("edited = %q/%s, want label kept and tone dark", res.Card.Label, res.Card.Tone)
	}

	tests := []struct {
		name   string
		path   string
		fields CardFields
		target error
	}{
		{"no fields", "2.1", CardFields{}, nil},
		{"missing card", "7", CardFields{Label: "x"}, application.ErrNotFound},
		{"question on event", "2.1", CardFields{Question: "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEditCommand(ctrl, tt.path, tt.fields).Execute(ctx)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestDeleteCommand(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, domain.NewDemoTimeline())
	for range 3 {
		if _, err := NewInsertCommand(ctrl, "1", 0, CardFields{}).Execute(ctx); err != nil {
			t.Fatal(err)
		}
	}

	res, err := NewDeleteCommand(ctrl, "1").Execute(ctx)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	// period, 7 event-level cards and the trailing divider
	if res.Removed != 9 {
		t.Errorf("Removed = %d, want 9", res.Removed)
	}
	if got := ctrl.Timeline().Periods().ContentCount(); got != len(domain.DemoPeriods)-1 {
		t.Errorf("period count = %d", got)
	}

	if _, err := NewDeleteCommand(ctrl, "").Execute(ctx); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSelectCommand_OpensSceneView(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, domain.NewDemoTimeline())
	if _, err := NewInsertCommand(ctrl, "3", 0, CardFields{}).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := NewInsertCommand(ctrl, "3.1", 0, CardFields{Question: "Q"}).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSelectCommand(ctrl, "1").Execute(ctx); err != nil {
		t.Fatal(err)
	}

	card, err := NewSelectCommand(ctrl, "3.1.1").Execute(ctx)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if ctrl.OpenEvent() != card.Parent || ctrl.Selection(controller.SlotScene) != card {
		t.Error("selecting a scene should open its event")
	}
}

func TestOutlineQuery(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, domain.NewTimeline())

	entries, err := NewOutlineQuery(ctrl.Timeline(), true).Execute(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("empty outline = %v, %v", entries, err)
	}
	if FormatOutline(entries) != "(empty timeline)\n" {
		t.Errorf("empty format = %q", FormatOutline(entries))
	}

	steps := []*InsertCommand{
		NewInsertCommand(ctrl, "", 0, CardFields{Label: "Dawn"}),
		NewInsertCommand(ctrl, "1", 0, CardFields{Label: "Spark", Tone: "dark"}),
		NewInsertCommand(ctrl, "1.1", 0, CardFields{Question: "Who lit it?"}),
	}
	for _, s := range steps {
		if _, err := s.Execute(ctx); err != nil {
			t.Fatal(err)
		}
	}

	want := "1 Dawn [light]\n  1.1 Spark [dark] (1 scene)\n    1.1.1 Who lit it? [light]\n"
	entries, _ = NewOutlineQuery(ctrl.Timeline(), true).Execute(ctx)
	if got := FormatOutline(entries); got != want {
		t.Errorf("FormatOutline() =\n%s\nwant\n%s", got, want)
	}

	entries, _ = NewOutlineQuery(ctrl.Timeline(), false).Execute(ctx)
	if len(entries) != 2 {
		t.Errorf("outline without scenes has %d entries, want 2", len(entries))
	}
}
