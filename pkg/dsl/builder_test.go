package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/storypath/pkg/domain"
)

func TestBuilder_SimpleStory(t *testing.T) {
	b := New("Route").Describe("A short route").Marker("cg_1", "First meeting")

	b.Add("start").
		Title("Opening").
		Text("A message arrives.").
		Go("Answer", "answer").
		Go("Ignore", "bad_end")

	b.Add("answer").
		Grants("cg_1", "cg_2").
		Go("Continue", "good_end")

	b.Add("good_end").Ending("good")
	b.Add("bad_end").Ending("bad")

	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	story, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if story.Title() != "Route" || story.Description() != "A short route" {
		t.Errorf("unexpected story header: %q / %q", story.Title(), story.Description())
	}
	if story.MarkerDescription("cg_1") != "First meeting" {
		t.Errorf("marker description not registered")
	}

	start, ok := story.Node("start")
	if !ok {
		t.Fatal("start node missing")
	}
	if len(start.Choices) != 2 {
		t.Fatalf("Expected 2 choices, got %d", len(start.Choices))
	}
	want := domain.Choice{ID: 2, Text: "Ignore", Destination: "bad_end"}
	if start.Choices[1] != want {
		t.Errorf("Expected %v, got %v", want, start.Choices[1])
	}

	end, _ := story.Node("good_end")
	if !end.Terminal || end.Ending != "good" {
		t.Errorf("good_end should be terminal with ending 'good', got %+v", end)
	}
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New("t")
	b.Add("start").Go("one", "end")
	b.Add("start").Go("two", "end")
	b.Add("end").Ending("good")

	s := b.MustStory()
	start, _ := s.Node("start")
	if len(start.Choices) != 2 || start.Choices[1].ID != 2 {
		t.Errorf("expected choices to accumulate on the same node, got %+v", start.Choices)
	}
}

func TestBuilder_InvalidStory(t *testing.T) {
	b := New("broken")
	b.Add("start").Go("nowhere", "ghost")

	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build() to fail for a dangling choice and no ending")
	}
}

func TestBuilder_CustomStart(t *testing.T) {
	b := New("t").Start("intro")
	b.Add("intro").Go("end", "end")
	b.Add("end").Ending("best")

	s := b.MustStory()
	if s.StartID() != "intro" {
		t.Errorf("expected start 'intro', got %q", s.StartID())
	}
}
