package postprocessors

import (
	"context"
	"testing"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
)

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()

	r.Register("mock", func(cfg map[string]any) (driven.PostProcessor, error) {
		return &mockProcessor{name: "mock"}, nil
	})

	if !r.Has("mock") {
		t.Error("expected registry to have 'mock'")
	}

	p, err := r.Build("mock", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "mock" {
		t.Errorf("expected name 'mock', got %q", p.Name())
	}
}

func TestRegistry_Build_Unknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("nope", nil)
	if err == nil {
		t.Error("expected error for unknown processor")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	names := r.Names()
	if len(names) != 1 || names[0] != "chunker" {
		t.Errorf("expected [chunker], got %v", names)
	}
}

func TestRegisterDefaults_BuildsChunker(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := r.Build("chunker", map[string]any{
		"chunk_size": int64(50), // TOML integers arrive as int64
		"overlap":    int64(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "chunker" {
		t.Errorf("expected chunker, got %q", p.Name())
	}
}

func TestFromSettings(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Chunking.Size = 50
	settings.Chunking.Overlap = 10

	p := FromSettings(settings)
	if p.Len() != 1 {
		t.Fatalf("expected 1 processor, got %d", p.Len())
	}

	doc := &domain.Document{
		ID: "doc",
		Pages: []domain.Page{
			{Number: 1, Text: "0123456789012345678901234567890123456789012345678901234567890123456789"},
		},
	}

	chunks, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 70 chars, window 50, step 40: [0,50) [40,70)
	if len(chunks) != 2 {
		t.Errorf("expected 2 chunks, got %d", len(chunks))
	}
}
