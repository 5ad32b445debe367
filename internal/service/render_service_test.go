package service

import (
	"context"
	"sync"
	"testing"

	"github.com/haierkeys/markdown-format-service/internal/domain"
	"github.com/haierkeys/markdown-format-service/internal/render"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"go.uber.org/zap"
)

// --- Mocks ---

type renderMockHistoryRepo struct {
	domain.HistoryRepository
	mu      sync.Mutex
	nextID  int64
	created []*domain.History
}

func (m *renderMockHistoryRepo) Create(ctx context.Context, h *domain.History) (*domain.History, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	saved := *h
	saved.ID = m.nextID
	m.created = append(m.created, &saved)
	return &saved, nil
}

func newTestRenderService(repo domain.HistoryRepository) RenderService {
	engine := render.NewEngine(render.Config{
		HardWraps:  true,
		Unsafe:     true,
		Extensions: []string{"table", "footnote", "definition"},
	})
	return NewRenderService(repo, engine, zap.NewNop())
}

func TestRenderServiceFormat(t *testing.T) {
	repo := &renderMockHistoryRepo{}
	svc := newTestRenderService(repo)

	got, err := svc.Format(context.Background(), "# Hello")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.RawText != "# Hello" {
		t.Errorf("RawText = %q, want %q", got.RawText, "# Hello")
	}
	if got.FormattedHTML != "<h1>Hello</h1>" {
		t.Errorf("FormattedHTML = %q, want %q", got.FormattedHTML, "<h1>Hello</h1>")
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d entries, want 1", len(repo.created))
	}
	if repo.created[0].RawText != "# Hello" {
		t.Errorf("stored RawText = %q, want original input", repo.created[0].RawText)
	}
}

func TestRenderServiceFormatEmpty(t *testing.T) {
	repo := &renderMockHistoryRepo{}
	svc := newTestRenderService(repo)

	for _, text := range []string{"", "   ", " \n\t "} {
		_, err := svc.Format(context.Background(), text)
		if err != code.ErrorEmptyContent {
			t.Errorf("Format(%q) error = %v, want ErrorEmptyContent", text, err)
		}
	}

	if len(repo.created) != 0 {
		t.Errorf("created %d entries for empty input, want 0", len(repo.created))
	}
}

func TestRenderServiceFormatPersistsEachCall(t *testing.T) {
	repo := &renderMockHistoryRepo{}
	svc := newTestRenderService(repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Format(context.Background(), "same text"); err != nil {
			t.Fatalf("Format failed: %v", err)
		}
	}

	if len(repo.created) != 3 {
		t.Errorf("created %d entries, want one per call", len(repo.created))
	}
}

func TestRenderServiceRender(t *testing.T) {
	svc := newTestRenderService(&renderMockHistoryRepo{})

	html, err := svc.Render(context.Background(), "**bold**")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if html != "<p><strong>bold</strong></p>" {
		t.Errorf("Render = %q", html)
	}

	if _, err := svc.Render(context.Background(), "  "); err != code.ErrorEmptyContent {
		t.Errorf("Render empty error = %v, want ErrorEmptyContent", err)
	}
}
