package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/domain"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
)

// --- Mocks ---

type historyMockRepo struct {
	domain.HistoryRepository
	entries []*domain.History

	searchQuery string
	searchLimit int
	listLimit   int
	listOffset  int
	deletedIDs  []int64
	trimmedTo   int
}

func (m *historyMockRepo) GetByID(ctx context.Context, id int64) (*domain.History, error) {
	for _, h := range m.entries {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

func (m *historyMockRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *historyMockRepo) List(ctx context.Context, limit, offset int) ([]*domain.History, error) {
	m.listLimit = limit
	m.listOffset = offset
	if offset >= len(m.entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.entries) {
		end = len(m.entries)
	}
	return m.entries[offset:end], nil
}

func (m *historyMockRepo) Search(ctx context.Context, query string, limit int) ([]*domain.History, error) {
	m.searchQuery = query
	m.searchLimit = limit
	var res []*domain.History
	for _, h := range m.entries {
		if strings.Contains(h.RawText, query) {
			res = append(res, h)
		}
	}
	return res, nil
}

func (m *historyMockRepo) Delete(ctx context.Context, id int64) (int64, error) {
	m.deletedIDs = append(m.deletedIDs, id)
	for _, h := range m.entries {
		if h.ID == id {
			return 1, nil
		}
	}
	return 0, nil
}

func (m *historyMockRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.entries))
	m.entries = nil
	return n, nil
}

func (m *historyMockRepo) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	var kept []*domain.History
	var deleted int64
	for _, h := range m.entries {
		if h.CreatedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, h)
	}
	m.entries = kept
	return deleted, nil
}

func (m *historyMockRepo) TrimToNewest(ctx context.Context, keep int) (int64, error) {
	m.trimmedTo = keep
	if len(m.entries) <= keep {
		return 0, nil
	}
	deleted := int64(len(m.entries) - keep)
	m.entries = m.entries[:keep]
	return deleted, nil
}

// seedEntries 生成按新到旧排列的历史记录
func seedEntries(n int) []*domain.History {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	entries := make([]*domain.History, 0, n)
	for i := n; i >= 1; i-- {
		entries = append(entries, &domain.History{
			ID:            int64(i),
			RawText:       fmt.Sprintf("text %d", i),
			FormattedHTML: fmt.Sprintf("<p>text %d</p>", i),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
	}
	return entries
}

func newTestHistoryService(repo domain.HistoryRepository) HistoryService {
	return NewHistoryService(repo, zap.NewNop())
}

func TestHistoryServicePage(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		page        int
		wantItems   int
		wantNext    bool
		wantPrev    bool
		wantFirstID int64
	}{
		{"first of three", 25, 1, 10, true, false, 25},
		{"middle", 25, 2, 10, true, true, 15},
		{"last partial", 25, 3, 5, false, true, 5},
		{"page coerced to one", 25, 0, 10, true, false, 25},
		{"beyond last", 25, 99, 0, false, true, 0},
		{"empty table", 0, 1, 0, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &historyMockRepo{entries: seedEntries(tt.total)}
			svc := newTestHistoryService(repo)

			got, err := svc.Page(context.Background(), tt.page)
			if err != nil {
				t.Fatalf("Page failed: %v", err)
			}

			if len(got.Items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(got.Items), tt.wantItems)
			}
			if got.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", got.HasNext, tt.wantNext)
			}
			if got.HasPrevious != tt.wantPrev {
				t.Errorf("HasPrevious = %v, want %v", got.HasPrevious, tt.wantPrev)
			}
			if tt.wantFirstID > 0 && got.Items[0].ID != tt.wantFirstID {
				t.Errorf("first item ID = %d, want %d", got.Items[0].ID, tt.wantFirstID)
			}
		})
	}
}

func TestHistoryServiceItemProjection(t *testing.T) {
	long := strings.Repeat("宽", 150)
	repo := &historyMockRepo{entries: []*domain.History{{
		ID:        1,
		RawText:   long,
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 45, 0, time.Local),
	}}}
	svc := newTestHistoryService(repo)

	got, err := svc.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	item := got.Items[0]
	if runes := []rune(item.RawText); len(runes) != 100 {
		t.Errorf("preview length = %d runes, want 100", len(runes))
	}
	if item.CreatedAt != "2024-05-01 09:30" {
		t.Errorf("CreatedAt = %q, want minute precision", item.CreatedAt)
	}
}

func TestHistoryServiceFilter(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(20)}
	svc := newTestHistoryService(repo)

	got, err := svc.Filter(context.Background(), "  text 1  ")
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if got.Query != "text 1" {
		t.Errorf("Query = %q, want trimmed", got.Query)
	}
	if repo.searchLimit != 50 {
		t.Errorf("search limit = %d, want 50", repo.searchLimit)
	}
}

func TestHistoryServiceFilterTruncatesQuery(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(3)}
	svc := newTestHistoryService(repo)

	long := strings.Repeat("好", 300)
	got, err := svc.Filter(context.Background(), long)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if runes := []rune(got.Query); len(runes) != 200 {
		t.Errorf("query length = %d runes, want 200", len(runes))
	}
	if repo.searchQuery != got.Query {
		t.Errorf("repo searched with %q, want truncated query", repo.searchQuery)
	}
}

func TestHistoryServiceFilterEmptyQuery(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(20)}
	svc := newTestHistoryService(repo)

	got, err := svc.Filter(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if got.Query != "" {
		t.Errorf("Query = %q, want empty", got.Query)
	}
	if len(got.Items) != 10 {
		t.Errorf("items = %d, want 10 most recent", len(got.Items))
	}
	if got.Items[0].ID != 20 {
		t.Errorf("first item ID = %d, want newest", got.Items[0].ID)
	}
}

func TestHistoryServiceGet(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(3)}
	svc := newTestHistoryService(repo)

	got, err := svc.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.RawText != "text 2" {
		t.Errorf("RawText = %q", got.RawText)
	}

	if _, err := svc.Get(context.Background(), 999); err != code.ErrorHistoryNotFound {
		t.Errorf("Get missing error = %v, want ErrorHistoryNotFound", err)
	}
}

func TestHistoryServiceDeleteMissingIsOK(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(2)}
	svc := newTestHistoryService(repo)

	if err := svc.Delete(context.Background(), 999); err != nil {
		t.Errorf("Delete missing id error = %v, want nil", err)
	}
}

func TestHistoryServiceDeleteAll(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(7)}
	svc := newTestHistoryService(repo)

	deleted, err := svc.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if deleted != 7 {
		t.Errorf("deleted = %d, want 7", deleted)
	}
}

func TestHistoryServiceDiff(t *testing.T) {
	repo := &historyMockRepo{entries: []*domain.History{
		{ID: 1, RawText: "hello world"},
		{ID: 2, RawText: "hello there"},
	}}
	svc := newTestHistoryService(repo)

	got, err := svc.Diff(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if got.From != 1 || got.To != 2 {
		t.Errorf("From/To = %d/%d", got.From, got.To)
	}
	if len(got.Diffs) == 0 {
		t.Fatal("expected non-empty diffs")
	}

	var hasDelete, hasInsert bool
	for _, d := range got.Diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			hasDelete = true
		case diffmatchpatch.DiffInsert:
			hasInsert = true
		}
	}
	if !hasDelete || !hasInsert {
		t.Errorf("diffs missing delete/insert ops: %+v", got.Diffs)
	}
}

func TestHistoryServiceDiffMissingEntry(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(1)}
	svc := newTestHistoryService(repo)

	if _, err := svc.Diff(context.Background(), 1, 999); err != code.ErrorHistoryNotFound {
		t.Errorf("Diff missing error = %v, want ErrorHistoryNotFound", err)
	}
	if _, err := svc.Diff(context.Background(), 999, 1); err != code.ErrorHistoryNotFound {
		t.Errorf("Diff missing error = %v, want ErrorHistoryNotFound", err)
	}
}

func TestHistoryServiceCleanupExpired(t *testing.T) {
	now := time.Now()
	repo := &historyMockRepo{entries: []*domain.History{
		{ID: 1, RawText: "old", CreatedAt: now.AddDate(0, 0, -30)},
		{ID: 2, RawText: "new", CreatedAt: now},
	}}
	svc := newTestHistoryService(repo)

	deleted, err := svc.CleanupExpired(context.Background(), 7*24*time.Hour)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	// 保留期为 0 时不清理
	deleted, err = svc.CleanupExpired(context.Background(), 0)
	if err != nil || deleted != 0 {
		t.Errorf("CleanupExpired(0) = %d, %v, want 0, nil", deleted, err)
	}
}

func TestHistoryServiceEnforceMaxRows(t *testing.T) {
	repo := &historyMockRepo{entries: seedEntries(30)}
	svc := newTestHistoryService(repo)

	deleted, err := svc.EnforceMaxRows(context.Background(), 10)
	if err != nil {
		t.Fatalf("EnforceMaxRows failed: %v", err)
	}
	if deleted != 20 {
		t.Errorf("deleted = %d, want 20", deleted)
	}
	if repo.trimmedTo != 10 {
		t.Errorf("trimmed to %d, want 10", repo.trimmedTo)
	}

	// 上限为 0 表示不限制
	deleted, err = svc.EnforceMaxRows(context.Background(), 0)
	if err != nil || deleted != 0 {
		t.Errorf("EnforceMaxRows(0) = %d, %v, want 0, nil", deleted, err)
	}
}

func TestHistoryServicePageProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("paging flags and item counts agree with the total", prop.ForAll(
		func(total int, page int) bool {
			repo := &historyMockRepo{entries: seedEntries(total)}
			svc := newTestHistoryService(repo)

			got, err := svc.Page(context.Background(), page)
			if err != nil {
				return false
			}

			if page < 1 {
				page = 1
			}
			wantItems := total - (page-1)*historyPageSize
			if wantItems < 0 {
				wantItems = 0
			}
			if wantItems > historyPageSize {
				wantItems = historyPageSize
			}

			if len(got.Items) != wantItems {
				return false
			}
			if got.HasNext != (page*historyPageSize < total) {
				return false
			}
			return got.HasPrevious == (page > 1 && total > 0)
		},
		gen.IntRange(0, 60),
		gen.IntRange(-1, 12),
	))

	properties.TestingRun(t)
}
