package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/domain"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/internal/export/pdf"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"go.uber.org/zap"
)

// --- Mocks ---

type exportMockHistoryRepo struct {
	domain.HistoryRepository
	entries []*domain.History
}

func (m *exportMockHistoryRepo) GetByID(ctx context.Context, id int64) (*domain.History, error) {
	for _, h := range m.entries {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

type mockMailService struct {
	enabled bool
	sentTo  string
	file    *dto.ExportFileDTO
}

func (m *mockMailService) IsEnabled() bool {
	return m.enabled
}

func (m *mockMailService) SendDocument(ctx context.Context, to string, file *dto.ExportFileDTO) error {
	m.sentTo = to
	m.file = file
	return nil
}

func newTestExportService(repo domain.HistoryRepository, mail MailService) ExportService {
	return NewExportService(repo, pdf.NewEngine(pdf.Config{}), mail, nil, nil, "", time.Minute, zap.NewNop())
}

func TestExportServiceWord(t *testing.T) {
	svc := newTestExportService(&exportMockHistoryRepo{}, nil)

	file, err := svc.Word(context.Background(), "<h1>Title</h1><p>body</p>", "my report")
	if err != nil {
		t.Fatalf("Word failed: %v", err)
	}

	if file.Name != "my report.docx" {
		t.Errorf("Name = %q, want %q", file.Name, "my report.docx")
	}
	if file.ContentType != dto.ContentTypeWord {
		t.Errorf("ContentType = %q", file.ContentType)
	}
	if !bytes.HasPrefix(file.Data, []byte("PK")) {
		t.Error("expected zip container output")
	}
}

func TestExportServiceWordDefaultName(t *testing.T) {
	svc := newTestExportService(&exportMockHistoryRepo{}, nil)

	file, err := svc.Word(context.Background(), "<p>x</p>", "")
	if err != nil {
		t.Fatalf("Word failed: %v", err)
	}
	if file.Name != "document.docx" {
		t.Errorf("Name = %q, want default", file.Name)
	}
}

func TestExportServiceTempSpool(t *testing.T) {
	tempDir := t.TempDir()
	svc := NewExportService(&exportMockHistoryRepo{}, pdf.NewEngine(pdf.Config{}), nil, nil, nil, tempDir, time.Minute, zap.NewNop())

	file, err := svc.Word(context.Background(), "<p>spool</p>", "notes")
	if err != nil {
		t.Fatalf("Word failed: %v", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp dir entries = %d, want 1", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), "-"+file.Name) {
		t.Errorf("temp file %q does not keep original name suffix", entries[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(tempDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(data, file.Data) {
		t.Error("temp copy differs from exported document")
	}
}

func TestExportServiceEmptyContent(t *testing.T) {
	svc := newTestExportService(&exportMockHistoryRepo{}, nil)

	if _, err := svc.Word(context.Background(), "", "x"); err != code.ErrorEmptyExportContent {
		t.Errorf("Word empty error = %v, want ErrorEmptyExportContent", err)
	}
	if _, err := svc.PDF(context.Background(), "", "x"); err != code.ErrorEmptyExportContent {
		t.Errorf("PDF empty error = %v, want ErrorEmptyExportContent", err)
	}
}

func TestExportServiceEmailDisabled(t *testing.T) {
	repo := &exportMockHistoryRepo{entries: []*domain.History{{ID: 1, RawText: "x", FormattedHTML: "<p>x</p>"}}}

	for _, mail := range []MailService{nil, &mockMailService{enabled: false}} {
		svc := newTestExportService(repo, mail)
		_, err := svc.Email(context.Background(), &dto.ExportEmailRequest{ID: 1, Format: "word", To: "a@b.c"})
		if err != code.ErrorMailDisabled {
			t.Errorf("Email error = %v, want ErrorMailDisabled", err)
		}
	}
}

func TestExportServiceEmailMissingEntry(t *testing.T) {
	svc := newTestExportService(&exportMockHistoryRepo{}, &mockMailService{enabled: true})

	_, err := svc.Email(context.Background(), &dto.ExportEmailRequest{ID: 42, Format: "word", To: "a@b.c"})
	if err != code.ErrorHistoryNotFound {
		t.Errorf("Email error = %v, want ErrorHistoryNotFound", err)
	}
}

func TestExportServiceEmailWord(t *testing.T) {
	repo := &exportMockHistoryRepo{entries: []*domain.History{{
		ID:            7,
		RawText:       "# Quarterly Report\n\nNumbers.",
		FormattedHTML: "<h1>Quarterly Report</h1><p>Numbers.</p>",
	}}}
	mail := &mockMailService{enabled: true}
	svc := newTestExportService(repo, mail)

	got, err := svc.Email(context.Background(), &dto.ExportEmailRequest{ID: 7, Format: "word", To: "dev@example.com"})
	if err != nil {
		t.Fatalf("Email failed: %v", err)
	}

	if got.To != "dev@example.com" {
		t.Errorf("To = %q", got.To)
	}
	if got.Filename != "Quarterly Report.docx" {
		t.Errorf("Filename = %q, want derived from first line", got.Filename)
	}
	if mail.sentTo != "dev@example.com" || mail.file == nil {
		t.Error("mail service did not receive the document")
	}
}

func TestExportNameFromText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"# Title\nbody", "Title"},
		{"\n\n  plain lead line\nmore", "plain lead line"},
		{"", ""},
		{"   \n\t\n", ""},
	}

	for _, tt := range tests {
		if got := exportNameFromText(tt.text); got != tt.want {
			t.Errorf("exportNameFromText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
