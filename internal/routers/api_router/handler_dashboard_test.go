package api_router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/dao"
	"github.com/haierkeys/markdown-format-service/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboardTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "test.db"),
		AutoMigrate: true,
	}, nil)
	require.NoError(t, err)

	appContainer, err := app.NewApp(&app.AppConfig{}, zap.NewNop(), db)
	require.NoError(t, err)

	frontend := fstest.MapFS{
		"index.html":        &fstest.MapFile{Data: []byte("<html>dashboard</html>")},
		"instructions.html": &fstest.MapFile{Data: []byte("<html>instructions</html>")},
	}

	h := NewDashboardHandler(appContainer, frontend)

	r := gin.New()
	r.GET("/", h.Home)
	r.POST("/", h.Dispatch)
	r.GET("/instructions", h.Instructions)
	r.GET("/load_history/:id", h.LoadHistory)
	r.POST("/delete_history/:id", h.DeleteHistory)
	r.POST("/delete_all_history", h.DeleteAllHistory)
	r.GET("/history_page", h.HistoryPage)
	r.GET("/filter_history", h.FilterHistory)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardHome(t *testing.T) {
	r := newDashboardTestRouter(t)

	w := getPath(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard")

	w = getPath(r, "/instructions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "instructions")
}

func TestDashboardFormat(t *testing.T) {
	r := newDashboardTestRouter(t)

	w := postForm(r, "/", url.Values{
		"format":   {"1"},
		"raw_text": {"# Hello"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.FormatResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "# Hello", got.RawText)
	assert.Contains(t, got.FormattedHTML, "<h1>Hello</h1>")
	assert.Greater(t, got.ID, int64(0))
}

func TestDashboardFormatEmptyText(t *testing.T) {
	r := newDashboardTestRouter(t)

	w := postForm(r, "/", url.Values{
		"format":   {"1"},
		"raw_text": {"   "},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error": "Please enter some text to format."}`, w.Body.String())
}

func TestDashboardExportWithoutContent(t *testing.T) {
	r := newDashboardTestRouter(t)

	w := postForm(r, "/", url.Values{
		"export_word": {"1"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error": "No content to export. Please format text first."}`, w.Body.String())
}

func TestDashboardExportWord(t *testing.T) {
	r := newDashboardTestRouter(t)

	w := postForm(r, "/", url.Values{
		"export_word":    {"1"},
		"formatted_html": {"<h1>Doc</h1><p>body</p>"},
		"file_name":      {"notes"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="notes.docx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, dto.ContentTypeWord, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "expected zip container output")
}

func TestDashboardUnknownSubmitServesPage(t *testing.T) {
	r := newDashboardTestRouter(t)

	// 不带任何已知意图字段的提交返回页面本身
	w := postForm(r, "/", url.Values{"something": {"1"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard")
}

func TestDashboardLoadHistoryNotFound(t *testing.T) {
	r := newDashboardTestRouter(t)

	w := getPath(r, "/load_history/9999")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Item not found"}`, w.Body.String())
}

func TestDashboardHistoryRoundTrip(t *testing.T) {
	r := newDashboardTestRouter(t)

	w := postForm(r, "/", url.Values{
		"format":   {"1"},
		"raw_text": {"hello world"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created dto.FormatResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// 分页列表
	w = getPath(r, "/history_page")
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.HistoryPageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)

	// 关键字检索
	w = getPath(r, "/filter_history?q=hello")
	require.Equal(t, http.StatusOK, w.Code)

	var filtered dto.HistoryFilterDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	assert.Equal(t, "hello", filtered.Query)
	require.Len(t, filtered.Items, 1)

	// 单条加载
	w = getPath(r, "/load_history/"+strconv.FormatInt(created.ID, 10))
	require.Equal(t, http.StatusOK, w.Code)

	var entry map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "hello world", entry["raw_text"])
	assert.Contains(t, entry["formatted_html"], "hello world")

	// 删除单条
	w = postForm(r, "/delete_history/"+strconv.FormatInt(created.ID, 10), url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	// 清空（已无记录）
	w = postForm(r, "/delete_all_history", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "deleted": 0}`, w.Body.String())
}
