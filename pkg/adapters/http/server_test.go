package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/internal/metrics"
	"github.com/aretw0/storypath/pkg/adapters/memory"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...storypath.Option) *storypath.Engine {
	t.Helper()
	b := dsl.New("Party")
	b.Add("start").Title("Invite").Go("Stay home", "a").Go("Go out", "party")
	b.Add("a").Grants("cg_book").Go("Read", "end1")
	b.Add("party").Grants("cg_book", "cg_dance").Go("Dance", "end2")
	b.Add("end1").Ending("good")
	b.Add("end2").Ending("best")
	loader, err := b.Build()
	require.NoError(t, err)

	engine, err := storypath.New("", append(opts, storypath.WithLoader(loader))...)
	require.NoError(t, err)
	return engine
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndStory(t *testing.T) {
	h := NewHandler(newEngine(t))

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/story", "")
	require.Equal(t, http.StatusOK, w.Code)
	var story StoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&story))
	assert.Equal(t, "Party", story.Title)
	assert.Equal(t, 5, story.Nodes)
	assert.Equal(t, []string{"end1", "end2"}, story.Endings)
	assert.Equal(t, []string{"best", "good"}, story.Categories)
}

func TestGetNode(t *testing.T) {
	h := NewHandler(newEngine(t))

	w := do(t, h, http.MethodGet, "/story/nodes/party", "")
	require.Equal(t, http.StatusOK, w.Code)
	var node domain.Node
	require.NoError(t, json.NewDecoder(w.Body).Decode(&node))
	assert.Equal(t, []string{"cg_book", "cg_dance"}, node.Markers)

	w = do(t, h, http.MethodGet, "/story/nodes/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch(t *testing.T) {
	h := NewHandler(newEngine(t))

	t.Run("Unrestricted", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		var resp SearchResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, domain.OutcomeFound, resp.Outcome)
		require.NotNil(t, resp.Best)
		assert.Equal(t, []string{"start", "party", "end2"}, resp.Best.Nodes())
		assert.Equal(t, 70, resp.Best.Score())
		assert.Equal(t, 2, resp.Complete)
		assert.Len(t, resp.Top, 2)
	})

	t.Run("Preferred Category", func(t *testing.T) {
		store := memory.NewStore()
		h := NewHandler(newEngine(t), WithReportStore(store))

		w := do(t, h, http.MethodPost, "/search", `{"ending":"good","save":true}`)
		require.Equal(t, http.StatusOK, w.Code)
		var resp SearchResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotNil(t, resp.Best)
		assert.Equal(t, []string{"start", "a", "end1"}, resp.Best.Nodes())
		require.Len(t, resp.Top, 1)
		assert.Equal(t, resp.Best.Nodes(), resp.Top[0].Nodes())
		assert.Equal(t, 2, resp.Complete)

		report, err := store.Load(context.Background(), resp.ReportID)
		require.NoError(t, err)
		require.Len(t, report.Top, 1)
		assert.Equal(t, resp.Top[0].Nodes(), report.Top[0].Nodes())
	})

	t.Run("Category Fallback", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{"ending":"secret"}`)
		require.Equal(t, http.StatusOK, w.Code)
		var resp SearchResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, domain.OutcomeCategoryFallback, resp.Outcome)
	})

	t.Run("Bad Body", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Oversized Input", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{"ending":"`+strings.Repeat("x", 5000)+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearchTarget(t *testing.T) {
	h := NewHandler(newEngine(t))

	w := do(t, h, http.MethodPost, "/search/target", `{"target":"end1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, domain.OutcomeFound, resp.Outcome)
	assert.Equal(t, 30, resp.Best.Score())

	w = do(t, h, http.MethodPost, "/search/target", `{"target":"party"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = SearchResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, domain.OutcomeInvalidTarget, resp.Outcome)
	assert.Nil(t, resp.Best)

	w = do(t, h, http.MethodPost, "/search/target", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidatePath(t *testing.T) {
	h := NewHandler(newEngine(t))

	w := do(t, h, http.MethodPost, "/paths/validate", `{"nodes":["start","a","end1"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp ValidateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.Path)
	assert.Equal(t, 30, resp.Path.Score())

	w = do(t, h, http.MethodPost, "/paths/validate", `{"nodes":["start","end1"]}`)
	resp = ValidateResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Error, "no choice")

	w = do(t, h, http.MethodPost, "/paths/validate", `{"nodes":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReports(t *testing.T) {
	store := memory.NewStore()
	h := NewHandler(newEngine(t), WithReportStore(store))

	w := do(t, h, http.MethodPost, "/search", `{"save":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.ReportID)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{resp.ReportID}, ids)

	w = do(t, h, http.MethodGet, "/reports/"+resp.ReportID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var report domain.Report
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, "Party", report.Story)

	w = do(t, h, http.MethodGet, "/reports/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/reports", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	h := NewHandler(newEngine(t, storypath.WithLifecycleHooks(m.Hooks())), WithMetrics(m.Handler()))

	do(t, h, http.MethodPost, "/search", `{}`)
	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storypath_paths_found_total{ending="best"} 1`)
}

func TestNoReportRoutesWithoutStore(t *testing.T) {
	h := NewHandler(newEngine(t))
	w := do(t, h, http.MethodGet, "/reports", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
