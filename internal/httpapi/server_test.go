package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/orgtree/internal/observability"
	"github.com/erraggy/orgtree/registry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	metrics *observability.Metrics
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	reg, err := registry.New()
	require.NoError(t, err)
	m := observability.NewMetrics()
	opts = append([]Option{WithMetrics(m), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return &testServer{t: t, handler: New(reg, opts...).Handler(), metrics: m}
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/xml")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) create(xml string) int64 {
	ts.t.Helper()
	w := ts.do(http.MethodPost, BasePath, xml)
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var resp TreeResponse
	require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func treeURL(id int64, suffix string) string {
	return fmt.Sprintf("%s/%d%s", BasePath, id, suffix)
}

func TestCreateAndGetTree(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, BasePath, `
    <Tree>
      <TreeName>TestTree</TreeName>
      <person id="1"><name>Franciszek</name></person>
    </Tree>`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp TreeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "TestTree", resp.TreeName)
	assert.Contains(t, resp.TreeData, "Franciszek")
	assert.Equal(t, BasePath+"/1", w.Header().Get("Location"))

	w = ts.do(http.MethodGet, treeURL(resp.ID, ""), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Franciszek")
}

func TestUpdateTree(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(`<Tree><TreeName>TestTree</TreeName><person id="1"><name>Jan</name></person></Tree>`)

	w := ts.do(http.MethodPut, treeURL(id, ""), `<Tree><person id="1"><name>Janusz</name></person></Tree>`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, treeURL(id, ""), "")
	assert.Contains(t, w.Body.String(), "Janusz")
	assert.Contains(t, w.Body.String(), "TestTree")
}

func TestAddNode(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(`<Tree><TreeName>TestTree</TreeName><person id="1"><name>Franciszek</name><children /></person></Tree>`)

	w := ts.do(http.MethodPatch, treeURL(id, "/addnode"), `
    <NewNode parent="person[@id='1']/children">
      <person id="2"><name>Anna</name></person>
    </NewNode>`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Anna")
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	w = ts.do(http.MethodPatch, treeURL(id, "/addnode"), `<NewNode parent="person[@id='1']/children"><person id="2"/></NewNode>`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddNodeErrors(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(`<Tree><TreeName>TestTree</TreeName><person id="1"/></Tree>`)

	tests := []struct {
		name string
		id   int64
		body string
		want int
	}{
		{"unknown tree", 99, `<NewNode parent="person[@id='1']"><person id="2"/></NewNode>`, http.StatusNotFound},
		{"unresolved parent", id, `<NewNode parent="person[@id='7']"><person id="2"/></NewNode>`, http.StatusNotFound},
		{"bad parent path", id, `<NewNode parent="person[@id='1'"><person id="2"/></NewNode>`, http.StatusBadRequest},
		{"empty wrapper", id, `<NewNode parent="person[@id='1']"/>`, http.StatusBadRequest},
		{"wrong wrapper", id, `<AddNode><person id="2"/></AddNode>`, http.StatusBadRequest},
		{"not a person", id, `<NewNode><employee id="2"/></NewNode>`, http.StatusBadRequest},
		{"malformed", id, `<NewNode>`, http.StatusBadRequest},
		{"empty body", id, ``, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPatch, treeURL(tt.id, "/addnode"), tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestRemoveNode(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(`
    <Tree>
      <TreeName>TestTree</TreeName>
      <person id="1">
        <name>Franciszek</name>
        <children>
          <person id="2"><name>Anna</name></person>
        </children>
      </person>
    </Tree>`)

	w := ts.do(http.MethodDelete, treeURL(id, "/removenode"), `<RemoveNode path="person[@id='1']/children/person[@id='2']"/>`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, treeURL(id, ""), "")
	assert.NotContains(t, w.Body.String(), "Anna")

	w = ts.do(http.MethodDelete, treeURL(id, "/removenode"), `<RemoveNode path="person[@id='1']/children/person[@id='2']"/>`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, treeURL(id, "/removenode"), `<RemoveNode/>`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateReport(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(`
    <Tree>
      <TreeName>TestTree</TreeName>
      <person id="1">
        <name>Franciszek</name>
        <children>
          <person id="2"><name>Anna</name></person>
        </children>
      </person>
    </Tree>`)

	w := ts.do(http.MethodGet, treeURL(id, "/report"), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Franciszek")
	assert.Contains(t, w.Body.String(), "Anna")

	w = ts.do(http.MethodGet, treeURL(id, "/report?path="+url.QueryEscape("person[@id='1']/children/person[@id='2']")), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Anna")
	assert.NotContains(t, w.Body.String(), "Franciszek")

	w = ts.do(http.MethodGet, treeURL(id, "/report?format=text"), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TestTree\n- Franciszek (id=1)\n  - Anna (id=2)\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = ts.do(http.MethodGet, treeURL(id, "/report?format=json"), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, json.Valid(w.Body.Bytes()))

	w = ts.do(http.MethodGet, treeURL(id, "/report?path="+url.QueryEscape("person[@id='9']")), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodGet, treeURL(id, "/report?format=pdf"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidXML(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, BasePath, "<BadXml>")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := ts.create(`<Tree><TreeName>TestTree</TreeName><person id="1"><name>Test</name></person></Tree>`)
	w = ts.do(http.MethodPut, treeURL(id, ""), "<invalid>")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, treeURL(id, ""), "")
	assert.Contains(t, w.Body.String(), "Test")
}

func TestDeleteTree(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(`<Tree><TreeName>TestTree</TreeName><person id="1"><name>DeleteMe</name></person></Tree>`)

	w := ts.do(http.MethodDelete, treeURL(id, ""), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, treeURL(id, ""), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, treeURL(id, ""), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTrees(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, BasePath, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts.create(`<Tree><TreeName>TestTree A</TreeName><person id="1"/></Tree>`)
	ts.create(`<Tree><TreeName>TestTree B</TreeName><person id="1"/></Tree>`)

	w = ts.do(http.MethodGet, BasePath, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []TreeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "TestTree A", list[0].TreeName)
	assert.Equal(t, "TestTree B", list[1].TreeName)
}

func TestBadTreeID(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, BasePath+"/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, WithRateLimit(0.001, 2))

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, BasePath, "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, BasePath, "").Code)
	w := ts.do(http.MethodGet, BasePath, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.RateLimited))

	// Health checks bypass the limiter.
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/health", "").Code)
}

func TestBodyLimit(t *testing.T) {
	ts := newTestServer(t, WithMaxBodyBytes(16))
	w := ts.do(http.MethodPost, BasePath, `<Tree><TreeName>TestTree</TreeName><person id="1"/></Tree>`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.create(`<Tree><TreeName>TestTree</TreeName><person id="1"/></Tree>`)
	ts.do(http.MethodGet, treeURL(42, ""), "")

	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.Operations.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.Operations.WithLabelValues("get", "NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.HTTPRequests.WithLabelValues("POST", BasePath, "201")))

	w := ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "orgtree_http_requests_total")
}
