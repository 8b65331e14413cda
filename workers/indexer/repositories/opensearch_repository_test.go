package repositories

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scraper/internal/messages"
)

type mockTransport struct {
	Response *http.Response
	Error    error
	Request  *http.Request
	Body     []byte
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Request = req
	if req.Body != nil {
		m.Body, _ = io.ReadAll(req.Body)
	}
	return m.Response, m.Error
}

func newClient(t *testing.T, status int, body string) (*opensearch.Client, *mockTransport) {
	transport := &mockTransport{Response: &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}}
	client, err := opensearch.NewClient(opensearch.Config{Transport: transport})
	require.NoError(t, err)
	return client, transport
}

func TestOpenSearchRepository_IndexDocument(t *testing.T) {
	client, transport := newClient(t, 201, `{"result":"created"}`)
	repo := NewOpenSearchRepository(client, "social_posts")
	repo.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	posted := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := messages.IndexMessage{
		RunID:    "run-1",
		Platform: "twitter",
		Values:   map[string]any{"url": "https://x.com/gire/status/1", "texto": "aborto legal"},
		PostedAt: &posted,
	}
	err := repo.IndexDocument(context.TODO(), msg)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, transport.Request.Method)
	assert.Equal(t, "/social_posts/_doc/"+DocumentID(msg), transport.Request.URL.Path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(transport.Body, &doc))
	assert.Equal(t, "twitter", doc["platform"])
	assert.Equal(t, "2024-06-01T12:00:00Z", doc["posted_at"])
	assert.Equal(t, "2025-01-02T00:00:00Z", doc["indexed_at"])
}

func TestOpenSearchRepository_IndexDocument_Error(t *testing.T) {
	client, _ := newClient(t, 500, `{"error":"internal error"}`)
	repo := NewOpenSearchRepository(client, "social_posts")

	err := repo.IndexDocument(context.TODO(), messages.IndexMessage{Platform: "tiktok"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error indexing document")
}

func TestDocumentID(t *testing.T) {
	a := messages.IndexMessage{Platform: "instagram", Values: map[string]any{"url": "https://ig/p/1"}}
	b := messages.IndexMessage{Platform: "instagram", RunID: "other", Values: map[string]any{"url": "https://ig/p/1"}}
	c := messages.IndexMessage{Platform: "tiktok", Values: map[string]any{"url": "https://ig/p/1"}}

	assert.NotEmpty(t, DocumentID(a))
	assert.Equal(t, DocumentID(a), DocumentID(b))
	assert.NotEqual(t, DocumentID(a), DocumentID(c))
	assert.Empty(t, DocumentID(messages.IndexMessage{Platform: "instagram"}))
}
