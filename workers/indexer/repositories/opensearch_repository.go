package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"social-scraper/internal/messages"
)

type OpenSearchRepository struct {
	client *opensearch.Client
	index  string
	now    func() time.Time
}

func NewOpenSearchRepository(client *opensearch.Client, index string) *OpenSearchRepository {
	return &OpenSearchRepository{client: client, index: index, now: time.Now}
}

// DocumentID keys a post by platform and URL so a post seen in several runs
// is stored once. Posts without a URL get a generated ID.
func DocumentID(msg messages.IndexMessage) string {
	url, _ := msg.Values["url"].(string)
	if url == "" {
		return ""
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(msg.Platform+"|"+url)).String()
}

func (r *OpenSearchRepository) IndexDocument(ctx context.Context, msg messages.IndexMessage) error {
	document := map[string]interface{}{
		"run_id":     msg.RunID,
		"platform":   msg.Platform,
		"fields":     msg.Values,
		"indexed_at": r.now().UTC().Format(time.RFC3339),
	}
	if msg.PostedAt != nil {
		document["posted_at"] = msg.PostedAt.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      r.index,
		DocumentID: DocumentID(msg),
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to execute index request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}
