package repositories

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HTTPRepository struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPRepository(timeout time.Duration, maxBytes int64) *HTTPRepository {
	return &HTTPRepository{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

func (r *HTTPRepository) DownloadImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image, status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > r.maxBytes {
		return nil, "", fmt.Errorf("image larger than %d bytes", r.maxBytes)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
