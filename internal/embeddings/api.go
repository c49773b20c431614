package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ApiEmbedder calls an external embedding service. The model identifier is
// forwarded with each request so the service stays the single owner of model
// loading.
type ApiEmbedder struct {
	url    string
	model  string
	client *http.Client
}

func NewApi(url, model string) *ApiEmbedder {
	return &ApiEmbedder{url: url, model: model, client: &http.Client{}}
}

func (e *ApiEmbedder) ModelName() string { return e.model }

func (e *ApiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return e.embedRequest(ctx, texts)
}

func (e *ApiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.embedRequest(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

type embedRequest struct {
	Model     string   `json:"model,omitempty"`
	Sentences []string `json:"sentences"`
}

func (e *ApiEmbedder) embedRequest(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(&embedRequest{Model: e.model, Sentences: texts})
	if err != nil {
		return nil, err
	}
	// context-bound so caller deadlines cover a hung embedding service
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	response, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = response.Body.Close() }()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding api returned status %d", response.StatusCode)
	}
	var embeddings [][]float32
	if err := json.NewDecoder(response.Body).Decode(&embeddings); err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf(
			"embedding api returned %d vectors for %d texts", len(embeddings), len(texts),
		)
	}
	return embeddings, nil
}
