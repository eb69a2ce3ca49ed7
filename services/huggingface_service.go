package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Simokod/GameSearchEngine-WIP/utils"
)

const (
	hfChatURL       = "https://router.huggingface.co/v1/chat/completions"
	hfEmbeddingsURL = "https://router.huggingface.co/hf-inference/models/sentence-transformers/all-MiniLM-L6-v2/pipeline/feature-extraction"
)

// HuggingFaceClient calls the Hugging Face inference router: an
// OpenAI-compatible chat completions endpoint for text generation and a
// feature-extraction endpoint for sentence embeddings.
type HuggingFaceClient struct {
	http     *http.Client
	token    string
	model    string
	chatURL  string
	embedURL string
}

func NewHuggingFaceClient(token, model string) *HuggingFaceClient {
	return &HuggingFaceClient{
		http:     &http.Client{Timeout: 30 * time.Second},
		token:    token,
		model:    model,
		chatURL:  hfChatURL,
		embedURL: hfEmbeddingsURL,
	}
}

type hfChatRequest struct {
	Model    string          `json:"model"`
	Messages []hfChatMessage `json:"messages"`
}

type hfChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type hfChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends prompt as a single user message and returns the model's
// text reply.
func (c *HuggingFaceClient) ChatCompletion(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(hfChatRequest{
		Model:    c.model,
		Messages: []hfChatMessage{{Role: "user", Content: prompt}},
	})

	raw, err := c.post(ctx, c.chatURL, body)
	if err != nil {
		return "", err
	}

	var out hfChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("huggingface returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// FeatureExtraction returns a sentence embedding for text. The endpoint's
// response nesting varies by model, so it is flattened into a single vector.
func (c *HuggingFaceClient) FeatureExtraction(ctx context.Context, text string) ([]float64, error) {
	body, _ := json.Marshal(map[string]string{"inputs": text})

	raw, err := c.post(ctx, c.embedURL, body)
	if err != nil {
		return nil, err
	}
	return utils.FlattenVector(raw)
}

func (c *HuggingFaceClient) post(ctx context.Context, endpoint string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := raw
		if len(snippet) > 2048 {
			snippet = snippet[:2048]
		}
		log.Printf("[huggingface] api returned status %d: %s", resp.StatusCode, string(snippet))
		return nil, fmt.Errorf("huggingface api error: status %d", resp.StatusCode)
	}
	return raw, nil
}
