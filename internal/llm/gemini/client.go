package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutrivoice/nutrivoice/internal/llm"
)

// Wire shapes for generateContent.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate implements llm.ModelCaller: one call to one named model, prompt
// plus optional inline media, free-form text back. Transport failures come
// back as-is; any non-2xx answer becomes *llm.ServiceError so the invoker
// can tell the two apart.
func (c *Client) Generate(ctx context.Context, modelID string, req llm.InferenceRequest) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	body, err := c.buildBody(req)
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + modelID + ":generateContent"
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	c.logger.Info("gemini.request",
		"req_id", rid,
		"model", modelID,
		"purpose", string(req.Purpose),
		"content_length", len(bs),
		"has_media", req.Media != nil,
	)

	resp, err := c.http.Do(hreq)
	if err != nil {
		c.logger.Warn("gemini.transport_error",
			"req_id", rid, "model", modelID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("gemini.response_body_close_error", "req_id", rid, "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("gemini.transport_error",
			"req_id", rid, "model", modelID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("read gemini response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		c.logger.Warn("gemini.service_error",
			"req_id", rid, "model", modelID, "status", resp.StatusCode,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", &llm.ServiceError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 512)}
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return "", &llm.ServiceError{StatusCode: resp.StatusCode, Body: "no candidates in response"}
	}

	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := b.String()

	c.logger.Info("gemini.response",
		"req_id", rid,
		"model", modelID,
		"status", resp.StatusCode,
		"text_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (c *Client) buildBody(req llm.InferenceRequest) (generateRequest, error) {
	parts := []part{{Text: req.Prompt}}

	if txt := strings.TrimSpace(req.Text); txt != "" {
		parts = append(parts, part{Text: "Meal description:\n" + txt})
	}
	if req.Media != nil {
		limit := c.cfg.MaxInlineMB * 1024 * 1024
		if len(req.Media.Data) > limit {
			return generateRequest{}, fmt.Errorf("inline media is %d bytes, limit %d", len(req.Media.Data), limit)
		}
		parts = append(parts, part{InlineData: &inlineData{
			MIMEType: req.Media.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(req.Media.Data),
		}})
	}

	return generateRequest{Contents: []content{{Parts: parts}}}, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
