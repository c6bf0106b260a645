package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/koortimativa/rgi-extractor/internal/common"
	"github.com/koortimativa/rgi-extractor/internal/llm"
	"github.com/koortimativa/rgi-extractor/internal/rgi"
)

// ExtractBatch implements llm.BatchExtractor against the vision
// chat-completions API. The payload is the fixed instruction text followed
// by, per page, a "Página N:" label and the page's JPEG as a data URL. The
// response is constrained to the RGI schema (non-strict).
func (c *Client) ExtractBatch(ctx context.Context, req llm.BatchRequest) (*rgi.Record, error) {
	if c.cfg.APIKey == "" {
		return nil, common.NewAppError("CONFIG_ERROR", "missing OpenAI credential", common.ErrConfig)
	}

	rid := uuid.New().String()
	start := time.Now()

	content := make([]map[string]any, 0, 1+2*len(req.Pages))
	content = append(content, map[string]any{"type": "text", "text": llm.PromptInstructions})
	for _, p := range req.Pages {
		content = append(content,
			map[string]any{"type": "text", "text": fmt.Sprintf("Página %d:", p.Number)},
			map[string]any{"type": "image_url", "image_url": map[string]any{
				"url": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(p.JPEG),
			}},
		)
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"messages":        []map[string]any{{"role": "user", "content": content}},
		"response_format": map[string]any{"type": "json_schema", "json_schema": llm.ResponseSchema()},
	}
	// Only the gpt-4o family accepts an explicit determinism control; other
	// families run with the API defaults.
	if strings.Contains(strings.ToLower(c.cfg.Model), "gpt-4o") {
		body["temperature"] = 0
	}

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"pages", len(req.Pages),
	)

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}, c.logger)
	if err != nil {
		c.logger.Error("llm.extract.call_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("EXTRACTION_FAILED", "model call failed", fmt.Errorf("%w: %w", common.ErrTransientExtraction, err))
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.extract.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return nil, common.NewAppError("EXTRACTION_FAILED", "decode response envelope", fmt.Errorf("%w: %w", common.ErrTransientExtraction, err))
	}

	text := "{}"
	if len(cc.Choices) > 0 {
		if s := strings.TrimSpace(cc.Choices[0].Message.Content); s != "" {
			text = s
		}
	}
	rawContent := []byte(text)

	// Advisory only: a mismatch is logged, the fragment is still merged.
	if err := llm.ValidateJSONAgainstSchema(llm.BuildRGISchema(), rawContent); err != nil {
		c.logger.Warn("llm.extract.schema_mismatch", "req_id", rid, "error", err)
	}

	var frag rgi.Record
	if err := json.Unmarshal(rawContent, &frag); err != nil {
		// Malformed content contributes nothing; the run continues.
		c.logger.Warn("llm.extract.malformed_content", "req_id", rid, "error", err)
		frag = rgi.Record{}
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"proprietarios", len(frag.Proprietarios),
		"registros", len(frag.Registros),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &frag, nil
}
