package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koortimativa/rgi-extractor/internal/common"
	"github.com/koortimativa/rgi-extractor/internal/llm"
	"github.com/koortimativa/rgi-extractor/internal/rgi"
)

type stubExtractor struct {
	frag *rgi.Record
	err  error
}

func (s *stubExtractor) ExtractBatch(context.Context, llm.BatchRequest) (*rgi.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.frag, nil
}

type stubRenderer struct{ pages int }

func (s *stubRenderer) Render(_ context.Context, _ string, _ int, workDir string) ([]string, error) {
	paths := make([]string, s.pages)
	for i := range paths {
		p := filepath.Join(workDir, "page-1.jpg")
		if err := os.WriteFile(p, []byte("jpeg bytes"), 0o644); err != nil {
			return nil, err
		}
		paths[i] = p
	}
	return paths, nil
}

func testConfig() *common.Config {
	return &common.Config{
		LLM:     common.LLMConfig{Model: "gpt-4o-mini", MaxImagesPerCall: 2},
		Payload: common.PayloadConfig{TargetWidthPx: 1600, JPEGQuality: 80, LightWidthPx: 1200, LightJPEGQuality: 70},
		PDF:     common.PDFConfig{DPI: 240},
		Server:  common.ServerConfig{BodyLimitMB: 8},
	}
}

func newTestServer(ext llm.BatchExtractor) *Server {
	s := New(testConfig(), func(string) llm.BatchExtractor { return ext }, &stubRenderer{pages: 1}, nil)
	s.pageCount = func(string) (int, error) { return 1, nil }
	return s
}

func uploadRequest(t *testing.T) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", "matricula.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	app := newTestServer(&stubExtractor{frag: rgi.NewRecord()}).App()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExtractReturnsFinalizedRecord(t *testing.T) {
	frag := rgi.NewRecord()
	frag.Proprietarios = append(frag.Proprietarios, rgi.Proprietario{Nome: "José", CPF: "123.456.789-09"})

	app := newTestServer(&stubExtractor{frag: frag}).App()
	resp, err := app.Test(uploadRequest(t), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var rec rgi.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	require.Len(t, rec.Proprietarios, 1)
	assert.Equal(t, "12345678909", rec.Proprietarios[0].CPF)
	assert.Equal(t, float64(1), rec.DocumentMetadata["paginas_processadas"])
}

func TestExtractMissingFile(t *testing.T) {
	app := newTestServer(&stubExtractor{frag: rgi.NewRecord()}).App()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/extract", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractFailureReturnsFriendlyEnvelope(t *testing.T) {
	app := newTestServer(&stubExtractor{err: errors.New("model down")}).App()
	resp, err := app.Test(uploadRequest(t), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload errorPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "EXTRACTION_FAILED", payload.Error.Code)
	assert.Contains(t, payload.Error.Message, "reduzir o DPI")
	assert.Contains(t, payload.Error.Detail, "model down")
}
