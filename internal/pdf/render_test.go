package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	calls [][]string
	err   error
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	return nil, []byte("stub stderr"), s.err
}

func TestRenderSortsPagesNumerically(t *testing.T) {
	runner := &stubRunner{}
	r := NewRenderer("pdftoppm",
		WithRunner(runner),
		WithGlob(func(string) ([]string, error) {
			// Glob returns lexical order; page-10 sorts before page-2.
			return []string{"/tmp/x/page-1.jpg", "/tmp/x/page-10.jpg", "/tmp/x/page-2.jpg"}, nil
		}),
	)

	pages, err := r.Render(context.Background(), "doc.pdf", 240, "/tmp/x")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/x/page-1.jpg", "/tmp/x/page-2.jpg", "/tmp/x/page-10.jpg"}, pages)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"pdftoppm", "-jpeg", "-r", "240", "doc.pdf", "/tmp/x/page"}, runner.calls[0])
}

func TestRenderDefaultsDPI(t *testing.T) {
	runner := &stubRunner{}
	r := NewRenderer("",
		WithRunner(runner),
		WithGlob(func(string) ([]string, error) { return []string{"/tmp/x/page-1.jpg"}, nil }),
	)

	_, err := r.Render(context.Background(), "doc.pdf", 0, "/tmp/x")
	require.NoError(t, err)
	assert.Contains(t, runner.calls[0], "240")
}

func TestRenderFailsWhenCommandFails(t *testing.T) {
	r := NewRenderer("pdftoppm", WithRunner(&stubRunner{err: errors.New("boom")}))
	_, err := r.Render(context.Background(), "doc.pdf", 240, "/tmp/x")
	assert.ErrorContains(t, err, "pdftoppm failed")
}

func TestRenderFailsWhenNoPagesProduced(t *testing.T) {
	r := NewRenderer("pdftoppm",
		WithRunner(&stubRunner{}),
		WithGlob(func(string) ([]string, error) { return nil, nil }),
	)
	_, err := r.Render(context.Background(), "doc.pdf", 240, "/tmp/x")
	assert.ErrorContains(t, err, "no pages")
}
