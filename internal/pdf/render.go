// Package pdf is the rasterization boundary: it turns a PDF into
// page-ordered JPEG files using poppler's pdftoppm and validates documents
// up front with pdfcpu. The model pipeline never touches PDFs directly.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		slog.Error("exec failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", dur.Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 8<<10),
		)
	} else {
		slog.Debug("exec ok",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", dur.Milliseconds(),
		)
	}

	return []byte(out.String()), []byte(errb.String()), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

// Renderer rasterizes PDF pages via pdftoppm.
type Renderer struct {
	runner   Runner
	pdftoppm string
	glob     func(pattern string) ([]string, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRunner substitutes the command runner (tests).
func WithRunner(r Runner) Option {
	return func(re *Renderer) { re.runner = r }
}

// WithGlob substitutes output-file discovery (tests).
func WithGlob(g func(string) ([]string, error)) Option {
	return func(re *Renderer) { re.glob = g }
}

// NewRenderer returns a Renderer invoking the given pdftoppm binary
// ("pdftoppm" when empty).
func NewRenderer(pdftoppm string, opts ...Option) *Renderer {
	if pdftoppm == "" {
		pdftoppm = "pdftoppm"
	}
	r := &Renderer{runner: execRunner{}, pdftoppm: pdftoppm, glob: filepath.Glob}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PageCount validates the document and returns its page count. Validation
// runs relaxed: scanned registries often come from old scanner firmware and
// fail strict checks while rendering fine.
func PageCount(path string) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return 0, fmt.Errorf("validate pdf: %w", err)
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// Render rasterizes every page of the PDF at the given DPI into workDir and
// returns the JPEG paths in page order.
// pdftoppm -jpeg -r <dpi> <in.pdf> <workDir>/page
func (r *Renderer) Render(ctx context.Context, pdfPath string, dpi int, workDir string) ([]string, error) {
	if dpi <= 0 {
		dpi = 240
	}
	prefix := filepath.Join(workDir, "page")
	_, errb, err := r.runner.Run(ctx, r.pdftoppm, "-jpeg", "-r", strconv.Itoa(dpi), pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (%s)", err, truncate(string(errb), 512))
	}

	matches, err := r.glob(prefix + "-*.jpg")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", filepath.Base(pdfPath))
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageIndexFromName(matches[i]) < pageIndexFromName(matches[j])
	})
	return matches, nil
}

// pageIndexFromName extracts N from a "page-N.jpg" output name. Lexical
// sorting is wrong past 9 pages ("page-10" < "page-2"), so sort numerically.
func pageIndexFromName(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.LastIndex(base, "-"); i >= 0 {
		if n, err := strconv.Atoi(base[i+1:]); err == nil {
			return n
		}
	}
	return 0
}
