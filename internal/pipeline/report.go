package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

// Stage names a pipeline step in warnings and logs.
type Stage string

const (
	StageGenerate Stage = "generate"
	StageInstall  Stage = "install"
	StageConfig   Stage = "config"
	StagePatch    Stage = "patch"
	StagePages    Stage = "pages"
	StageManifest Stage = "manifest"
)

func init() {
	message.Set(language.English, "%d file(s) changed",
		plural.Selectf(1, "%d", "=0", "no files changed", "=1", "1 file changed", "other", "%d files changed"))
	message.Set(language.English, "%d warning(s)",
		plural.Selectf(1, "%d", "=1", "1 warning", "other", "%d warnings"))
	message.Set(language.English, "%d feature(s) to finish by hand",
		plural.Selectf(1, "%d", "=1", "1 feature to finish by hand", "other", "%d features to finish by hand"))
}

var printer = message.NewPrinter(language.English)

// Warning is a degraded, non-fatal failure.
type Warning struct {
	Stage   Stage
	File    string // relative to the project root, if any
	Feature string
	Err     error
	Hint    string
}

func (w Warning) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", w.Stage)
	if w.File != "" {
		fmt.Fprintf(&b, " %s:", w.File)
	}
	if w.Err != nil {
		fmt.Fprintf(&b, " %v", w.Err)
	}
	if w.Hint != "" {
		fmt.Fprintf(&b, " (%s)", w.Hint)
	}
	return b.String()
}

// Change is one file the pipeline changed, or would change in dry-run mode.
type Change struct {
	Stage  Stage
	Path   string // relative to the project root
	Before []byte // nil for a new file
	After  []byte // nil for a removed file
}

// Report is what a pipeline run did.
type Report struct {
	Project string
	Dir     string
	Variant variant.ProjectVariant
	Notes   []string

	Installed []string
	Unwired   []install.Unwired
	Changes   []Change
	Warnings  []Warning
}

// Degraded reports whether any stage fell short.
func (r *Report) Degraded() bool {
	return len(r.Warnings) > 0 || len(r.Unwired) > 0
}

func (r *Report) warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

func (r *Report) unwire(u install.Unwired) {
	for _, have := range r.Unwired {
		if have.Feature == u.Feature {
			return
		}
	}
	r.Unwired = append(r.Unwired, u)
}

// Summary is a one-line account of the run.
func (r *Report) Summary() string {
	files := map[string]bool{}
	for _, c := range r.Changes {
		files[c.Path] = true
	}
	parts := []string{printer.Sprintf("%d file(s) changed", len(files))}
	if len(r.Warnings) > 0 {
		parts = append(parts, printer.Sprintf("%d warning(s)", len(r.Warnings)))
	}
	if len(r.Unwired) > 0 {
		parts = append(parts, printer.Sprintf("%d feature(s) to finish by hand", len(r.Unwired)))
	}
	return strings.Join(parts, ", ")
}
