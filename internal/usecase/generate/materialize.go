// Where: internal/usecase/generate/materialize.go
// What: Apply step for a materialization plan.
// Why: Stream template files through the content rules into the destination in parallel.
package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"
	"github.com/poruru/apigen/internal/domain/template"
	"github.com/poruru/apigen/internal/infra/fileops"
	"github.com/poruru/apigen/internal/infra/templatesrc"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Materializer writes planned files below a destination root.
type Materializer struct {
	Fs   afero.Fs
	Jobs int
	// OnFile, when set, is called once per written file. Calls are serialized.
	OnFile func(entry template.Entry, transformed bool)
}

// ApplyStats summarizes an apply step.
type ApplyStats struct {
	Written     int
	Transformed int
	Binary      int
}

// Apply writes every included entry of plan. The first failure cancels the
// remaining work; files already written stay on disk.
func (m Materializer) Apply(ctx context.Context, tree templatesrc.Tree, root string, plan template.Plan) (ApplyStats, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.jobs())

	replacer := plan.Content.Replacer()
	var written, transformed atomic.Int64
	var mu sync.Mutex
	for _, entry := range plan.Included() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := tree.ReadFile(entry.Source)
			if err != nil {
				return fmt.Errorf("read template %s: %w", entry.Source, err)
			}
			text := IsText(data)
			if text {
				data = []byte(replacer.Replace(string(data)))
			}
			dst := filepath.Join(root, filepath.FromSlash(entry.Destination))
			if err := fileops.WriteFile(m.Fs, dst, data); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			written.Add(1)
			if text {
				transformed.Add(1)
			}
			if m.OnFile != nil {
				mu.Lock()
				m.OnFile(entry, text)
				mu.Unlock()
			}
			return nil
		})
	}
	err := g.Wait()
	stats := ApplyStats{
		Written:     int(written.Load()),
		Transformed: int(transformed.Load()),
	}
	stats.Binary = stats.Written - stats.Transformed
	return stats, err
}

func (m Materializer) jobs() int {
	if m.Jobs > 0 {
		return m.Jobs
	}
	return runtime.NumCPU()
}

// IsText reports whether data sniffs as a text format.
func IsText(data []byte) bool {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}
