package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sketchview/pkg/config"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/pipeline"
	"github.com/matzehuels/sketchview/pkg/source"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	renderFlags
	output string // output directory; empty writes next to each input
	pick   bool   // choose documents interactively from the document store
	jobs   int    // parallel renders
}

// renderTarget is one document to render and where to write it.
type renderTarget struct {
	document string
	output   string
	load     func(ctx context.Context) ([]byte, error)
}

// renderOutcome is the result of one target.
type renderOutcome struct {
	target renderTarget
	result *pipeline.Result
	err    error
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{jobs: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render Excalidraw documents to PNG or PDF files",
		Example: `  sketchview render board.excalidraw
  sketchview render -f pdf -o out/ *.excalidraw
  sketchview render --pick`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.pick {
				return fmt.Errorf("no documents given (pass files or --pick)")
			}
			if err := errors.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: next to each input)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "pick documents interactively from the documents directory")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of documents rendered in parallel")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, files []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var store source.Store
	targets := fileTargets(files, opts.output, opts.format)
	if opts.pick {
		store, err = newStore(ctx, cfg, "")
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		picked, err := pickDocuments(ctx, store)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			printInfo("Nothing selected")
			return nil
		}
		targets = append(targets, storeTargets(store, picked, opts.output, opts.format)...)
	}

	runner, err := c.newRunner(store, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %d document(s)...", len(targets)))
	spinner.Start()
	outcomes, err := renderAll(ctx, runner, targets, opts, cfg, func(done, total int) {
		spinner.SetMessage("Rendered %d of %d...", done, total)
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
		}
		printRendered(o.target.document, o.target.output, o.result, o.err)
	}
	prog.done(fmt.Sprintf("Rendered %d of %d documents", len(outcomes)-failed, len(outcomes)))
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(outcomes))
	}
	return nil
}

// renderAll renders targets with at most opts.jobs in flight. Per-target
// failures are reported in the outcomes; only cancellation aborts.
// progress, when non-nil, is called after each target finishes.
func renderAll(ctx context.Context, runner *pipeline.Runner, targets []renderTarget, opts *renderOpts, cfg config.Config, progress func(done, total int)) ([]renderOutcome, error) {
	outcomes := make([]renderOutcome, len(targets))
	var finished atomic.Int32
	g, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := renderTo(ctx, runner, t, opts.options(cfg, t.document))
			outcomes[i] = renderOutcome{target: t, result: res, err: err}
			if n := finished.Add(1); progress != nil {
				progress(int(n), len(targets))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func renderTo(ctx context.Context, runner *pipeline.Runner, t renderTarget, opts pipeline.Options) (*pipeline.Result, error) {
	data, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	res, err := runner.ExecuteBytes(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(t.output), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(t.output, res.Artifact, 0644); err != nil {
		return nil, err
	}
	return res, nil
}

// fileTargets maps file arguments to targets. Outputs keep the input's
// base name with the format's extension.
func fileTargets(files []string, outDir, format string) []renderTarget {
	targets := make([]renderTarget, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		dir := filepath.Dir(abs)
		if outDir != "" {
			dir = outDir
		}
		targets = append(targets, renderTarget{
			document: abs,
			output:   filepath.Join(dir, withExt(filepath.Base(abs), format)),
			load:     readFile(abs),
		})
	}
	return targets
}

// storeTargets maps store documents to targets below outDir.
func storeTargets(store source.Store, docs []string, outDir, format string) []renderTarget {
	if outDir == "" {
		outDir = "."
	}
	targets := make([]renderTarget, 0, len(docs))
	for _, d := range docs {
		targets = append(targets, renderTarget{
			document: d,
			output:   filepath.Join(outDir, filepath.FromSlash(withExt(d, format))),
			load: func(ctx context.Context) ([]byte, error) {
				return store.Read(ctx, d)
			},
		})
	}
	return targets
}

func withExt(name, format string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + format
}

func readFile(path string) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "%s does not exist", path)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "read %s", path)
		}
		return data, nil
	}
}
