package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/source"
	"github.com/matzehuels/sketchview/pkg/watch"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	renderFlags
	output string
}

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a document every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: next to the input)")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, file string, opts *watchOpts) error {
	logger := loggerFromContext(ctx)
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	store, err := source.NewFileStore(filepath.Dir(abs))
	if err != nil {
		return err
	}
	name := filepath.Base(abs)
	output := opts.output
	if output == "" {
		output = filepath.Join(store.Root(), withExt(name, opts.format))
	}

	notifier, err := watch.NewNotifier(store, logger)
	if err != nil {
		return err
	}
	defer notifier.Close()
	events, cancel, err := notifier.Subscribe(name)
	if err != nil {
		return err
	}
	defer cancel()

	runner, err := c.newRunner(store, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	target := renderTarget{
		document: name,
		output:   output,
		load: func(ctx context.Context) ([]byte, error) {
			return store.Read(ctx, name)
		},
	}
	build := func() {
		res, err := renderTo(ctx, runner, target, opts.options(cfg, name))
		printRendered(name, output, res, err)
	}

	build()
	printInfo("Watching %s (ctrl+c to stop)", abs)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return notifier.Run(ctx) })
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				logger.Debug("change", "path", ev.Path, "fingerprint", ev.Fingerprint)
				build()
			}
		}
	})
	return g.Wait()
}
