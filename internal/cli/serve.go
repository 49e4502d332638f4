package cli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sketchview/pkg/buildinfo"
	"github.com/matzehuels/sketchview/pkg/config"
	"github.com/matzehuels/sketchview/pkg/discovery"
	"github.com/matzehuels/sketchview/pkg/server"
	"github.com/matzehuels/sketchview/pkg/source"
	"github.com/matzehuels/sketchview/pkg/watch"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	documents string
	mdns      bool
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered documents over HTTP",
		Example: `  sketchview serve --documents ~/drawings
  curl localhost:8080/file/board.excalidraw > board.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, "+config.DefaultAddr+")")
	cmd.Flags().StringVarP(&opts.documents, "documents", "d", "", "documents directory (default from config)")
	cmd.Flags().BoolVar(&opts.mdns, "mdns", false, "advertise the server on the local network")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	cfg.Server.MDNS = cfg.Server.MDNS || opts.mdns

	store, err := newStore(ctx, cfg, opts.documents)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	runner, err := c.newRunner(store, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, ctx := errgroup.WithContext(ctx)

	var notifier *watch.Notifier
	if fs, ok := store.(*source.FileStore); ok {
		notifier, err = watch.NewNotifier(fs, logger)
		if err != nil {
			return err
		}
		defer notifier.Close()
		g.Go(func() error { return notifier.Run(ctx) })
		logger.Info("serving documents", "dir", fs.Root())
	} else {
		logger.Info("serving documents", "source", cfg.Source.Backend)
	}

	srv := server.New(runner, notifier, cfg.RenderConfig(), logger)

	var ad *discovery.Advertisement
	ready := func(addr net.Addr) {
		printSuccess("Listening on %s", StyleLink.Render("http://"+addr.String()))
		printNextStep("Render a document", "curl http://"+addr.String()+"/file/<path> > out.png")
		if !cfg.Server.MDNS {
			return
		}
		tcp, ok := addr.(*net.TCPAddr)
		if !ok {
			return
		}
		a, err := discovery.Advertise(tcp.Port, "sketchview "+buildinfo.Version)
		if err != nil {
			logger.Warn("mdns advertisement failed", "err", err)
			return
		}
		ad = a
		printDetail("Advertised as %s", discovery.ServiceType)
	}
	g.Go(func() error {
		err := srv.ListenAndServe(ctx, cfg.Server.Addr, ready)
		if ad != nil {
			_ = ad.Shutdown()
		}
		if err == nil {
			return ctx.Err()
		}
		return err
	})

	return g.Wait()
}

// discoverCommand creates the discover command.
func (c *CLI) discoverCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List sketchview servers advertised on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			n := 0
			err := discovery.Browse(ctx, func(addr string) {
				n++
				printSuccess("%s", StyleLink.Render("http://"+addr))
			})
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if n == 0 {
				printInfo("No servers found")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "how long to listen for answers")
	return cmd
}
