// Package main provides the trafficmon command.
//
// trafficmon tracks cumulative network-interface traffic in a persistent
// store and raises alert flags when totals cross configured thresholds. It
// runs either as a one-shot invocation (--save, --update, --list) or as a
// daemon (--daemon) that re-evaluates the flags every five seconds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"trafficmon/internal/api"
	"trafficmon/internal/config"
	"trafficmon/internal/logging"
	"trafficmon/internal/monitor"
	"trafficmon/internal/probe"
	"trafficmon/internal/store"
)

// version can be set at build time via -ldflags.
var version = "dev"

// options holds the parsed command-line flags.
type options struct {
	daemon     bool
	save       bool
	update     bool
	list       bool
	iface      string
	storePath  string
	listenAddr string
}

func main() {
	var opts options
	flag.BoolVar(&opts.daemon, "daemon", false, "Run the evaluation loop until interrupted")
	flag.BoolVar(&opts.save, "save", false, "Add the current interface counters to the stored totals")
	flag.BoolVar(&opts.update, "update", false, "Evaluate thresholds and update alert flags once")
	flag.BoolVar(&opts.list, "list", false, "Print current totals, thresholds and alert flags")
	flag.StringVar(&opts.iface, "iface", config.DefaultInterface, "Network interface to monitor")
	flag.StringVar(&opts.storePath, "store", "", "Path to the data store (defaults to the XDG data directory)")
	flag.StringVar(&opts.listenAddr, "listen", "", "Serve a read-only status API on this address (daemon mode only)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("trafficmon %s\n", version)
		os.Exit(0)
	}

	logging.SetupFromEnv()

	if err := run(opts); err != nil {
		slog.Error("trafficmon failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	storePath := opts.storePath
	if storePath == "" {
		paths, err := config.GetPaths()
		if err != nil {
			return err
		}
		if err := paths.EnsurePaths(); err != nil {
			return err
		}
		storePath = paths.StoreFile
	}

	st, err := store.New(storePath, monitor.StoreSchema())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if opts.save {
		accumulator := monitor.NewAccumulator(st, probe.NewSystemReader())
		totals, err := accumulator.Accumulate(opts.iface)
		if err != nil {
			return err
		}
		slog.Info("Totals updated", "interface", opts.iface, "rx", totals.Rx, "tx", totals.Tx)
	}

	if opts.update {
		thresholds := monitor.LoadThresholds(st)
		flags, err := monitor.NewEvaluator(st).Evaluate(thresholds)
		if err != nil {
			return err
		}
		slog.Info("Alert flags updated",
			"rx_warn", flags.RxWarn, "tx_warn", flags.TxWarn,
			"rx_crit", flags.RxCrit, "tx_crit", flags.TxCrit)
	}

	if opts.list {
		snap, err := monitor.LoadSnapshot(st, opts.iface)
		if err != nil {
			return err
		}
		fmt.Print(snap.Render())
	}

	if opts.daemon {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		daemon := monitor.NewDaemon(st)

		if opts.listenAddr != "" {
			server := api.New(st, opts.iface, daemon.RunID())
			go func() {
				if err := server.Run(ctx, opts.listenAddr); err != nil {
					slog.Error("Status API stopped", "error", err)
				}
			}()
		}

		daemon.Run(ctx)
		fmt.Println("Terminating gracefully...")
	}

	return nil
}
