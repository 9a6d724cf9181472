// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// saturn is the command-line entrypoint over the saturation core,
// grounded on cmd/gini/main.go's flag-driven "parse options, run the
// solver, print the result" shape, upgraded from stdlib flag to cobra
// (§6's EXTERNAL INTERFACES).
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/irifrance/saturn/config"
	"github.com/irifrance/saturn/container"
	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/portfolio"
	"github.com/irifrance/saturn/saturation"
	"github.com/irifrance/saturn/z"
)

var (
	configPath  string
	algorithm   string
	timeout     time.Duration
	workers     int
	metricsAddr string
	pprofAddr   string
	logLevel    string
)

func main() {
	root := &cobra.Command{
		Use:   "saturn",
		Short: "run the given-clause saturation loop",
		RunE:  run,
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a YAML options file (see config.LoadOptions)")
	root.Flags().StringVar(&algorithm, "algorithm", "", "override the configured algorithm (otter, discount, lrs)")
	root.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "wall-clock budget for the run")
	root.Flags().IntVar(&workers, "workers", 1, "portfolio worker pool size")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve /metrics on (empty disables)")
	root.Flags().StringVar(&pprofAddr, "pprof", "", "address to serve pprof on (empty disables)")
	root.Flags().StringVar(&logLevel, "log-level", "info", "logrus level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(lvl)
	}

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if pprofAddr != "" {
		go func() {
			log.WithField("addr", pprofAddr).Info("serving pprof")
			log.Error(http.ListenAndServe(pprofAddr, nil))
		}()
	}

	var metrics *portfolio.Metrics
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = portfolio.NewMetrics(reg, nil)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.WithField("addr", metricsAddr).Info("serving metrics")
			log.Error(http.ListenAndServe(metricsAddr, mux))
		}()
	}

	sched := portfolio.NewScheduler(workers)
	defer sched.Wait()
	defer sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	received := 0
	for i := 0; i < workers; i++ {
		job, err := buildSelfCheckJob(fmt.Sprintf("worker-%d", i), *opts, ctx, log, metrics)
		if err != nil {
			return err
		}
		// Ex either accepts job (nil) or hands back an earlier job's
		// Response without submitting job; offer job again until accepted.
		for resp := sched.Ex(job); resp != nil; resp = sched.Ex(job) {
			printResult(resp)
			received++
		}
	}
	for ; received < workers; received++ {
		printResult(sched.Ex(nil))
	}
	return nil
}

func loadOptions() (*saturation.Options, error) {
	opts := saturation.DefaultOptions()
	if configPath != "" {
		fileOpts, err := config.LoadOptions(configPath)
		if err != nil {
			return nil, err
		}
		opts = *fileOpts
	}
	if algorithm != "" {
		alg, err := config.ParseAlgorithm(algorithm)
		if err != nil {
			return nil, saturation.NewConfigError(err.Error())
		}
		opts.SaturationAlgorithm = alg
	}
	return &opts, nil
}

// buildSelfCheckJob wires one worker's private Environment, Arena and
// containers around a small unsatisfiable clause set (p(a), ~p(X)),
// standing in for the problem a real embedder would clausify and load
// through frontend.UnitList: frontend supplies no parser (per
// Non-goals), so the CLI's own smoke test is the only "problem in"
// this binary can construct without one.
func buildSelfCheckJob(id string, opts saturation.Options, ctx context.Context, log *logrus.Logger, metrics *portfolio.Metrics) (*portfolio.Job, error) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	env := saturation.NewEnvironment(a, sig, log, nil)

	p := sig.Intern("p", 1, z.PredicateSymbol)
	aConst := sig.Intern("a", 0, z.FunctionSymbol)
	x := a.MkVar(1)

	posClause := a.NewClause([]kernel.LitID{a.MkLit(p, true, a.MkApp(aConst))}, kernel.Inference{})
	negClause := a.NewClause([]kernel.LitID{a.MkLit(p, false, x)}, kernel.Inference{})

	unprocessed := container.NewUnprocessed(a)
	if err := unprocessed.Add(posClause); err != nil {
		return nil, err
	}
	if err := unprocessed.Add(negClause); err != nil {
		return nil, err
	}

	var passive saturation.PassiveQueue = container.NewPassive(a, opts.AgeWeightRatio[0], opts.AgeWeightRatio[1])
	if opts.SplitQueueRatios != "" {
		cfg, err := container.ParseSplitConfig(opts.SplitQueueCutoffs, opts.SplitQueueRatios, opts.SplitQueueFadeIn)
		if err != nil {
			return nil, err
		}
		passive = container.NewSplit(a, cfg, opts.AgeWeightRatio[0], opts.AgeWeightRatio[1])
	}
	active := container.NewActive(a)
	if metrics != nil {
		metrics.Subscribe(active, nil)
	}

	cancel := func() bool { return ctx.Err() != nil }
	loop, err := saturation.NewLoop(env, opts, unprocessed, passive, active, cancel)
	if err != nil {
		return nil, err
	}
	return &portfolio.Job{ID: id, Loop: loop}, nil
}

func printResult(resp *portfolio.Response) {
	if resp == nil {
		return
	}
	if resp.Err != nil {
		fmt.Printf("%s: error: %s\n", resp.ID, resp.Err)
		return
	}
	fmt.Printf("%s: %s (generated=%d active=%d passive=%d discarded=%d iterations=%d)\n",
		resp.ID, resp.Stats.TerminationReason, resp.Stats.Generated, resp.Stats.Active,
		resp.Stats.Passive, resp.Stats.Discarded, resp.Stats.Iterations)
}
