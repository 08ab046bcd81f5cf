// Copyright (c) 2025, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package nbiotsim_main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/cli"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/metrics"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/progctx"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	report_csvlog "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report/csvlog"
	report_influx "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report/influx"
	report_kafka "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report/kafka"
	report_multi "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report/multi"
	report_textlog "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report/textlog"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/simulation"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

type MainArgs struct {
	ConfigFile    string
	Seed          int64
	Repetitions   int
	Workers       int
	Populations   string
	Strategies    string
	OutputDir     string
	LogLevel      string
	Cli           bool
	NoCsv         bool
	NoTxt         bool
	NoKpi         bool
	InfluxUrl     string
	InfluxToken   string
	InfluxOrg     string
	InfluxBucket  string
	KafkaBrokers  string
	KafkaTopic    string
	MetricsListen string

	isSet map[string]bool // flags given on the command line
}

func parseArgs(name string, argv []string) (*MainArgs, error) {
	args := &MainArgs{isSet: map[string]bool{}}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&args.ConfigFile, "config", "", "YAML configuration file; command line flags override its values")
	fs.Int64Var(&args.Seed, "seed", 0, "random seed; 0 picks a time-based seed")
	fs.IntVar(&args.Repetitions, "reps", simulation.DefaultRepetitions, "trials per strategy and population size")
	fs.IntVar(&args.Workers, "workers", simulation.DefaultWorkers, "number of parallel trial workers")
	fs.StringVar(&args.Populations, "populations", intsToString(simulation.DefaultPopulationSizes), "comma-separated, ascending population sizes")
	fs.StringVar(&args.Strategies, "strategies", "RAP,EDT,PUR", "comma-separated strategies to simulate")
	fs.StringVar(&args.OutputDir, "out", simulation.DefaultOutputDir, "output directory for result files")
	fs.StringVar(&args.LogLevel, "log", "warn", "set logging level: trace, debug, info, note, warn, error, off.")
	fs.BoolVar(&args.Cli, "cli", false, "run the interactive console instead of a single batch run")
	fs.BoolVar(&args.NoCsv, "no-csv", false, "do not generate the results CSV file")
	fs.BoolVar(&args.NoTxt, "no-txt", false, "do not generate the detailed text report")
	fs.BoolVar(&args.NoKpi, "no-kpi", false, "do not generate the KPI JSON file")
	fs.StringVar(&args.InfluxUrl, "influx-url", os.Getenv("NBIOTSIM_INFLUX_URL"), "InfluxDB URL; results are written to InfluxDB if set")
	fs.StringVar(&args.InfluxToken, "influx-token", os.Getenv("NBIOTSIM_INFLUX_TOKEN"), "InfluxDB API token")
	fs.StringVar(&args.InfluxOrg, "influx-org", report_influx.DefaultOrg, "InfluxDB organization")
	fs.StringVar(&args.InfluxBucket, "influx-bucket", report_influx.DefaultBucket, "InfluxDB bucket")
	fs.StringVar(&args.KafkaBrokers, "kafka-brokers", os.Getenv("NBIOTSIM_KAFKA_BROKERS"), "comma-separated Kafka brokers; results are published if set")
	fs.StringVar(&args.KafkaTopic, "kafka-topic", report_kafka.DefaultTopic, "Kafka topic")
	fs.StringVar(&args.MetricsListen, "metrics-listen", "", "serve Prometheus metrics on this address, e.g. localhost:9100")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		args.isSet[f.Name] = true
	})
	return args, nil
}

func intsToString(values []int) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

func parseIntList(s string) ([]int, error) {
	var res []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if len(f) == 0 {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPopulationSize, "%q", f)
		}
		res = append(res, v)
	}
	return res, nil
}

func splitList(s string) []string {
	var res []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); len(f) > 0 {
			res = append(res, f)
		}
	}
	return res
}

// createConfig builds the run configuration: defaults, then the config file, then the flags that
// were given explicitly.
func createConfig(args *MainArgs) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()

	if len(args.ConfigFile) > 0 {
		y, err := simulation.ReadYamlConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.ApplyYaml(y)
	}

	if args.isSet["seed"] {
		cfg.RootSeed = args.Seed
	}
	if args.isSet["reps"] {
		cfg.Repetitions = args.Repetitions
	}
	if args.isSet["workers"] {
		cfg.Workers = args.Workers
	}
	if args.isSet["out"] {
		cfg.OutputDir = args.OutputDir
	}
	if args.isSet["populations"] {
		pops, err := parseIntList(args.Populations)
		if err != nil {
			return nil, err
		}
		cfg.PopulationSizes = pops
	}
	if args.isSet["strategies"] {
		var scs []StrategyConfig
		for _, name := range splitList(args.Strategies) {
			s, err := ParseStrategy(name)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidStrategyConfig, "%v", err)
			}
			if sc := cfg.GetStrategyConfig(s); sc != nil {
				scs = append(scs, *sc)
			} else {
				scs = append(scs, DefaultStrategyConfig(s))
			}
		}
		cfg.Strategies = scs
	}
	cfg.WriteKpi = !args.NoKpi

	level, err := logger.ParseLevelString(args.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, cfg.Validate()
}

// createSink creates the report sinks selected by args. The metrics sink is also returned on its own
// when enabled, since it needs to be served.
func createSink(args *MainArgs, cfg *simulation.Config) (report.Sink, *metrics.MetricsSink) {
	sink := report_multi.NewMultiSink()
	// without output directory, no result files are written
	if !args.NoCsv && len(cfg.OutputDir) > 0 {
		sink.AddSink(report_csvlog.NewCsvlogSink())
	}
	if !args.NoTxt && len(cfg.OutputDir) > 0 {
		sink.AddSink(report_textlog.NewTextlogSink())
	}
	if len(args.InfluxUrl) > 0 {
		sink.AddSink(report_influx.NewInfluxSink(report_influx.Config{
			URL:    args.InfluxUrl,
			Token:  args.InfluxToken,
			Org:    args.InfluxOrg,
			Bucket: args.InfluxBucket,
		}))
	}
	if brokers := splitList(args.KafkaBrokers); len(brokers) > 0 {
		sink.AddSink(report_kafka.NewKafkaSink(report_kafka.Config{
			Brokers: brokers,
			Topic:   args.KafkaTopic,
		}))
	}

	var metricsSink *metrics.MetricsSink
	if len(args.MetricsListen) > 0 {
		metricsSink = metrics.NewMetricsSink()
		sink.AddSink(metricsSink)
	}
	return sink, metricsSink
}

// Main runs the simulator with command line arguments argv (without the program name). In batch mode
// it runs the whole grid once and prints a summary to stdout; with -cli it runs the console.
func Main(ctx *progctx.ProgCtx, argv []string, cliOptions *cli.CliOptions) error {
	args, err := parseArgs("nbiotsim", argv)
	if err != nil {
		return err
	}
	cfg, err := createConfig(args)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)

	handleSignals(ctx)

	sink, metricsSink := createSink(args, cfg)
	sim, err := simulation.NewSimulation(cfg, sink)
	if err != nil {
		ctx.Cancel(err)
		ctx.Wait()
		return err
	}

	if metricsSink != nil {
		ctx.Go("metrics", func() {
			if err := metricsSink.Serve(ctx, args.MetricsListen); err != nil && ctx.Err() == nil {
				logger.Errorf("metrics server stopped: %v", err)
			}
		})
	}

	if args.Cli {
		err = cli.Run(ctx, sim, cliOptions)
	} else {
		var results []AggregateResult
		var analysis *stats.Analysis
		results, analysis, err = sim.Run(ctx)
		if err == nil {
			err = printSummary(os.Stdout, sim, results, analysis)
		}
	}

	if serr := sim.Stop(); serr != nil && err == nil {
		err = serr
	}
	ctx.Cancel(err)
	logger.Debugf("waiting for nbiotsim to stop gracefully ...")
	ctx.Wait()
	return err
}

func printSummary(w io.Writer, sim *simulation.Simulation, results []AggregateResult, analysis *stats.Analysis) error {
	cfg := sim.GetConfig()
	if _, err := fmt.Fprintf(w, "NB-IoT simulation, random seed %d\n\n", sim.Seed()); err != nil {
		return err
	}
	for _, ar := range results {
		if err := report.WriteAggregate(w, ar); err != nil {
			return err
		}
	}
	if analysis != nil {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := report.WriteAnalysis(w, analysis); err != nil {
			return err
		}
	}
	if len(cfg.OutputDir) > 0 {
		_, err := fmt.Fprintf(w, "\nResults saved in %s\n", cfg.OutputDir)
		return err
	}
	return nil
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)

	ctx.WaitAdd("handleSignals", 1)
	go func() {
		defer simplelogger.Debugf("handleSignals exit.")
		defer ctx.WaitDone("handleSignals")
		defer signal.Stop(c)

		for {
			select {
			case sig := <-c:
				simplelogger.Infof("signal received: %v", sig)
				ctx.Cancel(nil)
			case <-ctx.Done():
				return
			}
		}
	}()
}
