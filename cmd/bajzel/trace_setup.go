package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bajzel/internal/trace"
)

var traceFlags struct {
	output, level, format, mode string
	ringSize                    int
	heartbeat                   time.Duration
}

func registerTraceFlags(pf *pflag.FlagSet) {
	pf.StringVar(&traceFlags.output, "trace", "", "write a pipeline trace to file (- for stderr)")
	pf.StringVar(&traceFlags.level, "trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.StringVar(&traceFlags.format, "trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.StringVar(&traceFlags.mode, "trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.IntVar(&traceFlags.ringSize, "trace-ring-size", 4096, "events kept in ring mode")
	pf.DurationVar(&traceFlags.heartbeat, "trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
}

func traceConfig(root *cobra.Command) (trace.Config, error) {
	cfg := trace.Config{
		OutputPath: traceFlags.output,
		RingSize:   traceFlags.ringSize,
		Heartbeat:  traceFlags.heartbeat,
	}
	var err error
	if cfg.Level, err = trace.ParseLevel(traceFlags.level); err != nil {
		return cfg, err
	}
	// --trace без уровня включает фазы
	if cfg.OutputPath != "" && !root.PersistentFlags().Changed("trace-level") {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(traceFlags.mode); err != nil {
		return cfg, err
	}
	cfg.Format, err = trace.ParseFormat(traceFlags.format)
	return cfg, err
}

// setupTracing puts a tracer into the command context. After a failed
// command the cleanup prints whatever the ring buffer still holds.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	root := cmd.Root()
	cfg, err := traceConfig(root)
	if err != nil {
		return nil, err
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	root.SetContext(ctx)

	hb := trace.StartHeartbeat(tracer, cfg.Heartbeat)
	stderr := cmd.ErrOrStderr()
	return func(failed bool) {
		hb.Stop() // before Close, so no tick hits a closed stream
		if ring, ok := trace.RingOf(tracer); ok && failed {
			dumpRing(stderr, ring)
		}
		report := func(what string, err error) {
			if err != nil {
				fmt.Fprintf(stderr, "trace: %s: %v\n", what, err)
			}
		}
		report("flush", tracer.Flush())
		report("close", tracer.Close())
	}, nil
}

func dumpRing(w io.Writer, ring *trace.RingTracer) {
	fmt.Fprintln(w, "trace: last events before failure:")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump: %v\n", err)
	}
}
