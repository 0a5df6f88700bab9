package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"bajzel/internal/eval"
	"bajzel/internal/generate"
	"bajzel/internal/trace"
)

// Sample is one generated message.
type Sample struct {
	Index int
	Seed  uint64
	Data  []byte // nil once written to Path
	Size  int    // len(Data) before it was released
	Path  string
	// Short is set when the message is below OUT_MIN.
	Short bool
}

type BatchOptions struct {
	Count      int
	Jobs       int // <= 0 means GOMAXPROCS
	Seed       uint64
	AppendTerm bool
	// OutDir receives <generator>-<index>.bin files; empty keeps data in memory.
	OutDir string
	// OnSample is called from worker goroutines after every sample.
	OnSample func(Sample)
}

type BatchResult struct {
	Samples []Sample
	Short   int // samples below OUT_MIN
}

// GenerateOne draws a single message with a PCG source seeded by seed.
func GenerateOne(ctx context.Context, env *eval.ProgramEnv, seed uint64, appendTerm bool) (Sample, error) {
	span, _ := trace.StartSpan(ctx, trace.ScopePass, "generate")
	s, err := sample(env, 0, seed, appendTerm)
	if err != nil {
		span.End("error")
		return Sample{}, err
	}
	span.WithExtra("bytes", strconv.Itoa(len(s.Data))).End("")
	return s, nil
}

// GenerateBatch draws opts.Count messages concurrently. Sample i always uses
// seed opts.Seed+i, so the batch does not depend on scheduling. The first
// failure cancels the remaining samples.
func GenerateBatch(ctx context.Context, env *eval.ProgramEnv, opts BatchOptions) (*BatchResult, error) {
	gen, err := env.Generator()
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if opts.Count <= 0 {
		return &BatchResult{}, nil
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "batch")
	span.WithExtra("count", strconv.Itoa(opts.Count)).WithExtra("jobs", strconv.Itoa(jobs))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	samples := make([]Sample, opts.Count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, opts.Count))
	for i := range opts.Count {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			sp, _ := trace.StartSpan(gctx, trace.ScopeSample, "sample")
			idx, err := safecast.Conv[uint64](i)
			if err != nil {
				return err
			}
			s, err := sample(env, i, opts.Seed+idx, opts.AppendTerm)
			if err != nil {
				sp.End("error")
				return fmt.Errorf("sample %d: %w", i, err)
			}
			if opts.OutDir != "" {
				s.Path = filepath.Join(opts.OutDir, fmt.Sprintf("%s-%d.bin", gen.Name, i))
				if err := os.WriteFile(s.Path, s.Data, 0o644); err != nil {
					sp.End("error")
					return fmt.Errorf("sample %d: %w", i, err)
				}
				s.Data = nil
			}
			samples[i] = s
			sp.End(strconv.Itoa(i))
			if opts.OnSample != nil {
				opts.OnSample(s)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("error")
		return nil, err
	}

	res := &BatchResult{Samples: samples}
	for _, s := range samples {
		if s.Short {
			res.Short++
		}
	}
	span.End("")
	return res, nil
}

func sample(env *eval.ProgramEnv, index int, seed uint64, appendTerm bool) (Sample, error) {
	gen, err := env.Generator()
	if err != nil {
		return Sample{}, fmt.Errorf("generate: %w", err)
	}
	data, err := generate.New(generate.NewRand(seed)).Generate(env)
	if err != nil {
		return Sample{}, err
	}
	s := Sample{Index: index, Seed: seed, Short: uint64(len(data)) < uint64(gen.OutMin)}
	if appendTerm {
		data = generate.AppendTerm(data, gen)
	}
	s.Data = data
	s.Size = len(data)
	return s, nil
}
