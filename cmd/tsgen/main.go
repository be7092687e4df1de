// Command tsgen generates TypeScript declarations, operation documents and
// Apollo bindings for a GraphQL schema.
//
// It is configured by a tsgen.yaml file, found by walking the working
// directory:
//
//	endpoint: http://localhost:4000/graphql
//	outDir: src/generated
//	documents:
//	  - src/operations/*.graphql
//	options:
//	  withBindings: true
//	  scalarMap:
//	    DateTime: string
//
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gqlc/tsgen"
	"github.com/gqlc/tsgen/augment"
	"github.com/gqlc/tsgen/doc"
	"github.com/gqlc/tsgen/introspection"
	"github.com/gqlc/tsgen/typescript"
)

func main() {
	var (
		configName = flag.String("config", "tsgen.yaml", "name of the config file to look for")
		envFiles   = flag.String("env", "", "comma separated env files to load instead of .env")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(logger.WithContext(context.Background()), os.Interrupt)
	defer stop()

	var files []string
	if *envFiles != "" {
		files = strings.Split(*envFiles, ",")
	}

	if err := run(ctx, *configName, files); err != nil {
		logger.Error().Err(err).Msg("generation failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configName string, envFiles []string) error {
	if err := loadEnv(envFiles...); err != nil {
		return errors.Wrap(err, "loading env")
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	path, err := findConfig(wd, configName)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("config", path).Msg("loaded config")

	return generate(ctx, cfg)
}

// generate runs the pipeline described by cfg.
func generate(ctx context.Context, cfg *Config) error {
	var schema *tsgen.Schema
	err := step(ctx, "load schema", func() (err error) {
		schema, err = loadSchema(ctx, cfg)
		return
	})
	if err != nil {
		return err
	}

	if len(cfg.Documents) > 0 {
		err = step(ctx, "augment operations", func() error {
			sources, err := cfg.readSources(cfg.Documents)
			if err != nil {
				return err
			}

			a := &augment.Augmenter{Schema: schema, Aliases: cfg.Aliases}
			augmented, warnings, err := a.Augment(sources...)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				zerolog.Ctx(ctx).Warn().Str("document", w.Doc).Msg(w.Msg)
			}
			schema = augmented
			return nil
		})
		if err != nil {
			return err
		}
	}

	out := tsgen.Dir(cfg.Path(cfg.OutDir))
	if cfg.Clean {
		if err = step(ctx, "clean output", out.Clean); err != nil {
			return err
		}
	}
	gCtx := tsgen.WithContext(ctx, out)

	err = step(ctx, "generate typescript", func() error {
		return runGenerator(gCtx, new(typescript.Generator), schema, cfg.Options)
	})
	if err != nil || cfg.Docs == nil {
		return err
	}

	return step(ctx, "generate docs", func() error {
		return runGenerator(gCtx, new(doc.Generator), schema, cfg.Docs)
	})
}

func loadSchema(ctx context.Context, cfg *Config) (*tsgen.Schema, error) {
	if cfg.Endpoint != "" {
		l := introspection.Loader{Endpoint: cfg.Endpoint, Header: cfg.Header()}
		return l.Load(ctx)
	}

	sources, err := cfg.readSources(cfg.Schema)
	if err != nil {
		return nil, err
	}
	return tsgen.LoadSchema(sources...)
}

func runGenerator(ctx context.Context, g tsgen.CodeGenerator, schema *tsgen.Schema, opts interface{}) error {
	b, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	return g.Generate(ctx, schema, string(b))
}

// step runs fn and logs how long it took.
func step(ctx context.Context, name string, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		return errors.Wrap(err, name)
	}
	zerolog.Ctx(ctx).Info().Str("step", name).Dur("took", time.Since(start)).Msg("done")
	return nil
}
