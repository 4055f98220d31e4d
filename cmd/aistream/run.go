package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/zerocore/aistream/core/client"
	"github.com/zerocore/aistream/internal/config"
	"github.com/zerocore/aistream/internal/profiles"
	"github.com/zerocore/aistream/providers"
	"github.com/zerocore/aistream/providers/memory/inmemory"
	"github.com/zerocore/aistream/providers/observability/slogobs"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// run is main without process globals, so it can be driven from tests.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := newFlagSet(&opts)
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "failed to load %s: %v\n", opts.envFile, err)
		return exitError
	}

	v := config.NewViper()
	if err := config.BindFlags(v, flags, flagKeys); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	observer := slogobs.New(
		slogobs.WithOutput(stderr),
		slogobs.WithLevel(slogobs.ParseLogLevel(cfg.Log.Level)),
		slogobs.WithFormat(slogobs.ParseFormat(cfg.Log.Format)),
	)
	observer.Logger().LogAttrs(ctx, slog.LevelDebug, "Configuration loaded",
		append(cfg.LogAttrs(), slog.String("config.file", config.UsedFile(v)))...)

	profileSet, err := profiles.Load(cfg.Profiles.File)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	registry := providers.NewRegistry()
	if opts.list {
		listProfiles(stdout, registry, profileSet)
		return exitOK
	}

	session := &session{
		client:   client.New(client.WithObserver(observer), client.WithTransportConfig(cfg.Transport)),
		registry: registry,
		observer: observer,
		history:  inmemory.New(),
		cfg:      cfg.Chat,
		model:    opts.model,
		stdout:   stdout,
		stderr:   stderr,

		profilesPath: cfg.Profiles.File,
	}
	if err := session.useProfiles(profileSet, cfg.Profiles.Selected); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	if cfg.Profiles.Watch {
		go session.watchProfiles(ctx, cfg.Profiles.File, cfg.Profiles.Selected)
	}

	if flags.NArg() > 0 {
		if err := session.ask(ctx, joinArgs(flags.Args())); err != nil {
			return exitError
		}
		return exitOK
	}
	return session.repl(ctx, stdin)
}
