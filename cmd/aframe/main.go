package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	aframe "github.com/alnah/go-aframe"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

// ErrUsage indicates missing or unknown command-line arguments.
var ErrUsage = errors.New("usage: aframe <render|serve|snapshot> SCENE.yaml... (see --help)")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, rest, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	if flags.showVersion {
		fmt.Println("aframe " + Version)
		return exitSuccess
	}

	// Error ignored: maxprocs.Set only fails if the GOMAXPROCS env is
	// invalid, in which case Go runtime defaults apply.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg, err := LoadConfig(flags.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	cfg.merge(flags)

	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, ErrUsage)
		return exitError
	}
	command, scenePaths := rest[0], rest[1:]

	switch command {
	case "render":
		err = runRender(flags, cfg, scenePaths[0])
	case "serve":
		err = runServe(flags, cfg, scenePaths[0])
	case "snapshot":
		err = runSnapshot(flags, cfg, scenePaths)
	default:
		err = fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitSuccess
}

// loadScene parses a scene file and builds the Scene.
func loadScene(path string, cfg *Config) (*aframe.Scene, error) {
	sf, err := LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	return BuildScene(sf, cfg.Template)
}

// runRender renders one scene to stdout or, with -o, to a file.
func runRender(flags *cliFlags, cfg *Config, scenePath string) error {
	scene, err := loadScene(scenePath, cfg)
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := scene.Write(flags.output); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", flags.output)
		return nil
	}

	doc, err := scene.Render()
	if err != nil {
		return err
	}
	fmt.Print(doc)
	return nil
}

// runServe serves one scene until SIGINT/SIGTERM.
func runServe(flags *cliFlags, cfg *Config, scenePath string) error {
	logLevel := slog.LevelInfo
	if flags.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	sf, err := LoadSceneFile(scenePath)
	if err != nil {
		return err
	}
	scene, err := BuildScene(sf, cfg.Template)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := scene.Serve(flags.host, flags.port); err != nil {
		return err
	}
	logger.Info("serving scene", "scene", scenePath, "addr", scene.Addr())

	<-ctx.Done()
	logger.Info("shutting down")
	return scene.Stop()
}

// runSnapshot captures PNGs for one or more scene files using a
// snapshotter pool.
func runSnapshot(flags *cliFlags, cfg *Config, scenePaths []string) error {
	poolSize := aframe.ResolvePoolSize(flags.workers)
	if poolSize > len(scenePaths) {
		poolSize = len(scenePaths)
	}
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := aframe.NewSnapshotterPool(poolSize)
	defer func() { _ = pool.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, scenePath := range scenePaths {
		wg.Add(1)
		go func(scenePath string) {
			defer wg.Done()

			if err := snapshotOne(ctx, pool, cfg, flags.output, scenePath); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", scenePath, err))
				mu.Unlock()
				return
			}
			fmt.Printf("Created %s\n", snapshotPath(flags.output, scenePath))
		}(scenePath)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// snapshotOne captures one scene to its PNG output path.
func snapshotOne(ctx context.Context, pool *aframe.SnapshotterPool, cfg *Config, outputDir, scenePath string) error {
	scene, err := loadScene(scenePath, cfg)
	if err != nil {
		return err
	}

	snap, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(snap)

	png, err := snap.Capture(ctx, scene, nil)
	if err != nil {
		return err
	}

	return os.WriteFile(snapshotPath(outputDir, scenePath), png, 0o644)
}

// snapshotPath derives the PNG path for a scene file, in outputDir
// when set, next to the scene file otherwise.
func snapshotPath(outputDir, scenePath string) string {
	base := filepath.Base(scenePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(scenePath), name)
	}
	return filepath.Join(outputDir, name)
}
