package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mboersen/divvy/internal/datasource"
	"github.com/mboersen/divvy/pkg/api"
	"github.com/mboersen/divvy/pkg/config"
	"github.com/mboersen/divvy/pkg/debug"
	"github.com/mboersen/divvy/pkg/export"
	"github.com/mboersen/divvy/pkg/ui"
	"github.com/mboersen/divvy/pkg/version"
	"github.com/mboersen/divvy/pkg/walkthrough"
	"github.com/mboersen/divvy/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	userFlag := flag.String("user", "", "Override the user id (namespaces walkthrough progress)")
	stepsFile := flag.String("steps-file", "", "Walkthrough steps overlay file (YAML or JSON)")
	noPersist := flag.Bool("no-persist", false, "Keep walkthrough progress in memory only")
	forcePoll := flag.Bool("force-poll", false, "Poll the steps file instead of using fsnotify")
	resetFlag := flag.String("reset-walkthrough", "", "Clear walkthrough progress for a screen (or 'all') and exit")
	snapshotFlag := flag.String("walkthrough-snapshot", "", "Render a screen's overlay placements to an image and exit")
	snapshotOut := flag.String("o", "", "Output path for --walkthrough-snapshot (default <screen>.svg)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: dv [options]")
		fmt.Println("\nA terminal board for shared expenses.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("dv %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if *userFlag != "" {
		cfg.UserID = *userFlag
	}
	if *stepsFile != "" {
		cfg.Walkthrough.StepsFile = *stepsFile
	}

	registry := walkthrough.DefaultRegistry()
	if path := cfg.Walkthrough.StepsFile; path != "" {
		if merged, err := registry.LoadOverlay(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: steps file %s: %v (using built-in steps)\n", path, err)
		} else {
			registry = merged
		}
	}

	if *snapshotFlag != "" {
		if err := runSnapshot(registry, *snapshotFlag, *snapshotOut); err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *resetFlag != "" {
		if err := runReset(cfg, registry, *resetFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Reset failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "dv needs a terminal (use --walkthrough-snapshot for headless output)")
		os.Exit(1)
	}

	if cfg.Walkthrough.Disabled {
		// An empty registry keeps the whole engine quiet without a second
		// code path in the UI.
		registry = walkthrough.MustNewRegistry(nil)
	}

	store, closeStore, err := openStore(*noPersist, cfg.UserID, registry.Screens())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (progress will not persist)\n", err)
		store, closeStore = walkthrough.NewMemoryStore(), func() {}
	}
	defer closeStore()

	var watch *watcher.Watcher
	if path := cfg.Walkthrough.StepsFile; path != "" && !cfg.Walkthrough.Disabled {
		watch, err = watcher.New(path, watcher.WithForcePoll(*forcePoll))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		} else if err := watch.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
			watch = nil
		} else {
			defer watch.Stop()
			debug.Log("main: watching steps file %s (polling=%v)", path, watch.IsPolling())
		}
	}

	session := walkthrough.NewSession(registry, store, cfg.UserID)
	m := ui.NewModel(cfg, api.NewStaticService(), store, registry, session, watch)

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dv: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the durable completion store behind a warmed
// read-through cache, or a memory store for --no-persist runs.
func openStore(noPersist bool, user string, screens []walkthrough.ScreenID) (walkthrough.CompletionStore, func(), error) {
	if noPersist {
		return walkthrough.NewMemoryStore(), func() {}, nil
	}
	stateDir, err := config.StateDir()
	if err != nil {
		return nil, nil, err
	}
	db, err := datasource.OpenCompletionDB(filepath.Join(stateDir, "completion.db"))
	if err != nil {
		return nil, nil, err
	}
	store := datasource.NewCachedCompletion(db)
	store.Warm(context.Background(), user, screens)
	return store, func() { store.Close() }, nil
}

func runSnapshot(registry *walkthrough.Registry, screenArg, out string) error {
	screen := walkthrough.ScreenID(strings.ToLower(screenArg))
	steps := registry.Steps(screen)
	if len(steps) == 0 {
		return fmt.Errorf("unknown screen %q (have: %v)", screenArg, registry.Screens())
	}
	if out == "" {
		out = string(screen) + ".svg"
	}
	if err := export.SaveSnapshot(export.SnapshotOptions{
		Path:     out,
		Screen:   screen,
		Steps:    steps,
		Resolver: walkthrough.NewResolver(),
	}); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d steps)\n", out, len(steps))
	return nil
}

func runReset(cfg config.Config, registry *walkthrough.Registry, screenArg string) error {
	stateDir, err := config.StateDir()
	if err != nil {
		return err
	}
	db, err := datasource.OpenCompletionDB(filepath.Join(stateDir, "completion.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	screens := registry.Screens()
	if strings.ToLower(screenArg) != "all" {
		screen := walkthrough.ScreenID(strings.ToLower(screenArg))
		if len(registry.Steps(screen)) == 0 {
			return fmt.Errorf("unknown screen %q (have: %v, or 'all')", screenArg, screens)
		}
		screens = []walkthrough.ScreenID{screen}
	}

	ctx := context.Background()
	for _, screen := range screens {
		if err := db.ClearCompleted(ctx, cfg.UserID, screen); err != nil {
			return err
		}
		fmt.Printf("Cleared %s for %s\n", screen, cfg.UserID)
	}
	return nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
			p.Quit()
		}
	}()

	_, err := p.Run()
	return err
}
