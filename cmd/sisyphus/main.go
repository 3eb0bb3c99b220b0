package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sisyphus/audio"
	"github.com/lixenwraith/sisyphus/config"
	"github.com/lixenwraith/sisyphus/core"
	"github.com/lixenwraith/sisyphus/engine"
	"github.com/lixenwraith/sisyphus/feed"
	"github.com/lixenwraith/sisyphus/narrative"
	"github.com/lixenwraith/sisyphus/parameter"
	"github.com/lixenwraith/sisyphus/service"
	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/status"
	"github.com/lixenwraith/sisyphus/store/sqlite"
	"github.com/lixenwraith/sisyphus/tui"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sisyphus: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	switch cfg.ColorMode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	}

	reg := status.NewRegistry()

	// Persistence is optional: a missing or broken database only costs the save
	var (
		store *sqlite.Store
		board *sqlite.Leaderboard
		saved *sim.ProgressionSnapshot
	)
	if cfg.DBPath != "" {
		store, err = sqlite.Open(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Storage unavailable: %v (continuing without saves)\n", err)
			store = nil
		}
	}
	if store != nil {
		defer store.Close()
		if saved, err = store.Load(); err != nil {
			log.Printf("store: load progression: %v", err)
		}
		board = sqlite.NewLeaderboard(store, reg)
	}

	simCfg := sim.DefaultConfig()
	simCfg.Username = cfg.Username
	opts := []sim.Option{sim.WithProgression(saved)}
	if board != nil {
		opts = append(opts, sim.WithLeaderboard(board))
	}
	game := sim.New(simCfg, sim.NewRand(cfg.Seed), opts...)

	loop := engine.NewLoop(game, engine.NewMonotonicTimeProvider(), cfg.TickInterval, parameter.CommandQueueSize, reg)

	narrator := narrative.NewLogger(parameter.LogLines)
	loop.RegisterHandler(narrator)

	var persist *saver
	if store != nil {
		persist = newSaver(store, reg)
		loop.RegisterHandler(persist.handler(game))
	}

	// Services
	audioSvc := audio.NewService(reg)
	feedSvc := feed.NewService(loop, reg)
	hub := service.NewHub()
	if err := hub.Register(audioSvc, cfg.Muted); err != nil {
		fmt.Fprintf(os.Stderr, "sisyphus: %v\n", err)
		os.Exit(1)
	}
	if err := hub.Register(feedSvc, cfg.FeedAddr); err != nil {
		fmt.Fprintf(os.Stderr, "sisyphus: %v\n", err)
		os.Exit(1)
	}
	if err := hub.InitAll(); err != nil {
		fmt.Fprintf(os.Stderr, "sisyphus: %v\n", err)
		os.Exit(1)
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintf(os.Stderr, "sisyphus: %v\n", err)
		os.Exit(1)
	}
	loop.RegisterHandler(audioSvc)
	loop.RegisterHandler(feedSvc)

	// Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		hub.StopAll()
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		hub.StopAll()
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashHook(screen.Fini)

	app := tui.NewApp(screen, loop, reg,
		tui.WithUsername(cfg.Username),
		tui.WithLog(narrator.Lines),
		tui.WithMuter(audioSvc, cfg.Muted),
	)

	loop.Observe(app.Observe)
	loop.Observe(feedSvc.Observe)
	loop.Observe(func(s *sim.Simulation) {
		audioSvc.Track(s.Snapshot().Height, s.Phase() == sim.PhaseAscending)
	})

	stopBoard := make(chan struct{})
	if board != nil {
		core.Go(func() { refreshBoard(board, app, stopBoard) })
	}

	loop.Start()
	app.Run()

	// Shutdown: stop producers first, then flush writers
	close(stopBoard)
	loop.Stop()
	if board != nil {
		board.Close()
	}
	if persist != nil {
		final := game.Progression()
		persist.close(&final)
	}
	hub.StopAll()
	core.SetCrashHook(nil)
	screen.Fini()
}

// refreshBoard re-reads the top entries until stop closes
func refreshBoard(board *sqlite.Leaderboard, app *tui.App, stop <-chan struct{}) {
	ticker := time.NewTicker(parameter.LeaderboardRefresh)
	defer ticker.Stop()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		entries, err := board.Top(ctx, parameter.LeaderboardSize)
		cancel()
		if err != nil {
			log.Printf("leaderboard: %v", err)
		} else {
			rows := make([]tui.BoardEntry, len(entries))
			for i, e := range entries {
				rows[i] = tui.BoardEntry{Name: e.Username, Height: e.Height, Level: e.Level}
			}
			app.SetBoard(rows)
		}

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}
