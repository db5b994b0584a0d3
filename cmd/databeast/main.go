package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/databeast/internal/beast"
	"github.com/l1jgo/databeast/internal/config"
	"github.com/l1jgo/databeast/internal/creature"
	"github.com/l1jgo/databeast/internal/data"
	"github.com/l1jgo/databeast/internal/encounter"
	"github.com/l1jgo/databeast/internal/player"
	"github.com/l1jgo/databeast/internal/records"
	"github.com/l1jgo/databeast/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(playerName, character string) {
	fmt.Println()
	fmt.Println("\033[35;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[35;1m  │\033[0m             DATABEAST  v0.1.0             \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  │\033[0m        corrupted creature encounters      \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mPlayer:\033[0m %s \033[90m(%s)\033[0m\n\n", playerName, character)
}

func printSection(title string) {
	lineLen := max(46-len([]rune(title))-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len([]rune(label))-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/databeast.toml"
	if p := os.Getenv("DATABEAST_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Static data
	printSection("Data")
	chars, err := data.LoadCharacterTable("")
	if err != nil {
		return fmt.Errorf("load characters: %w", err)
	}
	printStat("Characters", chars.Count())
	chapters, err := data.LoadChapterTable("")
	if err != nil {
		return fmt.Errorf("load chapters: %w", err)
	}
	printStat("Chapters", chapters.Count())

	ch := chars.Get(cfg.Player.Character)
	if ch == nil {
		return fmt.Errorf("character %q: %w", cfg.Player.Character, player.ErrUnknownCharacter)
	}
	printBanner(cfg.Player.Name, ch.Name)

	// 4. Storage backend and creature source
	printSection("Storage")
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()
	printOK(fmt.Sprintf("backend %s", cfg.Storage.Backend))

	settings, err := records.LoadSettings(st.store)
	if err != nil {
		log.Warn("settings unreadable, using defaults", zap.Error(err))
	}
	log.Debug("settings loaded",
		zap.String("quality", settings.GraphicsQuality),
		zap.String("language", settings.Language))
	fmt.Println()

	provider := creature.NewProvider(st.source, cfg.Creature.CacheTTL, log)
	gen := beast.NewGenerator(provider, chapters, log)

	// 5. Lua scripting engine
	printSection("Scripting")
	scripts, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer scripts.Close()
	printOK("Lua scripts loaded")
	watch := cfg.Scripting.HotReload && cfg.Scripting.Dir != ""
	if watch {
		printOK(fmt.Sprintf("watching %s", cfg.Scripting.Dir))
	}
	fmt.Println()

	// 6. Encounter
	enc, err := encounter.New(ctx, encounter.Options{
		Config:    *cfg,
		Character: ch,
		Generator: gen,
		Scripts:   scripts,
		Log:       log,
	})
	if err != nil {
		return fmt.Errorf("new encounter: %w", err)
	}
	defer enc.WaitSpawns()
	defer enc.Stop()

	present(enc.Bus(), log)
	pilot := newAutopilot(ch)
	if err := enc.Start(); err != nil {
		return fmt.Errorf("start encounter: %w", err)
	}

	// 7. Tick loop and script watcher
	printSection("Encounter")
	printReady(fmt.Sprintf("encounter %s", enc.ID()))
	printReady(fmt.Sprintf("tick loop running (tick: %s)", cfg.Simulation.TickRate))
	fmt.Println()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if watch {
		g.Go(func() error {
			if err := scripts.Watch(gctx); err != nil {
				return fmt.Errorf("script watcher: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		// the watcher has nothing left to reload once the run ends
		defer cancel()

		ticker := time.NewTicker(cfg.Simulation.TickRate)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				enc.Submit(pilot.Next(enc.Snapshot()))
				if enc.Tick(cfg.Simulation.TickRate) {
					continue
				}
				return record(gctx, st.board, cfg, ch, enc.Snapshot(), log)
			case <-gctx.Done():
				enc.Stop()
				if ctx.Err() != nil {
					log.Info("shutdown signal received")
				}
				log.Info("encounter abandoned", zap.String("encounter", enc.ID()))
				return nil
			}
		}
	})
	return g.Wait()
}

// record writes a finished run to the leaderboard and prints the top five.
func record(ctx context.Context, board records.Leaderboard, cfg *config.Config, ch *data.CharacterInfo, snap encounter.Snapshot, log *zap.Logger) error {
	entry := records.Entry{
		PlayerName:     cfg.Player.Name,
		CharacterID:    ch.ID,
		Score:          snap.Score,
		Stage:          snap.Stage,
		BossesDefeated: len(snap.Progress.BossesDefeated),
		PlayTime:       snap.Elapsed,
	}
	rank, err := board.Add(ctx, entry)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	log.Info("run recorded",
		zap.Bool("victory", snap.Victory),
		zap.Int("score", snap.Score),
		zap.Int("rank", rank))

	top, err := board.Top(ctx, 5)
	if err != nil {
		return fmt.Errorf("read leaderboard: %w", err)
	}
	fmt.Println()
	printSection("Leaderboard")
	for i, e := range top {
		printStat(fmt.Sprintf("%d. %s (%s)", i+1, e.PlayerName, e.CharacterID), e.Score)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
