// Command drafter turns a finished text draft into a human-paced typing
// session on the current Linux graphical desktop: it plans a stream of
// keystrokes with realistic timing, typos, and self-corrections, then
// plays that plan back through a virtual keyboard.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"drafter/internal/autostart"
	"drafter/internal/config"
	"drafter/internal/hotkey"
	"drafter/internal/monitor"
	"drafter/internal/osutils"
	"drafter/internal/phrase"
	"drafter/internal/phraseprovider"
	"drafter/internal/plan"
	"drafter/internal/planner"
	"drafter/internal/playback"
	"drafter/internal/sim"
	"drafter/internal/tray"
	"drafter/internal/wordnav"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	mgr, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("drafter: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("drafter: loading config: %w", err)
	}
	cfg := mgr.Get()
	if cfg.General.PlaybackBackend != "uinput" {
		return fmt.Errorf("drafter: unsupported playback backend %q", cfg.General.PlaybackBackend)
	}

	var (
		draftPath      = flag.String("draft", "", "path to the draft text file to type")
		altPath        = flag.String("alternatives", "", "path to a JSON file of per-paragraph phrase alternatives")
		outPath        = flag.String("out", "", "write the generated plan as JSON to this path instead of playing it")
		seed           = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed; fixed for reproducible plans")
		wpmMin         = flag.Float64("wpm-min", cfg.Planner.WPMMin, "minimum typing speed in words per minute")
		wpmMax         = flag.Float64("wpm-max", cfg.Planner.WPMMax, "maximum typing speed in words per minute")
		errorRate      = flag.Float64("error-rate", cfg.Planner.ErrorRatePerWord, "probability of a typo per word")
		variantShare   = flag.Float64("word-variant-share", cfg.Planner.WordVariantShare, "share of injected errors that are phrasing variants rather than typos")
		immediateFix   = flag.Float64("immediate-fix-rate", cfg.Planner.ImmediateFixRate, "fraction of injected errors corrected immediately rather than left for review")
		wordNav        = flag.String("word-nav", cfg.Planner.WordNavProfile, "word navigation profile: chrome or compatible")
		noRevision     = flag.Bool("no-revision", cfg.Planner.NoRevision, "type the draft with no typos, variants, or corrections")
		playFlag       = flag.Bool("play", true, "play the plan back through the virtual keyboard")
		monitorFlag    = flag.Bool("monitor", cfg.General.MonitorEnabled, "stream the plan's actions over a WebSocket monitor during playback")
		monitorAddr    = flag.String("monitor-addr", cfg.General.MonitorAddr, "address for the monitor server")
		trayFlag       = flag.Bool("tray", cfg.General.TrayEnabled, "run as a system tray launcher instead of a one-shot run")
		abortHotkey    = flag.String("abort-hotkey", cfg.General.AbortHotkey, "global hotkey that cancels an in-progress playback")
		phraseProvider = flag.String("phrase-provider", cfg.General.PhraseProviderAddr, "WebSocket address of a phrase-rephrasing service")
		autostartFlag  = flag.String("autostart", "", "enable or disable launching drafter's tray at login (on/off)")
	)
	flag.Parse()

	if *autostartFlag != "" {
		return handleAutostart(*autostartFlag)
	}

	profile, ok := wordnav.ParseProfile(*wordNav)
	if !ok {
		return fmt.Errorf("drafter: unknown word-nav profile %q", *wordNav)
	}

	plannerCfg := planner.Config{
		WPMMin:                       *wpmMin,
		WPMMax:                       *wpmMax,
		ErrorRatePerWord:             *errorRate,
		WordVariantShare:             *variantShare,
		ImmediateFixRate:             *immediateFix,
		WordNavProfile:               profile,
		MaxOutstandingErrors:         cfg.Planner.MaxOutstandingErrors,
		StopCorrectionsAfterProgress: cfg.Planner.StopCorrectionsAfterProgress,
		ReviewPauseMsMin:             cfg.Planner.ReviewPauseMsMin,
		ReviewPauseMsMax:             cfg.Planner.ReviewPauseMsMax,
		NoRevision:                   *noRevision,
	}

	if *trayFlag {
		return runTray(mgr, plannerCfg)
	}

	if *draftPath == "" {
		flag.Usage()
		return fmt.Errorf("drafter: -draft is required")
	}

	rng := rand.New(rand.NewSource(*seed))
	p, err := generatePlan(*draftPath, *altPath, plannerCfg, *phraseProvider, rng)
	if err != nil {
		return err
	}

	stats := sim.ComputeStats(p)
	log.Printf("plan: %d actions, %d key events, %.1fs total wait", stats.Actions, stats.KeyEvents, float64(stats.TotalWaitMs)/1000)

	if *outPath != "" {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("drafter: encoding plan: %w", err)
		}
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			return fmt.Errorf("drafter: %w", err)
		}
	}

	if !*playFlag {
		return nil
	}

	return playPlan(p, *monitorFlag, *monitorAddr, *abortHotkey)
}

func handleAutostart(mode string) error {
	switch mode {
	case "on":
		return autostart.Enable()
	case "off":
		return autostart.Disable()
	default:
		return fmt.Errorf("drafter: -autostart must be \"on\" or \"off\"")
	}
}

func generatePlan(draftPath, altPath string, cfg planner.Config, phraseProviderAddr string, rng *rand.Rand) (plan.Plan, error) {
	draft, err := os.ReadFile(draftPath)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("drafter: reading draft: %w", err)
	}
	text := string(draft)

	var alternatives [][]phrase.Alternative
	switch {
	case altPath != "":
		data, err := os.ReadFile(altPath)
		if err != nil {
			return plan.Plan{}, fmt.Errorf("drafter: reading alternatives: %w", err)
		}
		if err := json.Unmarshal(data, &alternatives); err != nil {
			return plan.Plan{}, fmt.Errorf("drafter: decoding alternatives: %w", err)
		}
	case phraseProviderAddr != "":
		client := phraseprovider.New(phraseProviderAddr)
		defer client.Close()
		for _, paragraph := range splitParagraphs(text) {
			alts, err := client.Rephrase(paragraph, 3, 10*time.Second)
			if err != nil {
				return plan.Plan{}, fmt.Errorf("drafter: rephrasing paragraph: %w", err)
			}
			alternatives = append(alternatives, alts)
		}
	}

	if cfg.NoRevision {
		return planner.GenerateNoRevision(text, cfg, rng)
	}
	if alternatives != nil {
		return planner.GenerateWithPhraseAlternatives(text, cfg, alternatives, rng)
	}
	return planner.Generate(text, cfg, rng)
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	i := 0
	for i < len(text) {
		for i < len(text) && text[i] == '\n' {
			i++
		}
		if i >= len(text) {
			break
		}
		start := i
		for i < len(text) && !(text[i] == '\n' && i+1 < len(text) && text[i+1] == '\n') {
			i++
		}
		paragraphs = append(paragraphs, text[start:i])
	}
	return paragraphs
}

func playPlan(p plan.Plan, monitorEnabled bool, monitorAddr, abortHotkey string) error {
	if err := osutils.CanOpenUinput(); err != nil {
		return err
	}

	backend, err := playback.NewUinputBackend()
	if err != nil {
		return fmt.Errorf("drafter: %w", err)
	}
	defer backend.Close()

	inhibit, err := osutils.Inhibit("typing playback in progress")
	if err == nil {
		defer inhibit.Release()
	} else {
		log.Printf("drafter: could not inhibit sleep: %v", err)
	}

	var mon *monitor.Server
	if monitorEnabled {
		mon = monitor.New(monitorAddr)
		go func() {
			if err := mon.Start(); err != nil {
				log.Printf("drafter: monitor: %v", err)
			}
		}()
		defer mon.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if abortHotkey != "" {
		hk := hotkey.NewManager()
		if _, err := hk.Register(abortHotkey, cancel); err != nil {
			log.Printf("drafter: registering abort hotkey: %v", err)
		} else if err := hk.Start(); err != nil {
			log.Printf("drafter: abort hotkey unavailable: %v", err)
		}
	}

	if mon != nil {
		mon.BroadcastStatus("playing", len(p.Actions))
	}

	onAction := func(index int, a plan.Action) {
		if mon != nil {
			mon.BroadcastAction(index, a)
		}
	}

	if err := playback.Play(ctx, backend, p, onAction); err != nil {
		if mon != nil {
			mon.BroadcastStatus("aborted", len(p.Actions))
		}
		return fmt.Errorf("drafter: playback: %w", err)
	}
	if mon != nil {
		mon.BroadcastStatus("done", len(p.Actions))
	}
	return nil
}

func runTray(mgr *config.Manager, plannerCfg planner.Config) error {
	cfg := mgr.Get()
	t := tray.New("Drafter: human-paced typing playback")

	entries, _ := os.ReadDir(cfg.General.DraftsDir)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		draftPath := filepath.Join(cfg.General.DraftsDir, entry.Name())
		t.AddMenuItem(entry.Name(), func() {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			p, err := generatePlan(draftPath, "", plannerCfg, cfg.General.PhraseProviderAddr, rng)
			if err != nil {
				log.Printf("drafter: %v", err)
				return
			}
			if err := playPlan(p, cfg.General.MonitorEnabled, cfg.General.MonitorAddr, cfg.General.AbortHotkey); err != nil {
				log.Printf("drafter: %v", err)
			}
		})
	}
	t.AddSeparator()
	t.AddMenuItem("Quit", t.Stop)

	t.Run()
	return nil
}
