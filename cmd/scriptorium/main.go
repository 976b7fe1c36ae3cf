package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/scriptorium/scriptorium/internal/client"
	"github.com/scriptorium/scriptorium/internal/config"
	"github.com/scriptorium/scriptorium/internal/tui"
)

func main() {
	// Optional .env; absence is fine.
	_ = godotenv.Load()

	backendURL := flag.String("backend", "", "backend base URL (overrides config)")
	saveCfg := flag.Bool("save", false, "persist the effective configuration to .scriptorium/config.json")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.BackendURL = *backendURL
	}

	// Seed an editable global config on first run.
	if !config.Exists() {
		if err := config.SaveToGlobal(config.DefaultConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write global config: %v\n", err)
		}
	}
	if *saveCfg {
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
	}

	backend := client.New(cfg.BackendURL,
		client.WithFreshnessWindow(cfg.FreshnessWindow()),
	)

	p := tea.NewProgram(
		tui.NewRootModel(cfg, backend),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
