package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/config"
	"github.com/jask/moneyboard/internal/dashboard"
	"github.com/jask/moneyboard/internal/database"
	"github.com/jask/moneyboard/internal/filter"
	"github.com/jask/moneyboard/internal/kv"
	"github.com/jask/moneyboard/internal/layout"
	"github.com/jask/moneyboard/internal/records"
	"github.com/jask/moneyboard/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Storage.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	cat := catalog.Default()
	store := layout.NewStore(kv.NewSQLite(db), cat)
	session := filter.NewState(time.Now())
	ctl := dashboard.NewController(ctx, cat, store, session.Reset)
	fetcher := records.NewFetcher(cfg.API.BaseURL, cfg.API.Timeout())

	p := tea.NewProgram(tui.New(ctx, cfg, cat, ctl, fetcher, session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
