package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shrinking-snake/internal/game"
	"github.com/vovakirdan/shrinking-snake/internal/platform/tui"
)

// runMenu is the root command: menu -> game or scores -> menu.
func runMenu(_ *cobra.Command, _ []string) error {
	rules, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("snake", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceScores:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return nil
			}

		case tui.ChoicePlay:
			// A fixed --seed only applies to the first game
			if cfg.Seed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			back, runErr := tui.RunSession(game.New(rules), store, cfg, logger)
			if runErr != nil {
				return fmt.Errorf("error running game: %w", runErr)
			}
			cfg.Seed = 0
			if !back {
				return nil
			}

		default:
			return nil
		}
	}
}
