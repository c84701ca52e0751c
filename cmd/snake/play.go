package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shrinking-snake/internal/game"
	"github.com/vovakirdan/shrinking-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing right away, without the menu.

Controls:
  Arrows/WASD/hjkl - Steer
  P/Space          - Pause
  R/Enter          - Play again (after game over)
  B/Esc            - Pause, or leave a paused or finished game
  Ctrl+S           - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
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

	if err := tui.Run(game.New(rules), store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
