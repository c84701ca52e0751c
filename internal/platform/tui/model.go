package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shrinking-snake/internal/core"
	"github.com/vovakirdan/shrinking-snake/internal/game"
	"github.com/vovakirdan/shrinking-snake/internal/storage"
)

var _ game.MaxKV = (*storage.Store)(nil)

// Model is the Bubble Tea model for one game session.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitOnBack bool
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current loss has been persisted
	lastRunID  string
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case nothing is persisted.
func NewModel(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.loadBest()
	m.logger.Debug("game started", "seed", m.config.Seed, "screen", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH))
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves a finished or paused game; while playing it pauses
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.quitOnBack {
				return m, tea.Quit
			}
			return m, nil
		}
		action = core.ActionPause
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the run going at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
		m.logger.Debug("play again")
	}

	// Persist the loss once
	if m.gameState.GameOver && !m.runSaved {
		m.recordLoss()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordLoss stores the run and updates the best score.
// Persistence is best-effort: failures are logged and play continues.
func (m *Model) recordLoss() {
	out, ok := m.game.Outcome()
	if !ok {
		return
	}
	m.logger.Info("game over",
		"score", out.Score,
		"cause", string(out.Cause),
		"side", out.Side,
		"length", out.Length,
		"duration", out.Duration,
	)
	if m.store == nil {
		return
	}

	id, err := m.store.SaveRun(storage.Run{
		Score:    out.Score,
		Side:     out.Side,
		Length:   out.Length,
		Cause:    string(out.Cause),
		Duration: out.Duration,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	} else {
		m.lastRunID = id
	}

	best, isNew, err := game.RecordLoss(m.store, out.Score)
	if err != nil {
		m.logger.Warn("could not update best score", "error", err)
		return
	}
	if isNew {
		m.logger.Info("new best score", "score", best)
	}
	m.game.SetBest(best, isNew)
}

func (m *Model) loadBest() {
	if m.store == nil {
		return
	}
	best, err := game.LoadBest(m.store)
	if err != nil {
		m.logger.Warn("could not load best score", "error", err)
		return
	}
	m.game.SetBest(best, false)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || (m.backToMenu && m.quitOnBack) {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the id of the most recently saved run.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// Run starts a standalone game: leaving it exits the program.
func Run(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	_, err := RunSession(g, store, cfg, logger)
	return err
}

// RunSession runs one game in its own program.
// Returns true if the user left the game to go back to the menu.
func RunSession(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(g, store, cfg, logger)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu() && !m.IsQuitting(), nil
}
