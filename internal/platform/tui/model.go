package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-garden/internal/audio"
	"github.com/vovakirdan/memory-garden/internal/config"
	"github.com/vovakirdan/memory-garden/internal/garden"
	"github.com/vovakirdan/memory-garden/internal/narration"
	"github.com/vovakirdan/memory-garden/internal/storage"
)

// Store receives finished runs and serves the hall of fame.
type Store interface {
	RunLister
	SaveRun(run storage.Run) (string, error)
	SaveLevelClear(rec storage.LevelRecord) error
}

// Options configure a GameModel.
type Options struct {
	Config     config.GardenConfig
	Seed       int64
	StartLevel int
	Player     string
	Store      Store               // nil disables results and the hall of fame
	Sounds     *audio.SoundManager // nil disables sound cues
	Logger     *log.Logger
	Width      int
	Height     int
	SkipTitle  bool // start on the board instead of the title screen
}

type screen int

const (
	screenTitle screen = iota
	screenPlay
	screenStorybook
	screenHallOfFame
)

// GameModel is the Bubble Tea model for one Memory Garden session.
// It is the only code that calls into the session.
type GameModel struct {
	cfg      config.GardenConfig
	present  config.PresentationConfig
	player   string
	session  *garden.Session
	store    Store
	sounds   *audio.SoundManager
	logger   *log.Logger
	narrator *narration.Queue
	captions *captionFeed
	stop     context.CancelFunc

	keys  GameKeyMap
	help  help.Model
	theme Theme

	screen screen
	title  TitleMenu
	book   StorybookModel
	hall   HallOfFameModel

	cursor      garden.Position
	slot        int // selected flower, index into the catalog
	status      string
	warning     bool
	caption     string
	feedback    *garden.Outcome // last rejected attempt, shown until feedbackDoneMsg
	feedbackGen int
	revealGen   int
	started     bool // the first reveal has been scheduled
	runSaved    bool
	width       int
	height      int
	quitting    bool
}

// NewGameModel creates a session and its UI. Call Close when the program
// exits to stop the narration goroutine.
func NewGameModel(opts Options) (GameModel, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return GameModel{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sessOpts, err := cfg.SessionOptions(seed, opts.StartLevel)
	if err != nil {
		return GameModel{}, err
	}
	sessOpts.Logger = logger
	session, err := garden.NewSession(sessOpts)
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: cannot start session: %w", err)
	}

	captions := newCaptionFeed()
	narrator := narration.NewQueue(captions.speaker(cfg.Timing.CaptionWPM), logger)
	narrator.SetEnabled(cfg.Presentation.VoiceGuidance)

	ctx, cancel := context.WithCancel(context.Background())
	go narrator.Run(ctx)

	if opts.Sounds != nil {
		opts.Sounds.SetEnabled(cfg.Presentation.Audio)
		opts.Sounds.SetVolume(cfg.Presentation.Volume)
	}

	player := opts.Player
	if player == "" {
		player = "gardener"
	}

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Width

	m := GameModel{
		cfg:      cfg,
		present:  cfg.Presentation,
		player:   player,
		session:  session,
		store:    opts.Store,
		sounds:   opts.Sounds,
		logger:   logger,
		narrator: narrator,
		captions: captions,
		stop:     cancel,
		keys:     DefaultGameKeyMap(),
		help:     h,
		theme:    ThemeFor(cfg.Presentation.HighContrast),
		title:    NewTitleMenu(opts.Store != nil),
		cursor:   garden.Pos(1, 1),
		width:    opts.Width,
		height:   opts.Height,
	}
	if opts.SkipTitle {
		m.screen = screenPlay
		m.started = true
		m.revealGen = 1
	}
	return m, nil
}

// Init starts listening for captions and, when starting on the board, the
// first reveal.
func (m GameModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.captions.wait()}
	if m.screen == screenPlay {
		m.announceLevel()
		cmds = append(cmds, revealCmd(m.revealDuration(), m.revealGen))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenHallOfFame {
			hall, _ := m.hall.Update(msg)
			m.hall = hall.(HallOfFameModel)
		}
		return m, nil

	case captionMsg:
		if msg.closed {
			return m, nil
		}
		m.caption = msg.text
		return m, m.captions.wait()

	case revealDoneMsg:
		return m.handleRevealDone(msg)

	case feedbackDoneMsg:
		if msg.gen == m.feedbackGen {
			m.feedback = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenTitle:
			return m.handleTitleKey(msg)
		case screenStorybook:
			return m.handleStorybookKey(msg)
		case screenHallOfFame:
			return m.handleHallKey(msg)
		default:
			return m.handlePlayKey(msg)
		}
	}

	return m, nil
}

func (m GameModel) handleRevealDone(msg revealDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.revealGen || m.session.Phase() != garden.PhaseShowingTarget {
		return m, nil
	}
	if err := m.session.HideTarget(); err != nil {
		m.logger.Warn("hide target", "error", err)
		return m, nil
	}
	m.setStatus("Now plant the flowers from memory.")
	m.say("Now plant the flowers from memory.")
	return m, nil
}

func (m GameModel) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var choice MenuChoice
	m.title, choice = m.title.Update(msg)

	switch choice {
	case ChoicePlay:
		m.screen = screenPlay
		if !m.started {
			m.started = true
			m.announceLevel()
			return m, m.beginReveal()
		}
	case ChoiceStorybook:
		m.openStorybook()
	case ChoiceHallOfFame:
		m.openHallOfFame()
	case ChoiceQuit:
		return m.quit()
	}
	return m, nil
}

func (m GameModel) handleStorybookKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.book, cmd = m.book.Update(msg)

	if m.book.IsQuitting() {
		return m.quit()
	}
	if m.book.IsGoingBack() {
		m.narrator.Cancel()
		m.screen = m.returnScreen()
	}
	return m, cmd
}

func (m GameModel) handleHallKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hall, cmd := m.hall.Update(msg)
	m.hall = hall.(HallOfFameModel)

	if m.hall.IsQuitting() {
		return m.quit()
	}
	if m.hall.IsGoingBack() {
		m.screen = screenTitle
	}
	return m, cmd
}

// returnScreen is where sub-screens go back to.
func (m GameModel) returnScreen() screen {
	if m.started {
		return screenPlay
	}
	return screenTitle
}

func (m *GameModel) openStorybook() {
	m.book = NewStorybookModel(m.session, m.narrator)
	m.book.help.Width = m.width
	m.screen = screenStorybook
}

func (m *GameModel) openHallOfFame() {
	if m.store == nil {
		return
	}
	m.hall = NewHallOfFameModel(m.store, m.width, m.height)
	m.hall.embedded = true
	m.screen = screenHallOfFame
}

// handlePlayKey processes keyboard input on the board.
func (m GameModel) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Back):
		m.screen = screenTitle

	case key.Matches(msg, m.keys.Storybook):
		m.openStorybook()

	case key.Matches(msg, m.keys.Contrast):
		m.present.HighContrast = !m.present.HighContrast
		m.theme = ThemeFor(m.present.HighContrast)
		m.announceToggle("High contrast", m.present.HighContrast)

	case key.Matches(msg, m.keys.Voice):
		m.present.VoiceGuidance = !m.present.VoiceGuidance
		m.narrator.SetEnabled(m.present.VoiceGuidance)
		if !m.present.VoiceGuidance {
			m.caption = ""
		}
		m.announceToggle("Voice guidance", m.present.VoiceGuidance)

	case key.Matches(msg, m.keys.Audio):
		m.present.Audio = !m.present.Audio
		if m.sounds != nil {
			m.sounds.SetEnabled(m.present.Audio)
		}
		m.announceToggle("Sound", m.present.Audio)

	case key.Matches(msg, m.keys.TextSize):
		m.present.TextSize = m.present.TextSize%3 + 1
		m.setStatus(fmt.Sprintf("Text size %d.", m.present.TextSize))

	case key.Matches(msg, m.keys.Simplify):
		m.present.Simplified = !m.present.Simplified
		m.announceToggle("Simple mode", m.present.Simplified)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.Flower):
		if slot, ok := flowerSlot(msg); ok && slot < m.session.Catalog().Len() {
			m.selectFlower(slot)
		}

	case key.Matches(msg, m.keys.Cycle):
		m.selectFlower((m.slot + 1) % m.session.Catalog().Len())

	case key.Matches(msg, m.keys.Place):
		return m.place()

	case key.Matches(msg, m.keys.Hint):
		return m.hint()

	case key.Matches(msg, m.keys.Undo):
		m.undo()

	case key.Matches(msg, m.keys.Next):
		return m.advance()

	case key.Matches(msg, m.keys.Replay):
		return m.replay()
	}

	return m, nil
}

func (m *GameModel) moveCursor(dr, dc int) {
	next := garden.Pos(m.cursor.Row+dr, m.cursor.Col+dc)
	if next.Valid() {
		m.cursor = next
	}
}

func (m *GameModel) selectFlower(slot int) {
	m.slot = slot
	name := m.session.Catalog().At(slot).Name
	m.setStatus(name + " selected.")
	m.say(name)
}

// place plants the selected flower under the cursor.
func (m GameModel) place() (tea.Model, tea.Cmd) {
	flower := m.session.Catalog().At(m.slot)
	out, err := m.session.PlaceFlower(m.cursor, flower.ID)
	if err != nil {
		m.reportError(err)
		return m, nil
	}
	m.feedback = nil

	if !out.Evaluated {
		m.play(audio.CuePlace)
		line := fmt.Sprintf("%s planted at %s.", flower.Name, describePos(m.cursor))
		m.setStatus(line)
		m.say(line)
		return m, nil
	}

	if !out.Matched {
		m.play(audio.CueError)
		m.feedback = &out
		m.feedbackGen++
		line := fmt.Sprintf("Not quite! %d of %d flowers are in the wrong place. Try again.",
			len(out.Mismatches), len(out.Attempt))
		m.setWarning(line)
		m.say(line)
		return m, feedbackCmd(m.feedbackDuration(), m.feedbackGen)
	}

	m.play(audio.CueSuccess)
	line := fmt.Sprintf("Well done! You earned %s.", pluralStars(out.StarsEarned))
	m.setStatus(line + " " + out.Message)
	m.say(line)
	m.say(out.Message)
	return m, nil
}

// hint spends a hint and shows the target again.
func (m GameModel) hint() (tea.Model, tea.Cmd) {
	if err := m.session.RequestHint(); err != nil {
		m.reportError(err)
		return m, nil
	}
	m.play(audio.CueHint)
	m.feedback = nil

	left := m.session.HintsRemaining()
	line := fmt.Sprintf("Take another look! %d %s left.", left, plural(left, "hint", "hints"))
	m.setStatus(line)
	m.say(line)
	return m, m.beginReveal()
}

func (m *GameModel) undo() {
	entry, err := m.session.UndoLastMove()
	if err != nil {
		m.reportError(err)
		return
	}
	line := fmt.Sprintf("Removed %s from %s.", m.session.Catalog().Name(entry.Flower), describePos(entry.Position))
	m.setStatus(line)
	m.say(line)
}

// advance moves past a completed level.
func (m GameModel) advance() (tea.Model, tea.Cmd) {
	done, err := m.session.Advance()
	if err != nil {
		m.reportError(err)
		return m, nil
	}

	if done {
		m.play(audio.CueSuccess)
		m.saveRun()
		line := fmt.Sprintf("You finished the garden with %s!", pluralStars(m.session.Stars()))
		m.setStatus(line)
		m.say(line)
		return m, nil
	}

	m.cursor = garden.Pos(1, 1)
	m.announceLevel()
	return m, m.beginReveal()
}

// replay restarts the level just cleared with a new pattern.
func (m GameModel) replay() (tea.Model, tea.Cmd) {
	if err := m.session.Replay(); err != nil {
		m.reportError(err)
		return m, nil
	}
	m.feedback = nil
	m.announceLevel()
	return m, m.beginReveal()
}

// quit records the run and stops the program.
func (m GameModel) quit() (tea.Model, tea.Cmd) {
	m.saveRun()
	m.Close()
	m.quitting = true
	return m, tea.Quit
}

// saveRun writes the run to the store once. Runs that cleared nothing are
// not recorded.
func (m *GameModel) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}
	history := m.session.History()
	if len(history) == 0 {
		return
	}
	m.runSaved = true

	levels := make(map[int]bool, len(history))
	for _, h := range history {
		levels[h.Level] = true
	}

	runID, err := m.store.SaveRun(storage.Run{
		Player:        m.player,
		Stars:         m.session.Stars(),
		LevelsCleared: len(levels),
		Completed:     m.session.IsComplete(),
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}

	for _, h := range history {
		rec := storage.LevelRecord{
			RunID:     runID,
			Level:     h.Level,
			Stars:     h.Stars,
			Attempts:  h.Attempts,
			HintsUsed: h.HintsUsed,
		}
		if err := m.store.SaveLevelClear(rec); err != nil {
			m.logger.Warn("could not save level clear", "run", runID, "level", h.Level, "error", err)
		}
	}
	m.logger.Debug("run saved", "run", runID, "stars", m.session.Stars())
}

// reportError turns an engine error into a feedback line.
func (m *GameModel) reportError(err error) {
	var line string
	switch {
	case errors.Is(err, garden.ErrCellOccupied):
		line = "That spot already has a flower. Press u to undo."
	case errors.Is(err, garden.ErrNoHintsRemaining):
		line = "No hints left for this level."
	case errors.Is(err, garden.ErrEmptyUndo):
		line = "Nothing to undo."
	case errors.Is(err, garden.ErrWrongPhase):
		line = m.wrongPhaseLine()
	default:
		line = err.Error()
	}
	m.setWarning(line)
	m.say(line)
}

func (m GameModel) wrongPhaseLine() string {
	switch m.session.Phase() {
	case garden.PhaseShowingTarget:
		return "Memorize the flowers first. They will hide in a moment."
	case garden.PhaseAwaitingInput:
		return "Finish planting this level first."
	case garden.PhaseLevelComplete:
		return "Level complete! Press n for the next level or r to replay."
	default:
		return "The garden is complete!"
	}
}

// announceLevel narrates the start of a level. The narrator is shared, so
// a value receiver is enough.
func (m GameModel) announceLevel() {
	snap := m.session.Snapshot()
	line := fmt.Sprintf("Level %d of %d. Memorize %d flowers.", snap.Level, snap.MaxLevel, snap.PatternSize)
	m.narrator.Interrupt(line)
}

func (m *GameModel) announceToggle(name string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	m.setStatus(fmt.Sprintf("%s %s.", name, state))
	m.say(fmt.Sprintf("%s %s.", name, state))
}

// beginReveal schedules the end of a memorize phase, invalidating earlier
// timers.
func (m *GameModel) beginReveal() tea.Cmd {
	m.revealGen++
	return revealCmd(m.revealDuration(), m.revealGen)
}

func (m GameModel) revealDuration() time.Duration {
	return time.Duration(m.cfg.Timing.RevealSeconds) * time.Second
}

func (m GameModel) feedbackDuration() time.Duration {
	d := time.Duration(m.cfg.Timing.FeedbackMillis) * time.Millisecond
	if d <= 0 {
		d = 2 * time.Second
	}
	return d
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.warning = false
}

func (m *GameModel) setWarning(s string) {
	m.status = s
	m.warning = true
}

func (m GameModel) say(s string) {
	m.narrator.Enqueue(s)
}

func (m GameModel) play(c audio.Cue) {
	if m.sounds != nil {
		m.sounds.Play(c)
	}
}

// View renders the current screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenTitle:
		return m.title.View(m.theme, m.width, m.started)
	case screenStorybook:
		return m.withCaption(m.book.View(m.theme, m.width))
	case screenHallOfFame:
		return m.hall.View()
	default:
		return m.renderPlay()
	}
}

// renderPlay draws the board screen.
func (m GameModel) renderPlay() string {
	snap := m.session.Snapshot()
	var b strings.Builder

	if !m.present.Simplified {
		b.WriteString(m.theme.Title.Render("M E M O R Y   G A R D E N"))
		b.WriteString("\n\n")
	}
	b.WriteString(renderHUD(snap, m.session.Rules().HintBudget, m.theme))
	b.WriteString("\n")
	b.WriteString(m.theme.Value.Render(phasePrompt(snap)))
	b.WriteString("\n\n")

	b.WriteString(renderBoard(m.boardView(snap), m.theme))
	b.WriteString("\n\n")

	if snap.Phase == garden.PhaseAwaitingInput {
		b.WriteString(renderPalette(m.session.Catalog(), m.slot, m.theme))
		b.WriteString("\n\n")
	}

	if m.status != "" {
		style := m.theme.Status
		if m.warning {
			style = m.theme.Warning
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	out := m.withCaption(b.String())
	if m.present.Simplified {
		return out
	}
	return out + "\n" + m.theme.Controls.Render(m.help.View(m.keys))
}

// boardView picks what the board shows in the current phase.
func (m GameModel) boardView(snap garden.Snapshot) boardView {
	v := boardView{
		catalog:  m.session.Catalog(),
		textSize: m.present.TextSize,
		cursor:   m.cursor,
	}

	switch snap.Phase {
	case garden.PhaseShowingTarget, garden.PhaseLevelComplete, garden.PhaseGameComplete:
		v.pattern = snap.Target
	case garden.PhaseAwaitingInput:
		v.showCursor = true
		v.pattern = snap.Placed
		if m.feedback != nil && len(snap.Placed) == 0 {
			v.pattern = m.feedback.Attempt
			v.mismatches = m.feedback.Mismatches
		}
	}
	return v
}

// withCaption appends the narration caption, if any.
func (m GameModel) withCaption(s string) string {
	if !m.present.VoiceGuidance || m.caption == "" {
		return s
	}
	return s + "\n" + m.theme.Caption.Render("♪ "+m.caption) + "\n"
}

// Close stops narration. Safe to call more than once.
func (m GameModel) Close() {
	m.narrator.SetEnabled(false)
	m.stop()
	m.captions.close()
}

// Session returns the underlying session.
func (m GameModel) Session() *garden.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// RunSaved reports whether the run has been written to the store.
func (m GameModel) RunSaved() bool {
	return m.runSaved
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model, err := NewGameModel(opts)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if fm, ok := final.(GameModel); ok {
		// Ctrl+C or a signal can end the program without passing through quit.
		fm.saveRun()
	}
	return err
}
