package tui

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/memory-garden/internal/config"
	"github.com/vovakirdan/memory-garden/internal/garden"
	"github.com/vovakirdan/memory-garden/internal/storage"
)

// fakeStore records runs in memory.
type fakeStore struct {
	runs   []storage.Run
	clears []storage.LevelRecord
	err    error
}

func (f *fakeStore) SaveRun(run storage.Run) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.runs = append(f.runs, run)
	return "run-" + strconv.Itoa(len(f.runs)), nil
}

func (f *fakeStore) SaveLevelClear(rec storage.LevelRecord) error {
	f.clears = append(f.clears, rec)
	return nil
}

func (f *fakeStore) TopRuns(limit int) ([]storage.Run, error) {
	return f.runs, nil
}

func newTestModel(t *testing.T, store Store, skipTitle bool) GameModel {
	t.Helper()
	cfg := config.DefaultGardenConfig()
	cfg.Presentation.Audio = false

	m, err := NewGameModel(Options{
		Config:    cfg,
		Seed:      42,
		Player:    "tester",
		Store:     store,
		Width:     100,
		Height:    40,
		SkipTitle: skipTitle,
	})
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func hide(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m = update(t, m, revealDoneMsg{gen: m.revealGen})
	if got := m.session.Phase(); got != garden.PhaseAwaitingInput {
		t.Fatalf("phase after reveal = %s, want awaiting_input", got)
	}
	return m
}

func slotOf(m GameModel, flower string) int {
	for i, k := range m.session.Catalog().Kinds() {
		if k.ID == flower {
			return i
		}
	}
	return -1
}

// plant enters a pattern through the keyboard path.
func plant(t *testing.T, m GameModel, p garden.Pattern) GameModel {
	t.Helper()
	for _, e := range p {
		m.cursor = e.Position
		m = update(t, m, keyMsg(strconv.Itoa(slotOf(m, e.Flower)+1)))
		m = update(t, m, keyMsg("enter"))
	}
	return m
}

// wrongOf swaps every flower in p for a different one.
func wrongOf(m GameModel, p garden.Pattern) garden.Pattern {
	kinds := m.session.Catalog().Kinds()
	out := p.Clone()
	for i := range out {
		out[i].Flower = kinds[(slotOf(m, out[i].Flower)+1)%len(kinds)].ID
	}
	return out
}

func TestModelStartsOnBoardWhenSkippingTitle(t *testing.T) {
	m := newTestModel(t, nil, true)

	if m.screen != screenPlay {
		t.Fatalf("screen = %d, want play", m.screen)
	}
	if m.session.Phase() != garden.PhaseShowingTarget {
		t.Errorf("phase = %s, want showing_target", m.session.Phase())
	}
	if view := m.View(); !strings.Contains(view, "1/3") {
		t.Errorf("view missing level counter:\n%s", view)
	}
}

func TestModelTitleStartsReveal(t *testing.T) {
	m := newTestModel(t, nil, false)
	if m.screen != screenTitle {
		t.Fatalf("screen = %d, want title", m.screen)
	}

	m = update(t, m, keyMsg("enter"))
	if m.screen != screenPlay {
		t.Fatalf("screen after select = %d, want play", m.screen)
	}
	if !m.started || m.revealGen != 1 {
		t.Errorf("started = %v, revealGen = %d", m.started, m.revealGen)
	}
}

func TestModelTitleHidesHallOfFameWithoutStore(t *testing.T) {
	without := newTestModel(t, nil, false)
	with := newTestModel(t, &fakeStore{}, false)

	has := func(items []MenuItem) bool {
		for _, it := range items {
			if it.Choice == ChoiceHallOfFame {
				return true
			}
		}
		return false
	}
	if has(without.title.Items()) {
		t.Error("hall of fame offered without a store")
	}
	if !has(with.title.Items()) {
		t.Error("hall of fame missing with a store")
	}
}

func TestModelStaleRevealIgnored(t *testing.T) {
	m := newTestModel(t, nil, true)

	m = update(t, m, revealDoneMsg{gen: m.revealGen - 1})
	if m.session.Phase() != garden.PhaseShowingTarget {
		t.Fatalf("stale reveal hid the target")
	}

	hide(t, m)
}

func TestModelPlacementBlockedWhileShowing(t *testing.T) {
	m := newTestModel(t, nil, true)

	m = update(t, m, keyMsg("enter"))
	if len(m.session.Placed()) != 0 {
		t.Error("placement accepted while target showing")
	}
	if !m.warning {
		t.Error("expected a warning line")
	}
}

func TestModelSolveLevel(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = hide(t, m)

	m = plant(t, m, m.session.Target())

	if m.session.Phase() != garden.PhaseLevelComplete {
		t.Fatalf("phase = %s, want level_complete", m.session.Phase())
	}
	if m.session.Stars() != 3 {
		t.Errorf("stars = %d, want 3", m.session.Stars())
	}
	if !strings.Contains(m.status, "3 stars") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelWrongAttemptShowsFeedback(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = hide(t, m)

	target := m.session.Target()
	m = plant(t, m, wrongOf(m, target))

	if m.session.Phase() != garden.PhaseAwaitingInput {
		t.Fatalf("phase = %s, want awaiting_input", m.session.Phase())
	}
	if len(m.session.Placed()) != 0 {
		t.Error("ledger not cleared after mismatch")
	}
	if m.feedback == nil || len(m.feedback.Mismatches) != len(target) {
		t.Fatalf("feedback = %+v", m.feedback)
	}

	view := m.boardView(m.session.Snapshot())
	if len(view.mismatches) != len(target) {
		t.Errorf("board highlights %d cells, want %d", len(view.mismatches), len(target))
	}

	m = update(t, m, feedbackDoneMsg{gen: m.feedbackGen - 1})
	if m.feedback == nil {
		t.Error("stale feedback timer cleared highlight")
	}
	m = update(t, m, feedbackDoneMsg{gen: m.feedbackGen})
	if m.feedback != nil {
		t.Error("feedback not cleared")
	}

	// Same target, still solvable
	m = plant(t, m, target)
	if m.session.Phase() != garden.PhaseLevelComplete {
		t.Errorf("phase = %s, want level_complete", m.session.Phase())
	}
}

func TestModelHintReshowsTarget(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = hide(t, m)
	gen := m.revealGen

	m = update(t, m, keyMsg("h"))

	if m.session.Phase() != garden.PhaseShowingTarget {
		t.Fatalf("phase = %s, want showing_target", m.session.Phase())
	}
	if m.session.HintsRemaining() != 2 {
		t.Errorf("hints = %d, want 2", m.session.HintsRemaining())
	}
	if m.revealGen != gen+1 {
		t.Errorf("revealGen = %d, want %d", m.revealGen, gen+1)
	}

	m = hide(t, m)
	m = plant(t, m, m.session.Target())
	if m.session.Stars() != 2 {
		t.Errorf("stars = %d, want 2", m.session.Stars())
	}
}

func TestModelHintsExhausted(t *testing.T) {
	m := newTestModel(t, nil, true)
	for i := 0; i < 3; i++ {
		m = hide(t, m)
		m = update(t, m, keyMsg("h"))
	}
	m = hide(t, m)

	m = update(t, m, keyMsg("h"))
	if m.session.Phase() != garden.PhaseAwaitingInput {
		t.Errorf("phase = %s, want awaiting_input", m.session.Phase())
	}
	if !m.warning || !strings.Contains(m.status, "No hints") {
		t.Errorf("status = %q, warning = %v", m.status, m.warning)
	}
}

func TestModelUndo(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = hide(t, m)

	first := m.session.Target()[:1]
	m = plant(t, m, first)
	if len(m.session.Placed()) != 1 {
		t.Fatalf("placed = %d, want 1", len(m.session.Placed()))
	}

	m = update(t, m, keyMsg("u"))
	if len(m.session.Placed()) != 0 {
		t.Error("undo did not remove placement")
	}

	m = update(t, m, keyMsg("u"))
	if !m.warning {
		t.Error("undo on empty board should warn")
	}
}

func TestModelOccupiedCell(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = hide(t, m)

	first := m.session.Target()[:1]
	m = plant(t, m, first)
	m = plant(t, m, first)

	if len(m.session.Placed()) != 1 {
		t.Errorf("placed = %d, want 1", len(m.session.Placed()))
	}
	if !strings.Contains(m.status, "already") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelFullRunSavesOnce(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, store, true)

	for level := 1; level <= 3; level++ {
		m = hide(t, m)
		m = plant(t, m, m.session.Target())
		m = update(t, m, keyMsg("n"))
	}

	if !m.session.IsComplete() {
		t.Fatalf("phase = %s, want game_complete", m.session.Phase())
	}
	if len(store.runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(store.runs))
	}
	run := store.runs[0]
	if run.Player != "tester" || run.Stars != 9 || run.LevelsCleared != 3 || !run.Completed {
		t.Errorf("run = %+v", run)
	}
	if len(store.clears) != 3 {
		t.Errorf("saved %d level clears, want 3", len(store.clears))
	}
	for i, c := range store.clears {
		if c.RunID != "run-1" || c.Level != i+1 {
			t.Errorf("clear[%d] = %+v", i, c)
		}
	}

	for id := garden.StoryID(1); id <= 3; id++ {
		if !m.session.IsUnlocked(id) {
			t.Errorf("story %d locked after completing the game", id)
		}
	}

	m = update(t, m, keyMsg("q"))
	if len(store.runs) != 1 {
		t.Errorf("quit saved again: %d runs", len(store.runs))
	}
	if !m.IsQuitting() {
		t.Error("model not quitting")
	}
}

func TestModelQuitWithoutClearsSavesNothing(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, store, true)

	update(t, m, keyMsg("q"))
	if len(store.runs) != 0 {
		t.Errorf("saved %d runs for an empty session", len(store.runs))
	}
}

func TestModelSaveErrorDoesNotPanic(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	m := newTestModel(t, store, true)
	m = hide(t, m)
	m = plant(t, m, m.session.Target())

	update(t, m, keyMsg("q"))
	if len(store.clears) != 0 {
		t.Errorf("level clears saved after run save failed")
	}
}

func TestModelReplay(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = hide(t, m)
	m = plant(t, m, m.session.Target())

	m = update(t, m, keyMsg("r"))
	if m.session.Level() != 1 || m.session.Phase() != garden.PhaseShowingTarget {
		t.Errorf("after replay level = %d, phase = %s", m.session.Level(), m.session.Phase())
	}
	if m.session.HintsRemaining() != 3 {
		t.Errorf("hints = %d, want 3", m.session.HintsRemaining())
	}
}

func TestModelPresentationToggles(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = hide(t, m)
	level, phase := m.session.Level(), m.session.Phase()

	m = update(t, m, keyMsg("c"))
	if !m.present.HighContrast {
		t.Error("contrast not toggled")
	}

	m = update(t, m, keyMsg("v"))
	if m.present.VoiceGuidance || m.narrator.Enabled() {
		t.Error("voice guidance not disabled")
	}
	if m.narrator.Pending() != 0 {
		t.Errorf("pending narration = %d after disabling", m.narrator.Pending())
	}

	tests := []int{2, 3, 1}
	for _, want := range tests {
		m = update(t, m, keyMsg("t"))
		if m.present.TextSize != want {
			t.Errorf("text size = %d, want %d", m.present.TextSize, want)
		}
	}

	m = update(t, m, keyMsg("x"))
	if !m.present.Simplified {
		t.Error("simple mode not toggled")
	}

	if m.session.Level() != level || m.session.Phase() != phase {
		t.Error("presentation toggles changed the session")
	}
}

func TestModelCursorStaysOnBoard(t *testing.T) {
	m := newTestModel(t, nil, true)

	for i := 0; i < 5; i++ {
		m = update(t, m, keyMsg("w"))
		m = update(t, m, keyMsg("a"))
	}
	if m.cursor != garden.Pos(0, 0) {
		t.Errorf("cursor = %v, want 0,0", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m = update(t, m, keyMsg("s"))
		m = update(t, m, keyMsg("d"))
	}
	if m.cursor != garden.Pos(2, 2) {
		t.Errorf("cursor = %v, want 2,2", m.cursor)
	}
}

func TestModelFlowerSelection(t *testing.T) {
	m := newTestModel(t, nil, true)

	m = update(t, m, keyMsg("3"))
	if m.slot != 2 {
		t.Errorf("slot = %d, want 2", m.slot)
	}
	m = update(t, m, keyMsg("9")) // beyond the catalog
	if m.slot != 2 {
		t.Errorf("slot = %d after out-of-range digit", m.slot)
	}
	m = update(t, m, keyMsg("tab"))
	if m.slot != 3 {
		t.Errorf("slot = %d after tab, want 3", m.slot)
	}
}

func TestModelStorybook(t *testing.T) {
	m := newTestModel(t, nil, true)

	m = update(t, m, keyMsg("b"))
	if m.screen != screenStorybook {
		t.Fatalf("screen = %d, want storybook", m.screen)
	}
	if view := m.View(); !strings.Contains(view, "The Garden Begins") {
		t.Errorf("storybook view missing first story:\n%s", view)
	}

	// Story 2 is locked at the start
	m = update(t, m, keyMsg("j"))
	m = update(t, m, keyMsg("enter"))
	if m.book.open {
		t.Error("locked story opened")
	}
	if !strings.Contains(m.book.notice, "level 2") {
		t.Errorf("notice = %q", m.book.notice)
	}

	m = update(t, m, keyMsg("esc"))
	if m.screen != screenPlay {
		t.Errorf("screen after back = %d, want play", m.screen)
	}
}

func TestModelHallOfFame(t *testing.T) {
	store := &fakeStore{runs: []storage.Run{{Player: "ana", Stars: 6, LevelsCleared: 2}}}
	m := newTestModel(t, store, false)

	// Title: play, storybook, hall of fame
	m = update(t, m, keyMsg("j"))
	m = update(t, m, keyMsg("j"))
	m = update(t, m, keyMsg("enter"))
	if m.screen != screenHallOfFame {
		t.Fatalf("screen = %d, want hall of fame", m.screen)
	}
	if view := m.View(); !strings.Contains(view, "ana") {
		t.Errorf("hall of fame view missing run:\n%s", view)
	}

	m = update(t, m, keyMsg("esc"))
	if m.screen != screenTitle {
		t.Errorf("screen after back = %d, want title", m.screen)
	}
}

func TestModelCaptions(t *testing.T) {
	m := newTestModel(t, nil, true)

	m = update(t, m, captionMsg{text: "Level 1 of 3."})
	if !strings.Contains(m.View(), "Level 1 of 3.") {
		t.Error("caption not rendered")
	}
	m = update(t, m, captionMsg{text: ""})
	if m.caption != "" {
		t.Errorf("caption = %q, want cleared", m.caption)
	}
}
