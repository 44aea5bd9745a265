// Package state holds the mutable view state of the terminal board.
package state

// Mode represents the current interaction mode of the board
type Mode int

const (
	// NormalMode is navigation over the board
	NormalMode Mode = iota
	// DragMode means a card is grabbed and the drop marker follows the keys
	DragMode
	// TaskFormMode shows the create/edit form
	TaskFormMode
	// DeleteConfirmMode asks before deleting the selected task
	DeleteConfirmMode
	// DetailMode shows one task or a summary full screen
	DetailMode
	// HelpMode lists the key bindings
	HelpMode
)

func (m Mode) String() string {
	switch m {
	case DragMode:
		return "drag"
	case TaskFormMode:
		return "form"
	case DeleteConfirmMode:
		return "confirm"
	case DetailMode:
		return "detail"
	case HelpMode:
		return "help"
	default:
		return "normal"
	}
}

// UIState tracks selection, mode and terminal size.
type UIState struct {
	mode           Mode
	selectedColumn int
	selectedTask   int
	width          int
	height         int
}

func NewUIState() *UIState {
	return &UIState{}
}

func (s *UIState) Mode() Mode {
	return s.mode
}

func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

func (s *UIState) SelectedTask() int {
	return s.selectedTask
}

// Select moves the cursor. Callers clamp with Clamp after the board changes.
func (s *UIState) Select(column, task int) {
	s.selectedColumn = column
	s.selectedTask = task
}

// MoveColumn shifts the column cursor by delta within [0, columns)
func (s *UIState) MoveColumn(delta, columns int) {
	s.selectedColumn = clampIndex(s.selectedColumn+delta, columns)
}

// MoveTask shifts the task cursor by delta within [0, tasks)
func (s *UIState) MoveTask(delta, tasks int) {
	s.selectedTask = clampIndex(s.selectedTask+delta, tasks)
}

// Clamp keeps the cursor on an existing card after the columns changed.
// lens holds the size of each column.
func (s *UIState) Clamp(lens []int) {
	s.selectedColumn = clampIndex(s.selectedColumn, len(lens))
	if len(lens) == 0 {
		s.selectedTask = 0
		return
	}
	s.selectedTask = clampIndex(s.selectedTask, lens[s.selectedColumn])
}

// ResetSelection puts the cursor on the first card of the first column
func (s *UIState) ResetSelection() {
	s.selectedColumn = 0
	s.selectedTask = 0
}

func (s *UIState) Width() int {
	return s.width
}

func (s *UIState) Height() int {
	return s.height
}

func (s *UIState) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
