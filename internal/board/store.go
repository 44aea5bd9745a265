package board

import (
	"log/slog"
	"sync"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Patch computes a new snapshot from the current one.
// It reports false when nothing changed.
type Patch func(Snapshot) (Snapshot, bool)

// FetchToken marks when a fetch started relative to submitted moves.
// A snapshot fetched before the latest move was submitted is stale.
type FetchToken uint64

// ReplaceOutcome describes what Replace did with an incoming snapshot
type ReplaceOutcome int

const (
	// ReplaceApplied means the snapshot became the current state
	ReplaceApplied ReplaceOutcome = iota
	// ReplaceUnchanged means the snapshot matched the current state
	ReplaceUnchanged
	// ReplaceHeld means an optimistic move is pending; the snapshot waits for it to settle
	ReplaceHeld
	// ReplaceStale means the snapshot was fetched before a later move and was dropped
	ReplaceStale
)

func (o ReplaceOutcome) String() string {
	switch o {
	case ReplaceApplied:
		return "applied"
	case ReplaceUnchanged:
		return "unchanged"
	case ReplaceHeld:
		return "held"
	case ReplaceStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Change is published to subscribers after every state transition
type Change struct {
	Revision uint64
	Reason   string
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for dropped and held snapshots
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is the in-memory cache of one project's tasks and the single source of
// truth for the rendered board.
//
// All mutations happen under one mutex, so every transition is atomic with
// respect to every other; asynchronous completions re-enter through the same lock.
type Store struct {
	mu        sync.Mutex
	projectID string
	snap      Snapshot
	revision  uint64

	// optimistic window bookkeeping
	moves     uint64
	pending   int
	held      Snapshot
	heldToken FetchToken
	// authoritative records merged while the window was open, in settle order
	settled []models.Task

	// ids removed by a confirmed delete; never resurrected
	tombstones map[string]struct{}

	subs    map[int]chan Change
	nextSub int

	logger *slog.Logger
}

// NewStore creates an empty store for a project
func NewStore(projectID string, opts ...StoreOption) *Store {
	s := &Store{
		projectID:  projectID,
		snap:       Snapshot{},
		tombstones: make(map[string]struct{}),
		subs:       make(map[int]chan Change),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProjectID returns the project this store caches
func (s *Store) ProjectID() string {
	return s.projectID
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Columns projects the current state into the three ordered columns
func (s *Store) Columns() Columns {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Project(s.snap)
}

// Task returns the current record for id
func (s *Store) Task(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.snap[id]
	return t, ok
}

// Revision increases by one with every published change
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Pending returns the number of optimistic moves awaiting reconciliation
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// FetchToken must be taken right before a fetch is issued and passed to Replace
func (s *Store) FetchToken() FetchToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FetchToken(s.moves)
}

// Hydrate installs the initial snapshot unconditionally
func (s *Store) Hydrate(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = nil
	s.swap(s.clean(snap), "hydrate")
}

// Replace swaps in a snapshot fetched from the authority. There is no partial
// merge: the authority's view wins unless it is stale or a move is in flight,
// in which case it is dropped or held until the last pending move settles.
func (s *Store) Replace(snap Snapshot, token FetchToken) ReplaceOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uint64(token) < s.moves {
		s.logger.Debug("dropping stale snapshot", "project_id", s.projectID)
		return ReplaceStale
	}
	if s.pending > 0 {
		s.held = snap
		s.heldToken = token
		return ReplaceHeld
	}
	return s.replaceLocked(snap)
}

func (s *Store) replaceLocked(snap Snapshot) ReplaceOutcome {
	next := s.clean(snap)
	if next.Equal(s.snap) {
		return ReplaceUnchanged
	}
	s.swap(next, "refresh")
	return ReplaceApplied
}

// Apply runs patch against the current state and publishes the result if it changed
func (s *Store) Apply(patch Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(patch, "patch")
}

func (s *Store) applyLocked(patch Patch, reason string) bool {
	next, changed := patch(s.snap.Clone())
	if !changed {
		return false
	}
	s.swap(next, reason)
	return true
}

// Upsert stores a single record returned by the authority.
// Records of deleted tasks are ignored.
func (s *Store) Upsert(task models.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isTombstoned(task.ID) {
		return false
	}
	return s.applyLocked(UpsertPatch(task), "upsert")
}

// Forget removes a task after its deletion was confirmed and remembers the id
// so that late rollbacks, merges and refreshes cannot bring it back.
func (s *Store) Forget(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tombstones[taskID] = struct{}{}
	if s.held != nil {
		delete(s.held, taskID)
	}
	return s.applyLocked(RemovePatch(taskID), "delete")
}

// Subscribe returns a channel that receives a Change after every transition.
// Deliveries coalesce: a slow reader sees at least the latest change.
// The returned function unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// beginMove captures the rollback snapshot and applies the move in one step.
// A move that leaves the board as it is still opens a window but publishes nothing.
func (s *Store) beginMove(taskID string, to models.Status, toIndex int) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := Move(s.snap, taskID, to, toIndex)
	if !ok {
		return nil, false
	}

	before := s.snap
	s.pending++
	s.moves++
	if !next.Equal(s.snap) {
		s.swap(next, "move")
	}
	return before, true
}

// mergeMove places the authoritative record of a moved task. Other tasks keep
// their current relative order.
func (s *Store) mergeMove(task *models.Task) {
	if task == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isTombstoned(task.ID) {
		return
	}
	if _, ok := s.snap[task.ID]; !ok {
		s.logger.Debug("skipping merge for task no longer in store", "task_id", task.ID)
		return
	}
	if !task.Status.Valid() {
		s.logger.Warn("authority returned task with unknown status", "task_id", task.ID, "status", task.Status)
		return
	}
	s.settled = append(s.settled, *task)
	s.swap(place(s.snap, *task, task.Order), "merge")
}

// rollbackMove puts a task back where it was in the snapshot captured before
// its move. Moves of other tasks that settled meanwhile are kept, and a task
// deleted since is not restored.
func (s *Store) rollbackMove(before Snapshot, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := before[taskID]
	if !ok || s.isTombstoned(taskID) {
		return
	}
	cur, ok := s.snap[taskID]
	if !ok {
		return
	}

	// count the tasks that preceded it and are still in that column
	index := 0
	for _, t := range Project(before).Of(prev.Status) {
		if t.ID == taskID {
			break
		}
		if now, ok := s.snap[t.ID]; ok && now.Status == prev.Status {
			index++
		}
	}

	cur.Status = prev.Status
	next := place(s.snap, cur, index)
	if next.Equal(s.snap) {
		return
	}
	s.swap(next, "rollback")
}

// endMove closes one optimistic window and releases a held snapshot once none remain
func (s *Store) endMove() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending > 0 {
		s.pending--
	}
	if s.pending > 0 {
		return
	}

	held, token, settled := s.held, s.heldToken, s.settled
	s.held = nil
	s.settled = nil
	if held == nil || uint64(token) < s.moves {
		return
	}

	// the held fetch may predate the authority applying the merged moves;
	// a record older than the one already in view does not replace it
	next := s.clean(held)
	for _, t := range settled {
		cur, ok := next[t.ID]
		if !ok || cur.UpdatedAt.After(t.UpdatedAt) {
			continue
		}
		next = place(next, t, t.Order)
	}
	if next.Equal(s.snap) {
		return
	}
	s.swap(next, "refresh")
}

// clean removes tombstoned and unplaceable records and renumbers densely
func (s *Store) clean(snap Snapshot) Snapshot {
	out := make(Snapshot, len(snap))
	for id, t := range snap {
		if s.isTombstoned(id) {
			continue
		}
		if !t.Status.Valid() {
			s.logger.Warn("dropping task with unknown status", "task_id", id, "status", t.Status)
			continue
		}
		out[id] = t
	}
	return normalize(out)
}

func (s *Store) isTombstoned(id string) bool {
	_, ok := s.tombstones[id]
	return ok
}

// swap installs next and notifies subscribers; callers hold s.mu
func (s *Store) swap(next Snapshot, reason string) {
	s.snap = next
	s.revision++
	change := Change{Revision: s.revision, Reason: reason}
	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
			// reader has not consumed the previous change yet; replace it
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- change:
			default:
			}
		}
	}
}
