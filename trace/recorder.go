// Package trace records dilation phase transitions into a SQLite database
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/slowmo/event"
)

// DefaultBatchSize is the number of buffered transitions that forces a flush
const DefaultBatchSize = 64

// ErrClosed is returned by operations on a closed recorder
var ErrClosed = errors.New("trace: recorder closed")

// Transition is one recorded phase notification
type Transition struct {
	RunID    string  `db:"run_id"`
	Sequence string  `db:"sequence"`
	Event    string  `db:"event"`
	Stage    string  `db:"stage"`
	Rate     float64 `db:"rate"`
	WallNs   int64   `db:"wall_ns"`
	Frame    int64   `db:"frame"`
}

// Wall returns the controller wall-clock time of the transition
func (t Transition) Wall() time.Duration {
	return time.Duration(t.WallNs)
}

// Recorder buffers transitions and writes them in batches
// Implements event.Handler for the diagnostic event types
type Recorder struct {
	mu        sync.Mutex
	db        *sqlx.DB
	runID     string
	pending   []Transition
	batchSize int
	closed    bool
	logger    *log.Logger
}

// Open creates or opens the database at path and starts a new run
// runConfig is stored as JSON on the run row
func Open(path string, runConfig any) (*Recorder, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open trace db: %w", err)
	}
	// One writer; sqlite serializes anyway and this keeps in-memory databases shared
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate trace db: %w", err)
	}

	cfgJSON, err := json.Marshal(runConfig)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("encode run config: %w", err)
	}

	r := &Recorder{
		db:        db,
		runID:     xid.New().String(),
		batchSize: DefaultBatchSize,
		logger:    log.Default(),
	}
	_, err = db.Exec(`INSERT INTO runs (id, started_ns, config) VALUES (?, ?, ?)`,
		r.runID, time.Now().UnixNano(), string(cfgJSON))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("insert run: %w", err)
	}

	atexit.Register(func() { r.Close() })
	return r, nil
}

func migrate(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_ns INTEGER NOT NULL,
		config TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		sequence TEXT NOT NULL,
		event TEXT NOT NULL,
		stage TEXT NOT NULL,
		rate REAL NOT NULL,
		wall_ns INTEGER NOT NULL,
		frame INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transitions_sequence ON transitions(run_id, sequence);
	`
	_, err := db.Exec(schema)
	return err
}

// SetLogger replaces the logger used for background flush failures
func (r *Recorder) SetLogger(l *log.Logger) {
	r.mu.Lock()
	r.logger = l
	r.mu.Unlock()
}

// SetBatchSize sets the flush threshold, n < 1 flushes every transition
func (r *Recorder) SetBatchSize(n int) {
	r.mu.Lock()
	r.batchSize = max(n, 1)
	r.mu.Unlock()
}

// RunID returns the id of the run this recorder writes to
func (r *Recorder) RunID() string {
	return r.runID
}

// EventTypes implements event.Handler
func (r *Recorder) EventTypes() []event.EventType {
	return event.DiagnosticTypes()
}

// HandleEvent implements event.Handler
func (r *Recorder) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.PhasePayload)
	if !ok {
		return
	}
	r.Record(Transition{
		Sequence: p.Sequence,
		Event:    ev.Type.String(),
		Stage:    p.Stage,
		Rate:     p.Rate,
		WallNs:   int64(p.Wall),
		Frame:    ev.Frame,
	})
}

// Record buffers t, flushing when the batch is full
func (r *Recorder) Record(t Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	t.RunID = r.runID
	r.pending = append(r.pending, t)
	if len(r.pending) >= r.batchSize {
		if err := r.flushLocked(); err != nil {
			r.logger.Printf("[slowmo] trace flush failed: %v", err)
		}
	}
}

// Pending returns the number of buffered transitions
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Flush writes all buffered transitions in one transaction
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	return r.flushLocked()
}

func (r *Recorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	_, err = tx.NamedExec(`INSERT INTO transitions (run_id, sequence, event, stage, rate, wall_ns, frame)
		VALUES (:run_id, :sequence, :event, :stage, :rate, :wall_ns, :frame)`, r.pending)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert transitions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.pending = r.pending[:0]
	return nil
}

// Transitions returns the recorded transitions of sequence in this run, oldest first
// Buffered rows are flushed before the query
func (r *Recorder) Transitions(sequence string) ([]Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if err := r.flushLocked(); err != nil {
		return nil, err
	}

	var out []Transition
	err := r.db.Select(&out, `SELECT run_id, sequence, event, stage, rate, wall_ns, frame
		FROM transitions WHERE run_id = ? AND sequence = ? ORDER BY id`, r.runID, sequence)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	return out, nil
}

// Sequences returns the sequence ids recorded in this run in first-seen order
func (r *Recorder) Sequences() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if err := r.flushLocked(); err != nil {
		return nil, err
	}

	var out []string
	err := r.db.Select(&out, `SELECT sequence FROM transitions WHERE run_id = ?
		GROUP BY sequence ORDER BY MIN(id)`, r.runID)
	if err != nil {
		return nil, fmt.Errorf("query sequences: %w", err)
	}
	return out, nil
}

// Close flushes and closes the database; repeated calls return nil
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	flushErr := r.flushLocked()
	closeErr := r.db.Close()
	return errors.Join(flushErr, closeErr)
}
