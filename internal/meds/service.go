package meds

import (
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
	"github.com/gmsas95/healthmate/internal/schedule"
	"github.com/gmsas95/healthmate/internal/store"
)

// Writer applies a batch of row mutations best-effort; see
// store.ApplyWrites.
type Writer interface {
	ApplyWrites(writes []store.Write) error
}

// Tracker is the medication-tracking service: day queries, time
// grouping, in-memory status staging, and the explicit batch commit.
type Tracker struct {
	store     *Store
	writer    Writer
	validator *Validator
	clock     schedule.Clock
	logger    *zap.Logger

	mu       sync.Mutex
	staged   map[int64]Status // current in-memory statuses
	baseline map[int64]Status // statuses as last loaded/committed
}

// NewTracker creates a medication tracker.
func NewTracker(st *Store, writer Writer, clock schedule.Clock, logger *zap.Logger) *Tracker {
	if clock == nil {
		clock = schedule.SystemClock()
	}
	return &Tracker{
		store:     st,
		writer:    writer,
		validator: NewValidator(),
		clock:     clock,
		logger:    logger,
		staged:    make(map[int64]Status),
		baseline:  make(map[int64]Status),
	}
}

// LoadDoses returns all doses for the weekday in chronological order
// and resets the staging maps to the persisted statuses, the way the
// tracking screen re-seeds its tick state on every day change.
func (t *Tracker) LoadDoses(day schedule.Weekday) ([]DoseRecord, error) {
	doses, err := t.store.ListByDay(day.String())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to load doses")
	}

	t.mu.Lock()
	t.staged = make(map[int64]Status, len(doses))
	t.baseline = make(map[int64]Status, len(doses))
	for _, d := range doses {
		t.staged[d.ID] = d.Status
		t.baseline[d.ID] = d.Status
	}
	t.mu.Unlock()

	return doses, nil
}

// GroupByTime buckets doses by exact time label, preserving the
// chronological order of the input.
func GroupByTime(doses []DoseRecord) []TimeGroup {
	var groups []TimeGroup
	index := make(map[string]int)

	for _, d := range doses {
		i, ok := index[d.Time]
		if !ok {
			i = len(groups)
			index[d.Time] = i
			groups = append(groups, TimeGroup{Time: d.Time})
		}
		groups[i].Doses = append(groups[i].Doses, d)
	}

	return groups
}

// Toggle advances a staged status one step through the cycle and
// returns the new value. Nothing is persisted.
func (t *Tracker) Toggle(id int64) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.staged[id].Toggle()
	t.staged[id] = next
	return next
}

// StagedStatus returns the current in-memory status for a dose.
func (t *Tracker) StagedStatus(id int64) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.staged[id]
}

// SetStaged replaces the staged status for a dose, for callers that
// hold their own staging (the HTTP API posts the whole staged map).
func (t *Tracker) SetStaged(id int64, status Status) error {
	if !status.Valid() {
		return apperrors.ErrBadRequest
	}
	t.mu.Lock()
	t.staged[id] = status
	t.mu.Unlock()
	return nil
}

// CommitStatuses persists the staged statuses: one update per record
// whose status changed since load, applied sequentially. Writes that
// succeed stay applied even when later ones fail; the caller gets one
// aggregate error after all entries were attempted.
func (t *Tracker) CommitStatuses() error {
	t.mu.Lock()
	var writes []store.Write
	committed := make(map[int64]Status)
	for id, status := range t.staged {
		if t.baseline[id] == status {
			continue
		}
		writes = append(writes, t.store.StatusWrite(id, status))
		committed[id] = status
	}
	t.mu.Unlock()

	if len(writes) == 0 {
		return nil
	}

	if err := t.writer.ApplyWrites(writes); err != nil {
		t.logger.Error("Status commit failed", zap.Int("writes", len(writes)), zap.Error(err))
		return err
	}

	t.mu.Lock()
	for id, status := range committed {
		t.baseline[id] = status
	}
	t.mu.Unlock()

	t.logger.Info("Statuses committed", zap.Int("updated", len(committed)))
	return nil
}

// AddDose validates and immediately persists a new dose for the
// selected day.
func (t *Tracker) AddDose(input DoseInput, selected schedule.SelectedDay, todayIndex int) (*DoseRecord, error) {
	isToday := selected.Index == todayIndex

	dose, err := t.validator.Validate(input, selected.Day, isToday, t.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := t.store.CreateDose(dose); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to save dose")
	}

	t.mu.Lock()
	t.staged[dose.ID] = dose.Status
	t.baseline[dose.ID] = dose.Status
	t.mu.Unlock()

	t.logger.Info("Dose added",
		zap.Int64("dose_id", dose.ID),
		zap.String("name", dose.Name),
		zap.String("day", dose.Day),
		zap.String("time", dose.Time),
	)

	return dose, nil
}

// DeleteDose removes a dose after confirming it exists.
func (t *Tracker) DeleteDose(id int64) error {
	dose, err := t.store.GetDose(id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to look up dose")
	}
	if dose == nil {
		return apperrors.ErrNotFound
	}

	if err := t.store.DeleteDose(id); err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to delete dose")
	}

	t.mu.Lock()
	delete(t.staged, id)
	delete(t.baseline, id)
	t.mu.Unlock()

	t.logger.Info("Dose deleted", zap.Int64("dose_id", id), zap.String("name", dose.Name))
	return nil
}
