package reminders

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gmsas95/healthmate/internal/meds"
	"github.com/gmsas95/healthmate/internal/metrics"
	"github.com/gmsas95/healthmate/internal/schedule"
)

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

func setupRunner(t *testing.T, notifier Notifier, now time.Time) (*Runner, *meds.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store, err := meds.NewStore(db)
	require.NoError(t, err)
	runner := NewRunner(store, notifier, schedule.FixedClock(now), 15, zap.NewNop(), metrics.New())
	return runner, store, db
}

func seedDose(t *testing.T, store *meds.Store, name, day, clock string, minutes int) *meds.DoseRecord {
	t.Helper()
	dose := &meds.DoseRecord{
		Name:        name,
		Strength:    "500",
		Unit:        "mg",
		Form:        "tablet",
		Time:        clock,
		TimeMinutes: minutes,
		Day:         day,
	}
	require.NoError(t, store.CreateDose(dose))
	return dose
}

func TestScanNotifiesDueDoses(t *testing.T) {
	// Wednesday 07:50, lead window covers [07:50, 08:05).
	now := time.Date(2025, 1, 15, 7, 50, 0, 0, time.UTC)
	notifier := &fakeNotifier{}
	runner, store, _ := setupRunner(t, notifier, now)

	seedDose(t, store, "Paracetamol", "Wednesday", "8:00 AM", 480)
	seedDose(t, store, "Metformin", "Wednesday", "9:00 AM", 540) // outside window
	seedDose(t, store, "Aspirin", "Thursday", "8:00 AM", 480)    // wrong day

	runner.Scan()

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Paracetamol")
	assert.Contains(t, notifier.messages[0], "8:00 AM")
}

func TestScanSkipsAlreadyMarkedDoses(t *testing.T) {
	now := time.Date(2025, 1, 15, 7, 50, 0, 0, time.UTC)
	notifier := &fakeNotifier{}
	runner, store, db := setupRunner(t, notifier, now)

	dose := seedDose(t, store, "Paracetamol", "Wednesday", "8:00 AM", 480)
	require.NoError(t, store.StatusWrite(dose.ID, meds.StatusTaken)(db))

	runner.Scan()
	assert.Empty(t, notifier.messages)
}

func TestScanNotifiesOncePerDay(t *testing.T) {
	now := time.Date(2025, 1, 15, 7, 50, 0, 0, time.UTC)
	notifier := &fakeNotifier{}
	runner, store, _ := setupRunner(t, notifier, now)

	seedDose(t, store, "Paracetamol", "Wednesday", "8:00 AM", 480)

	runner.Scan()
	runner.Scan()
	assert.Len(t, notifier.messages, 1)
}

func TestScanRetriesAfterDeliveryFailure(t *testing.T) {
	now := time.Date(2025, 1, 15, 7, 50, 0, 0, time.UTC)
	notifier := &fakeNotifier{err: errors.New("network down")}
	runner, store, _ := setupRunner(t, notifier, now)

	seedDose(t, store, "Paracetamol", "Wednesday", "8:00 AM", 480)

	runner.Scan()
	assert.Empty(t, notifier.messages)

	// Delivery recovers: the dose was not marked notified, so the
	// next pass sends it.
	notifier.mu.Lock()
	notifier.err = nil
	notifier.mu.Unlock()

	runner.Scan()
	assert.Len(t, notifier.messages, 1)
}

func TestDayRollResetsNotifiedSet(t *testing.T) {
	now := time.Date(2025, 1, 15, 7, 50, 0, 0, time.UTC)
	notifier := &fakeNotifier{}
	runner, store, _ := setupRunner(t, notifier, now)

	seedDose(t, store, "Paracetamol", "Wednesday", "8:00 AM", 480)
	seedDose(t, store, "Paracetamol", "Thursday", "8:00 AM", 480)

	runner.Scan()
	require.Len(t, notifier.messages, 1)

	runner.clock = schedule.FixedClock(now.AddDate(0, 0, 1))
	runner.Scan()
	assert.Len(t, notifier.messages, 2)
}
