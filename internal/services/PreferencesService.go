package services

import (
	"paywall/internal/models"
	"paywall/internal/providers"
	"paywall/internal/storage"
	"sync"

	json "github.com/goccy/go-json"
)

type PreferencesServiceInterface interface {
	LoadOnce() *models.UserPreferences
	Snapshot() (*models.UserPreferences, bool)
	SavePartial(delta *models.PreferencesDelta) (*models.UserPreferences, error)
	Subscribe(fn func(*models.UserPreferences)) func()
	Premium() bool
	SetPremium(enabled bool) error
}

// prefsLoad is the pending-load slot for single-flight reads: the
// first miss creates it, later callers wait on done instead of issuing
// their own store read.
type prefsLoad struct {
	done  chan struct{}
	prefs *models.UserPreferences
}

// PreferencesService is the sole in-process owner of the preferences
// snapshot; the durable store is the system of record. Reads are
// single-flight, writes are merge-then-replace with last-write-wins
// semantics.
type PreferencesService struct {
	store  storage.StoreInterface
	logger providers.Logger

	mu       sync.Mutex
	snapshot *models.UserPreferences
	inflight *prefsLoad
	subs     map[int]func(*models.UserPreferences)
	nextSub  int

	// saveMu serializes SavePartial so each merge sees the previous
	// write's result as its base.
	saveMu sync.Mutex
}

func NewPreferencesService(store storage.StoreInterface, logger providers.Logger) PreferencesServiceInterface {
	return &PreferencesService{
		store:  store,
		logger: logger,
		subs:   make(map[int]func(*models.UserPreferences)),
	}
}

// LoadOnce returns the cached snapshot, attaching to an in-flight load
// if one exists; the store is read at most once per cache-miss
// episode. Read failures degrade to defaults and never propagate.
func (ps *PreferencesService) LoadOnce() *models.UserPreferences {
	ps.mu.Lock()
	if ps.snapshot != nil {
		p := ps.snapshot.Clone()
		ps.mu.Unlock()
		return p
	}
	if ps.inflight != nil {
		call := ps.inflight
		ps.mu.Unlock()
		<-call.done
		return call.prefs.Clone()
	}

	call := &prefsLoad{done: make(chan struct{})}
	ps.inflight = call
	ps.mu.Unlock()

	prefs := ps.read()

	ps.mu.Lock()
	ps.snapshot = prefs
	ps.inflight = nil
	ps.mu.Unlock()

	call.prefs = prefs
	close(call.done)

	return prefs.Clone()
}

// read loads the record from the store, migrating the legacy offset
// layout once and re-persisting it without the legacy fields.
func (ps *PreferencesService) read() *models.UserPreferences {
	data, ok, err := ps.store.Get(KeyUserPreferences)
	if err != nil {
		ps.logger.Errorf(providers.TypeStore, "Failed to read preferences: %s", err)
		return models.DefaultPreferences()
	}
	if !ok {
		return models.DefaultPreferences()
	}

	var prefs models.UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		ps.logger.Warnf(providers.TypeStore, "Corrupt preferences record, using defaults: %s", err)
		return models.DefaultPreferences()
	}

	migrated := prefs.Migrate()
	prefs.Normalize()

	if migrated {
		ps.logger.Infof(providers.TypeStore, "Migrated legacy preference offsets")
		if err := ps.write(&prefs); err != nil {
			ps.logger.Errorf(providers.TypeStore, "Failed to re-persist migrated preferences: %s", err)
		}
	}
	return &prefs
}

func (ps *PreferencesService) write(prefs *models.UserPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return ps.store.Set(KeyUserPreferences, data)
}

// Snapshot returns the last-known snapshot without triggering I/O.
func (ps *PreferencesService) Snapshot() (*models.UserPreferences, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.snapshot == nil {
		return nil, false
	}
	return ps.snapshot.Clone(), true
}

// SavePartial merges the delta over the current snapshot, persists the
// result and notifies subscribers. The write error is surfaced: the
// caller must know a preference write did not happen.
func (ps *PreferencesService) SavePartial(delta *models.PreferencesDelta) (*models.UserPreferences, error) {
	ps.saveMu.Lock()
	defer ps.saveMu.Unlock()

	merged := ps.LoadOnce()
	delta.Apply(merged)
	merged.Normalize()

	if err := ps.write(merged); err != nil {
		return nil, err
	}

	ps.mu.Lock()
	ps.snapshot = merged.Clone()
	listeners := make([]func(*models.UserPreferences), 0, len(ps.subs))
	for _, fn := range ps.subs {
		listeners = append(listeners, fn)
	}
	ps.mu.Unlock()

	for _, fn := range listeners {
		ps.notify(fn, merged)
	}
	return merged.Clone(), nil
}

// notify shields the save path from misbehaving listeners.
func (ps *PreferencesService) notify(fn func(*models.UserPreferences), prefs *models.UserPreferences) {
	defer func() {
		if r := recover(); r != nil {
			ps.logger.Warnf(providers.TypeApp, "Preferences listener panicked: %v", r)
		}
	}()
	fn(prefs.Clone())
}

// Subscribe registers a listener invoked after every successful write.
// The returned func removes it.
func (ps *PreferencesService) Subscribe(fn func(*models.UserPreferences)) func() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	id := ps.nextSub
	ps.nextSub++
	ps.subs[id] = fn

	return func() {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		delete(ps.subs, id)
	}
}

// Premium is stored under its own key, as a raw literal rather than
// JSON, so it survives preference-record resets.
func (ps *PreferencesService) Premium() bool {
	data, ok, err := ps.store.Get(KeyPremiumStatus)
	if err != nil {
		ps.logger.Errorf(providers.TypeStore, "Failed to read premium status: %s", err)
		return false
	}
	return ok && string(data) == "true"
}

func (ps *PreferencesService) SetPremium(enabled bool) error {
	val := "false"
	if enabled {
		val = "true"
	}
	return ps.store.Set(KeyPremiumStatus, []byte(val))
}
