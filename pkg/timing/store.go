package timing

import (
	"context"
	"f1timingapi/pkg/caster"
	"f1timingapi/pkg/fastf1"
	"f1timingapi/pkg/pubsub"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const PubSubSessionLoadedTopic = "session-loaded"

var ErrNoSessionLoaded = errors.New("no session loaded")

// Store owns the current session handle and the published snapshot. Loads
// and refreshes are serialized by loadMu; readers only touch mu, so a slow
// gateway fetch never blocks the read endpoints.
type Store struct {
	provider fastf1.Provider

	pubsubMgr    *pubsub.PubSub[string]
	loadedCaster caster.ChannelCaster[SessionLoaded]

	loadMu sync.Mutex

	mu       sync.RWMutex
	session  *fastf1.Session
	snapshot Snapshot
}

// NewStore creates a store over the given provider. pubsubMgr may be nil
// when nothing listens for load events.
func NewStore(provider fastf1.Provider, pubsubMgr *pubsub.PubSub[string]) *Store {
	return &Store{
		provider:     provider,
		pubsubMgr:    pubsubMgr,
		loadedCaster: caster.JSONChannelCaster[SessionLoaded]{},
		snapshot:     NewSnapshot(),
	}
}

// LoadSession fetches and parses a session through the provider and, on
// success, swaps in the new session handle and a snapshot derived from it.
// Any failure leaves the previous session and snapshot untouched.
func (s *Store) LoadSession(ctx context.Context, year int, event, kind string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	log.Printf("Loading session: %d %s %s", year, event, kind)
	sess, err := s.provider.GetSession(ctx, year, event, kind)
	if err != nil {
		log.Printf("Error loading session: %s", err.Error())
		return errors.Wrap(err, "load session")
	}
	if err := sess.Load(ctx); err != nil {
		log.Printf("Error loading session: %s", err.Error())
		return errors.Wrap(err, "load session")
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.update(sess)
	s.publishLoaded(sess)
	return nil
}

// Refresh re-derives the snapshot from the already-loaded session.
func (s *Store) Refresh() error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	sess := s.session
	s.mu.RUnlock()

	if sess == nil {
		return ErrNoSessionLoaded
	}
	s.update(sess)
	return nil
}

// update builds a fresh snapshot and publishes it. Extraction failures are
// logged and keep the previous snapshot; they never reach the caller.
func (s *Store) update(sess *fastf1.Session) {
	s.mu.RLock()
	prev := s.snapshot
	s.mu.RUnlock()

	snap, err := buildSnapshot(sess, prev, time.Now())
	if err != nil {
		log.Printf("Error updating session data: %s", err.Error())
		return
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

func (s *Store) publishLoaded(sess *fastf1.Session) {
	if s.pubsubMgr == nil {
		return
	}
	payload, err := s.loadedCaster.To(SessionLoaded{
		Year:    sess.Year,
		Event:   sess.Event,
		Kind:    sess.Kind,
		Drivers: len(sess.Results),
	})
	if err != nil {
		log.Printf("Error casting session loaded event to json: %s", err.Error())
		return
	}
	s.pubsubMgr.Publish(PubSubSessionLoadedTopic, payload)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) SessionLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// SetLive flags the snapshot as fed by a live source. Used by the live
// timing client on connect/disconnect.
func (s *Store) SetLive(live bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.IsLive = live
}

// AppendTrackStatus merges one live track status change into the snapshot.
// Green flag rows are dropped, same as the extraction.
func (s *Store) AppendTrackStatus(eventTime, code string) {
	if code == greenFlagCode {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]TrackStatusEvent, len(s.snapshot.TrackStatus), len(s.snapshot.TrackStatus)+1)
	copy(events, s.snapshot.TrackStatus)
	s.snapshot.TrackStatus = append(events, TrackStatusEvent{
		Time:       eventTime,
		Status:     statusLabel(code),
		StatusCode: code,
	})
}

// AppendRaceControl merges one live race control message into the snapshot.
func (s *Store) AppendRaceControl(eventTime, message, category string) {
	if category == "" {
		category = "Other"
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]RaceControlMessage, len(s.snapshot.RaceControlMessages), len(s.snapshot.RaceControlMessages)+1)
	copy(messages, s.snapshot.RaceControlMessages)
	s.snapshot.RaceControlMessages = append(messages, RaceControlMessage{
		Time:     eventTime,
		Message:  message,
		Category: category,
	})
}
