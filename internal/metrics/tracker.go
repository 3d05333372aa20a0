package metrics

import (
	"context"
	"errors"
	"math"
	"time"

	"dyslexibrowse/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoActiveSession is returned when a session operation arrives before
// StartSession (or after EndSession).
var ErrNoActiveSession = errors.New("no active reading session")

// SessionLog is the durable, ordered log of finalized reading sessions.
type SessionLog interface {
	Append(ctx context.Context, session *models.ReadingSession) error
	List(ctx context.Context) ([]models.ReadingSession, error)
}

// Tracker accumulates reading metrics for the one active browsing session
// and finalizes them into the session log. One tracker per user; the
// active record is session-memory only until EndSession.
type Tracker struct {
	log    *zap.Logger
	store  SessionLog
	active *models.ReadingSession
}

// NewTracker creates a tracker over the given session log.
func NewTracker(log *zap.Logger, store SessionLog) *Tracker {
	return &Tracker{log: log, store: store}
}

// StartSession opens a new session record and returns its id. An already
// active session is discarded: the shell starts a session per browsing
// window and only one window exists at a time.
func (t *Tracker) StartSession() string {
	t.active = &models.ReadingSession{
		SessionID:       uuid.NewString(),
		SessionStart:    time.Now(),
		AdaptationsUsed: []string{},
	}
	t.log.Debug("Reading session started", zap.String("session_id", t.active.SessionID))
	return t.active.SessionID
}

// TrackPageVisit adds a visited page and its word count to the session.
func (t *Tracker) TrackPageVisit(wordCount int) error {
	if t.active == nil {
		return ErrNoActiveSession
	}
	t.active.PagesVisited++
	t.active.WordsRead += wordCount
	return nil
}

// TrackComprehension scores an in-session comprehension check. The score
// blends accuracy (70%) with time efficiency (30%), where the time budget
// is 20 seconds per question.
func (t *Tracker) TrackComprehension(totalQuestions, correctAnswers int, totalTimeSeconds float64) error {
	if t.active == nil {
		return ErrNoActiveSession
	}

	var accuracy float64
	if totalQuestions > 0 {
		accuracy = float64(correctAnswers) / float64(totalQuestions)
	}
	var timeEfficiency float64
	if totalTimeSeconds > 0 {
		timeEfficiency = math.Min(1, float64(totalQuestions)*20/totalTimeSeconds)
	}
	t.active.ComprehensionScore = math.Round((accuracy*0.7 + timeEfficiency*0.3) * 100)
	return nil
}

// TrackAdaptation records that an adaptation feature was used this session.
func (t *Tracker) TrackAdaptation(name string) error {
	if t.active == nil {
		return ErrNoActiveSession
	}
	for _, used := range t.active.AdaptationsUsed {
		if used == name {
			return nil
		}
	}
	t.active.AdaptationsUsed = append(t.active.AdaptationsUsed, name)
	return nil
}

// EndSession finalizes the active record: it stamps the end time, computes
// the reading speed in words per minute (zero for a zero-length session)
// and appends the record to the durable log. The record is never mutated
// afterwards.
func (t *Tracker) EndSession(ctx context.Context, comfortRating float64) (*models.ReadingSession, error) {
	if t.active == nil {
		return nil, ErrNoActiveSession
	}

	session := t.active
	t.active = nil

	session.SessionEnd = time.Now()
	session.ComfortRating = comfortRating
	if minutes := session.SessionEnd.Sub(session.SessionStart).Minutes(); minutes > 0 {
		session.ReadingSpeed = float64(session.WordsRead) / minutes
	}

	if err := t.store.Append(ctx, session); err != nil {
		return nil, err
	}

	t.log.Info("Reading session finalized",
		zap.String("session_id", session.SessionID),
		zap.Int("words_read", session.WordsRead),
		zap.Int("pages_visited", session.PagesVisited),
		zap.Float64("reading_speed", session.ReadingSpeed),
	)
	return session, nil
}

// Improvement computes longitudinal trends over the whole session log.
func (t *Tracker) Improvement(ctx context.Context) (models.ImprovementSummary, error) {
	sessions, err := t.store.List(ctx)
	if err != nil {
		return models.ImprovementSummary{}, err
	}
	return CalculateImprovement(sessions), nil
}
