package models

import "time"

// ReadingSession is one browsing session's accumulated reading metrics.
// Fields accumulate additively while the session is live; EndSession
// finalizes the record (computing ReadingSpeed) and appends it to the
// durable session log, after which it is never mutated again.
type ReadingSession struct {
	ID                 uint      `json:"-" gorm:"primaryKey"`
	SessionID          string    `json:"sessionId" gorm:"uniqueIndex"`
	SessionStart       time.Time `json:"sessionStart"`
	SessionEnd         time.Time `json:"sessionEnd"`
	WordsRead          int       `json:"wordsRead"`
	PagesVisited       int       `json:"pagesVisited"`
	ReadingSpeed       float64   `json:"readingSpeed"` // words per minute
	ComprehensionScore float64   `json:"comprehensionScore"`
	ComfortRating      float64   `json:"comfortRating"`
	AdaptationsUsed    []string  `json:"adaptationsUsed" gorm:"serializer:json"`
	CreatedAt          time.Time `json:"-"`
}

// ImprovementSummary reports longitudinal trends across the session log.
// Trend values are percentage changes between the first-ever session and
// the mean of the most recent (up to five) sessions. With fewer than two
// recorded sessions all trends are zero by definition.
type ImprovementSummary struct {
	ReadingSpeed      float64 `json:"readingSpeed"`
	Comprehension     float64 `json:"comprehension"`
	Comfort           float64 `json:"comfort"`
	SessionsCount     int     `json:"sessionsCount"`
	TotalWordsRead    int     `json:"totalWordsRead"`
	TotalPagesVisited int     `json:"totalPagesVisited"`
}
