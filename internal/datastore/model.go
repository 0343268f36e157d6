// model.go this code defines the data model for the application
package datastore

import "time"

// EntryState is the explicit lifecycle state of an entry.
type EntryState string

const (
	StateCreated    EntryState = "created"
	StateClassified EntryState = "classified" // terminal
)

// Entry represents a single challenge submission and its evaluation.
type Entry struct {
	ID string `gorm:"primaryKey;size:36"`

	// Owner identity: at most one of these is set per entry
	AnonID *string `gorm:"size:64;index:idx_entries_anon"`
	UserID *string `gorm:"size:64;index:idx_entries_user"`

	// OwnerKey collapses the owner identity into one comparable column
	OwnerKey string `gorm:"size:80;index:idx_entries_owner_created"`

	Title string `gorm:"size:200"`
	Body  string `gorm:"type:text"`

	// ByteCount is the UTF-8 byte length of Body, computed once at submit
	// time and never recomputed.
	ByteCount int

	// SubmitYmd is the calendar day of submission in the configured timezone.
	SubmitYmd string `gorm:"size:10;index:idx_entries_ymd"`

	// DayKey enforces the one-submission-per-owner-per-day rule at the
	// storage layer. When the daily limit is enabled it is owner@ymd; when
	// disabled it is the entry id, which never collides.
	DayKey string `gorm:"size:120;uniqueIndex:idx_entries_day_key"`

	// Aesthetic sub-scores
	FirstSentence  int
	Freeze         int
	Space          int
	Linger         int
	Bleak          int
	Detour         int
	MicroRecovery  int
	Rhythm         int
	MicroParticles int

	// Narrative sub-scores
	NarrativeCompression int
	NarrativeTurn        int
	NarrativeClutter     int
	NarrativeRhythm      int
	NarrativeScore       int

	// Creativity sub-scores
	LayerScore      int
	WorldScore      int
	ThemeScore      int
	CreativityScore int

	TotalScore int `gorm:"index:idx_entries_total"`

	Tags    []string `gorm:"serializer:json"`
	Reasons []string `gorm:"serializer:json"`

	// Share-card classification, computed at create time
	OgImage    string `gorm:"size:120"`
	OgCreature string `gorm:"size:20"`
	OgColor    string `gorm:"size:20"`

	// Symbolic card, attached exactly once as a second step
	ArcanaID    *int
	ArcanaCode  string `gorm:"size:40"`
	ArcanaLabel string `gorm:"size:80"`

	CreatedAt time.Time `gorm:"index:idx_entries_owner_created"`
}

// State derives the explicit lifecycle state. An entry with a card attached
// is classified; there are no other transitions.
func (e *Entry) State() EntryState {
	if e.ArcanaID != nil {
		return StateClassified
	}
	return StateCreated
}

// Classified reports whether the entry already carries a card.
func (e *Entry) Classified() bool {
	return e.State() == StateClassified
}

// Owner identifies who submitted an entry: the anonymous cookie value or an
// authenticated user id. UserID wins when both are present.
type Owner struct {
	AnonID string
	UserID string
}

// Key returns the single comparable owner identity.
func (o Owner) Key() string {
	if o.UserID != "" {
		return "user:" + o.UserID
	}
	if o.AnonID != "" {
		return "anon:" + o.AnonID
	}
	return ""
}

// IsZero reports whether no identity is present.
func (o Owner) IsZero() bool {
	return o.AnonID == "" && o.UserID == ""
}

// ArcanaAttachment carries the symbolic card fields written on classification.
type ArcanaAttachment struct {
	ArcanaID    int
	ArcanaCode  string
	ArcanaLabel string
	OgImage     string
}
