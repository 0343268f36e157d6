// Package datastore provides the persistence layer for challenge entries,
// backed by GORM with SQLite and MySQL implementations.
package datastore

import (
	"github.com/surimlab/challenge500/internal/conf"
	"github.com/surimlab/challenge500/internal/errors"
	"gorm.io/gorm"
)

// Interface is the datastore contract used by the API layer.
type Interface interface {
	Open() error
	Close() error
	SaveEntry(entry *Entry) error
	GetEntry(id string) (Entry, error)
	GetEntriesByOwner(owner Owner, limit int) ([]Entry, error)
	CountForOwnerDay(owner Owner, ymd string) (int64, error)
	AttachArcana(id string, attachment ArcanaAttachment) (Entry, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// SaveEntry inserts a new entry. A violation of the day-key unique index is
// reported as a conflict error; the index, not this method, is the
// authoritative daily-limit enforcement.
func (ds *DataStore) SaveEntry(entry *Entry) error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}

	if err := ds.DB.Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return errors.New(err).
				Category(errors.CategoryConflict).
				Component("datastore").
				Context("owner_key", entry.OwnerKey).
				Context("submit_ymd", entry.SubmitYmd).
				Build()
		}
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return nil
}

// GetEntry fetches a single entry by id.
func (ds *DataStore) GetEntry(id string) (Entry, error) {
	var entry Entry
	err := ds.DB.Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entry{}, errors.Newf("entry not found: %s", id).
				Category(errors.CategoryNotFound).
				Component("datastore").
				Build()
		}
		return Entry{}, errors.New(err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return entry, nil
}

// GetEntriesByOwner lists an owner's entries, most recent first.
func (ds *DataStore) GetEntriesByOwner(owner Owner, limit int) ([]Entry, error) {
	if owner.IsZero() {
		return []Entry{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	var entries []Entry
	err := ds.DB.
		Where("owner_key = ?", owner.Key()).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return entries, nil
}

// CountForOwnerDay counts an owner's entries for one calendar day. This is
// the best-effort pre-check; the unique index remains the source of truth.
func (ds *DataStore) CountForOwnerDay(owner Owner, ymd string) (int64, error) {
	if owner.IsZero() {
		return 0, nil
	}

	var count int64
	err := ds.DB.Model(&Entry{}).
		Where("owner_key = ? AND submit_ymd = ?", owner.Key(), ymd).
		Count(&count).Error
	if err != nil {
		return 0, errors.New(err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return count, nil
}

// AttachArcana attaches the symbolic card to an entry exactly once. The
// update is guarded on arcana_id being unset; a second attempt returns a
// conflict error and the stored card is never overwritten.
func (ds *DataStore) AttachArcana(id string, attachment ArcanaAttachment) (Entry, error) {
	res := ds.DB.Model(&Entry{}).
		Where("id = ? AND arcana_id IS NULL", id).
		Updates(map[string]any{
			"arcana_id":    attachment.ArcanaID,
			"arcana_code":  attachment.ArcanaCode,
			"arcana_label": attachment.ArcanaLabel,
			"og_image":     attachment.OgImage,
		})
	if res.Error != nil {
		return Entry{}, errors.New(res.Error).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}

	entry, err := ds.GetEntry(id)
	if err != nil {
		return Entry{}, err
	}

	if res.RowsAffected == 0 {
		// Row exists but was not updated: already classified
		return entry, errors.Newf("entry %s is already classified as card %d", id, derefInt(entry.ArcanaID)).
			Category(errors.CategoryConflict).
			Component("datastore").
			Build()
	}
	return entry, nil
}

func derefInt(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

// Ensure DataStore-based stores satisfy the interface.
var (
	_ Interface = (*SQLiteStore)(nil)
	_ Interface = (*MySQLStore)(nil)
)
