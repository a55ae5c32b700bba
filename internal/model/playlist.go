package model

import (
	"time"
)

// PlaylistEntry represents a single item of a playlist locator
type PlaylistEntry struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	URL    string     `json:"url"`
	Status TaskStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Playlist represents a playlist locator expanded into playable entries
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Entries   []*PlaylistEntry `json:"entries"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(url string) *Playlist {
	now := time.Now()
	return &Playlist{
		URL:       url,
		Entries:   make([]*PlaylistEntry, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddEntry appends an entry to the playlist
func (p *Playlist) AddEntry(entry *PlaylistEntry) {
	p.Entries = append(p.Entries, entry)
	p.UpdatedAt = time.Now()
}

// UpdateEntryStatus updates the status of a specific entry
func (p *Playlist) UpdateEntryStatus(entryID string, status TaskStatus, errMsg string) {
	for _, e := range p.Entries {
		if e.ID == entryID {
			e.Status = status
			e.Error = errMsg
			p.UpdatedAt = time.Now()
			break
		}
	}
}

// Failed returns the entries that ended with an error
func (p *Playlist) Failed() []*PlaylistEntry {
	var failed []*PlaylistEntry
	for _, e := range p.Entries {
		if e.Status == TaskStatusError {
			failed = append(failed, e)
		}
	}
	return failed
}

// Unfinished returns the entries that never reached a finished state
func (p *Playlist) Unfinished() []*PlaylistEntry {
	var rest []*PlaylistEntry
	for _, e := range p.Entries {
		if !e.Status.IsFinished() {
			rest = append(rest, e)
		}
	}
	return rest
}
