package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/eyetooth/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
	VideoParam     = "v="
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistItem is one entry returned by a playlist lookup.
type PlaylistItem struct {
	VideoID string
	Title   string
}

// FetchFunc lists every item of the playlist with the given ID.
type FetchFunc func(ctx context.Context, playlistID string) ([]PlaylistItem, error)

// PlaylistResolver expands playlist locators into playable entries
type PlaylistResolver struct {
	timeout time.Duration
	fetch   FetchFunc
}

// NewPlaylistResolver creates a resolver backed by the ytdlp library
func NewPlaylistResolver() *PlaylistResolver {
	return &PlaylistResolver{
		timeout: DefaultPlaylistTimeout,
		fetch:   fetchWithYTDLP,
	}
}

// SetFetchFunc replaces the lookup backend
func (p *PlaylistResolver) SetFetchFunc(fetch FetchFunc) {
	p.fetch = fetch
}

// IsPlaylistURL reports whether the locator names a playlist
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// IsPlaylistPage reports whether the locator names only a playlist, not a
// single video inside one
func IsPlaylistPage(url string) bool {
	return IsPlaylistURL(url) && !strings.Contains(url, VideoParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	if !IsPlaylistURL(url) {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	parts := strings.SplitN(url, PlaylistParam, 2)
	playlistID := parts[1]
	if i := strings.Index(playlistID, ParamSeparator); i >= 0 {
		playlistID = playlistID[:i]
	}

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return playlistID, nil
}

// Resolve expands a playlist locator. Entries are returned in playlist order.
func (p *PlaylistResolver) Resolve(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, fmt.Errorf("invalid playlist URL %s: %w", url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	items, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("playlist %s has no items", playlistID)
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = playlistID
	for _, it := range items {
		playlist.AddEntry(&model.PlaylistEntry{
			ID:     it.VideoID,
			Title:  it.Title,
			URL:    fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
			Status: model.TaskStatusPending,
		})
	}
	playlist.Title = items[0].Title
	return playlist, nil
}

func fetchWithYTDLP(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}
