package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PL123", true},
		{"https://www.youtube.com/watch?v=VIDEO_ID&list=PL123", true},
		{"https://www.youtube.com/watch?v=VIDEO_ID", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsPlaylistURL(tt.url), tt.url)
	}
}

func TestIsPlaylistPage(t *testing.T) {
	assert.True(t, IsPlaylistPage("https://www.youtube.com/playlist?list=PL123"))
	assert.False(t, IsPlaylistPage("https://www.youtube.com/watch?v=VIDEO_ID&list=PL123"))
	assert.False(t, IsPlaylistPage("https://www.youtube.com/watch?v=VIDEO_ID"))
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectedID  string
		expectError string
	}{
		{
			name:       "watch URL",
			url:        "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID",
			expectedID: "PLAYLIST_ID",
		},
		{
			name:       "playlist URL",
			url:        "https://www.youtube.com/playlist?list=PLAYLIST_ID",
			expectedID: "PLAYLIST_ID",
		},
		{
			name:       "additional parameters",
			url:        "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&index=1&t=30",
			expectedID: "PLAYLIST_ID",
		},
		{
			name:        "no playlist parameter",
			url:         "https://www.youtube.com/watch?v=VIDEO_ID",
			expectError: "URL does not contain playlist parameter",
		},
		{
			name:        "empty playlist parameter",
			url:         "https://www.youtube.com/watch?v=VIDEO_ID&list=",
			expectError: "empty playlist ID",
		},
		{
			name:        "malformed playlist parameter",
			url:         "https://www.youtube.com/watch?v=VIDEO_ID&list",
			expectError: "URL does not contain playlist parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractPlaylistID(tt.url)
			if tt.expectError != "" {
				assert.EqualError(t, err, tt.expectError)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestResolve(t *testing.T) {
	r := NewPlaylistResolver()
	var gotID string
	r.SetFetchFunc(func(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
		gotID = playlistID
		return []PlaylistItem{
			{VideoID: "v1", Title: "First"},
			{VideoID: "v2", Title: "Second"},
		}, nil
	})

	pl, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=v1&list=PL9&index=1")
	require.NoError(t, err)

	assert.Equal(t, "PL9", gotID)
	assert.Equal(t, "PL9", pl.ID)
	assert.Equal(t, "First", pl.Title)
	require.Len(t, pl.Entries, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", pl.Entries[0].URL)
	assert.Equal(t, "https://www.youtube.com/watch?v=v2", pl.Entries[1].URL)
	assert.Equal(t, "Second", pl.Entries[1].Title)
}

func TestResolve_Errors(t *testing.T) {
	r := NewPlaylistResolver()
	r.SetFetchFunc(func(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
		if playlistID == "EMPTY" {
			return nil, nil
		}
		return nil, errors.New("network down")
	})

	_, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=x")
	assert.ErrorContains(t, err, "invalid playlist URL")

	_, err = r.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	assert.ErrorContains(t, err, "network down")

	_, err = r.Resolve(context.Background(), "https://www.youtube.com/playlist?list=EMPTY")
	assert.ErrorContains(t, err, "has no items")
}
