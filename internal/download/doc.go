// Package download resolves a media locator to its best audio-only stream and
// downloads it to a fixed path, built on top of yt-dlp (via
// github.com/lrstanley/go-ytdlp). Progress is propagated through a callback.
package download
