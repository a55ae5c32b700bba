// Package model defines domain data structures shared across the app: device
// handles and the audio device set produced by a scan, playback and transcode
// tasks, playlist entries, and their status enums.
package model
