// Package platform contains OS integration and external tooling glue:
// temporary file helpers and playlist expansion through the ytdlp library.
package platform
