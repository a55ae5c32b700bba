package transcode

import (
	"context"

	"github.com/ytget/eyetooth/internal/model"
)

// Transcoder decodes a downloaded media container into a PCM WAV file.
type Transcoder interface {
	SetUpdateCallback(func(*model.TranscodeTask))
	Transcode(ctx context.Context, inputPath, outputPath string) (*model.TranscodeTask, error)
}
