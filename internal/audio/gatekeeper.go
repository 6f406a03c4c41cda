package audio

import (
	"fmt"

	"github.com/pierrepierremaker/recapv1/internal/config"
)

// Mode selects which transcription path an upload is validated for.
type Mode int

const (
	// ModePlain is the segmented plain-transcription path: the upload is
	// re-encoded and chunked locally, so only the soft ceiling applies.
	ModePlain Mode = iota
	// ModeDiarized submits the upload in a single request and is bound by
	// the hard 25 MiB service ceiling.
	ModeDiarized
)

// Accepted upload extensions.
var acceptedExts = map[string]bool{
	"mp3": true,
	"wav": true,
	"m4a": true,
	"aac": true,
	"amr": true,
}

// CheckUpload validates an upload's declared size and extension against the
// service limits for the chosen mode. It is pure: it runs before any
// decoding or subprocess work and touches nothing but its arguments.
func CheckUpload(blob Blob, mode Mode, limits config.Limits) error {
	if !acceptedExts[blob.Ext()] {
		return fmt.Errorf("%w: .%s", ErrUnsupportedFormat, blob.Ext())
	}

	switch mode {
	case ModeDiarized:
		if blob.Size() > limits.MaxDiarizeBytes {
			return fmt.Errorf("%w (%.1f MiB)", ErrTooLargeForDiarization,
				float64(blob.Size())/(1024*1024))
		}
	default:
		if blob.Size() > limits.MaxUploadBytes {
			return fmt.Errorf("%w (%.1f MiB)", ErrFileTooLarge,
				float64(blob.Size())/(1024*1024))
		}
	}
	return nil
}
