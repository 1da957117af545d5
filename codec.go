package testmaker

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type (
	// Format names a supported export encoding
	Format string

	// Encoder renders a Timeline into one export format. Encoders never
	// mutate the timeline, so a single Timeline may be encoded by any
	// number of goroutines at once
	Encoder interface {
		Format() Format
		Encode(w io.Writer, tl *Timeline) error
	}
)

const (
	// FormatJSON is the native document format, the only one that decodes
	FormatJSON Format = "json"

	// FormatEEGLab is the tab-delimited marker table EEGLAB imports
	FormatEEGLab Format = "eeglab"

	// FormatEPrime is the E-Prime style E-DataAid text export
	FormatEPrime Format = "eprime"
)

func (f Format) String() string {
	return string(f)
}

// Extension returns the conventional file extension for the format
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".txt"
}

// ResolveFormat maps a hint to a Format. The hint is either a format name
// ("json", "eeglab", "eprime") or a destination filename: .json means the
// native format, and a .txt picks its marker format from the stem, with
// bare .txt defaulting to EEGLAB as the more common neuroscience target.
// Any other hint fails with ErrUnresolvedFormat
func ResolveFormat(hint string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "json", "native":
		return FormatJSON, nil
	case "eeglab":
		return FormatEEGLab, nil
	case "eprime", "e-prime":
		return FormatEPrime, nil
	}

	name := strings.ToLower(filepath.Base(hint))
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, nil
	case ".txt":
		switch {
		case strings.Contains(stem, "eeg"):
			return FormatEEGLab, nil
		case strings.Contains(stem, "eprime"),
			strings.Contains(stem, "e-prime"):
			return FormatEPrime, nil
		default:
			return FormatEEGLab, nil
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnresolvedFormat, hint)
	}
}

// ArtifactName derives a default filename for a timeline exported in the
// given format: the timeline name lowercased with whitespace collapsed to
// underscores, an unnamed timeline falling back to "timeline". Marker
// formats carry their format name in the stem, which ResolveFormat reads
// back out of the bare artifact name
func ArtifactName(tl *Timeline, format Format) string {
	stem := strings.ToLower(strings.Join(strings.Fields(tl.Name), "_"))
	if stem == "" {
		stem = "timeline"
	}
	if format != FormatJSON {
		stem += "_" + string(format)
	}
	return stem + format.Extension()
}

// stimulusFile reduces a source path to the bare filename exporters emit
func stimulusFile(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// stimulusName is stimulusFile without its extension
func stimulusName(path string) string {
	base := stimulusFile(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
