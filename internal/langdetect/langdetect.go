package langdetect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// ErrUndetermined indicates the detector could not settle on a language,
// typically for very short or symbol-only input.
var ErrUndetermined = errors.New("language could not be determined")

// Detector returns a best-guess ISO 639-1 language code for a text snippet.
// Detection is statistical and may be wrong on short or ambiguous input.
type Detector interface {
	Detect(text string) (string, error)
}

// linguaDetector wraps a lingua language detector restricted to the languages
// the bot advertises. The underlying detector is safe for concurrent use.
type linguaDetector struct {
	detector lingua.LanguageDetector
}

// New builds a Detector. Building loads the statistical language models, so
// construct once at startup and share the instance.
func New() Detector {
	languages := []lingua.Language{
		lingua.English,
		lingua.Hindi,
		lingua.Tamil,
		lingua.Telugu,
		lingua.Gujarati,
		lingua.Marathi,
		lingua.Bengali,
		lingua.Punjabi,
	}

	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

func (d *linguaDetector) Detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("detect language of empty text: %w", ErrUndetermined)
	}

	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrUndetermined
	}
	return strings.ToLower(language.IsoCode639_1().String()), nil
}
