package sensitive

import (
	"context"
	"log"
)

// TextDetector combines the model classifier with the pattern rule set.
// The model is authoritative on a positive; a negative is double-checked
// against the patterns, and a failed model call falls back to the
// patterns alone.
type TextDetector struct {
	classifier Classifier
}

func NewTextDetector(classifier Classifier) *TextDetector {
	return &TextDetector{classifier: classifier}
}

// IsSensitive reports whether text contains sensitive data
func (d *TextDetector) IsSensitive(ctx context.Context, text string) bool {
	sensitive, err := d.classifier.ClassifyText(ctx, text)
	if err != nil {
		log.Printf("[TextDetector] Classifier error: %v. Falling back to pattern rules.", err)
		return MatchesPattern(text)
	}
	if sensitive {
		return true
	}
	// Second opinion: patterns can override a model negative, catching
	// mechanically structured data the model missed.
	return MatchesPattern(text)
}

// ImageDetector classifies image attachments. There is no deterministic
// fallback for pixel content, so a failed model call resolves to "not
// sensitive" (fail-open).
type ImageDetector struct {
	classifier Classifier
}

func NewImageDetector(classifier Classifier) *ImageDetector {
	return &ImageDetector{classifier: classifier}
}

// IsSensitive reports whether a base64 image contains sensitive data
func (d *ImageDetector) IsSensitive(ctx context.Context, imageB64 string) bool {
	sensitive, err := d.classifier.ClassifyImage(ctx, imageB64)
	if err != nil {
		log.Printf("[ImageDetector] Classifier error: %v. Treating image as not sensitive.", err)
		return false
	}
	return sensitive
}
