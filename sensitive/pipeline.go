package sensitive

import (
	"context"
	"log"

	"github.com/promptguard/promptguard/config"
)

// Request is a single inbound check. Text is always present (possibly
// empty); Image, when set, is a self-contained base64 still image.
type Request struct {
	Text  string
	Image string
}

// Response reports the classification outcome. ModifiedText is set only
// when sensitive text was detected and no image was present; flagged
// images are reported but never rewritten.
type Response struct {
	Sensitive    bool
	ModifiedText *string
}

// Pipeline routes a request to the image or text detector and, for
// sensitive text, produces a sanitized rewrite. It holds no mutable
// state and is safe to share across requests.
type Pipeline struct {
	textDetector  *TextDetector
	imageDetector *ImageDetector
	rewriter      Rewriter
	logging       config.LoggingConfig
}

func NewPipeline(classifier Classifier, rewriter Rewriter, logging config.LoggingConfig) *Pipeline {
	return &Pipeline{
		textDetector:  NewTextDetector(classifier),
		imageDetector: NewImageDetector(classifier),
		rewriter:      rewriter,
		logging:       logging,
	}
}

// Handle classifies the request and rewrites sensitive text. Every
// failure inside the sub-calls resolves to a deterministic fallback, so
// Handle always returns a valid response.
func (p *Pipeline) Handle(ctx context.Context, req Request) Response {
	if req.Image != "" {
		sensitive := p.imageDetector.IsSensitive(ctx, req.Image)
		if p.logging.GetLogDecisions() {
			log.Printf("[Pipeline] Image checked: sensitive=%t", sensitive)
		}
		return Response{Sensitive: sensitive}
	}

	sensitive := p.textDetector.IsSensitive(ctx, req.Text)
	if p.logging.GetLogDecisions() {
		log.Printf("[Pipeline] Text checked: sensitive=%t", sensitive)
		if p.logging.GetLogVerbose() {
			log.Printf("[Pipeline] Text content: %s", req.Text)
		}
	}
	if !sensitive {
		return Response{Sensitive: false}
	}

	modified := p.rewriter.Rewrite(ctx, req.Text)
	if p.logging.GetLogDecisions() && p.logging.GetLogVerbose() {
		log.Printf("[Pipeline] Rewritten prompt: %s", modified)
	}
	return Response{Sensitive: true, ModifiedText: &modified}
}
