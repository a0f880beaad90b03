package sensitive

import (
	"context"
	"log"
	"strings"

	"github.com/promptguard/promptguard/ollama"
)

const rewriterInstruction = "You are a prompt sanitizer. Analyze the user's prompt and rewrite it to " +
	"remove any sensitive data. If the user's request can be fulfilled without the sensitive information " +
	"(e.g., general questions about topics), rewrite the prompt without the sensitive data. If the " +
	"sensitive data is essential for the request (e.g., validating specific personal information), " +
	"politely ask the user to use the official website or service instead. Do not include any sensitive " +
	"data in your response. Keep the rewrite concise and helpful. Do not rewrite the sensitive data back " +
	"to the response."

// Rewriter produces a sanitized version of a flagged prompt
type Rewriter interface {
	Rewrite(ctx context.Context, text string) string
}

// ModelRewriter asks a text model to strip sensitive content from a
// prompt, or to redirect the user to an official channel when the
// sensitive data is essential. A failed call falls back to label-token
// redaction, so the result never round-trips through an error.
type ModelRewriter struct {
	client ollama.ChatClient
	model  string
}

func NewModelRewriter(client ollama.ChatClient, model string) *ModelRewriter {
	return &ModelRewriter{client: client, model: model}
}

// Rewrite returns a sanitized version of text
func (r *ModelRewriter) Rewrite(ctx context.Context, text string) string {
	rewritten, err := r.client.Chat(ctx, r.model, []ollama.Message{
		{Role: "system", Content: rewriterInstruction},
		{Role: "user", Content: text},
	})
	if err != nil {
		log.Printf("[Rewriter] Model error: %v. Falling back to redaction.", err)
		return Redact(text)
	}
	return strings.TrimSpace(rewritten)
}
