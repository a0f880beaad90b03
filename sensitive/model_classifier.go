package sensitive

import (
	"context"
	"strings"

	"github.com/promptguard/promptguard/ollama"
)

const textClassifierInstruction = "You are a security expert. Determine if the following text contains " +
	"sensitive information such as Social Security numbers, phone numbers, addresses, PAN card numbers, " +
	"credit card numbers, bank account numbers, API keys, passwords, or other confidential data. " +
	"Do NOT flag personal names or generic emails as sensitive. Answer only 'yes' or 'no'."

const imageClassifierInstruction = "You are a specialized agent for detecting sensitive data in images. " +
	"Be thorough but conservative - only flag clear instances of confidential information."

const imageClassifierPrompt = "As a security expert, analyze this image for any sensitive or confidential " +
	"information. Look for text or visual elements that could be personal identifiable information (PII) " +
	"such as credit card numbers, Social Security numbers, phone numbers, addresses, API keys, passwords, " +
	"email addresses, or other private data. Do not flag generic or public information. " +
	"Answer only 'yes' if sensitive data is clearly present, otherwise 'no'."

// ModelClassifier asks a vision-capable chat model whether content is
// sensitive and parses a strict yes/no out of the free-form reply.
type ModelClassifier struct {
	client ollama.ChatClient
	model  string
}

func NewModelClassifier(client ollama.ChatClient, model string) *ModelClassifier {
	return &ModelClassifier{client: client, model: model}
}

// GetName returns the name of this classifier
func (m *ModelClassifier) GetName() string {
	return ClassifierNameModel
}

// ClassifyText asks the model whether text contains sensitive data.
// A single call, no retry; errors propagate so the caller can fall back.
func (m *ModelClassifier) ClassifyText(ctx context.Context, text string) (bool, error) {
	answer, err := m.client.Chat(ctx, m.model, []ollama.Message{
		{Role: "system", Content: textClassifierInstruction},
		{Role: "user", Content: text},
	})
	if err != nil {
		return false, err
	}
	return isAffirmative(answer), nil
}

// ClassifyImage asks the model whether a base64 image contains sensitive data
func (m *ModelClassifier) ClassifyImage(ctx context.Context, imageB64 string) (bool, error) {
	answer, err := m.client.Chat(ctx, m.model, []ollama.Message{
		{Role: "system", Content: imageClassifierInstruction},
		{Role: "user", Content: imageClassifierPrompt, Images: []string{imageB64}},
	})
	if err != nil {
		return false, err
	}
	return isAffirmative(answer), nil
}

// Close implements the Classifier interface
func (m *ModelClassifier) Close() error {
	// Nothing to clean up for the remote model
	return nil
}

// isAffirmative requires an exact "yes" after trimming and lowercasing.
// Anything else, including partial affirmatives, counts as a negative.
func isAffirmative(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "yes"
}
