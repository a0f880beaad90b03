package sensitive

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestModelRewriter_Success(t *testing.T) {
	client := &scriptedChatClient{reply: "  Please describe what an SSN is used for.\n"}
	rewriter := NewModelRewriter(client, "llama3")

	got := rewriter.Rewrite(context.Background(), "My SSN is 123-45-6789, what is it used for?")
	if got != "Please describe what an SSN is used for." {
		t.Errorf("Expected trimmed model reply, got %q", got)
	}

	if client.lastModel != "llama3" {
		t.Errorf("Expected model 'llama3', got '%s'", client.lastModel)
	}
	if len(client.lastMessages) != 2 || client.lastMessages[0].Role != "system" {
		t.Errorf("Expected system instruction plus user turn, got %+v", client.lastMessages)
	}
}

func TestModelRewriter_FallbackRedactsSSN(t *testing.T) {
	client := &scriptedChatClient{err: errors.New("connection refused")}
	rewriter := NewModelRewriter(client, "llama3")

	got := rewriter.Rewrite(context.Background(), "My SSN is 123-45-6789, what is it used for?")

	if strings.Contains(got, "123-45-6789") {
		t.Errorf("Fallback output still contains the original SSN: %q", got)
	}
	if !strings.Contains(got, "[REDACTED SSN]") {
		t.Errorf("Expected fallback output to contain '[REDACTED SSN]', got %q", got)
	}
}

func TestModelRewriter_FallbackRedactsPhone(t *testing.T) {
	client := &scriptedChatClient{err: errors.New("timeout")}
	rewriter := NewModelRewriter(client, "llama3")

	got := rewriter.Rewrite(context.Background(), "call me at 555-123-4567")

	if strings.Contains(got, "555-123-4567") {
		t.Errorf("Fallback output still contains the phone number: %q", got)
	}
	if !strings.Contains(got, "[REDACTED PHONE]") {
		t.Errorf("Expected fallback output to contain '[REDACTED PHONE]', got %q", got)
	}
}
