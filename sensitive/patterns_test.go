package sensitive

import (
	"strings"
	"testing"
)

func TestMatchesPattern(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "plain question",
			text:     "What is the capital of France?",
			expected: false,
		},
		{
			name:     "empty string",
			text:     "",
			expected: false,
		},
		{
			name:     "phone number with dashes",
			text:     "call me at 555-123-4567",
			expected: true,
		},
		{
			name:     "phone number with dots",
			text:     "call me at 555.123.4567",
			expected: true,
		},
		{
			name:     "ssn",
			text:     "My SSN is 123-45-6789, what is it used for?",
			expected: true,
		},
		{
			name:     "credit card with spaces",
			text:     "charge 4111 1111 1111 1111 please",
			expected: true,
		},
		{
			name:     "credit card without separators",
			text:     "card 4111111111111111",
			expected: true,
		},
		{
			name:     "bare digit run of nine",
			text:     "account 123456789",
			expected: true,
		},
		{
			name:     "long alphanumeric token",
			text:     "my key is sk1234567890abcdefghij",
			expected: true,
		},
		{
			name:     "routing number shape",
			text:     "routing 123456789-12",
			expected: true,
		},
		{
			name:     "short digit run is fine",
			text:     "I have 12345678 reasons",
			expected: false,
		},
		{
			name:     "name and email are not flagged",
			text:     "John Smith can be reached about the meeting",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesPattern(tc.text); got != tc.expected {
				t.Errorf("MatchesPattern(%q) = %t, expected %t", tc.text, got, tc.expected)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "ssn",
			text:     "My SSN is 123-45-6789, what is it used for?",
			expected: "My SSN is [REDACTED SSN], what is it used for?",
		},
		{
			name:     "phone",
			text:     "call me at 555-123-4567",
			expected: "call me at [REDACTED PHONE]",
		},
		{
			name:     "credit card wins over phone on overlapping digits",
			text:     "card 4111-1111-1111-1111",
			expected: "card [REDACTED CREDIT CARD]",
		},
		{
			name:     "multiple kinds in one prompt",
			text:     "SSN 123-45-6789 and phone 555-123-4567",
			expected: "SSN [REDACTED SSN] and phone [REDACTED PHONE]",
		},
		{
			name:     "nothing to redact",
			text:     "What is the capital of France?",
			expected: "What is the capital of France?",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Redact(tc.text); got != tc.expected {
				t.Errorf("Redact(%q) = %q, expected %q", tc.text, got, tc.expected)
			}
		})
	}
}

func TestRedact_Idempotent(t *testing.T) {
	text := "My SSN is 123-45-6789, what is it used for?"
	once := Redact(text)
	twice := Redact(once)

	if once != twice {
		t.Errorf("Redact is not idempotent: first pass %q, second pass %q", once, twice)
	}
	if strings.Contains(once, "123-45-6789") {
		t.Errorf("Redacted text still contains the original SSN: %q", once)
	}
}
