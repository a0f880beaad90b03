package sensitive

import "regexp"

// PatternRule pairs a compiled expression with the kind of data it flags
type PatternRule struct {
	Label   string
	Pattern *regexp.Regexp
}

// RedactionRule pairs a compiled expression with its replacement token
type RedactionRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// detectionRules is the ordered fallback rule set used when the model
// is unreachable or answers negative. Deliberately coarse; it leans
// toward over-flagging mechanically structured data.
var detectionRules = []PatternRule{
	{"PHONE", regexp.MustCompile(`(?i)\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{"SSN", regexp.MustCompile(`(?i)\b\d{3}-\d{2}-\d{4}\b`)},
	{"CREDIT_CARD", regexp.MustCompile(`(?i)\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`)},
	{"ACCOUNT_NUMBER", regexp.MustCompile(`(?i)\b\d{9,}\b`)},
	{"API_KEY", regexp.MustCompile(`(?i)\b[A-Za-z0-9]{20,}\b`)},
	{"ROUTING_NUMBER", regexp.MustCompile(`(?i)\b\d{9}-\d{1,2}\b`)},
}

// redactionRules is the last-resort rewrite applied when the model
// rewriter is unavailable. Rules run left-to-right on the progressively
// modified string, so earlier rules win on overlapping matches.
var redactionRules = []RedactionRule{
	{regexp.MustCompile(`(?i)\b\d{3}-\d{2}-\d{4}\b`), "[REDACTED SSN]"},
	{regexp.MustCompile(`(?i)\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`), "[REDACTED CREDIT CARD]"},
	{regexp.MustCompile(`(?i)\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`), "[REDACTED PHONE]"},
}

// MatchesPattern reports whether text matches any detection rule,
// short-circuiting on the first hit
func MatchesPattern(text string) bool {
	for _, rule := range detectionRules {
		if rule.Pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// Redact replaces every match of the redaction rules with its label token
func Redact(text string) string {
	redacted := text
	for _, rule := range redactionRules {
		redacted = rule.Pattern.ReplaceAllString(redacted, rule.Replacement)
	}
	return redacted
}
