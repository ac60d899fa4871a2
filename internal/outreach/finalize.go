package outreach

import (
	"strings"
	"unicode/utf8"
)

// Finalize cleans a drafted body: placeholders are filled, whitespace is
// tidied and a greeting is added when the first name is missing.
func Finalize(body string, req Request) string {
	sender := req.Sender
	if sender == "" {
		sender = "[Recruiter Name]"
	}
	body = strings.NewReplacer(
		"[Your Name]", sender,
		"[Company]", firstNonEmpty(req.Company, "the company"),
		"[Role]", firstNonEmpty(req.Role, "this opportunity"),
	).Replace(body)

	body = cleanFormatting(body)

	if first := req.Candidate.FirstName(); first != "" && !strings.Contains(body, first) {
		body = "Hi " + first + ",\n\n" + body
	}
	return body
}

// cleanFormatting trims every line and collapses blank runs into one.
func cleanFormatting(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Truncate cuts s to at most limit runes. It ends at the last full sentence
// when that keeps more than 70% of the limit, with an ellipsis otherwise.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	cut := string([]rune(s)[:limit])
	if idx := strings.LastIndex(cut, "."); idx >= 0 && utf8.RuneCountInString(cut[:idx]) > limit*7/10 {
		return cut[:idx+1]
	}
	return strings.TrimSpace(cut) + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
