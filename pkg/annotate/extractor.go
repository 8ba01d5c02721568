package annotate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// FeedbackItem is one structurally validated unit of reviewer feedback.
type FeedbackItem struct {
	Excerpt     string `json:"excerpt"`
	CommentText string `json:"comment_text"`
}

// ExtractError reports why a raw payload could not be parsed. The raw text
// is carried along so callers can log it for diagnosis.
type ExtractError struct {
	Reason string
	Raw    string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("feedback extraction failed: %s", e.Reason)
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

type feedbackPayload struct {
	Comments []struct {
		TextExcerpt string `json:"text_excerpt"`
		Comment     string `json:"comment"`
	} `json:"comments"`
}

// ExtractFeedback parses the raw text a generation backend returned for one
// reviewer. The payload is expected to contain a single JSON object with a
// "comments" array, possibly wrapped in prose or markdown fences and possibly
// slightly malformed. Malformed input never panics: the function returns an
// empty list together with an *ExtractError describing the failure. A
// well-formed payload with zero comments is a valid empty result.
func ExtractFeedback(raw string) ([]FeedbackItem, error) {
	span := locateObject(stripFences(raw))
	if span == "" {
		return nil, &ExtractError{Reason: "no JSON object found in payload", Raw: raw}
	}

	payload, err := decodePayload(span)
	if err != nil {
		// One best-effort repair pass, then give up.
		payload, err = decodePayload(repairJSON(span))
		if err != nil {
			return nil, &ExtractError{Reason: err.Error(), Raw: raw}
		}
	}

	items := make([]FeedbackItem, 0, len(payload.Comments))
	for _, c := range payload.Comments {
		if c.TextExcerpt == "" || c.Comment == "" {
			continue
		}
		items = append(items, FeedbackItem{Excerpt: c.TextExcerpt, CommentText: c.Comment})
	}
	return items, nil
}

func decodePayload(span string) (*feedbackPayload, error) {
	var payload feedbackPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, err
	}
	if payload.Comments == nil {
		return nil, fmt.Errorf("payload has no comments array")
	}
	return &payload, nil
}

// stripFences removes markdown code-fence markers models habitually wrap
// JSON in (```json ... ```).
func stripFences(raw string) string {
	out := strings.ReplaceAll(raw, "```json", "")
	out = strings.ReplaceAll(out, "```JSON", "")
	out = strings.ReplaceAll(out, "```", "")
	return out
}

// locateObject returns the first greedy brace-delimited span. The payload
// format guarantees at most one object, so first '{' to last '}' is enough.
// If the closing brace is missing the span runs to the end of the text and
// the repair pass balances it.
func locateObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return text[start:]
	}
	return text[start : end+1]
}

// repairJSON fixes the malformations observed in practice: trailing commas
// before a closing brace/bracket, and unbalanced closing braces/brackets.
func repairJSON(span string) string {
	out := trailingCommaRe.ReplaceAllString(span, "$1")

	// Balance braces and brackets, ignoring characters inside strings.
	var depth, brackets int
	inString := false
	escaped := false
	for i := 0; i < len(out); i++ {
		c := out[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
			}
		case '[':
			if !inString {
				brackets++
			}
		case ']':
			if !inString {
				brackets--
			}
		}
	}
	if inString {
		out += `"`
	}
	for ; brackets > 0; brackets-- {
		out += "]"
	}
	for ; depth > 0; depth-- {
		out += "}"
	}
	return out
}
