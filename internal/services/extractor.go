package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"wearwise/style-advisor/internal/models"
)

var (
	imagePromptPattern   = regexp.MustCompile(`IMAGE_PROMPT_\d+:[ \t]*([^\r\n]*)`)
	searchKeywordPattern = regexp.MustCompile(`\(검색 키워드:\s*([^)]*)\)`)
)

// ExtractJSONObject returns the first balanced JSON object embedded in raw,
// ignoring surrounding prose and code fences.
func ExtractJSONObject(raw string) (json.RawMessage, error) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return nil, &MalformedResponseError{Reason: "no JSON object found", Raw: raw}
	}

	for start != -1 {
		if end := matchingBrace(raw, start); end != -1 {
			candidate := raw[start : end+1]
			var probe map[string]any
			if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
				return nil, &MalformedResponseError{Reason: "JSON object does not parse", Raw: candidate, Err: err}
			}
			return json.RawMessage(candidate), nil
		}
		next := strings.IndexByte(raw[start+1:], '{')
		if next == -1 {
			break
		}
		start += next + 1
	}

	return nil, &MalformedResponseError{Reason: "unbalanced JSON object", Raw: raw}
}

// matchingBrace returns the index of the brace closing the one at open, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false

	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ExtractImagePrompts returns IMAGE_PROMPT_<n> contents in the order they appear.
func ExtractImagePrompts(raw string) []string {
	prompts := []string{}
	for _, m := range imagePromptPattern.FindAllStringSubmatch(raw, -1) {
		content := strings.TrimSpace(m[1])
		if content == "" {
			continue
		}
		prompts = append(prompts, content)
	}
	return prompts
}

// ExtractSearchKeywords returns the distinct keyword annotations in first-seen order.
func ExtractSearchKeywords(raw string) []string {
	keywords := []string{}
	seen := make(map[string]struct{})
	for _, m := range searchKeywordPattern.FindAllStringSubmatch(raw, -1) {
		keyword := strings.TrimSpace(m[1])
		if keyword == "" {
			continue
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		keywords = append(keywords, keyword)
	}
	return keywords
}

// DisplayText strips prompt lines and keyword annotations, then trims.
func DisplayText(raw string) string {
	text := imagePromptPattern.ReplaceAllString(raw, "")
	text = searchKeywordPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ExtractRecommendation splits a recommendation reply into display text,
// image prompts and search keywords.
func ExtractRecommendation(raw string) models.RecommendationResult {
	return models.RecommendationResult{
		DisplayText:    DisplayText(raw),
		ImagePrompts:   ExtractImagePrompts(raw),
		SearchKeywords: ExtractSearchKeywords(raw),
	}
}
