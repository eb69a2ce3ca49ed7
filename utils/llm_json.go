package utils

// LLM responses embed JSON in prose ("Sure! Here is the answer: {...} thanks"),
// so callers scan for the first balanced block instead of decoding the whole
// message.

// ExtractJSONObject returns the first brace-balanced {...} block in text.
func ExtractJSONObject(text string) (string, bool) {
	return extractBalanced(text, '{', '}')
}

// ExtractJSONArray returns the first bracket-balanced [...] block in text.
func ExtractJSONArray(text string) (string, bool) {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if start >= 0 {
				inString = true
			}
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case close:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
