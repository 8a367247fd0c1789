package model

// Builders for attribute write payloads in the wire shape the workspace API
// expects. Every write site goes through these so the payload shapes stay
// consistent across collections.

// TextProperty builds a rich text attribute value.
func TextProperty(content string) map[string]any {
	return map[string]any{
		"rich_text": []any{
			map[string]any{"type": "text", "text": map[string]any{"content": content}},
		},
	}
}

// TitleProperty builds a title attribute value.
func TitleProperty(content string) map[string]any {
	return map[string]any{
		"title": []any{
			map[string]any{"type": "text", "text": map[string]any{"content": content}},
		},
	}
}

// NumberProperty builds a number attribute value.
func NumberProperty(value float64) map[string]any {
	return map[string]any{"number": value}
}

// SelectProperty builds a single choice attribute value.
func SelectProperty(option string) map[string]any {
	return map[string]any{"select": map[string]any{"name": option}}
}

// CheckboxProperty builds a boolean attribute value.
func CheckboxProperty(checked bool) map[string]any {
	return map[string]any{"checkbox": checked}
}

// DateProperty builds a date attribute value. An empty end means an open-ended
// date; the key is still present with a nil value, matching the remote API.
func DateProperty(start, end string) map[string]any {
	date := map[string]any{"start": start}
	if end != "" {
		date["end"] = end
	} else {
		date["end"] = nil
	}
	return map[string]any{"date": date}
}

// RelationLink builds a reference-link payload from a resolved identifier.
// An empty identifier yields the empty-link shape; this function never fails
// and centralizes the empty-vs-populated decision for every write site.
func RelationLink(resolvedID string) map[string]any {
	if resolvedID == "" {
		return map[string]any{"relation": []any{}}
	}
	return map[string]any{"relation": []any{map[string]any{"id": resolvedID}}}
}
