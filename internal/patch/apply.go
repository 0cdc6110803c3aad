package patch

import "strings"

// Apply runs edits against text in order and returns the new text together with
// one Outcome per edit.
//
// Each edit sees the text produced by the edits before it. An edit whose anchor
// is missing never aborts the sequence.
func Apply(text string, edits []Edit) (string, []Outcome) {
	outcomes := make([]Outcome, 0, len(edits))
	for _, e := range edits {
		var out Outcome
		text, out = applyOne(text, e)
		outcomes = append(outcomes, out)
	}
	return text, outcomes
}

func applyOne(text string, e Edit) (string, Outcome) {
	out := Outcome{Edit: e.Name, Target: e.Target}
	guard := e.Guard()

	if Matches(guard, text) {
		out.Status = StatusSkipped
		return text, out
	}

	updated, status, detail := splice(text, e)
	out.Status = status
	out.Detail = detail

	if !status.Changed() {
		return text, out
	}

	if !Matches(guard, updated) {
		out.Status = StatusRejected
		out.Detail = "guard " + describe(guard) + " does not match after edit"
		return text, out
	}

	return updated, out
}

func splice(text string, e Edit) (string, Status, string) {
	start, end, found := Last(e.Detect, text)
	if found {
		switch e.Strategy {
		case BeforeAnchor:
			return text[:start] + e.Insertion + text[start:], StatusApplied, ""
		case AfterAnchor, AppendIfMissing:
			return text[:end] + e.Insertion + text[end:], StatusApplied, ""
		case ReplaceAnchor:
			return text[:start] + e.Insertion + text[end:], StatusApplied, ""
		}
		return text, StatusMissing, "unknown strategy " + e.Strategy.String()
	}

	if e.Strategy == AppendIfMissing {
		return appendText(text, e.Insertion), StatusFallback, "appended at end of file"
	}

	fallback := e.FallbackText
	if fallback == "" {
		fallback = e.Insertion
	}

	switch e.Fallback {
	case FallbackAppend:
		return appendText(text, fallback), StatusFallback, "anchor " + describe(e.Detect) + " not found, appended"
	case FallbackPrepend:
		return prependText(text, fallback), StatusFallback, "anchor " + describe(e.Detect) + " not found, prepended"
	default:
		return text, StatusMissing, "anchor " + describe(e.Detect) + " not found"
	}
}

func appendText(text, insertion string) string {
	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(insertion)
	if !strings.HasSuffix(insertion, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

func prependText(text, insertion string) string {
	if !strings.HasSuffix(insertion, "\n") {
		insertion += "\n"
	}
	return insertion + text
}

func describe(p Pattern) string {
	if p == nil {
		return "<none>"
	}
	return p.String()
}
