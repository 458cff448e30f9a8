package driven

// NarrativeConverter turns markup into clean narrative text.
//
// Conversion is best effort and never fails: malformed HTML degrades to
// whatever readable text can be salvaged, and empty input yields an
// empty string.
type NarrativeConverter interface {
	// ToNarrative converts HTML markup to plain narrative text.
	ToNarrative(html string) string
}
