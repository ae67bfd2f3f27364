package survey

import (
	"fmt"
	"sort"
)

// Detector dispatches a survey URL to the extractor for its platform.
//
// The registry is built once at construction and is immutable afterwards.
// Entries are evaluated first-match, ordered by marker specificity (longest
// host + path prefix first), so docs.google.com/forms is tried before any
// broader google.com pattern a future extractor might register.
type Detector struct {
	entries []detectorEntry
}

type detectorEntry struct {
	marker    Marker
	extractor Extractor
}

// NewDetector builds a detector over the given extractors.
func NewDetector(extractors ...Extractor) *Detector {
	var entries []detectorEntry
	for _, ex := range extractors {
		for _, m := range ex.Markers() {
			entries = append(entries, detectorEntry{marker: m, extractor: ex})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].marker.specificity() > entries[j].marker.specificity()
	})
	return &Detector{entries: entries}
}

// Detect returns the extractor responsible for the URL. Pure pattern test,
// no network.
func (d *Detector) Detect(rawURL string) (Extractor, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	for _, e := range d.entries {
		if e.marker.matches(u) {
			return e.extractor, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, u.Hostname())
}
