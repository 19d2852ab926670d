// Package transcoder reshapes raw engine output into protocol form:
// stop-word expansion and trimming for blocking responses, and fragment
// transduction for streaming ones.
package transcoder

import "strings"

// ExpandStopWords returns the stop set extended with newline-stripped
// variants of entries that carry leading newlines. Some tokenizers silently
// drop a leading newline when decoding, so "\nObservation:" may surface as
// "Observation:"; both must truncate. Duplicates are not added.
func ExpandStopWords(stopWords []string) []string {
	if len(stopWords) == 0 {
		return nil
	}
	expanded := make([]string, 0, 2*len(stopWords))
	expanded = append(expanded, stopWords...)
	for _, w := range stopWords {
		s := strings.TrimLeft(w, "\n")
		if s == "" {
			continue
		}
		seen := false
		for _, e := range expanded {
			if e == s {
				seen = true
				break
			}
		}
		if !seen {
			expanded = append(expanded, s)
		}
	}
	return expanded
}

// TrimStopWords truncates text at stop-word occurrences. Words are checked
// in order, each against the text as already truncated by earlier words.
// Idempotent: trimming an already-trimmed text with the same words is a
// no-op.
//
// A stop word that is itself a ReAct marker (for example "Observation:")
// truncates before the parser sees the marker; the parser re-synthesizes a
// trailing Observation in that case. A user-supplied stop word colliding
// with other markers truncates the visible text as specified, ambiguity and
// all.
func TrimStopWords(text string, stopWords []string) string {
	for _, stop := range stopWords {
		if stop == "" {
			continue
		}
		if idx := strings.Index(text, stop); idx != -1 {
			text = text[:idx]
		}
	}
	return text
}

// Transducer converts a fragment sequence into protocol content deltas,
// halting at the first fragment containing a stop word.
//
// The scan is per-fragment: a stop word split across a fragment boundary is
// not detected. That matches the delta granularity of the stream; sliding
// cross-fragment matching would require withholding output.
type Transducer struct {
	fragments <-chan string
	stopWords []string
	stopped   bool
}

// NewTransducer wraps a fragment channel. Empty stop words are ignored.
func NewTransducer(fragments <-chan string, stopWords []string) *Transducer {
	words := make([]string, 0, len(stopWords))
	for _, w := range stopWords {
		if w != "" {
			words = append(words, w)
		}
	}
	return &Transducer{fragments: fragments, stopWords: words}
}

// Next returns the next content delta. ok is false once the fragment
// sequence is exhausted or a stop word was hit; the fragment containing the
// stop word is never emitted.
func (t *Transducer) Next() (delta string, ok bool) {
	if t.stopped {
		return "", false
	}
	fragment, open := <-t.fragments
	if !open {
		t.stopped = true
		return "", false
	}
	for _, stop := range t.stopWords {
		if strings.Contains(fragment, stop) {
			t.stopped = true
			return "", false
		}
	}
	return fragment, true
}
