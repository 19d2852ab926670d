package transcoder

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExpandStopWords(t *testing.T) {
	Convey("expand stop words", t, func() {
		Convey("empty input yields nil", func() {
			So(ExpandStopWords(nil), ShouldBeNil)
			So(ExpandStopWords([]string{}), ShouldBeNil)
		})

		Convey("leading newlines produce stripped variants", func() {
			So(ExpandStopWords([]string{"\nObservation:"}),
				ShouldResemble, []string{"\nObservation:", "Observation:"})
		})

		Convey("existing variants are not duplicated", func() {
			So(ExpandStopWords([]string{"\nObservation:", "Observation:"}),
				ShouldResemble, []string{"\nObservation:", "Observation:"})
		})

		Convey("words without leading newline pass through", func() {
			So(ExpandStopWords([]string{"<|im_end|>"}),
				ShouldResemble, []string{"<|im_end|>"})
		})

		Convey("pure-newline words do not add empty variants", func() {
			So(ExpandStopWords([]string{"\n\n"}), ShouldResemble, []string{"\n\n"})
		})
	})
}

func TestTrimStopWords(t *testing.T) {
	Convey("trim stop words", t, func() {
		Convey("truncates at the first occurrence", func() {
			So(TrimStopWords("hello Observation: world", []string{"Observation:"}),
				ShouldEqual, "hello ")
		})

		Convey("words apply sequentially", func() {
			So(TrimStopWords("a STOP1 b STOP2 c", []string{"STOP2", "STOP1"}),
				ShouldEqual, "a ")
		})

		Convey("is idempotent", func() {
			stops := []string{"<|im_end|>", "Observation:"}
			once := TrimStopWords("answer<|im_end|>junk", stops)
			So(once, ShouldEqual, "answer")
			So(TrimStopWords(once, stops), ShouldEqual, once)
		})

		Convey("ignores empty words and missing words", func() {
			So(TrimStopWords("untouched", []string{"", "absent"}),
				ShouldEqual, "untouched")
		})
	})
}

func TestTransducer(t *testing.T) {
	collect := func(fragments []string, stopWords []string) []string {
		ch := make(chan string, len(fragments))
		for _, f := range fragments {
			ch <- f
		}
		close(ch)

		transducer := NewTransducer(ch, stopWords)
		var out []string
		for {
			delta, ok := transducer.Next()
			if !ok {
				break
			}
			out = append(out, delta)
		}
		return out
	}

	Convey("transducer", t, func() {
		Convey("passes fragments through without stop words", func() {
			So(collect([]string{"Hel", "lo"}, nil),
				ShouldResemble, []string{"Hel", "lo"})
		})

		Convey("halts at a stop-word fragment and never emits it", func() {
			So(collect([]string{"Hel", "lo Wor", "ld"}, []string{"Wor"}),
				ShouldResemble, []string{"Hel"})
		})

		Convey("does not match stop words split across fragments", func() {
			// Matching is per-fragment; a stop word straddling a boundary
			// slips through.
			So(collect([]string{"Hel", "lo Wor", "ld"}, []string{"World"}),
				ShouldResemble, []string{"Hel", "lo Wor", "ld"})
		})

		Convey("stays stopped after exhaustion", func() {
			ch := make(chan string)
			close(ch)
			transducer := NewTransducer(ch, nil)
			_, ok := transducer.Next()
			So(ok, ShouldBeFalse)
			_, ok = transducer.Next()
			So(ok, ShouldBeFalse)
		})
	})
}
