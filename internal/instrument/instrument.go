// internal/instrument/instrument.go
//
// The DASS-21 item catalog and its fixed response scale.
// Nothing in here is user-editable; the wording and ordering come from the
// published instrument and every other package indexes into it.

package instrument

import "fmt"

// ItemCount is the number of statements in the DASS-21.
const ItemCount = 21

// Item is one statement of the instrument. Index is 1-based.
type Item struct {
	Index int
	Text  string
}

var items = [ItemCount]string{
	"I found it hard to wind down",
	"I was aware of dryness of my mouth",
	"I couldn't seem to experience any positive feeling at all",
	"I experienced breathing difficulty (e.g., excessively rapid breathing, breathlessness in the absence of physical exertion)",
	"I found it difficult to work up the initiative to do things",
	"I tended to over-react to situations",
	"I experienced trembling (e.g., in the hands)",
	"I felt that I was using a lot of nervous energy",
	"I was worried about situations in which I might panic and make a fool of myself",
	"I felt that I had nothing to look forward to",
	"I found myself getting agitated",
	"I found it difficult to relax",
	"I felt down-hearted and blue",
	"I was intolerant of anything that kept me from getting on with what I was doing",
	"I felt I was close to panic",
	"I was unable to become enthusiastic about anything",
	"I felt I wasn't worth much as a person",
	"I felt that I was rather touchy",
	"I was aware of the beating of my heart in the absence of physical exertion (e.g., sense of heart rate increase, heart missing a beat)",
	"I felt scared without any good reason",
	"I felt that life was meaningless",
}

// Items returns the ordered catalog. The slice is a fresh copy.
func Items() []Item {
	out := make([]Item, ItemCount)
	for i, text := range items {
		out[i] = Item{Index: i + 1, Text: text}
	}
	return out
}

// ItemAt returns the item with the given 1-based index.
func ItemAt(index int) (Item, error) {
	if !ValidIndex(index) {
		return Item{}, fmt.Errorf("instrument: item %d out of range 1..%d", index, ItemCount)
	}
	return Item{Index: index, Text: items[index-1]}, nil
}

// ValidIndex reports whether index addresses an item.
func ValidIndex(index int) bool {
	return index >= 1 && index <= ItemCount
}

// Response is a Likert answer on the 0..3 scale.
type Response int

const (
	DidNotApply         Response = 0
	AppliedSomeDegree   Response = 1
	AppliedConsiderably Response = 2
	AppliedVeryMuch     Response = 3
)

// MinResponse and MaxResponse bound the scale.
const (
	MinResponse = DidNotApply
	MaxResponse = AppliedVeryMuch
)

var responseLabels = [...]string{
	"Did not apply to me at all",
	"Applied to me to some degree",
	"Applied to me a considerable degree",
	"Applied to me very much or most of the time",
}

// Valid reports whether r is on the scale.
func (r Response) Valid() bool {
	return r >= MinResponse && r <= MaxResponse
}

// Label returns the fixed wording for r, or "" when r is off the scale.
func (r Response) Label() string {
	if !r.Valid() {
		return ""
	}
	return responseLabels[r]
}

// Option pairs a scale value with its label for rendering.
type Option struct {
	Value Response
	Label string
}

// Options lists the response scale in ascending order.
func Options() []Option {
	out := make([]Option, 0, len(responseLabels))
	for v := MinResponse; v <= MaxResponse; v++ {
		out = append(out, Option{Value: v, Label: v.Label()})
	}
	return out
}
