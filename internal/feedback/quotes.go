package feedback

import (
	"math/rand"
	"sync"
	"time"

	"grandmatimer/internal/core/model"
)

// BreakMessage is shown for the whole break phase.
const BreakMessage = "Time for a little break, sweetie! Would you like some cookies? 🍪"

var grandmaQuotes = []string{
	"You're doing wonderful, sweetie! Keep going!",
	"Remember to sit up straight, dear!",
	"Grandma is so proud of your hard work!",
	"Don't forget to take breaks, my love!",
	"You remind me of your father/mother when they were studying!",
}

// Quotes returns a copy of the encouragement messages.
func Quotes() []string {
	return append([]string(nil), grandmaQuotes...)
}

// QuotePicker chooses encouragement messages.
type QuotePicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuotePicker creates a picker over source, or a time-seeded source when
// source is nil.
func NewQuotePicker(source rand.Source) *QuotePicker {
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	return &QuotePicker{rng: rand.New(source)}
}

// Random picks one encouragement uniformly.
func (picker *QuotePicker) Random() string {
	picker.mu.Lock()
	defer picker.mu.Unlock()
	return grandmaQuotes[picker.rng.Intn(len(grandmaQuotes))]
}

// Message returns what grandma says during phase.
func (picker *QuotePicker) Message(phase model.Phase) string {
	if phase == model.PhaseBreak {
		return BreakMessage
	}
	return picker.Random()
}
