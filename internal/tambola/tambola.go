package tambola

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/housielive/housie/internal/models"
)

// labelChars is the alphabet used for card labels
const labelChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// cardLabelLength is how many characters a card label has
const cardLabelLength = 6

// Generator produces cards and draw sequences
type Generator struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new generator
func New(cfg *Config) *Generator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &Generator{
		random: rand.New(source),
	}
}

// NewCardRows draws 15 distinct numbers from [1,90], sorts them ascending
// and splits them into three rows of five: rows[0] holds the lowest five,
// rows[2] the highest.
func (g *Generator) NewCardRows() [models.CardRows][models.CardRowSize]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	picked := make(map[int]bool, models.CardRows*models.CardRowSize)
	numbers := make([]int, 0, models.CardRows*models.CardRowSize)
	for len(numbers) < models.CardRows*models.CardRowSize {
		n := g.random.Intn(models.DrawPoolSize) + 1
		if picked[n] {
			continue
		}
		picked[n] = true
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)

	var rows [models.CardRows][models.CardRowSize]int
	for i := range rows {
		copy(rows[i][:], numbers[i*models.CardRowSize:(i+1)*models.CardRowSize])
	}

	return rows
}

// NewCardLabel returns a short human-readable card code.
func (g *Generator) NewCardLabel() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	label := make([]byte, cardLabelLength)
	for i := range label {
		label[i] = labelChars[g.random.Intn(len(labelChars))]
	}
	return string(label)
}

// NewDrawSequence returns a uniformly random permutation of 1..90 using a
// Fisher-Yates shuffle.
func (g *Generator) NewDrawSequence() []int {
	g.mu.Lock()
	defer g.mu.Unlock()

	numbers := make([]int, models.DrawPoolSize)
	for i := range numbers {
		numbers[i] = i + 1
	}

	for i := len(numbers) - 1; i > 0; i-- {
		j := g.random.Intn(i + 1)
		numbers[i], numbers[j] = numbers[j], numbers[i]
	}

	return numbers
}

// TicketLabel derives the human-readable ticket number for a slot offset
// within a session, e.g. "HOUSIE42-0007".
func TicketLabel(sessionCode string, slotOffset int) string {
	return fmt.Sprintf("%s-%04d", sessionCode, slotOffset)
}
