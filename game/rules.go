package game

import (
	"math/rand"
	"strings"
)

// Rule is the hidden criterion the player has to discover.
type Rule interface {
	Accepts(word string) bool
	Hint() string
}

const (
	// Letters rules are drawn from. There is no x: too few words use it.
	Letters    = "abcdefghijklmnopqrstuvwyz"
	Vowels     = "aeiou"
	Consonants = "bcdfghjklmnpqrstvwyz"
)

type ContainsRule struct {
	Letter byte
}

func (r ContainsRule) Accepts(word string) bool {
	return strings.IndexByte(word, r.Letter) >= 0
}

func (r ContainsRule) Hint() string {
	return "Hint: Guess my favorite letter!"
}

type EndsWithRule struct {
	Letters string
}

func (r EndsWithRule) Accepts(word string) bool {
	return word != "" && strings.IndexByte(r.Letters, word[len(word)-1]) >= 0
}

func (r EndsWithRule) Hint() string {
	return "Hint: The word ends with you!"
}

type StartsWithRule struct {
	Letters string
}

func (r StartsWithRule) Accepts(word string) bool {
	return word != "" && strings.IndexByte(r.Letters, word[0]) >= 0
}

func (r StartsWithRule) Hint() string {
	return "Hint: It all starts with the word itself..."
}

type LengthRule struct {
	Length int
}

func (r LengthRule) Accepts(word string) bool {
	return len(word) == r.Length
}

func (r LengthRule) Hint() string {
	return "Hint: Not too long, not too short..."
}

var notes = []string{"do", "re", "mi", "fa", "sol", "la", "ti"}

type MusicalRule struct{}

func (MusicalRule) Accepts(word string) bool {
	for _, n := range notes {
		if strings.Contains(word, n) {
			return true
		}
	}
	return false
}

func (MusicalRule) Hint() string {
	return "Hint: You hear sounds of music from the room..."
}

type DoubleLetterRule struct{}

func (DoubleLetterRule) Accepts(word string) bool {
	for i := 1; i < len(word); i++ {
		if word[i] == word[i-1] {
			return true
		}
	}
	return false
}

func (DoubleLetterRule) Hint() string {
	return "Hint: Double, Double, Toil and Trouble..."
}

// RuleBag deals rules from a shuffled batch so that every kind of rule
// comes up before any repeats.
type RuleBag struct {
	rnd  *rand.Rand
	next []Rule
}

func NewRuleBag(rnd *rand.Rand) *RuleBag {
	return &RuleBag{rnd: rnd}
}

func (b *RuleBag) refill() {
	letter := func() byte { return Letters[b.rnd.Intn(len(Letters))] }

	b.next = append(b.next,
		MusicalRule{},
		DoubleLetterRule{},
		EndsWithRule{Letters: Consonants},
		EndsWithRule{Letters: Vowels},
	)
	for i := 0; i < 3; i++ {
		b.next = append(b.next, StartsWithRule{Letters: string(letter())})
	}
	for i := 0; i < 6; i++ {
		b.next = append(b.next, ContainsRule{Letter: letter()})
	}
	for i := 0; i < 2; i++ {
		b.next = append(b.next, LengthRule{Length: 3 + b.rnd.Intn(4)})
	}
	b.rnd.Shuffle(len(b.next), func(i, j int) {
		b.next[i], b.next[j] = b.next[j], b.next[i]
	})
}

// Next deals the next rule.
func (b *RuleBag) Next() Rule {
	if len(b.next) == 0 {
		b.refill()
	}
	r := b.next[len(b.next)-1]
	b.next = b.next[:len(b.next)-1]
	return r
}

// Len returns the number of rules left in the current batch.
func (b *RuleBag) Len() int {
	return len(b.next)
}
