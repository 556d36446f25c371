package story

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"heritage_routes/internal/models"
)

const maxFallbackSentences = 8

// FallbackGenerator assembles a narrative from the object's own metadata.
// Used when no LLM is configured; deterministic for a given object and
// never fails.
type FallbackGenerator struct{}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

func (g *FallbackGenerator) Source() string {
	return "fallback:story-v1"
}

// Closing observations; one is chosen per object so every story does not
// end on the same line.
var fallbackTips = []string{
	"Notice how the building sits in its street: the scale and the facade line say a lot on their own.",
	"Look at the rhythm of the windows and the decorative details; they often give away the era.",
	"Walk around it if you can, different sides of the facade usually tell different stories.",
	"Compare the materials up close: stone, plaster and metal are clues to when it was built.",
}

func (g *FallbackGenerator) Generate(ctx context.Context, obj models.HeritageObject) (string, error) {
	var parts []string

	name := obj.Name
	if name == "" {
		name = "A heritage site"
	}
	addSentence(&parts, fmt.Sprintf("You are standing at %q.", name))

	if obj.Address != "" {
		addSentence(&parts, "Address: "+obj.Address)
	}
	if obj.ObjectType != "" {
		addSentence(&parts, "Type: "+obj.ObjectType)
	}
	if obj.BuildYear != "" {
		addSentence(&parts, "Built: "+obj.BuildYear)
	}
	if obj.District != "" {
		addSentence(&parts, "District: "+obj.District)
	}
	if obj.Category != "" {
		addSentence(&parts, "Category: "+obj.Category)
	}
	if obj.SecurityStatus != "" {
		addSentence(&parts, "Protection status: "+obj.SecurityStatus)
	}
	if obj.Description != "" {
		short := strings.TrimSpace(obj.Description)
		// Cut on runes; descriptions are mostly Cyrillic.
		if runes := []rune(short); len(runes) > 360 {
			cut := string(runes[:360])
			if i := strings.LastIndex(cut, " "); i > 0 {
				cut = cut[:i]
			}
			short = cut + "…"
		}
		addSentence(&parts, short)
	}

	if countSentences(strings.Join(parts, " ")) < 5 {
		key := fmt.Sprintf("%d", obj.ID)
		idx := int(sha256.Sum256([]byte(key))[0]) % len(fallbackTips)
		addSentence(&parts, fallbackTips[idx])
	}

	return strings.Join(parts, " "), nil
}

func addSentence(parts *[]string, sentence string) {
	if sentence == "" {
		return
	}
	if countSentences(strings.Join(*parts, " ")) >= maxFallbackSentences {
		return
	}
	if last := sentence[len(sentence)-1]; last != '.' && last != '!' && last != '?' {
		sentence += "."
	}
	*parts = append(*parts, sentence)
}

func countSentences(text string) int {
	n := 0
	for _, ch := range text {
		if ch == '.' || ch == '!' || ch == '?' {
			n++
		}
	}
	return n
}
