package story

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"gorm.io/gorm"

	"heritage_routes/internal/models"
)

func TestFallbackDeterministic(t *testing.T) {
	g := NewFallbackGenerator()
	obj := models.HeritageObject{
		Model:      gorm.Model{ID: 42},
		Name:       "Merchant house",
		Address:    "Main street, 1",
		ObjectType: "building",
		BuildYear:  "1890",
	}

	first, err := g.Generate(context.Background(), obj)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, _ := g.Generate(context.Background(), obj)
	if first != second {
		t.Error("fallback text not deterministic")
	}
	if !strings.Contains(first, "Merchant house") {
		t.Errorf("narrative does not mention the object name: %q", first)
	}
}

func TestFallbackSentenceCap(t *testing.T) {
	g := NewFallbackGenerator()
	obj := models.HeritageObject{
		Model:          gorm.Model{ID: 7},
		Name:           "Chapel",
		Address:        "Hill road, 3",
		District:       "Old town",
		AdmArea:        "Center",
		ObjectType:     "chapel",
		Category:       "regional",
		SecurityStatus: "protected",
		BuildYear:      "1780",
		Description:    "A small chapel. Rebuilt twice. Still in use. Known for its bell.",
	}

	text, err := g.Generate(context.Background(), obj)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := countSentences(text); n > maxFallbackSentences {
		t.Errorf("narrative has %d sentences, cap is %d", n, maxFallbackSentences)
	}
}

func TestFallbackLongCyrillicDescription(t *testing.T) {
	g := NewFallbackGenerator()
	obj := models.HeritageObject{
		Model:       gorm.Model{ID: 9},
		Name:        "Усадьба",
		Description: strings.Repeat("Здание", 200),
	}

	text, err := g.Generate(context.Background(), obj)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !utf8.ValidString(text) {
		t.Error("truncation produced invalid UTF-8")
	}
	if !strings.Contains(text, "…") {
		t.Error("long description was not shortened")
	}
}

func TestFallbackMinimalObject(t *testing.T) {
	g := NewFallbackGenerator()
	text, err := g.Generate(context.Background(), models.HeritageObject{Model: gorm.Model{ID: 1}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text == "" {
		t.Error("expected non-empty narrative for a bare object")
	}
}
