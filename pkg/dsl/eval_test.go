package dsl

import (
	"testing"

	"github.com/glowteam/glowrec/core"
)

func product() *core.Product {
	return &core.Product{
		ID:          "serum",
		Brand:       "GlowLab",
		Price:       45,
		Rating:      4.5,
		Ingredients: []string{"hyaluronic acid", "fragrance"},
		SkinTypes:   []core.SkinType{core.SkinTypeDry},
		Sustainable: true,
	}
}

func TestRuleMatch(t *testing.T) {
	profile := &core.UserProfile{UserID: "u", SkinType: core.SkinTypeSensitive}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"empty expression is always true", "", true},
		{"price comparison", "product.price <= 50.0", true},
		{"rating and brand", `product.rating >= 4.0 && product.brand == "GlowLab"`, true},
		{"ingredient membership", `"fragrance" in product.ingredients`, true},
		{"user side", `user.skin_type == "sensitive"`, true},
		{"combined", `"fragrance" in product.ingredients && user.skin_type == "sensitive"`, true},
		{"no match", `product.price > 100.0`, false},
		{"sustainable flag", "product.sustainable && product.rating > 4.8", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}
			got, err := rule.Match(product(), profile, nil)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompileRejectsMalformedExpression(t *testing.T) {
	if _, err := Compile("product.price >="); err == nil {
		t.Fatal("Compile() must reject malformed expressions")
	}
}

func TestMatchRejectsNonBooleanResult(t *testing.T) {
	rule, err := Compile("product.price")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := rule.Match(product(), nil, nil); err == nil {
		t.Fatal("Match() must reject non-boolean expressions")
	}
}

func TestMatchMissingUserKeyIsAnError(t *testing.T) {
	rule, err := Compile(`user.skin_type == "dry"`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := rule.Match(product(), nil, nil); err == nil {
		t.Fatal("Match() must surface missing key errors")
	}
}
