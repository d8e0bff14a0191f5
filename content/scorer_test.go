package content

import (
	"reflect"
	"strings"
	"testing"

	"github.com/glowteam/glowrec/core"
)

func testVectorizer() *Vectorizer {
	return NewVectorizer(
		[]IngredientWeight{
			{Name: "hyaluronic acid", Weight: 0.9},
			{Name: "niacinamide", Weight: 0.8},
			{Name: "retinol", Weight: 0.7},
		},
		PriceTiers{Low: 20, Medium: 50, High: 100},
	)
}

func TestVectorLayoutInvariant(t *testing.T) {
	v := testVectorizer()
	wantDim := v.Dim()

	products := []*core.Product{
		{ID: "p1", SkinTypes: []core.SkinType{core.SkinTypeDry}, Ingredients: []string{"Hyaluronic Acid"}},
		{ID: "p2"}, // 全空字段
		{ID: "p3", SkinConcerns: core.SkinConcerns, Price: 500, Rating: 5, Sustainable: true},
	}
	for _, p := range products {
		if got := len(v.ProductVector(p)); got != wantDim {
			t.Errorf("ProductVector(%s) len = %d, want %d", p.ID, got, wantDim)
		}
	}

	profiles := []*core.UserProfile{
		core.NewUserProfile("u1", core.SkinTypeOily),
		{UserID: "u2", SkinType: core.SkinTypeDry, SkinConcerns: core.SkinConcerns, Sustainability: true},
	}
	histories := [][]*core.Product{nil, {products[0], products[2]}}
	for _, profile := range profiles {
		for _, history := range histories {
			if got := len(v.UserVector(profile, history)); got != wantDim {
				t.Errorf("UserVector(%s, history len %d) len = %d, want %d",
					profile.UserID, len(history), got, wantDim)
			}
		}
	}
}

func TestProductVectorFields(t *testing.T) {
	v := testVectorizer()
	p := &core.Product{
		ID:           "serum",
		Price:        30, // [Low, Medium) → 0.5
		Rating:       4,
		SkinTypes:    []core.SkinType{core.SkinTypeDry},
		SkinConcerns: []core.SkinConcern{core.ConcernDryness},
		Sustainable:  true,
		Ingredients:  []string{"Aqua", "Sodium Hyaluronate with Hyaluronic Acid"},
	}
	vec := v.ProductVector(p)

	// 肤质 one-hot：dry 是枚举序第二位
	if vec[0] != 0 || vec[1] != 1 {
		t.Errorf("skin type one-hot wrong: %v", vec[:len(core.SkinTypes)])
	}
	base := len(core.SkinTypes) + len(core.SkinConcerns)
	if vec[base] != 0.5 {
		t.Errorf("price tier = %v, want 0.5", vec[base])
	}
	if vec[base+1] != 4.0/5.0 {
		t.Errorf("rating scalar = %v, want 0.8", vec[base+1])
	}
	if vec[base+2] != 1 {
		t.Errorf("sustainability = %v, want 1", vec[base+2])
	}
	// 大小写不敏感子串匹配应命中 hyaluronic acid
	if vec[base+3] != 0.9 {
		t.Errorf("hyaluronic acid weight = %v, want 0.9", vec[base+3])
	}
	if vec[base+4] != 0 {
		t.Errorf("niacinamide weight = %v, want 0", vec[base+4])
	}
}

func TestUserVectorEmptyHistoryDefaults(t *testing.T) {
	v := testVectorizer()
	profile := core.NewUserProfile("u1", core.SkinTypeDry)
	vec := v.UserVector(profile, nil)

	base := len(core.SkinTypes) + len(core.SkinConcerns)
	// 默认均价 50 → [Medium, High) → 0.7
	if vec[base] != 0.7 {
		t.Errorf("default price tier = %v, want 0.7", vec[base])
	}
	if vec[base+1] != DefaultAvgRating/5.0 {
		t.Errorf("default rating scalar = %v, want %v", vec[base+1], DefaultAvgRating/5.0)
	}
	// 历史为空：所有成分占比为 0
	for i := base + 3; i < len(vec); i++ {
		if vec[i] != 0 {
			t.Errorf("ingredient fraction [%d] = %v, want 0", i, vec[i])
		}
	}
}

func TestUserVectorIngredientFractions(t *testing.T) {
	v := testVectorizer()
	profile := core.NewUserProfile("u1", core.SkinTypeDry)
	history := []*core.Product{
		{ID: "a", Ingredients: []string{"hyaluronic acid"}},
		{ID: "b", Ingredients: []string{"Niacinamide 10%"}},
		{ID: "c", Ingredients: []string{"HYALURONIC ACID", "niacinamide"}},
		{ID: "d"},
	}
	vec := v.UserVector(profile, history)
	base := len(core.SkinTypes) + len(core.SkinConcerns) + 3

	if vec[base] != 0.5 { // hyaluronic acid: 2/4
		t.Errorf("hyaluronic fraction = %v, want 0.5", vec[base])
	}
	if vec[base+1] != 0.5 { // niacinamide: 2/4
		t.Errorf("niacinamide fraction = %v, want 0.5", vec[base+1])
	}
	if vec[base+2] != 0 { // retinol: 0/4
		t.Errorf("retinol fraction = %v, want 0", vec[base+2])
	}
}

// 规格样例：干皮 + dryness + 可持续偏好下，全匹配的 P1 必须严格排在 P2 之上，
// 且解释提到肤质、肤况与可持续偏好。
func TestRecommendRanksMatchingProductFirst(t *testing.T) {
	s := NewScorer(testVectorizer())
	profile := &core.UserProfile{
		UserID:         "u1",
		SkinType:       core.SkinTypeDry,
		SkinConcerns:   []core.SkinConcern{core.ConcernDryness},
		Sustainability: true,
	}
	p1 := &core.Product{
		ID:           "p1",
		Brand:        "GlowBrand",
		Price:        30,
		Rating:       5,
		SkinTypes:    []core.SkinType{core.SkinTypeDry},
		SkinConcerns: []core.SkinConcern{core.ConcernDryness},
		Sustainable:  true,
		Ingredients:  []string{"hyaluronic acid"},
	}
	p2 := &core.Product{
		ID:           "p2",
		Brand:        "OtherBrand",
		Price:        25,
		Rating:       2,
		SkinTypes:    []core.SkinType{core.SkinTypeOily},
		SkinConcerns: []core.SkinConcern{core.ConcernAcne},
	}

	got := s.Recommend(profile, []*core.Product{p2, p1}, nil, 2)
	if len(got) != 2 {
		t.Fatalf("Recommend() returned %d items, want 2", len(got))
	}
	if got[0].ProductID != "p1" {
		t.Fatalf("top item = %s, want p1", got[0].ProductID)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("p1 score %v not strictly above p2 score %v", got[0].Score, got[1].Score)
	}

	for _, want := range []string{"dry skin", "dryness concerns", "sustainability preference"} {
		if !strings.Contains(got[0].Explanation, want) {
			t.Errorf("explanation %q missing %q", got[0].Explanation, want)
		}
	}
	if got[1].Explanation != "" {
		t.Errorf("p2 explanation = %q, want empty", got[1].Explanation)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	s := NewScorer(testVectorizer())
	profile := &core.UserProfile{UserID: "u1", SkinType: core.SkinTypeCombination}
	products := []*core.Product{
		{ID: "a", Rating: 3, SkinTypes: []core.SkinType{core.SkinTypeCombination}},
		{ID: "b", Rating: 3, SkinTypes: []core.SkinType{core.SkinTypeCombination}},
		{ID: "c", Rating: 5},
		{ID: "d", Rating: 1},
	}
	history := []*core.Product{{ID: "h", Price: 40, Rating: 4}}

	first := s.Recommend(profile, products, history, 10)
	for i := 0; i < 5; i++ {
		again := s.Recommend(profile, products, history, 10)
		if !reflect.DeepEqual(itemIDs(first), itemIDs(again)) {
			t.Fatalf("run %d order %v differs from first %v", i, itemIDs(again), itemIDs(first))
		}
	}

	// 同分商品保持目录原序
	ia, ib := indexOf(first, "a"), indexOf(first, "b")
	if ia == -1 || ib == -1 || ia > ib {
		t.Errorf("equal-score items reordered: a at %d, b at %d", ia, ib)
	}
}

func TestRecommendEmptyInputs(t *testing.T) {
	s := NewScorer(testVectorizer())
	if got := s.Recommend(nil, []*core.Product{{ID: "p"}}, nil, 5); got != nil {
		t.Errorf("nil profile: got %v, want nil", got)
	}
	profile := core.NewUserProfile("u", core.SkinTypeDry)
	if got := s.Recommend(profile, nil, nil, 5); got != nil {
		t.Errorf("empty catalog: got %v, want nil", got)
	}
}

func itemIDs(items []*core.ScoredItem) []core.ProductID {
	out := make([]core.ProductID, len(items))
	for i, it := range items {
		out[i] = it.ProductID
	}
	return out
}

func indexOf(items []*core.ScoredItem, id core.ProductID) int {
	for i, it := range items {
		if it.ProductID == id {
			return i
		}
	}
	return -1
}
