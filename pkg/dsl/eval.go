// Package dsl 基于 CEL (Common Expression Language) 实现商品规则表达式。
// 规则在配置中以字符串给出，编译一次后可对整个候选集复用。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/glowteam/glowrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("product", cel.DynType),
		cel.Variable("user", cel.DynType),
		cel.Variable("params", cel.DynType),
	)
}

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	if celEnv == nil && err == nil {
		err = fmt.Errorf("cel environment not initialized")
	}
	return celEnv, err
}

// Rule 是一条已编译的商品规则。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：product.price <= 50.0 / product.rating >= 4.0
//   - 相等：product.brand == "GlowLab"
//   - 包含："retinol" in product.ingredients
//   - 用户侧：user.skin_type == "sensitive"
//   - 逻辑：product.sustainable && product.rating > 3.5
//
// 示例：
//   - `product.rating >= 4.0 && product.price <= 80.0`
//   - `!("fragrance" in product.ingredients) || user.skin_type != "sensitive"`
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译规则表达式。空表达式返回恒真规则。
func Compile(expr string) (*Rule, error) {
	r := &Rule{expr: expr}
	if expr == "" {
		return r, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	r.prg = prg
	return r, nil
}

// Expr 返回规则的原始表达式。
func (r *Rule) Expr() string { return r.expr }

// Match 对单个商品求值，返回布尔结果。
// 表达式结果不是布尔、或求值出错（如访问不存在的 key）时返回错误。
func (r *Rule) Match(p *core.Product, profile *core.UserProfile, params map[string]any) (bool, error) {
	if r.prg == nil {
		return true, nil
	}
	out, _, err := r.prg.Eval(buildInput(p, profile, params))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", r.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", r.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
// CEL 访问不存在的 key 会报错，所以缺失的用户画像用空 map 兜底。
func buildInput(p *core.Product, profile *core.UserProfile, params map[string]any) map[string]any {
	product := map[string]any{
		"id":            string(p.ID),
		"name":          p.Name,
		"brand":         p.Brand,
		"price":         p.Price,
		"rating":        p.Rating,
		"ingredients":   p.Ingredients,
		"skin_types":    skinTypeStrings(p.SkinTypes),
		"skin_concerns": concernStrings(p.SkinConcerns),
		"sustainable":   p.Sustainable,
	}

	user := map[string]any{}
	if profile != nil {
		user = map[string]any{
			"id":             profile.UserID,
			"skin_type":      string(profile.SkinType),
			"skin_concerns":  concernStrings(profile.SkinConcerns),
			"sustainability": profile.Sustainability,
		}
	}

	if params == nil {
		params = map[string]any{}
	}
	return map[string]any{
		"product": product,
		"user":    user,
		"params":  params,
	}
}

func skinTypeStrings(ts []core.SkinType) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, string(t))
	}
	return out
}

func concernStrings(cs []core.SkinConcern) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, string(c))
	}
	return out
}
