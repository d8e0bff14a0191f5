package filter

import (
	"context"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/pkg/dsl"
)

// RuleFilter 用 CEL 表达式描述要排除的商品。
// 表达式对 product/user 求值为 true 时商品被过滤掉，例如：
//
//	"fragrance" in product.ingredients && user.skin_type == "sensitive"
type RuleFilter struct {
	rule *dsl.Rule
}

// NewRuleFilter 编译排除规则，表达式非法时返回错误。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	rule, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.NewDomainError("filter", core.ErrorCodeInvalidInput, err.Error())
	}
	return &RuleFilter{rule: rule}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	profile *core.UserProfile,
	p *core.Product,
) (bool, error) {
	if p == nil {
		return true, nil
	}
	return f.rule.Match(p, profile, nil)
}

var _ Filter = (*RuleFilter)(nil)
