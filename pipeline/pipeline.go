// Package pipeline 把推荐后处理拆成可组合的 Node 链。
// 混合引擎的合并结果经由 Node 链做多样性惩罚、热度加成与截断。
package pipeline

import (
	"context"

	"github.com/glowteam/glowrec/core"
)

// Pipeline 顺序执行一组 Node。
type Pipeline struct {
	Nodes []Node
}

// Run 依次把 items 喂给每个 Node；任一 Node 报错即中断。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
