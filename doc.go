// Package glowrec 是护肤品电商的混合推荐内核（Glow Recommender）。
//
// 设计要点：
// - 双引擎混合: 内容引擎（特征向量余弦）+ 协同引擎（user-kNN），按权重合并
// - 降级不吞错: 单引擎失败降级为空并经 EngineReport 上报，两引擎全空才算失败
// - 重排可组合: 多样性惩罚 / 热度加成 / 截断都是 pipeline.Node，可由配置驱动
// - 权重在线调: EngineWeights 由外部精度指标驱动做爬山再平衡
package glowrec

import (
	"github.com/glowteam/glowrec/hybrid"
	"github.com/glowteam/glowrec/pipeline"
)

// 轻量 facade：便于用户直接 import "glowrec" 使用核心抽象。
type Blender = hybrid.Blender
type Engine = hybrid.Engine
type Options = hybrid.Options
type EngineWeights = hybrid.EngineWeights
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindScore       = pipeline.KindScore
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
