// Package config 加载应用级 YAML 配置并组装混合推荐链路。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/glowteam/glowrec/collab"
	"github.com/glowteam/glowrec/content"
	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/filter"
	"github.com/glowteam/glowrec/hybrid"
	"github.com/glowteam/glowrec/pipeline"
)

// Config 是应用级配置。所有字段都有零值默认，空配置可直接使用。
type Config struct {
	// Weights 是引擎初始权重与再平衡参数。
	Weights hybrid.EngineWeights `yaml:"weights"`

	// Ingredients 是被追踪的成分权重表，顺序即向量布局顺序。
	Ingredients []content.IngredientWeight `yaml:"ingredients"`

	// PriceTiers 是价格档位边界。
	PriceTiers content.PriceTiers `yaml:"price_tiers"`

	// Defaults 是用户无历史时的兜底均价/均分。
	Defaults DefaultsConfig `yaml:"defaults"`

	// LimitMultiplier 是引擎超取倍数。
	LimitMultiplier int `yaml:"limit_multiplier"`

	// Diversity 是多样性惩罚配置。
	Diversity DiversityConfig `yaml:"diversity"`

	// Blacklist 是下架/拉黑商品 ID。
	Blacklist []string `yaml:"blacklist"`

	// Rules 是 CEL 排除规则，命中的商品在打分前被移除。
	Rules []string `yaml:"rules"`

	// Redis 非空时用 Redis 做存储后端，否则用内存存储。
	Redis RedisConfig `yaml:"redis"`

	// Rerank 是追加在内置链路之后的自定义重排节点。
	Rerank []pipeline.NodeConfig `yaml:"rerank"`
}

// DefaultsConfig 是历史为空时的兜底值。
type DefaultsConfig struct {
	AvgPrice  float64 `yaml:"avg_price"`
	AvgRating float64 `yaml:"avg_rating"`
}

// DiversityConfig 是多样性惩罚的可调参数。
type DiversityConfig struct {
	SameBrand        float64 `yaml:"same_brand"`
	SimilarConcerns  float64 `yaml:"similar_concerns"`
	OverlapThreshold float64 `yaml:"overlap_threshold"`
}

// RedisConfig 是 Redis 连接配置。
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// Load 从 YAML 文件加载配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置内容。
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// BuildBlender 按配置组装混合引擎。
// 自定义 Rerank 节点经 DefaultFactory 构建，未注册的类型报错。
func (c *Config) BuildBlender() (*hybrid.Blender, error) {
	vec := content.NewVectorizer(c.Ingredients, c.PriceTiers)
	if c.Defaults.AvgPrice > 0 {
		vec.AvgPrice = c.Defaults.AvgPrice
	}
	if c.Defaults.AvgRating > 0 {
		vec.AvgRating = c.Defaults.AvgRating
	}
	b := hybrid.NewBlender(
		content.NewScorer(vec),
		collab.NewScorer(),
		hybrid.NewWeights(c.Weights),
	)
	b.LimitMultiplier = c.LimitMultiplier
	b.SameBrandPenalty = c.Diversity.SameBrand
	b.SimilarConcernsPenalty = c.Diversity.SimilarConcerns
	b.ConcernOverlapThreshold = c.Diversity.OverlapThreshold

	if len(c.Rerank) > 0 {
		factory := DefaultFactory()
		for _, nc := range c.Rerank {
			node, err := factory.Build(nc.Type, nc.Config)
			if err != nil {
				return nil, fmt.Errorf("build rerank node %s: %w", nc.Type, err)
			}
			b.ExtraNodes = append(b.ExtraNodes, node)
		}
	}
	return b, nil
}

// BuildFilters 按配置组装候选过滤链。无规则无黑名单时返回 nil。
func (c *Config) BuildFilters() (*filter.Chain, error) {
	var filters []filter.Filter

	if len(c.Blacklist) > 0 {
		ids := make([]core.ProductID, 0, len(c.Blacklist))
		for _, id := range c.Blacklist {
			ids = append(ids, core.ProductID(id))
		}
		filters = append(filters, filter.NewBlacklistFilter(ids, nil, ""))
	}

	for _, expr := range c.Rules {
		f, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", expr, err)
		}
		filters = append(filters, f)
	}

	if len(filters) == 0 {
		return nil, nil
	}
	return &filter.Chain{Filters: filters}, nil
}
