package config

import (
	"github.com/glowteam/glowrec/pipeline"
	"github.com/glowteam/glowrec/pkg/conv"
	"github.com/glowteam/glowrec/rerank"
)

// DefaultFactory 返回一个包含所有内置重排 Node 的默认工厂。
func DefaultFactory() *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("rerank.diversity", buildDiversityNode)
	factory.Register("rerank.popularity", buildPopularityNode)
	factory.Register("rerank.topn", buildTopNNode)

	return factory
}

func buildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.DiversityPenalty{
		SameBrand:        conv.ConfigGetFloat64(cfg, "same_brand", 0),
		SimilarConcerns:  conv.ConfigGetFloat64(cfg, "similar_concerns", 0),
		OverlapThreshold: conv.ConfigGetFloat64(cfg, "overlap_threshold", 0),
	}, nil
}

func buildPopularityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.PopularityBoost{
		Weight: conv.ConfigGetFloat64(cfg, "weight", 0),
	}, nil
}

func buildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{
		N: conv.ConfigGetInt(cfg, "n", 0),
	}, nil
}
