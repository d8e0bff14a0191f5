package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glowteam/glowrec/core"
)

type addNode struct {
	delta float64
	err   error
}

func (n *addNode) Name() string { return "test.add" }
func (n *addNode) Kind() Kind   { return KindReRank }

func (n *addNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if n.err != nil {
		return nil, n.err
	}
	for _, it := range items {
		it.Score += n.delta
	}
	return items, nil
}

func TestPipelineRunsNodesInOrder(t *testing.T) {
	p := &Pipeline{Nodes: []Node{&addNode{delta: 1}, &addNode{delta: 2}}}
	items := []*core.ScoredItem{core.NewScoredItem("a")}

	got, err := p.Run(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got[0].Score != 3 {
		t.Errorf("score = %v, want 3", got[0].Score)
	}
}

func TestPipelineAbortsOnNodeError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{&addNode{err: boom}, &addNode{delta: 1}}}

	if _, err := p.Run(context.Background(), nil, nil); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
}

func TestNodeFactoryBuild(t *testing.T) {
	f := NewNodeFactory()
	f.Register("test.add", func(cfg map[string]any) (Node, error) {
		return &addNode{delta: 1}, nil
	})

	if _, err := f.Build("test.add", nil); err != nil {
		t.Errorf("Build(test.add) error = %v", err)
	}
	if _, err := f.Build("test.unknown", nil); err == nil {
		t.Error("Build(test.unknown) must fail")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	content := `
pipeline:
  name: rerank-chain
  nodes:
    - type: test.add
      config:
        delta: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "rerank-chain" || len(cfg.Pipeline.Nodes) != 1 {
		t.Fatalf("config = %+v", cfg)
	}

	f := NewNodeFactory()
	f.Register("test.add", func(c map[string]any) (Node, error) {
		if v, ok := c["delta"].(int); ok {
			return &addNode{delta: float64(v)}, nil
		}
		return &addNode{}, nil
	})
	p, err := cfg.Build(f)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(p.Nodes) != 1 {
		t.Errorf("pipeline nodes = %d, want 1", len(p.Nodes))
	}
}
