package hybrid

import "sync"

// EngineWeights 是混合打分的权重组合。
//
// 注意：Diversity 是沿袭下来的名义权重，当前评分公式并不把它作为
// 乘法混合权重使用，多样性只通过固定惩罚系数生效。保留字段与
// 取值约束，但它对 Rebalance 与混合分都是惰性的（业务确认前不"修复"）。
type EngineWeights struct {
	Content       float64 `yaml:"content"`
	Collaborative float64 `yaml:"collaborative"`
	Popularity    float64 `yaml:"popularity"`
	Diversity     float64 `yaml:"diversity"`

	MinWeight float64 `yaml:"min_weight"`
	MaxWeight float64 `yaml:"max_weight"`
	Step      float64 `yaml:"step"`
}

// DefaultEngineWeights 返回启动时的初始权重。
func DefaultEngineWeights() EngineWeights {
	return EngineWeights{
		Content:       0.6,
		Collaborative: 0.4,
		Popularity:    0.1,
		Diversity:     0.2,
		MinWeight:     0.1,
		MaxWeight:     0.9,
		Step:          0.05,
	}
}

// PrecisionMetrics 是外部评估管道喂回来的精度指标，驱动权重再平衡。
type PrecisionMetrics struct {
	ContentPrecision       float64
	CollaborativePrecision float64
}

// Weights 是进程级共享的权重持有者。
//
// Recommend 只读（入口取一次快照），Rebalance 是唯一的写入方；
// 用读写锁保证再平衡相对并发读的原子性：每次请求看到的要么是
// 旧权重、要么是新权重，不会是写了一半的状态。
type Weights struct {
	mu  sync.RWMutex
	cur EngineWeights
}

// NewWeights 从初始配置创建权重持有者，零值字段补默认。
func NewWeights(w EngineWeights) *Weights {
	def := DefaultEngineWeights()
	if w.Content <= 0 {
		w.Content = def.Content
	}
	if w.Collaborative <= 0 {
		w.Collaborative = def.Collaborative
	}
	if w.Popularity <= 0 {
		w.Popularity = def.Popularity
	}
	if w.Diversity <= 0 {
		w.Diversity = def.Diversity
	}
	if w.MinWeight <= 0 {
		w.MinWeight = def.MinWeight
	}
	if w.MaxWeight <= 0 {
		w.MaxWeight = def.MaxWeight
	}
	if w.Step <= 0 {
		w.Step = def.Step
	}
	return &Weights{cur: w}
}

// Snapshot 返回当前权重的副本，供单次请求内一致地使用。
func (w *Weights) Snapshot() EngineWeights {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cur
}

// Rebalance 执行一步爬山式调整：精度更高的引擎加一个步长，另一个减
// 一个步长，两者同步变动（受钳位影响时除外），始终停留在
// [MinWeight, MaxWeight] 内。返回调整后的快照。
func (w *Weights) Rebalance(m PrecisionMetrics) EngineWeights {
	w.mu.Lock()
	defer w.mu.Unlock()

	if m.ContentPrecision > m.CollaborativePrecision {
		w.cur.Content = clamp(w.cur.Content+w.cur.Step, w.cur.MinWeight, w.cur.MaxWeight)
		w.cur.Collaborative = clamp(w.cur.Collaborative-w.cur.Step, w.cur.MinWeight, w.cur.MaxWeight)
	} else {
		w.cur.Collaborative = clamp(w.cur.Collaborative+w.cur.Step, w.cur.MinWeight, w.cur.MaxWeight)
		w.cur.Content = clamp(w.cur.Content-w.cur.Step, w.cur.MinWeight, w.cur.MaxWeight)
	}
	return w.cur
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
