// Package collab 实现基于用户的协同过滤引擎（user-kNN）：
// 找到口味重叠的相似用户，把他们的正向评分传播到目标用户未见过的商品上。
// 没有矩阵分解，只有最近邻启发式。
package collab

import (
	"context"
	"math"
	"sort"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/pkg/vectormath"
)

// 算法结构常量。当前设计下它们不是配置项。
const (
	// TopKSimilarUsers 是参与评分传播的相似用户数上限。
	TopKSimilarUsers = 3

	// PositiveRatingThreshold 是"正向兴趣"的评分门槛：只有 rating > 3 的
	// 交互才会向候选商品传播。
	PositiveRatingThreshold = 3.0
)

// 相似度各分量的权重：画像重叠与行为重叠各占一半；
// 画像内部按 肤质 0.5 / 肤况 0.3 / 可持续 0.2 细分。
const (
	profileWeight     = 0.5
	interactionWeight = 0.5

	skinTypeScore       = 0.5
	concernScore        = 0.3
	sustainabilityScore = 0.2
)

// Scorer 是协同过滤引擎。无状态，确定性。
type Scorer struct{}

// NewScorer 创建协同引擎。
func NewScorer() *Scorer { return &Scorer{} }

func (s *Scorer) Name() string { return "engine.collab" }

// Similarity 计算目标画像与另一用户的相似度：画像重叠 + 行为重叠。
// 任一行为列表为空时行为项记 0，结果始终有限（不会 NaN）。
// 行为重叠用共同商品偏好分的皮尔逊相关，可以为负。
// 负相关用户在召回阶段会被 ≤ 0 的相似度门槛整体排除。
func (s *Scorer) Similarity(
	target *core.UserProfile,
	other core.User,
	targetEvents []core.InteractionEvent,
	otherEvents []core.InteractionEvent,
) float64 {
	if target == nil {
		return 0
	}

	var profileSim float64
	if other.Profile != nil {
		if other.Profile.SkinType == target.SkinType {
			profileSim += skinTypeScore
		}
		profileSim += concernScore * concernJaccard(target.SkinConcerns, other.Profile.SkinConcerns)
		if other.Profile.Sustainability == target.Sustainability {
			profileSim += sustainabilityScore
		}
	}

	interSim := interactionSimilarity(
		core.PreferenceByProduct(targetEvents),
		core.PreferenceByProduct(otherEvents),
	)

	return profileWeight*profileSim + interactionWeight*interSim
}

// Recommend 为目标用户生成协同推荐：
//  1. 按用户切分日志
//  2. 对每个其他用户算相似度
//  3. 取相似度严格为正的 Top-3
//  4. 只看这些用户 rating > 3 的交互
//  5. 目标用户没碰过的商品累加 similarity * rating（多位相似用户各自贡献）
//  6. 按累计分降序截断到 limit
//
// 目标画像缺失、日志为空或没有其他用户时返回空序列，从不报错。
func (s *Scorer) Recommend(
	targetID string,
	users []core.User,
	interactions []core.InteractionEvent,
	limit int,
) []*core.ScoredItem {
	if targetID == "" || len(interactions) == 0 {
		return nil
	}

	var target *core.UserProfile
	for _, u := range users {
		if u.ID == targetID {
			target = u.Profile
			break
		}
	}
	if target == nil {
		return nil
	}

	byUser := core.PartitionByUser(interactions)
	targetEvents := byUser[targetID]
	seen := make(map[core.ProductID]bool, len(targetEvents))
	for _, ev := range targetEvents {
		seen[ev.ProductID] = true
	}

	type neighbour struct {
		user core.User
		sim  float64
	}
	neighbours := make([]neighbour, 0, len(users))
	for _, u := range users {
		if u.ID == targetID {
			continue
		}
		sim := s.Similarity(target, u, targetEvents, byUser[u.ID])
		// 相似度 ≤ 0 的用户不贡献任何候选（策略口径，并非待修的缺陷）
		if sim > 0 {
			neighbours = append(neighbours, neighbour{user: u, sim: sim})
		}
	}
	if len(neighbours) == 0 {
		return nil
	}

	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].sim > neighbours[j].sim
	})
	if len(neighbours) > TopKSimilarUsers {
		neighbours = neighbours[:TopKSimilarUsers]
	}

	scores := make(map[core.ProductID]float64)
	for _, n := range neighbours {
		for _, ev := range byUser[n.user.ID] {
			if ev.Rating == nil || *ev.Rating <= PositiveRatingThreshold {
				continue
			}
			if seen[ev.ProductID] {
				continue
			}
			scores[ev.ProductID] += n.sim * *ev.Rating
		}
	}
	if len(scores) == 0 {
		return nil
	}

	out := make([]*core.ScoredItem, 0, len(scores))
	for id, score := range scores {
		it := core.NewScoredItem(id)
		it.Score = score
		out = append(out, it)
	}
	// 同分时按商品 id 排序，保证 map 迭代不影响结果顺序
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score 实现 hybrid.Engine。rctx.Users 为空时从日志推出用户集合（画像缺省）。
func (s *Scorer) Score(
	_ context.Context,
	rctx *core.RecommendContext,
	_ []*core.Product,
	limit int,
) ([]*core.ScoredItem, error) {
	if rctx == nil || rctx.Profile == nil {
		return nil, nil
	}

	users := rctx.Users
	if len(users) == 0 {
		users = usersFromLog(rctx.UserID, rctx.Profile, rctx.Interactions)
	}
	return s.Recommend(rctx.UserID, users, rctx.Interactions, limit), nil
}

// usersFromLog 从日志推出用户集合：目标用户带画像，其余画像缺省。
// 顺序取日志首次出现序，保持确定性。
func usersFromLog(targetID string, target *core.UserProfile, events []core.InteractionEvent) []core.User {
	users := []core.User{{ID: targetID, Profile: target}}
	seen := map[string]bool{targetID: true}
	for _, ev := range events {
		if seen[ev.UserID] {
			continue
		}
		seen[ev.UserID] = true
		users = append(users, core.User{ID: ev.UserID})
	}
	return users
}

// concernJaccard 计算两组肤况诉求的 Jaccard 重叠。
func concernJaccard(a, b []core.SkinConcern) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[core.SkinConcern]bool, len(a))
	for _, c := range a {
		setA[c] = true
	}
	union := make(map[core.SkinConcern]bool, len(a)+len(b))
	for _, c := range a {
		union[c] = true
	}
	inter := 0
	for _, c := range b {
		if setA[c] {
			inter++
		}
		union[c] = true
	}
	return float64(inter) / float64(len(union))
}

// interactionSimilarity 计算两个用户的行为重叠：
//   - 无共同商品 → 0
//   - 恰好 1 个共同商品 → 1/sqrt(|A|·|B|)（二值共现的余弦）
//   - ≥ 2 个共同商品 → 共同商品偏好分的皮尔逊相关（可为负）
func interactionSimilarity(a, b map[core.ProductID]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var xs, ys []float64
	for id, x := range a {
		if y, ok := b[id]; ok {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	switch len(xs) {
	case 0:
		return 0
	case 1:
		return 1 / math.Sqrt(float64(len(a))*float64(len(b)))
	default:
		return vectormath.PearsonCorrelation(xs, ys)
	}
}
