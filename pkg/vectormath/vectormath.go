// Package vectormath 提供推荐引擎使用的数值原语：余弦相似度、皮尔逊相关、归一化。
// 全部是无状态纯函数。
//
// 长度不一致属于调用方错误：向量布局一致性是内容引擎的核心不变量，
// 静默截断会算出貌似合理、实则错误的相似度，所以这里直接 panic。
package vectormath

import (
	"fmt"
	"math"
)

// CosineSimilarity 计算 dot(a,b) / (|a|·|b|)。
// 任一向量模长为 0 时返回 0（避免除零），长度不一致时 panic。
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("vectormath: cosine on mismatched lengths %d != %d", len(a), len(b)))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// PearsonCorrelation 计算标准皮尔逊相关系数。
// 任一序列无方差（分母为 0）时返回 0 而不是 NaN；长度不一致时 panic；空序列返回 0。
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) {
		panic(fmt.Sprintf("vectormath: pearson on mismatched lengths %d != %d", len(x), len(y)))
	}
	if len(x) == 0 {
		return 0
	}

	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(len(x))
	meanY /= float64(len(y))

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// Normalize 把序列 min-max 归一化到 [0,1]，返回新切片。
// 所有元素相等（极差为 0）时原样返回副本。
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if len(values) == 0 {
		return out
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out
}
