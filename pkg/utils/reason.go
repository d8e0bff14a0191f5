// Package utils 提供推荐链路的原因标签工具。
package utils

// MergeReasons 合并原因标签：保持首次出现的顺序，去掉重复与空串。
// 两个引擎对同一商品各自给出原因时，用它得到合并后的列表。
func MergeReasons(existing []string, incoming []string) []string {
	if len(incoming) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, r := range existing {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	for _, r := range incoming {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
