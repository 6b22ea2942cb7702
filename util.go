package plot

import "strconv"

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func maxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func uniqueInOrder(vs []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
