package texture

import "regexp"

var wordRun = regexp.MustCompile(`[A-Z][a-z0-9]*|[a-z0-9]+`)

// mergeNames combines two texture identifiers that turned out to share a
// source file, interleaving their word runs around the longest common
// subsequence of matching words. "ShinyAluminium" + "MatteAluminium" becomes
// "ShinyMatteAluminium". Purely cosmetic; nothing looks names up by the
// result. With no common words the two names are simply concatenated.
func mergeNames(existing, incoming string) string {
	if existing == incoming || incoming == "" {
		return existing
	}
	if existing == "" {
		return incoming
	}

	a := wordRun.FindAllString(existing, -1)
	b := wordRun.FindAllString(incoming, -1)
	common := lcs(a, b)
	if len(common) == 0 {
		return existing + " " + incoming
	}

	var out string
	ai, bi := 0, 0
	for _, word := range common {
		for ai < len(a) && a[ai] != word {
			out += a[ai]
			ai++
		}
		for bi < len(b) && b[bi] != word {
			out += b[bi]
			bi++
		}
		out += word
		ai++
		bi++
	}
	for ; ai < len(a); ai++ {
		out += a[ai]
	}
	for ; bi < len(b); bi++ {
		out += b[bi]
	}
	return out
}

// lcs returns the longest common subsequence of two word lists.
func lcs(a, b []string) []string {
	n, m := len(a), len(b)
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else if table[i+1][j] >= table[i][j+1] {
				table[i][j] = table[i+1][j]
			} else {
				table[i][j] = table[i][j+1]
			}
		}
	}

	out := make([]string, 0, table[0][0])
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			i++
		default:
			j++
		}
	}
	return out
}
