package patent

import (
	"regexp"
	"strconv"
)

// dependencyRe recognizes the "depends on" phrasing inside claim text:
// an explicit claim number with an optional connector and second number, or
// a backward reference such as "any preceding claim".
var dependencyRe = regexp.MustCompile(
	`(?i)\s+claims?(?:\s+)?(\d+)(?:(?:\s+)?(or|\-|to|through|and)?(?:[claim\s]+)?(\d+))?` +
		`|\s+(former|prior|above|foregoing|previous|precee?ding)(?:\s+)?claim(s)?`)

var rangeConnector = regexp.MustCompile(`to|through|\-`)
var listConnector = regexp.MustCompile(`or|and`)

// ParseDependency extracts the claims that claim number num depends on from
// its text. The first dependency phrase wins. Claim 1 and claims whose text
// carries no dependency phrasing return nil.
func ParseDependency(context string, num int) []int {
	if num <= 1 {
		return nil
	}
	m := dependencyRe.FindStringSubmatch(context)
	if m == nil {
		return nil
	}
	first, connector, second, backward, plural := m[1], m[2], m[3], m[4], m[5]

	if first != "" {
		a, err := strconv.Atoi(first)
		if err != nil {
			return nil
		}
		if connector != "" {
			if second == "" {
				return nil
			}
			b, err := strconv.Atoi(second)
			if err != nil {
				return nil
			}
			switch {
			case rangeConnector.MatchString(connector):
				if b < a {
					return nil
				}
				out := make([]int, 0, b-a+1)
				for i := a; i <= b; i++ {
					out = append(out, i)
				}
				return out
			case listConnector.MatchString(connector):
				return []int{a, b}
			}
			return nil
		}
		return []int{a}
	}

	if backward != "" {
		if plural != "" {
			out := make([]int, 0, num-1)
			for i := 1; i < num; i++ {
				out = append(out, i)
			}
			return out
		}
		return []int{num - 1}
	}
	return nil
}
