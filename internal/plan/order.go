package plan

import (
	"fmt"
	"sort"
	"strings"
)

// parentsFirst orders models so that every parent precedes the models
// embedding it. parent(i) returns the index of model i's parent, or -1.
// Models at the same embedding depth keep their input order.
func parentsFirst(names []string, parent func(i int) int) ([]int, error) {
	n := len(names)

	depth := make([]int, n)
	for i := range depth {
		depth[i] = -1
	}

	for i := range n {
		var path []int

		cur := i
		for cur >= 0 && depth[cur] < 0 {
			for k, seen := range path {
				if seen == cur {
					return nil, cycleError(names, path[k:])
				}
			}

			path = append(path, cur)

			next := parent(cur)
			if next >= n {
				return nil, fmt.Errorf("model %s: parent index %d out of range", names[cur], next)
			}

			cur = next
		}

		d := 0
		if cur >= 0 {
			d = depth[cur] + 1
		}

		for k := len(path) - 1; k >= 0; k-- {
			depth[path[k]] = d
			d++
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return depth[order[a]] < depth[order[b]]
	})

	return order, nil
}

func cycleError(names []string, cycle []int) error {
	parts := make([]string, 0, len(cycle)+1)
	for _, i := range cycle {
		parts = append(parts, names[i])
	}

	parts = append(parts, names[cycle[0]])

	return fmt.Errorf("embedding cycle: %s", strings.Join(parts, " embeds "))
}
