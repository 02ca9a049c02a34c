package stats

// Node is one ring segment of a sunburst. Value is the sum of the leaf
// values below it; Count is the number of records below it.
type Node struct {
	Label    string  `json:"label" yaml:"label"`
	Value    int     `json:"value" yaml:"value"`
	Count    int     `json:"count" yaml:"count"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Sunburst folds leaves from HierarchicalCounts into a forest. Siblings keep
// the order in which their first leaf appears.
func Sunburst(leaves []Leaf) []*Node {
	var roots []*Node
	for _, leaf := range leaves {
		level := &roots
		for _, label := range leaf.Path {
			n := findChild(*level, label)
			if n == nil {
				n = &Node{Label: label}
				*level = append(*level, n)
			}
			n.Value += leaf.Value
			n.Count += leaf.Count
			level = &n.Children
		}
	}
	return roots
}

func findChild(nodes []*Node, label string) *Node {
	for _, n := range nodes {
		if n.Label == label {
			return n
		}
	}
	return nil
}
