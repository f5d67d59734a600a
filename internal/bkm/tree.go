package bkm

// indented pairs a freshly parsed node with its indent level while the
// tree is being rebuilt. parent records where the node was attached
// (nil for a top-level entry) so later dedents can append siblings.
type indented struct {
	node   *Node
	indent int
	parent *Node
}

// buildOutline turns the ordered (node, indent) list into a tree.
// Attachment follows the indent of the previous entry:
//
//   - equal indent: trailing sibling of the previous entry
//   - deeper: child of the previous entry, however large the jump
//   - shallower: scan backward for the nearest entry at the same
//     indent and append after its sibling chain; if no entry anywhere
//     matches, the node joins the top-level chain so nothing is
//     dropped
//
// The backward scan is quadratic for pathological dedent sequences but
// real outlines are shallow, and unlike an open-ancestor stack it also
// resolves dedents onto levels that only ever appeared inside an
// earlier, already closed subtree.
func buildOutline(items []indented) ([]*Node, error) {
	if len(items) == 0 {
		return nil, &ParseError{Msg: "no outline entries"}
	}
	roots := []*Node{items[0].node}

	attach := func(i int, parent *Node) {
		items[i].parent = parent
		if parent == nil {
			roots = append(roots, items[i].node)
		} else {
			parent.Children = append(parent.Children, items[i].node)
		}
	}

	for i := 1; i < len(items); i++ {
		curr := items[i]
		prev := items[i-1]
		switch {
		case curr.indent == prev.indent:
			attach(i, prev.parent)
		case curr.indent > prev.indent:
			attach(i, prev.node)
		default:
			found := false
			for j := i - 1; j >= 0; j-- {
				if items[j].indent == curr.indent {
					attach(i, items[j].parent)
					found = true
					break
				}
			}
			if !found {
				attach(i, nil)
			}
		}
	}
	return roots, nil
}
