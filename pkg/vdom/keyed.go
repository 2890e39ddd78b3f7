package vdom

import (
	"github.com/vango-dev/vango-lite/pkg/host"
)

// keyedMatch pairs a new child with the old child it reuses.
type keyedMatch struct {
	newIdx int
	oldIdx int
}

// patchKeyed reconciles keyed children. Each new child is matched to the
// first unused old child with an equal key and patched in place. Unmatched
// old children are removed first; then matched nodes are moved back to
// front so each sits directly before its successor; finally unmatched new
// children are mounted after their preceding sibling.
func (r *Renderer) patchKeyed(el host.Node, old, nodes []*VNode) error {
	used := make([]bool, len(old))
	var matched []keyedMatch
	var fresh []int

	for j, nv := range nodes {
		found := -1
		if nv.hasKey {
			for i, ov := range old {
				if !used[i] && ov.hasKey && ov.key == nv.key {
					found = i
					break
				}
			}
		}
		if found < 0 {
			fresh = append(fresh, j)
			continue
		}
		used[found] = true
		if err := r.patch(old[found], nv); err != nil {
			return err
		}
		matched = append(matched, keyedMatch{newIdx: j, oldIdx: found})
	}

	removed := 0
	for i, ov := range old {
		if used[i] {
			continue
		}
		if err := r.remove(ov, el); err != nil {
			return err
		}
		removed++
	}

	ordered := inOrder(matched)
	r.logger.Debug("vdom: keyed diff",
		"matched", len(matched),
		"mounted", len(fresh),
		"removed", removed,
		"reordered", !ordered)
	if ordered && len(fresh) == 0 {
		return nil
	}

	live, err := r.host.ChildNodes(el)
	if err != nil {
		return host.Wrap(host.OpChildNodes, err)
	}
	list := childList(live)

	if !ordered {
		for k := len(matched) - 2; k >= 0; k-- {
			node := nodes[matched[k].newIdx].Live()
			anchor := nodes[matched[k+1].newIdx].Live()
			if list.before(anchor) == node {
				continue
			}
			if err := r.insert(el, node, anchor); err != nil {
				return err
			}
			list.move(node, anchor)
		}
	}

	for _, j := range fresh {
		var anchor host.Node
		if j == 0 {
			anchor = list.first()
		} else {
			anchor = list.after(nodes[j-1].Live())
		}
		if err := r.mount(nodes[j], el, anchor); err != nil {
			return err
		}
		list.move(nodes[j].Live(), anchor)
	}
	return nil
}

// inOrder reports whether the old indices of matched children are already
// increasing, in which case no node needs to move.
func inOrder(matched []keyedMatch) bool {
	for k := 1; k < len(matched); k++ {
		if matched[k].oldIdx < matched[k-1].oldIdx {
			return false
		}
	}
	return true
}

// childList mirrors the container's child order while the keyed passes
// move and insert nodes.
type childList []host.Node

func (l childList) index(n host.Node) int {
	for i, c := range l {
		if c == n {
			return i
		}
	}
	return -1
}

func (l childList) first() host.Node {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// before returns the node preceding n, or nil.
func (l childList) before(n host.Node) host.Node {
	if i := l.index(n); i > 0 {
		return l[i-1]
	}
	return nil
}

// after returns the node following n, or nil when n is last or absent.
func (l childList) after(n host.Node) host.Node {
	if i := l.index(n); i >= 0 && i+1 < len(l) {
		return l[i+1]
	}
	return nil
}

// move places n before anchor, or at the end when anchor is nil.
func (l *childList) move(n, anchor host.Node) {
	s := *l
	if i := s.index(n); i >= 0 {
		s = append(s[:i], s[i+1:]...)
	}
	if anchor == nil {
		*l = append(s, n)
		return
	}
	j := s.index(anchor)
	if j < 0 {
		*l = append(s, n)
		return
	}
	s = append(s, nil)
	copy(s[j+1:], s[j:])
	s[j] = n
	*l = s
}
