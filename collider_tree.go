package arm

import (
	"cmp"
	"slices"

	"github.com/setanarut/vec"
)

// ColliderTree is a bounding box tree over a set of colliders, used to skip
// colliders far away from a segment. Colliders whose bounds have no finite
// area are kept beside the tree and match every query.
//
// Queries visit colliders in insertion order, so the first hit never
// depends on the shape of the tree.
type ColliderTree struct {
	root        *treeNode
	leaves      map[*Collider]*treeNode
	unbounded   []*treeNode
	stamp       int
	pooledNodes *treeNode
}

type treeNode struct {
	collider *Collider
	bb       BB
	parent   *treeNode
	a, b     *treeNode
	// stamp is the insertion order of a leaf.
	stamp int
}

// NewColliderTree indexes colliders. Nil colliders are skipped.
func NewColliderTree(colliders ...*Collider) *ColliderTree {
	tree := &ColliderTree{leaves: make(map[*Collider]*treeNode, len(colliders))}
	for _, c := range colliders {
		tree.Insert(c)
	}
	return tree
}

func (tree *ColliderTree) Count() int {
	return len(tree.leaves)
}

func (tree *ColliderTree) Contains(c *Collider) bool {
	_, ok := tree.leaves[c]
	return ok
}

// Insert adds c. Colliders already in the tree are ignored.
func (tree *ColliderTree) Insert(c *Collider) {
	if c == nil || c.Class == nil || tree.Contains(c) {
		return
	}
	leaf := tree.nodeFromPool()
	leaf.collider = c
	leaf.bb = c.Class.Bounds()
	leaf.stamp = tree.stamp
	tree.stamp++

	tree.leaves[c] = leaf
	tree.place(leaf)
}

func (tree *ColliderTree) Remove(c *Collider) {
	leaf, ok := tree.leaves[c]
	if !ok {
		return
	}
	delete(tree.leaves, c)
	tree.detach(leaf)
	tree.recycleNode(leaf)
}

// Reindex refreshes the bounds of c after its shape changed. Leaves whose
// old bounds still cover the new ones are left alone.
func (tree *ColliderTree) Reindex(c *Collider) {
	leaf, ok := tree.leaves[c]
	if !ok {
		return
	}
	bb := c.Class.Bounds()
	if leaf.bb.Contains(bb) {
		return
	}
	tree.detach(leaf)
	leaf.bb = bb
	tree.place(leaf)
}

// Sync makes the tree hold exactly colliders, visited in slice order.
// Colliders already in the tree are reindexed rather than rebuilt.
func (tree *ColliderTree) Sync(colliders []*Collider) {
	keep := make(map[*Collider]bool, len(colliders))
	for _, c := range colliders {
		if c != nil && c.Class != nil {
			keep[c] = true
		}
	}
	for c := range tree.leaves {
		if !keep[c] {
			tree.Remove(c)
		}
	}

	tree.stamp = 0
	for _, c := range colliders {
		if !keep[c] {
			continue
		}
		// Duplicates keep their first position.
		keep[c] = false
		leaf, ok := tree.leaves[c]
		if !ok {
			tree.Insert(c)
			continue
		}
		tree.Reindex(c)
		leaf.stamp = tree.stamp
		tree.stamp++
	}
}

// Query visits every collider whose bounds intersect bb until f returns
// false.
func (tree *ColliderTree) Query(bb BB, f func(*Collider) bool) {
	var found []*treeNode
	if tree.root != nil {
		found = tree.root.subtreeQuery(bb, found)
	}
	tree.visit(found, f)
}

// SegmentQuery visits every collider whose bounds the segment a-b crosses
// until f returns false.
func (tree *ColliderTree) SegmentQuery(a, b vec.Vec2, f func(*Collider) bool) {
	var found []*treeNode
	if tree.root != nil {
		found = tree.root.subtreeSegmentQuery(a, b, found)
	}
	tree.visit(found, f)
}

func (tree *ColliderTree) visit(found []*treeNode, f func(*Collider) bool) {
	found = append(found, tree.unbounded...)
	slices.SortFunc(found, func(a, b *treeNode) int {
		return cmp.Compare(a.stamp, b.stamp)
	})
	for _, leaf := range found {
		if !f(leaf.collider) {
			return
		}
	}
}

func (tree *ColliderTree) detach(leaf *treeNode) {
	if i := slices.Index(tree.unbounded, leaf); i >= 0 {
		tree.unbounded = slices.Delete(tree.unbounded, i, i+1)
		return
	}
	tree.root = tree.subtreeRemove(tree.root, leaf)
}

func (tree *ColliderTree) place(leaf *treeNode) {
	leaf.parent = nil
	if !isFinite(leaf.bb.Area()) {
		tree.unbounded = append(tree.unbounded, leaf)
		return
	}
	tree.root = tree.subtreeInsert(tree.root, leaf)
}

func (tree *ColliderTree) subtreeInsert(subtree, leaf *treeNode) *treeNode {
	if subtree == nil {
		return leaf
	}
	if subtree.isLeaf() {
		return tree.newNode(leaf, subtree)
	}

	costA := subtree.b.bb.Area() + subtree.a.bb.MergedArea(leaf.bb)
	costB := subtree.a.bb.Area() + subtree.b.bb.MergedArea(leaf.bb)

	if costA == costB {
		costA = subtree.a.bb.Proximity(leaf.bb)
		costB = subtree.b.bb.Proximity(leaf.bb)
	}

	if costB < costA {
		setB(subtree, tree.subtreeInsert(subtree.b, leaf))
	} else {
		setA(subtree, tree.subtreeInsert(subtree.a, leaf))
	}

	subtree.bb = subtree.bb.Merge(leaf.bb)
	return subtree
}

func (tree *ColliderTree) subtreeRemove(subtree, leaf *treeNode) *treeNode {
	if leaf == subtree {
		return nil
	}

	parent := leaf.parent
	if parent == subtree {
		other := subtree.other(leaf)
		other.parent = subtree.parent
		tree.recycleNode(subtree)
		return other
	}

	tree.replaceChild(parent.parent, parent, parent.other(leaf))
	return subtree
}

func (tree *ColliderTree) replaceChild(parent, child, value *treeNode) {
	if parent.a == child {
		tree.recycleNode(parent.a)
		setA(parent, value)
	} else {
		tree.recycleNode(parent.b)
		setB(parent, value)
	}

	for node := parent; node != nil; node = node.parent {
		node.bb = node.a.bb.Merge(node.b.bb)
	}
}

func (tree *ColliderTree) newNode(a, b *treeNode) *treeNode {
	node := tree.nodeFromPool()
	node.bb = a.bb.Merge(b.bb)
	setA(node, a)
	setB(node, b)
	return node
}

func (tree *ColliderTree) nodeFromPool() *treeNode {
	node := tree.pooledNodes
	if node == nil {
		return &treeNode{}
	}
	tree.pooledNodes = node.parent
	*node = treeNode{}
	return node
}

func (tree *ColliderTree) recycleNode(node *treeNode) {
	*node = treeNode{parent: tree.pooledNodes}
	tree.pooledNodes = node
}

func setA(node, value *treeNode) {
	node.a = value
	value.parent = node
}

func setB(node, value *treeNode) {
	node.b = value
	value.parent = node
}

func (node *treeNode) isLeaf() bool {
	return node.collider != nil
}

func (node *treeNode) other(child *treeNode) *treeNode {
	if node.a == child {
		return node.b
	}
	return node.a
}

func (subtree *treeNode) subtreeQuery(bb BB, found []*treeNode) []*treeNode {
	if !subtree.bb.Intersects(bb) {
		return found
	}
	if subtree.isLeaf() {
		return append(found, subtree)
	}
	found = subtree.a.subtreeQuery(bb, found)
	return subtree.b.subtreeQuery(bb, found)
}

func (subtree *treeNode) subtreeSegmentQuery(a, b vec.Vec2, found []*treeNode) []*treeNode {
	if !subtree.bb.IntersectsSegment(a, b) {
		return found
	}
	if subtree.isLeaf() {
		return append(found, subtree)
	}
	found = subtree.a.subtreeSegmentQuery(a, b, found)
	return subtree.b.subtreeSegmentQuery(a, b, found)
}
