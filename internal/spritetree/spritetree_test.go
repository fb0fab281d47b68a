package spritetree

import "testing"

func TestAttachDetachSubtree(t *testing.T) {
	tr := NewTree()
	a := tr.Attach(tr.Root(), Node{Layer: 1})
	b := tr.Attach(a, Node{Layer: 2})

	if _, ok := tr.Get(b); !ok {
		t.Fatalf("expected child b live before detach")
	}
	tr.Detach(a)
	if _, ok := tr.Get(a); ok {
		t.Fatalf("expected a freed after detach")
	}
	if _, ok := tr.Get(b); ok {
		t.Fatalf("expected subtree child b freed along with parent a")
	}
}

func TestWorldOffsetAccumulatesThroughChain(t *testing.T) {
	tr := NewTree()
	tr.Mutate(tr.Root(), func(n *Node) { n.Offset = Vec2{X: 1, Y: 1} })
	mid := tr.Attach(tr.Root(), Node{Offset: Vec2{X: 2, Y: 0}})
	leaf := tr.Attach(mid, Node{Offset: Vec2{X: 3, Y: 0}})

	off := tr.WorldOffset(leaf)
	if off.X != 6 || off.Y != 1 {
		t.Fatalf("expected offset (6,1), got (%v,%v)", off.X, off.Y)
	}
}

func TestPoolAllocFreeInvalidatesHandle(t *testing.T) {
	p := NewPool()
	h := p.Alloc()
	if _, ok := p.Get(h); !ok {
		t.Fatalf("expected fresh handle valid")
	}
	p.Free(h)
	if _, ok := p.Get(h); ok {
		t.Fatalf("expected freed handle invalid")
	}

	h2 := p.Alloc()
	if h2.Index != h.Index {
		t.Fatalf("expected slot reuse, got different index")
	}
	if h2.Generation == h.Generation {
		t.Fatalf("expected bumped generation on reused slot")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPool()
	h := p.Alloc()
	tr, _ := p.Get(h)
	tr.Mutate(tr.Root(), func(n *Node) { n.Layer = 5 })

	clone := p.Clone()
	ctr, _ := clone.Get(h)
	ctr.Mutate(ctr.Root(), func(n *Node) { n.Layer = 9 })

	orig, _ := p.Get(h)
	n, _ := orig.Get(orig.Root())
	if n.Layer != 5 {
		t.Fatalf("expected original unaffected by clone mutation, got layer %d", n.Layer)
	}
}
