package typegraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	g := NewGraph("Actor")
	require.NotNil(t, g.Root())
	require.True(t, g.Root().Abstract())
	require.Same(t, g.Root(), g.Lookup("Actor"))

	a, err := g.Register("A", nil)
	require.NoError(t, err)
	require.Same(t, g.Root(), a.Parent())

	b, err := g.Register("B", a)
	require.NoError(t, err)
	require.Same(t, a, b.Parent())
}

func TestRegisterErrors(t *testing.T) {
	g := NewGraph("Actor")
	_, err := g.Register("", nil)
	require.Error(t, err)

	_, err = g.Register("A", nil)
	require.NoError(t, err)
	_, err = g.Register("A", nil)
	require.Error(t, err, "duplicate name must be rejected")

	other := NewGraph("Actor")
	foreign, err := other.Register("X", nil)
	require.NoError(t, err)
	_, err = g.Register("Y", foreign)
	require.Error(t, err, "parent from another graph must be rejected")
}

func TestAncestryOrder(t *testing.T) {
	g := NewGraph("Actor")
	a, _ := g.Register("A", nil)
	b, _ := g.Register("B", a)
	c, _ := g.Register("C", b)

	chain := c.Ancestry()
	require.Equal(t, []*Class{c, b, a}, chain, "most-derived first, root excluded")
	require.Empty(t, g.Root().Ancestry())
}

func TestIsA(t *testing.T) {
	g := NewGraph("Actor")
	a, _ := g.Register("A", nil)
	b, _ := g.Register("B", a)
	other, _ := g.Register("Other", nil)

	require.True(t, b.IsA(b))
	require.True(t, b.IsA(a))
	require.True(t, b.IsA(g.Root()))
	require.False(t, a.IsA(b))
	require.False(t, b.IsA(other))
}

func TestFinalParentDefault(t *testing.T) {
	g := NewGraph("Actor")
	concrete, _ := g.Register("Concrete", nil)
	abstract, _ := g.Register("Base", nil, Abstract())

	require.True(t, concrete.IsFinalParent())
	require.False(t, abstract.IsFinalParent())
	require.False(t, g.Root().IsFinalParent())
}

func TestFinalParentOverride(t *testing.T) {
	g := NewGraph("Actor")
	// abstract base that opts in anyway
	base, _ := g.Register("Base", nil, Abstract(), WithTraits(Traits{
		FinalParent: func() bool { return true },
	}))
	require.True(t, base.IsFinalParent())

	// concrete class that opts out
	sub, _ := g.Register("Sub", base, WithTraits(Traits{
		FinalParent: func() bool { return false },
	}))
	require.False(t, sub.IsFinalParent())
}

func TestNoticeInheritance(t *testing.T) {
	g := NewGraph("Actor")
	base, _ := g.Register("Base", nil, WithTraits(Traits{
		NoticeTitle: func() string { return "custom title" },
	}))
	sub, _ := g.Register("Sub", base)
	plain, _ := g.Register("Plain", nil)

	require.Equal(t, "custom title", base.NoticeTitle())
	require.Equal(t, "custom title", sub.NoticeTitle(), "notice overrides inherit down the chain")
	require.Equal(t, defaultNoticeTitle, plain.NoticeTitle())
	require.Equal(t, defaultNoticeBody, sub.NoticeBody(), "body not overridden, falls back to default")
}
