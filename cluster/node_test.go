// SPDX-License-Identifier: MIT
package cluster_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hiercluster/cluster"
	"github.com/katalvlaran/hiercluster/distance"
)

func TestNewNode(t *testing.T) {
	sub, err := cluster.NewNode("b+1", 0.1, "", cluster.LeafChild("b"), cluster.LeafChild("c"))
	require.NoError(t, err)

	n, err := cluster.NewNode("a+2", 0.3, "note",
		cluster.ClusterChild(sub), cluster.LeafChild("z"), cluster.LeafChild("a"), cluster.LeafChild("a"))
	require.NoError(t, err)

	keys := make([]string, 0, 3)
	for _, c := range n.Children() {
		keys = append(keys, c.Key())
	}
	assert.Equal(t, []string{"a", "b+1", "z"}, keys) // sorted, duplicate leaf dropped
	assert.Equal(t, 4, n.ElementCount())
	assert.Equal(t, []string{"a", "b", "c", "z"}, n.Elements())
	assert.Equal(t, 2, n.Iteration())
	assert.Equal(t, "note", n.Comment())

	_, err = cluster.NewNode("", 0, "", cluster.LeafChild("a"))
	require.ErrorIs(t, err, cluster.ErrEmptyName)
	_, err = cluster.NewNode("x", 0, "")
	require.ErrorIs(t, err, cluster.ErrNoChildren)
	_, err = cluster.NewNode("x", 0, "", cluster.ClusterChild(nil))
	require.ErrorIs(t, err, cluster.ErrNilChild)
	_, err = cluster.NewNode("x", 0, "", cluster.LeafChild(""))
	require.ErrorIs(t, err, cluster.ErrNilChild)
}

func TestNewNode_LeafBeforeClusterOnEqualKey(t *testing.T) {
	sub, _ := cluster.NewNode("k", 0.1, "", cluster.LeafChild("p"), cluster.LeafChild("q"))
	n, err := cluster.NewNode("r", 0.2, "", cluster.ClusterChild(sub), cluster.LeafChild("k"))
	require.NoError(t, err)

	kids := n.Children()
	require.Len(t, kids, 2)
	assert.True(t, kids[0].IsLeaf())
	assert.False(t, kids[1].IsLeaf())
	assert.Equal(t, 3, n.ElementCount())
}

func TestChildrenIsACopy(t *testing.T) {
	n, _ := cluster.NewNode("a+1", 0.1, "", cluster.LeafChild("a"), cluster.LeafChild("b"))
	kids := n.Children()
	kids[0] = cluster.LeafChild("mutated")
	assert.Equal(t, "a", n.Children()[0].Leaf())
}

func TestWalkStops(t *testing.T) {
	n, _ := cluster.NewNode("a+1", 0.1, "", cluster.LeafChild("a"), cluster.LeafChild("b"))
	visits := 0
	n.Walk(func(cluster.Child, int) bool {
		visits++
		return visits < 2
	})
	assert.Equal(t, 2, visits)
}

func TestClusterName(t *testing.T) {
	assert.Equal(t, "a+1", cluster.ClusterName("b", "a", 0))
	assert.Equal(t, "x1+2", cluster.ClusterName("x3", "x1+1", 1))

	// stripping never accumulates suffixes
	name := "m"
	for it := 0; it < 30; it++ {
		name = cluster.ClusterName(name, "z", it)
		assert.Equal(t, 1, strings.Count(name, "+"), name)
	}
	assert.Equal(t, "m+30", name)
	assert.Equal(t, "x1+27", cluster.ClusterName("x1+25+26", "y", 26))

	assert.Equal(t, 30, cluster.ParseIteration("m+30"))
	assert.Equal(t, 0, cluster.ParseIteration("plain"))
	assert.Equal(t, 0, cluster.ParseIteration("odd+x"))
}

func TestHistory(t *testing.T) {
	h := cluster.NewHistory()
	require.NoError(t, h.AddLeaf("a"))
	require.NoError(t, h.AddLeaf("b"))
	require.ErrorIs(t, h.AddLeaf("a"), cluster.ErrDuplicateEntity)
	require.ErrorIs(t, h.AddLeaf(""), cluster.ErrEmptyEntity)

	n, _ := cluster.NewNode("a+1", 0.1, "", h.Child("a"), h.Child("b"))
	require.NoError(t, h.AddCluster(n))
	require.ErrorIs(t, h.AddCluster(n), cluster.ErrNameCollision)

	assert.Equal(t, []string{"a"}, h.Elements("a"))
	assert.Equal(t, []string{"a", "b"}, h.Elements("a+1"))
	assert.Nil(t, h.Elements("zz"))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"a", "b", "a+1"}, h.Labels())
	assert.False(t, h.Child("a+1").IsLeaf())
}

func TestNestedString(t *testing.T) {
	c, err := cluster.New([]string{"a", "b", "c", "d"}, fourPoint(t))
	require.NoError(t, err)
	root, err := c.ClusterToSingle()
	require.NoError(t, err)

	want := strings.Join([]string{
		"a+3",
		"  |+1 (0.10)",
		"    |-A",
		"    |-B",
		"  |+2 (0.20)",
		"    |-C",
		"    |-D",
		"",
	}, "\n")
	assert.Equal(t, want, root.NestedString(strings.ToUpper))
	assert.Equal(t, strings.ToLower(want), root.String())
}

func TestNestedString_LineCount(t *testing.T) {
	c, err := cluster.New([]string{"x1", "x2", "x3"}, threePoint(t))
	require.NoError(t, err)
	root, err := c.ClusterToSingle()
	require.NoError(t, err)

	nonRoot := -1
	root.Walk(func(cluster.Child, int) bool { nonRoot++; return true })

	lines := strings.Split(strings.TrimSuffix(root.NestedString(nil), "\n"), "\n")
	marked := 0
	for _, l := range lines[1:] {
		if strings.Contains(l, "|-") || strings.Contains(l, "|+") {
			marked++
		}
	}
	assert.Equal(t, nonRoot, marked)
	assert.Equal(t, 4, marked)
}

func TestNestedString_UnsuffixedSubcluster(t *testing.T) {
	sub, _ := cluster.NewNode("group", 0.1, "ignored", cluster.LeafChild("a"))
	root, _ := cluster.NewNode("root", 0.2, "", cluster.ClusterChild(sub), cluster.LeafChild("b"))
	assert.Equal(t, "root\n  |-b\n  |+group\n    |-a\n", root.NestedString(nil))
}

func TestNewick_FourPoint(t *testing.T) {
	c, err := cluster.New([]string{"a", "b", "c", "d"}, fourPoint(t))
	require.NoError(t, err)
	root, err := c.ClusterToSingle()
	require.NoError(t, err)

	assert.Equal(t,
		"((A:0.10,B:0.10)it1-0.10:0.80,(C:0.20,D:0.20)it2-0.20:0.70)it3-0.90:0.10;\n",
		root.Newick(strings.ToUpper))
}

func TestNewick_WellFormed(t *testing.T) {
	single, err := cluster.NewNode("solo", 0, "", cluster.LeafChild("solo"))
	require.NoError(t, err)
	assert.Equal(t, "(solo:0.00)it0-0.00:1.00;\n", single.Newick(nil))

	two, err := cluster.New([]string{"p", "q"}, distance.Levenshtein{})
	require.NoError(t, err)
	r2, err := two.ClusterToSingle()
	require.NoError(t, err)

	five, err := cluster.New([]string{"getName", "setName", "getValue", "setValue", "reset"}, distance.Levenshtein{})
	require.NoError(t, err)
	r5, err := five.ClusterToSingle()
	require.NoError(t, err)

	for _, n := range []*cluster.Node{single, r2, r5} {
		s := n.Newick(nil)
		assert.True(t, balanced(s), s)
		assert.True(t, strings.HasSuffix(s, ";\n"), s)
		assert.Equal(t, n.ElementCount(), strings.Count(s, ",")+1, s)
	}
}

func TestNewick_LabelsSanitizedAndUnique(t *testing.T) {
	n, _ := cluster.NewNode("x+1", 0.5, "",
		cluster.LeafChild("get(int)"), cluster.LeafChild("k1"), cluster.LeafChild("k2"))
	display := func(id string) string {
		if strings.HasPrefix(id, "k") {
			return "same name"
		}
		return id
	}
	assert.Equal(t, "(get_int_:0.50,same_name:0.50,same_name_2:0.50)it1-0.50:0.50;\n", n.Newick(display))

	var sb strings.Builder
	require.NoError(t, n.WriteNewick(&sb, display))
	assert.Equal(t, n.Newick(display), sb.String())
}
