package distance_test

import (
	"errors"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hiercluster/distance"
)

// TestResolve checks that Unknown never turns into a small distance.
func TestResolve(t *testing.T) {
	assert.Equal(t, distance.Max, distance.Resolve(distance.Unknown)) // sentinel → worst case
	assert.Equal(t, distance.Max, distance.Resolve(math.NaN()))       // NaN → worst case
	assert.Equal(t, distance.Max, distance.Resolve(-0.3))             // negative → worst case
	assert.Equal(t, distance.Max, distance.Resolve(7))                // clamped
	assert.Equal(t, 0.25, distance.Resolve(0.25))                     // untouched
	assert.Equal(t, distance.Min, distance.Resolve(0))                // zero stays zero

	assert.True(t, distance.IsUnknown(distance.Unknown))
	assert.False(t, distance.IsUnknown(0))
}

func TestParseKind(t *testing.T) {
	k, err := distance.ParseKind(" Levenshtein ")
	require.NoError(t, err)
	assert.Equal(t, distance.KindLevenshtein, k)

	_, err = distance.ParseKind("soundex")
	require.ErrorIs(t, err, distance.ErrUnknownKind)

	for _, k := range distance.Kinds() {
		got, err := distance.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestFunc(t *testing.T) {
	_, err := distance.Func("", nil)
	require.ErrorIs(t, err, distance.ErrNilFunc)

	calc, err := distance.Func("", func(a, b string) (float64, error) { return 0.4, nil })
	require.NoError(t, err)
	assert.Equal(t, distance.KindFunc, calc.Kind()) // empty kind defaults
	d, err := calc.Distance("x", "y")
	require.NoError(t, err)
	assert.Equal(t, 0.4, d)
}

func TestLevenshtein(t *testing.T) {
	var calc distance.Levenshtein

	d, err := calc.Distance("kitten", "sitting")
	require.NoError(t, err)
	assert.InDelta(t, 3.0/7.0, d, 1e-12) // 3 edits over 7 runes

	d, _ = calc.Distance("getName", "GETNAME")
	assert.Equal(t, distance.Min, d) // case-insensitive

	d, _ = calc.Distance("", "")
	assert.Equal(t, distance.Min, d)

	d, _ = calc.Distance("abc", "")
	assert.Equal(t, distance.Max, d)

	assert.Equal(t, 0, distance.EditDistance([]rune("same"), []rune("same")))
	assert.Equal(t, 1, distance.EditDistance([]rune("flaw"), []rune("flow")))
	assert.Equal(t, distance.KindLevenshtein, calc.Kind())
}

func TestSplitIdentifier(t *testing.T) {
	cases := map[string][]string{
		"getHTTPResponse2": {"get", "http", "response", "2"},
		"set_file_name":    {"set", "file", "name"},
		"URL":              {"url"},
		"x":                {"x"},
		"$__":              nil,
	}
	for in, want := range cases {
		assert.Equal(t, want, distance.SplitIdentifier(in), in)
	}
}

func TestIdentifier(t *testing.T) {
	var calc distance.Identifier

	d, err := calc.Distance("getFileName", "setFileName")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 1e-12) // {file,name} shared out of 4 words

	d, _ = calc.Distance("fileName", "FILE_NAME")
	assert.Equal(t, distance.Min, d)

	d, _ = calc.Distance("open", "close")
	assert.Equal(t, distance.Max, d)
}

func TestTable(t *testing.T) {
	tbl, err := distance.LoadTable(strings.NewReader(`
# a comment
a, b, 0.1
c,d,0.2
a,c,-1
`))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	d, _ := tbl.Distance("b", "a") // symmetric
	assert.Equal(t, 0.1, d)
	d, _ = tbl.Distance("a", "a")
	assert.Equal(t, distance.Min, d)
	d, _ = tbl.Distance("a", "c")
	assert.Equal(t, distance.Unknown, d) // explicit sentinel
	d, _ = tbl.Distance("a", "zzz")
	assert.Equal(t, distance.Unknown, d) // never set

	_, err = distance.LoadTable(strings.NewReader("a,b,notanumber\n"))
	require.ErrorIs(t, err, distance.ErrBadRecord)
	_, err = distance.LoadTable(strings.NewReader("a,b,1.5\n"))
	require.ErrorIs(t, err, distance.ErrBadRecord)
	_, err = distance.LoadTable(strings.NewReader("a,b\n"))
	require.ErrorIs(t, err, distance.ErrBadRecord)
}

func TestMemo(t *testing.T) {
	var calls atomic.Int32
	inner, err := distance.Func(distance.KindIdentifier, func(a, b string) (float64, error) {
		calls.Add(1)
		return 0.3, nil
	})
	require.NoError(t, err)

	m := distance.NewMemo(inner)
	assert.Same(t, m, distance.NewMemo(m)) // no double wrapping
	assert.Equal(t, distance.KindIdentifier, m.Kind())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := m.Distance("p", "q")
			assert.NoError(t, err)
			assert.Equal(t, 0.3, d)
		}()
	}
	wg.Wait()

	d, err := m.Distance("q", "p") // reversed pair hits the cache
	require.NoError(t, err)
	assert.Equal(t, 0.3, d)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, m.Calls())
	assert.Equal(t, 1, m.Len())
}

func TestMemoDoesNotCacheErrors(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	inner, _ := distance.Func("", func(a, b string) (float64, error) {
		if fail {
			return 0, boom
		}
		return 0.6, nil
	})
	m := distance.NewMemo(inner)

	_, err := m.Distance("a", "b")
	require.ErrorIs(t, err, boom)

	fail = false
	d, err := m.Distance("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.6, d)
}

func TestVectorSpace(t *testing.T) {
	vs, err := distance.LoadVectorSpace(strings.NewReader(`
m1 apple banana
m2 apple banana
m3 cherry
m4
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4"}, vs.Members())
	assert.Equal(t, 3, vs.Terms())

	d, err := vs.Distance("m1", "m2")
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-12) // same words

	d, _ = vs.Distance("m1", "m3")
	assert.InDelta(t, 1, d, 1e-12) // nothing shared

	d, _ = vs.Distance("m1", "m4")
	assert.Equal(t, distance.Max, d) // empty document

	d, _ = vs.Distance("m1", "ghost")
	assert.Equal(t, distance.Unknown, d)

	_, err = distance.LoadVectorSpace(strings.NewReader("m1 a\nm1 b\n"))
	require.ErrorIs(t, err, distance.ErrBadRecord)
}

func TestCallGraphNeighbourhood(t *testing.T) {
	g, err := distance.LoadCallGraph(strings.NewReader("a b\nb c\nd\n# comment\n"), distance.KindNeighbourhood)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Members())
	assert.Equal(t, distance.KindNeighbourhood, g.Kind())

	d, err := g.Distance("a", "c")
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, d, 1e-12) // {a,b} vs {b,c}

	d, _ = g.Distance("a", "b")
	assert.InDelta(t, 1.0/3.0, d, 1e-12) // {a,b} vs {a,b,c}

	d, _ = g.Distance("a", "d")
	assert.Equal(t, distance.Max, d)

	d, _ = g.Distance("a", "nope")
	assert.Equal(t, distance.Unknown, d)
}

func TestCallGraphPath(t *testing.T) {
	g := distance.NewCallGraph(distance.KindPath)
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("c", "c")) // self-link only registers
	require.NoError(t, g.AddMember("d"))
	require.ErrorIs(t, g.AddEdge("", "x"), distance.ErrEmptyMember)

	d, _ := g.Distance("a", "b")
	assert.InDelta(t, 0.5, d, 1e-12)
	d, _ = g.Distance("a", "c")
	assert.InDelta(t, 2.0/3.0, d, 1e-12)
	d, _ = g.Distance("c", "a")
	assert.InDelta(t, 2.0/3.0, d, 1e-12)
	d, _ = g.Distance("a", "d")
	assert.Equal(t, distance.Max, d)
	d, _ = g.Distance("a", "a")
	assert.Equal(t, distance.Min, d)

	_, err := distance.LoadCallGraph(strings.NewReader("a b c\n"), distance.KindPath)
	require.ErrorIs(t, err, distance.ErrBadRecord)

	assert.Panics(t, func() { distance.NewCallGraph(distance.KindWeb) })
}
