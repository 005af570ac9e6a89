package totalmap_test

import (
	"encoding/json"
	"maps"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/totalmap/codec"
	"github.com/tailored-agentic-units/totalmap/commonality"
	"github.com/tailored-agentic-units/totalmap/store"
	"github.com/tailored-agentic-units/totalmap/totalmap"
)

func TestJSON_Serialize(t *testing.T) {
	m := totalmap.NewTree[string, string]()
	m.Insert("foo", "bar")
	m.Insert("baz", "quux")
	m.Insert("common", "")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"baz","value":"quux"},{"key":"foo","value":"bar"}]`, string(data))
}

func TestJSON_SerializeEmpty(t *testing.T) {
	data, err := json.Marshal(totalmap.NewHash[string, int]())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestJSON_Deserialize(t *testing.T) {
	m := totalmap.NewHash[string, string]()
	m.Insert("stale", "entry")

	err := json.Unmarshal([]byte(`[{"key":"foo","value":"bar"},{"key":"baz","value":"quux"}]`), m)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"foo": "bar", "baz": "quux"}, maps.Collect(m.All()))
	assert.False(t, m.Contains("stale"), "decoding replaces previous contents")
}

func TestJSON_DeserializeDropsCommonPairs(t *testing.T) {
	m := totalmap.NewTree[string, string]()

	input := `[
		{"key":"foo","value":"bar"},
		{"key":"this entry should not be present in the total map","value":""},
		{"key":"baz","value":"quux"}
	]`
	require.NoError(t, json.Unmarshal([]byte(input), m))

	assert.Equal(t, map[string]string{"foo": "bar", "baz": "quux"}, maps.Collect(m.All()))
}

func TestJSON_DeserializeStrict(t *testing.T) {
	newStrict := func() *totalmap.Map[string, int] {
		return totalmap.NewNonZeroHash[string, int](totalmap.WithDecodeMode(codec.ModeStrict))
	}

	t.Run("accepts canonical input", func(t *testing.T) {
		m := newStrict()
		require.NoError(t, json.Unmarshal([]byte(`[{"key":"a","value":1}]`), m))
		assert.Equal(t, 1, m.Get("a"))
	})

	t.Run("rejects common pair and keeps contents", func(t *testing.T) {
		m := newStrict()
		m.Insert("keep", 1)

		err := json.Unmarshal([]byte(`[{"key":"a","value":1},{"key":"b","value":0}]`), m)
		require.ErrorIs(t, err, codec.ErrCommonPair)
		assert.Equal(t, 1, m.Get("keep"))
	})

	t.Run("rejects duplicate key", func(t *testing.T) {
		m := newStrict()
		err := json.Unmarshal([]byte(`[{"key":"a","value":1},{"key":"a","value":2}]`), m)
		require.ErrorIs(t, err, codec.ErrDuplicateKey)
		assert.True(t, m.IsEmpty())
	})
}

func TestJSON_DeserializeMalformed(t *testing.T) {
	m := totalmap.NewHash[string, int]()
	for _, input := range []string{`{"a":1}`, `[{"key":1,"value":1}]`, `"text"`} {
		err := json.Unmarshal([]byte(input), m)
		assert.ErrorIs(t, err, codec.ErrMalformedInput, "input %s", input)
	}
}

func TestJSON_DeserializeIntoZeroMap(t *testing.T) {
	var m totalmap.Map[string, int]
	err := json.Unmarshal([]byte(`[]`), &m)
	assert.ErrorIs(t, err, totalmap.ErrUninitialized)
}

func TestJSON_TextMarshalerKeys(t *testing.T) {
	src := totalmap.NewHash[uuid.UUID, int]()
	a, b := uuid.New(), uuid.New()
	src.Insert(a, 3)
	src.Insert(b, 0)

	data, err := json.Marshal(src)
	require.NoError(t, err)
	assert.Contains(t, string(data), a.String())
	assert.NotContains(t, string(data), b.String())

	dst := totalmap.NewHash[uuid.UUID, int]()
	require.NoError(t, json.Unmarshal(data, dst))
	assert.True(t, totalmap.Equal(src, dst))
	assert.Equal(t, 0, dst.Get(b))
}

func TestYAML_RoundTrip(t *testing.T) {
	src := totalmap.NewNonZeroTree[string, float64]()
	src.Insert("pi", 3.14)
	src.Insert("zero", 0)
	src.Insert("neg", -1.5)

	data, err := yaml.Marshal(src)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "zero")

	dst := totalmap.NewNonZeroHash[string, float64]()
	require.NoError(t, yaml.Unmarshal(data, dst))
	assert.Equal(t, maps.Collect(src.All()), maps.Collect(dst.All()))
}

func TestYAML_DeserializeDropsCommonPairs(t *testing.T) {
	input := "- key: a\n  value: 2\n- key: b\n  value: 0\n"
	m := totalmap.NewNonZeroHash[string, int]()
	require.NoError(t, yaml.Unmarshal([]byte(input), m))
	assert.Equal(t, map[string]int{"a": 2}, maps.Collect(m.All()))
}

func TestYAML_DeserializeMalformed(t *testing.T) {
	m := totalmap.NewNonZeroHash[string, int]()
	err := yaml.Unmarshal([]byte("- key: a\n  value: [1, 2]\n"), m)
	assert.ErrorIs(t, err, codec.ErrMalformedInput)
}

func TestBinary_RoundTrip(t *testing.T) {
	c := codec.Binary[string, int64]{Key: codec.String[string]{}, Value: codec.Sint[int64]{}}

	for name, newStore := range map[string]func() store.Store[string, int64]{
		"hash": store.NewHashStore[string, int64],
		"tree": store.NewTreeStore[string, int64],
	} {
		t.Run(name, func(t *testing.T) {
			src := totalmap.New(newStore(), commonality.Zero[string, int64]{})
			src.Insert("a", -7)
			src.Insert("b", 0)
			src.Insert("c", 1<<40)

			data, err := src.EncodeBinary(c)
			require.NoError(t, err)

			dst := totalmap.New(newStore(), commonality.Zero[string, int64]{})
			require.NoError(t, dst.DecodeBinary(data, c))
			assert.True(t, totalmap.Equal(src, dst))
			assert.Equal(t, 2, dst.Len())
		})
	}
}

func TestBinary_DecodeMalformed(t *testing.T) {
	c := codec.Binary[string, int64]{Key: codec.String[string]{}, Value: codec.Int[int64]{}}
	m := totalmap.NewNonZeroHash[string, int64]()

	err := m.DecodeBinary([]byte{0x0a, 0x05, 0x0a}, c)
	assert.ErrorIs(t, err, codec.ErrMalformedInput)
}

func TestRoundTrip_PreservesPairSet(t *testing.T) {
	src := totalmap.NewNonZeroHash[string, int]()
	for i, k := range []string{"a", "b", "c", "d", "e"} {
		src.Insert(k, i%3)
	}

	data, err := json.Marshal(src)
	require.NoError(t, err)

	dst := totalmap.NewNonZeroTree[string, int]()
	require.NoError(t, json.Unmarshal(data, dst))
	assert.Equal(t, maps.Collect(src.All()), maps.Collect(dst.All()))
}

type grid = totalmap.Map[string, *totalmap.Map[string, int]]

func newGrid() *grid {
	return totalmap.New(store.NewTreeStore[string, *totalmap.Map[string, int]](), commonality.Empty[string, *totalmap.Map[string, int]]{
		New: func() *totalmap.Map[string, int] { return totalmap.NewNonZeroTree[string, int]() },
	})
}

func sameGrid(a, b *grid) bool {
	return totalmap.EqualFunc(a, b, totalmap.Equal[string, int])
}

func sampleGrid() *grid {
	g := newGrid()
	row := g.Entry("r1")
	row.Get().Insert("a", 1)
	row.Get().Insert("b", -2)
	row.Release()

	row = g.Entry("r2")
	row.Get().Insert("c", 3)
	row.Release()
	return g
}

func TestNested_JSONRoundTrip(t *testing.T) {
	src := sampleGrid()

	data, err := json.Marshal(src)
	require.NoError(t, err)

	dst := newGrid()
	require.NoError(t, json.Unmarshal(data, dst))
	assert.True(t, sameGrid(src, dst))
	assert.Equal(t, -2, dst.Get("r1").Get("b"))
	assert.Equal(t, 0, dst.Get("missing").Get("b"))
}

func TestNested_JSONDropsEmptyInnerMaps(t *testing.T) {
	input := `[
		{"key":"r1","value":[{"key":"a","value":1},{"key":"z","value":0}]},
		{"key":"r2","value":[{"key":"z","value":0}]},
		{"key":"r3","value":[]},
		{"key":"r4"}
	]`

	dst := newGrid()
	require.NoError(t, json.Unmarshal([]byte(input), dst))
	assert.Equal(t, []string{"r1"}, slices.Collect(dst.Keys()))
	assert.Equal(t, map[string]int{"a": 1}, maps.Collect(dst.Get("r1").All()))
}

func TestNested_JSONInnerMalformed(t *testing.T) {
	err := json.Unmarshal([]byte(`[{"key":"r1","value":{"a":1}}]`), newGrid())
	assert.ErrorIs(t, err, codec.ErrMalformedInput)
}

func TestNested_YAMLRoundTrip(t *testing.T) {
	src := sampleGrid()

	data, err := yaml.Marshal(src)
	require.NoError(t, err)

	dst := newGrid()
	require.NoError(t, yaml.Unmarshal(data, dst))
	assert.True(t, sameGrid(src, dst))
}

func TestNested_BinaryRoundTrip(t *testing.T) {
	inner := codec.Binary[string, int]{Key: codec.String[string]{}, Value: codec.Sint[int]{}}
	c := codec.Binary[string, *totalmap.Map[string, int]]{
		Key:   codec.String[string]{},
		Value: codec.Nested[*totalmap.Map[string, int], string, int]{Codec: inner},
	}
	src := sampleGrid()

	data, err := src.EncodeBinary(c)
	require.NoError(t, err)

	dst := newGrid()
	require.NoError(t, dst.DecodeBinary(data, c))
	assert.True(t, sameGrid(src, dst))
}

func TestMapValued_RoundTrip(t *testing.T) {
	newMap := func() *totalmap.Map[string, map[string]int] {
		return totalmap.New(store.NewHashStore[string, map[string]int](), commonality.EmptyMap[string, map[string]int, string, int]{})
	}
	src := newMap()
	src.Insert("a", map[string]int{"x": 1, "y": 2})
	src.Insert("b", map[string]int{})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(src)
		require.NoError(t, err)

		dst := newMap()
		require.NoError(t, json.Unmarshal(data, dst))
		assert.Equal(t, maps.Collect(src.All()), maps.Collect(dst.All()))
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(src)
		require.NoError(t, err)

		dst := newMap()
		require.NoError(t, yaml.Unmarshal(data, dst))
		assert.Equal(t, maps.Collect(src.All()), maps.Collect(dst.All()))
	})
}
