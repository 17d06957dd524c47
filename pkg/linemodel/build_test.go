package linemodel

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

func mustParse(t *testing.T, text string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.ParseString(text)
	require.NoError(t, err)
	return v
}

var sampleDocuments = []string{
	`null`,
	`"just a string"`,
	`42`,
	`{}`,
	`[]`,
	`{"a":1,"b":[2,3]}`,
	`{"dup":1,"dup":{"dup":[]}}`,
	`[[[]],{"x":{}},[1,[2,[3]]]]`,
	`{"users":[{"name":"Ada","tags":["math","code"]},{"name":"Linus","tags":[]}],"count":2,"ok":true,"next":null}`,
}

// randomValue builds a deterministic pseudo-random document.
func randomValue(r *rand.Rand, depth int) jsonvalue.Value {
	pick := r.Intn(7)
	if depth <= 0 && pick >= 5 {
		pick = r.Intn(5)
	}
	switch pick {
	case 0:
		return jsonvalue.Null{}
	case 1:
		return jsonvalue.Bool(r.Intn(2) == 0)
	case 2:
		return jsonvalue.Number(float64(r.Intn(1000)) / 4)
	case 3, 4:
		return jsonvalue.String(fmt.Sprintf("s%d", r.Intn(50)))
	case 5:
		obj := &jsonvalue.Object{Members: []jsonvalue.Member{}}
		for i := r.Intn(4); i > 0; i-- {
			obj.Members = append(obj.Members, jsonvalue.Member{
				Key:   fmt.Sprintf("k%d", r.Intn(3)),
				Value: randomValue(r, depth-1),
			})
		}
		return obj
	default:
		arr := &jsonvalue.Array{Elements: []jsonvalue.Value{}}
		for i := r.Intn(4); i > 0; i-- {
			arr.Elements = append(arr.Elements, randomValue(r, depth-1))
		}
		return arr
	}
}

func corpus(t *testing.T) []jsonvalue.Value {
	t.Helper()
	var out []jsonvalue.Value
	for _, doc := range sampleDocuments {
		out = append(out, mustParse(t, doc))
	}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		out = append(out, randomValue(r, 5))
	}
	return out
}

func TestBuildScenario(t *testing.T) {
	lines := Build(mustParse(t, `{"a":1,"b":[2,3]}`))
	require.Len(t, lines, 7)

	type row struct {
		level     int
		kind      Kind
		key       string
		container bool
		value     jsonvalue.Value
	}
	want := []row{
		{0, KindValue, "", true, nil},
		{1, KindValue, "a", false, jsonvalue.Number(1)},
		{1, KindValue, "b", true, nil},
		{2, KindValue, "", false, jsonvalue.Number(2)},
		{2, KindValue, "", false, jsonvalue.Number(3)},
		{1, KindClosing, "", false, nil},
		{0, KindClosing, "", false, nil},
	}

	for i, w := range want {
		l := lines[i]
		assert.Equal(t, i, l.ID)
		assert.Equal(t, w.level, l.Level, "line %d level", i)
		assert.Equal(t, w.kind, l.Kind, "line %d kind", i)
		assert.Equal(t, w.key, l.Key, "line %d key", i)
		assert.Equal(t, w.container, l.IsContainer, "line %d container", i)
		if w.value != nil {
			assert.Equal(t, w.value, l.Value, "line %d value", i)
		}
	}

	assert.Equal(t, OwnerNone, lines[0].Owner)
	assert.Equal(t, OwnerObject, lines[1].Owner)
	assert.True(t, lines[1].HasKey)
	assert.Equal(t, OwnerArray, lines[4].Owner)
	assert.Equal(t, 1, lines[4].IndexInOwner)
	assert.Equal(t, "$.b[1]", lines[4].Path.String())
	assert.True(t, lines[2].IsArray)
	assert.True(t, lines[5].IsArray)
	assert.Equal(t, 2, lines[5].OpenLineID)
	assert.Equal(t, 5, lines[2].CloseLineID)
	assert.Equal(t, 6, lines[0].CloseLineID)
}

func TestBuildScalarsAndEmptyContainers(t *testing.T) {
	tests := []struct {
		input string
		array bool
	}{
		{`{}`, false},
		{`[]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lines := Build(mustParse(t, tt.input))
			require.Len(t, lines, 1)
			assert.True(t, lines[0].IsContainer)
			assert.True(t, lines[0].IsEmptyContainer())
			assert.Equal(t, tt.array, lines[0].IsArray)
			assert.Equal(t, NoLine, lines[0].CloseLineID)
		})
	}

	lines := Build(mustParse(t, `"x"`))
	require.Len(t, lines, 1)
	assert.False(t, lines[0].IsContainer)
	assert.Equal(t, jsonvalue.String("x"), lines[0].Value)

	assert.Nil(t, Build(nil))
}

func TestBuildKeepsDuplicateKeys(t *testing.T) {
	lines := Build(mustParse(t, `{"k":1,"k":2}`))
	require.Len(t, lines, 4)
	assert.Equal(t, "k", lines[1].Key)
	assert.Equal(t, "k", lines[2].Key)
	assert.Equal(t, jsonvalue.Number(2), lines[2].Value)
	assert.Equal(t, 1, lines[2].Path[0].Member)
}

func TestBuildRoundTrips(t *testing.T) {
	for i, v := range corpus(t) {
		lines := Build(v)
		got, err := Reconstruct(lines)
		require.NoError(t, err, "document %d", i)
		assert.True(t, jsonvalue.Equal(v, got), "document %d did not round trip", i)
	}
}

func TestClosingMarkersPairWithContainers(t *testing.T) {
	for i, v := range corpus(t) {
		lines := Build(v)

		closers := map[int]int{}
		for _, l := range lines {
			if l.IsClosing() {
				closers[l.OpenLineID]++
				opener := lines[l.OpenLineID]
				assert.Equal(t, opener.Level, l.Level, "document %d", i)
				assert.Equal(t, opener.CloseLineID, l.ID, "document %d", i)
			}
		}

		nonEmpty := 0
		for _, l := range lines {
			if l.Kind == KindValue && l.IsContainer && jsonvalue.Len(l.Value) > 0 {
				nonEmpty++
				assert.Equal(t, 1, closers[l.ID], "document %d line %d", i, l.ID)
			}
			if l.IsEmptyContainer() {
				assert.Zero(t, closers[l.ID], "document %d line %d", i, l.ID)
			}
		}
		assert.Equal(t, nonEmpty, len(closers), "document %d", i)
	}
}

func TestPathsResolveToLineValues(t *testing.T) {
	for i, v := range corpus(t) {
		for _, l := range Build(v) {
			if l.IsClosing() {
				continue
			}
			got, err := jsonvalue.Resolve(v, l.Path)
			require.NoError(t, err, "document %d line %d", i, l.ID)
			assert.True(t, jsonvalue.Equal(l.Value, got), "document %d line %d", i, l.ID)
		}
	}
}

func TestReconstructRejectsBrokenSequences(t *testing.T) {
	lines := Build(mustParse(t, `{"a":[1]}`))

	unclosed := append([]Line(nil), lines[:len(lines)-1]...)
	_, err := Reconstruct(unclosed)
	assert.Error(t, err)

	swapped := append([]Line(nil), lines...)
	swapped[3].OpenLineID = 0
	_, err = Reconstruct(swapped)
	assert.Error(t, err)
}
