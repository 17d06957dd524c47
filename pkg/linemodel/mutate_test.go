package linemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

func TestCommitCoercesLeafValues(t *testing.T) {
	tests := []struct {
		raw  string
		want jsonvalue.Value
	}{
		{"42", jsonvalue.Number(42)},
		{"true", jsonvalue.Bool(true)},
		{"hello", jsonvalue.String("hello")},
		{"3.14abc", jsonvalue.String("3.14abc")},
		{"null", jsonvalue.Null{}},
		{"", jsonvalue.String("")},
		{"1_000", jsonvalue.String("1_000")},
		{"0x1p-2", jsonvalue.String("0x1p-2")},
		{"0x10", jsonvalue.Number(16)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			root := mustParse(t, `{"a":"x"}`)
			lines := Build(root)

			newRoot, coerced, err := Commit(root, lines, 1, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, coerced)
			assert.Equal(t, tt.want, lines[1].Value)

			got, ok := newRoot.(*jsonvalue.Object).Get("a")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommitWritesThroughOwner(t *testing.T) {
	root := mustParse(t, `{"a":1,"b":[2,3],"a":4}`)
	lines := Build(root)
	// 0 { | 1 a | 2 b [ | 3 | 4 | 5 ] | 6 a | 7 }

	root, _, err := Commit(root, lines, 4, "x")
	require.NoError(t, err)
	root, _, err = Commit(root, lines, 6, "false")
	require.NoError(t, err)

	want := mustParse(t, `{"a":1,"b":[2,"x"],"a":false}`)
	assert.True(t, jsonvalue.Equal(want, root))

	rebuilt, err := Reconstruct(lines)
	require.NoError(t, err)
	assert.True(t, jsonvalue.Equal(want, rebuilt), "lines should reflect the commit without a rebuild")
}

func TestCommitReplacesScalarRoot(t *testing.T) {
	root := mustParse(t, `"old"`)
	lines := Build(root)

	newRoot, coerced, err := Commit(root, lines, 0, "7")
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.Number(7), coerced)
	assert.Equal(t, jsonvalue.Number(7), newRoot)
}

func TestCommitRejectsNonLeafTargets(t *testing.T) {
	root := mustParse(t, `{"a":[1],"e":{}}`)
	lines := Build(root)
	// 0 { | 1 a [ | 2 1 | 3 ] | 4 e {} | 5 }

	for _, id := range []int{0, 1, 3, 4, 5, -1, 99} {
		newRoot, coerced, err := Commit(root, lines, id, "1")
		assert.Equal(t, errors.ErrCodeInvalidEditTarget, errors.GetCode(err), "line %d", id)
		assert.Nil(t, coerced)
		assert.Same(t, root.(*jsonvalue.Object), newRoot.(*jsonvalue.Object))
	}

	assert.True(t, jsonvalue.Equal(mustParse(t, `{"a":[1],"e":{}}`), root))
}
