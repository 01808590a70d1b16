package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"marmer/internal/store"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []string
		want   []string
	}{
		{"absent", nil, []string{}},
		{"repeated form values pass through", []string{"p", "q"}, []string{"p", "q"}},
		{"json array", []string{`["x","y"]`}, []string{"x", "y"}},
		{"json array with non-strings", []string{`["x", 1]`}, []string{"x", "1"}},
		{"comma separated", []string{"a,b,c"}, []string{"a", "b", "c"}},
		{"comma separated with whitespace", []string{" a , ,b "}, []string{"a", "b"}},
		{"single word", []string{"golang"}, []string{"golang"}},
		{"valid json that is not an array", []string{"42"}, []string{}},
		{"json object", []string{`{"a":1}`}, []string{}},
		{"json string", []string{`"x"`}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, store.NormalizeTags(tc.values))
		})
	}
}
