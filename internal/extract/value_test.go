package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueEquality(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		left  any
		right any
		equal bool
	}{
		{name: "nulls are equal", left: nil, right: nil, equal: true},
		{name: "identical strings", left: "ssh", right: "ssh", equal: true},
		{name: "different strings", left: "ssh", right: "http", equal: false},
		{name: "identical numbers", left: float64(22), right: float64(22), equal: true},
		{name: "int and float compare by value", left: 22, right: float64(22), equal: true},
		{name: "different numbers", left: float64(22), right: float64(443), equal: false},
		{name: "identical bools", left: true, right: true, equal: true},
		{name: "type mismatch null vs map", left: nil, right: map[string]any{}, equal: false},
		{name: "type mismatch string vs number", left: "22", right: float64(22), equal: false},
		{
			name:  "identical lists",
			left:  []any{"10.0.0.0/8", "192.168.0.0/16"},
			right: []any{"10.0.0.0/8", "192.168.0.0/16"},
			equal: true,
		},
		{
			name:  "reordered lists differ",
			left:  []any{"10.0.0.0/8", "192.168.0.0/16"},
			right: []any{"192.168.0.0/16", "10.0.0.0/8"},
			equal: false,
		},
		{
			name:  "list length differs",
			left:  []any{"10.0.0.0/8"},
			right: []any{"10.0.0.0/8", "0.0.0.0/0"},
			equal: false,
		},
		{
			name:  "identical nested maps",
			left:  map[string]any{"tags": map[string]any{"env": "prod"}},
			right: map[string]any{"tags": map[string]any{"env": "prod"}},
			equal: true,
		},
		{
			name:  "nested map key set differs",
			left:  map[string]any{"tags": map[string]any{"env": "prod"}},
			right: map[string]any{"tags": map[string]any{"env": "prod", "team": "sec"}},
			equal: false,
		},
		{
			name:  "map key order is irrelevant",
			left:  map[string]any{"a": float64(1), "b": float64(2)},
			right: map[string]any{"b": float64(2), "a": float64(1)},
			equal: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.equal, FromAny(tc.left).Equal(FromAny(tc.right)))
			require.Equal(t, tc.equal, FromAny(tc.right).Equal(FromAny(tc.left)))
		})
	}
}

func TestFromAnyKinds(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindNull, FromAny(nil).Kind())
	require.Equal(t, KindBool, FromAny(false).Kind())
	require.Equal(t, KindNumber, FromAny(float64(1)).Kind())
	require.Equal(t, KindNumber, FromAny(json.Number("42")).Kind())
	require.Equal(t, KindString, FromAny("x").Kind())
	require.Equal(t, KindList, FromAny([]any{}).Kind())
	require.Equal(t, KindList, FromAny([]string{"a"}).Kind())
	require.Equal(t, KindMap, FromAny(map[string]any{}).Kind())
}

func TestFromAnyRoundTripsDecodedJSON(t *testing.T) {
	t.Parallel()

	raw := `{"ports": ["80", "443"], "count": 3, "nested": {"deep": [true, null]}}`
	var first, second any
	require.NoError(t, json.Unmarshal([]byte(raw), &first))
	require.NoError(t, json.Unmarshal([]byte(raw), &second))

	require.True(t, FromAny(first).Equal(FromAny(second)))
}
