package record

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      []any
		want      Args
		wantError string
	}{
		{
			name: "normalizes numeric types to json.Number",
			give: []any{"Name", "SYM", 1000, int64(-5), uint64(7), big.NewInt(1e9)},
			want: Args{
				"Name", "SYM",
				json.Number("1000"), json.Number("-5"), json.Number("7"), json.Number("1000000000"),
			},
		},
		{
			name: "passes strings and bools through",
			give: []any{"uri", true},
			want: Args{"uri", true},
		},
		{
			name:      "rejects unsupported types",
			give:      []any{3.14},
			wantError: "argument 0: unsupported argument type float64",
		},
		{
			name:      "rejects nil big.Int",
			give:      []any{(*big.Int)(nil)},
			wantError: "argument 0: nil *big.Int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewArgs(tt.give...)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgs_Equal(t *testing.T) {
	t.Parallel()

	a := MustNewArgs("Name", "SYM", 1000)
	b := MustNewArgs("Name", "SYM", 1000)
	c := MustNewArgs("Name", "SYM", 1001)
	d := MustNewArgs("Name", "SYM")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestArgs_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	args := MustNewArgs("Name", "SYM", 1000, "hash", "uri", "0xForwarder")

	b, err := json.Marshal(args)
	require.NoError(t, err)
	assert.JSONEq(t, `["Name","SYM",1000,"hash","uri","0xForwarder"]`, string(b))

	var got Args
	require.NoError(t, json.Unmarshal(b, &got))

	// Element-for-element identical, including numeric representation.
	assert.True(t, args.Equal(got))
	assert.Equal(t, args, got)
}
