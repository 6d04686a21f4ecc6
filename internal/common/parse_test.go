package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePositiveUint64(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{in: "101", want: 101, ok: true},
		{in: " 7 ", want: 7, ok: true},
		{in: "0", ok: false},
		{in: "-3", ok: false},
		{in: "abc", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePositiveUint64(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHash(t *testing.T) {
	require.Equal(t, "0xABCDEF", NormalizeHash("0xabcdef"))
	require.Equal(t, "0xABCDEF", NormalizeHash("abcdef"))
	require.Equal(t, "0xABCDEF", NormalizeHash("0XAbCdEf"))
	require.Equal(t, "0x", NormalizeHash(""))
}
