package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBigInt(t *testing.T) {
	tests := []struct {
		name     string
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{name: "nil amount", amount: nil, decimals: 18, want: "0"},
		{name: "zero amount", amount: big.NewInt(0), decimals: 18, want: "0"},
		{name: "zero decimals", amount: big.NewInt(12345), decimals: 0, want: "12345"},
		{name: "whole token", amount: mustBig("1000000000000000000"), decimals: 18, want: "1"},
		{name: "fractional tail trimmed", amount: mustBig("1234500000000000000"), decimals: 18, want: "1.2345"},
		{name: "sub unit", amount: big.NewInt(1), decimals: 18, want: "0.000000000000000001"},
		{name: "six decimals", amount: big.NewInt(2500000), decimals: 6, want: "2.5"},
		{name: "large balance", amount: mustBig("987654321000000"), decimals: 6, want: "987654321"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatBigInt(tc.amount, tc.decimals))
		})
	}
}

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad big.Int literal: " + s)
	}
	return v
}
