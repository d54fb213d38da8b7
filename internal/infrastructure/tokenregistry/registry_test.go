package tokenregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap_desk/internal/domain/entity"
)

func TestTokens_FixedListInOrder(t *testing.T) {
	reg := NewStaticRegistry()
	tokens := reg.Tokens()

	require.Len(t, tokens, 4)
	assert.Equal(t, "ETH", tokens[0].Name)
	assert.Equal(t, "USDC", tokens[1].Name)
	assert.Equal(t, "USDT", tokens[2].Name)
	assert.Equal(t, "LINK", tokens[3].Name)

	assert.True(t, tokens[0].IsNative())
	assert.Equal(t, entity.NativeTokenAddress, tokens[0].Address)
	for _, tok := range tokens[1:] {
		assert.False(t, tok.IsNative(), tok.Name)
		assert.NotEmpty(t, tok.Address, tok.Name)
	}
}

func TestTokens_ReturnsIndependentCopy(t *testing.T) {
	reg := NewStaticRegistry()

	first := reg.Tokens()
	first[0].Balance = "999"
	first[1].Name = "MUTATED"

	second := reg.Tokens()
	assert.Empty(t, second[0].Balance)
	assert.Equal(t, "USDC", second[1].Name)
}
