package token

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultStartsEmpty(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()

	vault := NewVault(mint, pool)
	assert.Equal(t, mint, vault.Mint)
	assert.Equal(t, pool, vault.Authority)
	assert.Zero(t, vault.Amount)
}

func TestAccountRoundTrip(t *testing.T) {
	acct := &Account{
		Mint:      solana.NewWallet().PublicKey(),
		Authority: solana.NewWallet().PublicKey(),
		Amount:    1,
	}
	data, err := acct.Marshal()
	require.NoError(t, err)

	var back Account
	require.NoError(t, back.Unmarshal(data))
	assert.Equal(t, *acct, back)
}
