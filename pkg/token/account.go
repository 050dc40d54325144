// Package token models the token accounts the pool program touches: reserve
// vaults owned by a pool and the NFT holdings that prove position ownership.
package token

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	// TokenProgramID is the classic SPL token program.
	TokenProgramID = solana.TokenProgramID
	// Token2022ProgramID is the token-2022 program with mint extensions.
	Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
)

// Account is a token holding: Amount units of Mint controlled by Authority.
type Account struct {
	Mint      solana.PublicKey
	Authority solana.PublicKey
	Amount    uint64
}

func (a *Account) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encode token account: %w", err)
	}
	return buf.Bytes(), nil
}

func (a *Account) Unmarshal(data []byte) error {
	if err := bin.NewBorshDecoder(data).Decode(a); err != nil {
		return fmt.Errorf("decode token account: %w", err)
	}
	return nil
}

// NewVault returns a zero-balance holding of mint controlled by authority,
// the shape a pool reserve starts in.
func NewVault(mint, authority solana.PublicKey) *Account {
	return &Account{Mint: mint, Authority: authority}
}
