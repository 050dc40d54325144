package clmm

import (
	"bytes"

	"github.com/Solana-ZH/clmmcore/pkg/token"
	"github.com/gagliardetto/solana-go"
)

// ExtensionType identifies a token-2022 mint extension.
type ExtensionType uint16

const (
	ExtensionTransferFeeConfig   ExtensionType = 1
	ExtensionMintCloseAuthority  ExtensionType = 3
	ExtensionDefaultAccountState ExtensionType = 6
	ExtensionNonTransferable     ExtensionType = 9
	ExtensionPermanentDelegate   ExtensionType = 12
	ExtensionTransferHook        ExtensionType = 14
	ExtensionMetadataPointer     ExtensionType = 18
	ExtensionTokenMetadata       ExtensionType = 19
)

// MintInfo describes one asset of a pool: its mint identity, decimals, the
// token program variant that owns it, and any token-2022 extensions.
type MintInfo struct {
	Key          solana.PublicKey
	Decimals     uint8
	TokenProgram solana.PublicKey
	Extensions   []ExtensionType
}

// supportedExtensions is the hardcoded allow-list for token-2022 mints that
// have no explicit support association.
var supportedExtensions = map[ExtensionType]bool{
	ExtensionTransferFeeConfig: true,
	ExtensionMetadataPointer:   true,
	ExtensionTokenMetadata:     true,
}

// IsSupportedMint reports whether the pool program can hold mint. Classic
// SPL token mints are always supported. A token-2022 mint passes if an
// association record exists, or if every extension it carries is on the
// allow-list.
func IsSupportedMint(mint MintInfo, hasAssociation bool) bool {
	if mint.TokenProgram.Equals(token.TokenProgramID) {
		return true
	}
	if !mint.TokenProgram.Equals(token.Token2022ProgramID) {
		return false
	}
	if hasAssociation {
		return true
	}
	for _, ext := range mint.Extensions {
		if !supportedExtensions[ext] {
			return false
		}
	}
	return true
}

// mintOrderValid reports the strict byte-lexicographic mint0 < mint1 rule.
func mintOrderValid(mint0, mint1 solana.PublicKey) bool {
	return bytes.Compare(mint0.Bytes(), mint1.Bytes()) < 0
}
