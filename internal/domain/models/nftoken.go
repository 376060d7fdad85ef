package models

import (
	"encoding/hex"
	"errors"
	"strings"
)

// NFTokenIDLength is the hex length of an NFTokenID (32 bytes).
const NFTokenIDLength = 64

// ErrInvalidNFTokenID is returned for ids that are not 64 hex characters.
var ErrInvalidNFTokenID = errors.New("nft id must be 64 hexadecimal characters")

// NormalizeNFTokenID trims and upper-cases id after validating its format.
func NormalizeNFTokenID(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if len(id) != NFTokenIDLength {
		return "", ErrInvalidNFTokenID
	}
	if _, err := hex.DecodeString(id); err != nil {
		return "", ErrInvalidNFTokenID
	}
	return id, nil
}
