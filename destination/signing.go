// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package destination

// SigningType - signature scheme identifier
type SigningType uint16

// signature schemes
const (
	SigningDSASHA1              SigningType = 0
	SigningECDSASHA256P256      SigningType = 1
	SigningECDSASHA384P384      SigningType = 2
	SigningECDSASHA512P521      SigningType = 3
	SigningRSASHA2562048        SigningType = 4
	SigningRSASHA3843072        SigningType = 5
	SigningRSASHA5124096        SigningType = 6
	SigningEdDSASHA512Ed25519   SigningType = 7
	SigningEdDSASHA512Ed25519ph SigningType = 8
	SigningRedDSASHA512Ed25519  SigningType = 11
)

var signingTypes = map[SigningType]struct {
	name      string
	keyLength int
}{
	SigningDSASHA1:              {"DSA_SHA1", 128},
	SigningECDSASHA256P256:      {"ECDSA_SHA256_P256", 64},
	SigningECDSASHA384P384:      {"ECDSA_SHA384_P384", 96},
	SigningECDSASHA512P521:      {"ECDSA_SHA512_P521", 132},
	SigningRSASHA2562048:        {"RSA_SHA256_2048", 256},
	SigningRSASHA3843072:        {"RSA_SHA384_3072", 384},
	SigningRSASHA5124096:        {"RSA_SHA512_4096", 512},
	SigningEdDSASHA512Ed25519:   {"EdDSA_SHA512_Ed25519", 32},
	SigningEdDSASHA512Ed25519ph: {"EdDSA_SHA512_Ed25519ph", 32},
	SigningRedDSASHA512Ed25519:  {"RedDSA_SHA512_Ed25519", 32},
}

// KeyLength - bytes in a public key of this type, 0 if unknown
func (t SigningType) KeyLength() int {
	return signingTypes[t].keyLength
}

// IsAvailable - the key fits in a destination without excess key data
func (t SigningType) IsAvailable() bool {
	n := t.KeyLength()
	return n > 0 && n <= SigningPublicKeyLength
}

// IsPreferred - a modern scheme that should be offered before DSA
func (t SigningType) IsPreferred() bool {
	return SigningDSASHA1 != t && t.IsAvailable()
}

func (t SigningType) String() string {
	if s, ok := signingTypes[t]; ok {
		return s.name
	}
	return "unknown"
}
