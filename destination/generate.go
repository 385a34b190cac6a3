// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package destination

import (
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/hostsdb/fault"
)

// Generate - create a new random destination
//
// only the public halves are retained, the result is an address
// suitable for tooling and tests, not a usable identity
func Generate(signingType SigningType) (*Destination, error) {
	switch signingType {
	case SigningDSASHA1:
		return generateDSA()
	case SigningEdDSASHA512Ed25519, SigningRedDSASHA512Ed25519:
		return generateEd25519(signingType)
	default:
		return nil, fault.ErrUnsupportedSigningType
	}
}

// legacy layout: random ElGamal and DSA key fields, null certificate
func generateDSA() (*Destination, error) {
	buffer := make([]byte, MinimumLength)
	if _, err := rand.Read(buffer[:PublicKeyLength+SigningPublicKeyLength]); nil != err {
		return nil, err
	}
	buffer[PublicKeyLength+SigningPublicKeyLength] = byte(CertificateNull)
	return Create(buffer)
}

// key certificate layout: X25519 encryption key, Ed25519 signing key
func generateEd25519(signingType SigningType) (*Destination, error) {
	buffer := make([]byte, MinimumLength+keyCertificateMinimum)
	if _, err := rand.Read(buffer[:PublicKeyLength+SigningPublicKeyLength]); nil != err {
		return nil, err
	}

	var private, public [32]byte
	if _, err := rand.Read(private[:]); nil != err {
		return nil, err
	}
	curve25519.ScalarBaseMult(&public, &private)
	copy(buffer[:32], public[:])

	signingKey, _, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	end := PublicKeyLength + SigningPublicKeyLength
	copy(buffer[end-ed25519.PublicKeySize:end], signingKey)

	buffer[end] = byte(CertificateKey)
	binary.BigEndian.PutUint16(buffer[end+1:], keyCertificateMinimum)
	binary.BigEndian.PutUint16(buffer[MinimumLength:], uint16(signingType))
	binary.BigEndian.PutUint16(buffer[MinimumLength+2:], CryptoX25519)

	return Create(buffer)
}
