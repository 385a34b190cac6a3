// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package destination_test

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/fault"
)

func TestGenerateDSA(t *testing.T) {
	d, err := destination.Generate(destination.SigningDSASHA1)
	assert.Nil(t, err, "generate error")
	assert.Equal(t, destination.MinimumLength, len(d.Bytes()), "wrong length")
	assert.Equal(t, destination.CertificateNull, d.Certificate(), "wrong certificate")
	assert.Equal(t, destination.SigningDSASHA1, d.SigningType(), "wrong signing type")
	assert.Equal(t, destination.PublicKeyLength, len(d.PublicKey()), "wrong public key")
	assert.Equal(t, 128, len(d.SigningPublicKey()), "wrong signing key")
	assert.False(t, d.SigningType().IsPreferred(), "DSA must not be preferred")
}

func TestGenerateEd25519(t *testing.T) {
	d, err := destination.Generate(destination.SigningEdDSASHA512Ed25519)
	assert.Nil(t, err, "generate error")
	assert.Equal(t, destination.MinimumLength+4, len(d.Bytes()), "wrong length")
	assert.Equal(t, destination.CertificateKey, d.Certificate(), "wrong certificate")
	assert.Equal(t, destination.SigningEdDSASHA512Ed25519, d.SigningType(), "wrong signing type")
	assert.Equal(t, 32, len(d.PublicKey()), "wrong public key")
	assert.Equal(t, 32, len(d.SigningPublicKey()), "wrong signing key")
	assert.True(t, d.SigningType().IsPreferred(), "Ed25519 must be preferred")
}

func TestGenerateUnsupported(t *testing.T) {
	_, err := destination.Generate(destination.SigningRSASHA5124096)
	assert.Equal(t, fault.ErrUnsupportedSigningType, err, "wrong error")
}

func TestBase64RoundTrip(t *testing.T) {
	for _, st := range []destination.SigningType{destination.SigningDSASHA1, destination.SigningEdDSASHA512Ed25519} {
		d, err := destination.Generate(st)
		assert.Nil(t, err, "generate error")

		s := d.Base64()
		assert.False(t, strings.ContainsAny(s, "+/"), "standard alphabet used")

		d2, err := destination.FromBase64(s)
		assert.Nil(t, err, "decode error")
		assert.True(t, d.Equal(d2), "round trip mismatch")
		assert.Equal(t, d.Hash(), d2.Hash(), "hash mismatch")
	}
}

func TestFromBase64Invalid(t *testing.T) {
	_, err := destination.FromBase64("not base64 at all!")
	assert.Equal(t, fault.ErrInvalidBase64, err, "wrong error")

	_, err = destination.FromBase64("AAAA")
	assert.Equal(t, fault.ErrDestinationTruncated, err, "wrong error")
}

func TestHash(t *testing.T) {
	d, err := destination.Generate(destination.SigningEdDSASHA512Ed25519)
	assert.Nil(t, err, "generate error")
	expected := sha256.Sum256(d.Bytes())
	assert.Equal(t, destination.Hash(expected), d.Hash(), "wrong hash")
}

func TestRead(t *testing.T) {
	d, err := destination.Generate(destination.SigningEdDSASHA512Ed25519)
	assert.Nil(t, err, "generate error")

	buffer := append(append([]byte{}, d.Bytes()...), 0x01, 0x02, 0x03)
	d2, n, err := destination.Read(buffer)
	assert.Nil(t, err, "read error")
	assert.Equal(t, len(d.Bytes()), n, "wrong consumed count")
	assert.True(t, d.Equal(d2), "mismatch")

	_, err = destination.Create(buffer)
	assert.Equal(t, fault.ErrTrailingRecordData, err, "trailing data accepted")

	_, _, err = destination.Read(d.Bytes()[:len(d.Bytes())-1])
	assert.Equal(t, fault.ErrCertificateTruncated, err, "truncated certificate accepted")
}

func TestBase32Address(t *testing.T) {
	d, err := destination.Generate(destination.SigningDSASHA1)
	assert.Nil(t, err, "generate error")

	name := d.Base32Address()
	assert.Equal(t, destination.Base32HashLength+len(destination.Base32Suffix), len(name), "wrong length")
	assert.True(t, destination.IsBase32Address(name), "not recognised")
	assert.True(t, destination.IsBase32Address(strings.ToUpper(name)), "case sensitive")

	h, ok := destination.HashFromBase32Address(name)
	assert.True(t, ok, "hash not recovered")
	assert.Equal(t, d.Hash(), h, "wrong hash")

	assert.False(t, destination.IsBase32Address("example.i2p"), "plain name accepted")
	_, ok = destination.HashFromBase32Address("example.i2p")
	assert.False(t, ok, "plain name decoded")
}

func TestEqual(t *testing.T) {
	d1, _ := destination.Generate(destination.SigningDSASHA1)
	d2, _ := destination.Generate(destination.SigningDSASHA1)
	var none *destination.Destination

	assert.True(t, d1.Equal(d1), "self not equal")
	assert.False(t, d1.Equal(d2), "different destinations equal")
	assert.False(t, d1.Equal(none), "nil equal")
	assert.True(t, none.Equal(nil), "nil not equal to nil")
}
