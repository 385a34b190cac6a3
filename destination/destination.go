// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package destination

import (
	"bytes"
	"crypto/sha256"
	"encoding/base32"
	"encoding/base64"
	"encoding/binary"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/bitmark-inc/hostsdb/fault"
)

// field sizes
const (
	PublicKeyLength         = 256
	SigningPublicKeyLength  = 128
	HashLength              = sha256.Size
	MinimumLength           = PublicKeyLength + SigningPublicKeyLength + certificateHeaderLength
	certificateHeaderLength = 3
	keyCertificateMinimum   = 4
)

// self-describing address
const (
	Base32Suffix     = ".b32.i2p"
	Base32HashLength = 52
)

// number of parsed destinations retained
const cacheSize = 512

// CertificateType - first byte of the certificate
type CertificateType byte

// certificate types
const (
	CertificateNull     CertificateType = 0
	CertificateHashCash CertificateType = 1
	CertificateHidden   CertificateType = 2
	CertificateSigned   CertificateType = 3
	CertificateMultiple CertificateType = 4
	CertificateKey      CertificateType = 5
)

// crypto types carried in a key certificate
const (
	CryptoElGamal = 0
	CryptoX25519  = 4
)

// Hash - SHA-256 digest of a destination
type Hash [HashLength]byte

// Destination - an immutable parsed endpoint identifier
type Destination struct {
	data        []byte
	certificate CertificateType
	signingType SigningType
	cryptoType  uint16
	hash        Hash
}

// network Base64 uses '-' and '~' in place of '+' and '/'
var b64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-~")

var b32 = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// parsed destinations keyed by their raw bytes
var parsed *lru.Cache

func init() {
	c, err := lru.New(cacheSize)
	if nil != err {
		panic(err)
	}
	parsed = c
}

// Read - parse a destination from the front of a buffer
//
// returns the destination and the number of bytes consumed
func Read(buffer []byte) (*Destination, int, error) {
	if len(buffer) < MinimumLength {
		return nil, 0, fault.ErrDestinationTruncated
	}
	certificateStart := PublicKeyLength + SigningPublicKeyLength
	certificateLength := int(binary.BigEndian.Uint16(buffer[certificateStart+1:]))
	n := MinimumLength + certificateLength
	if len(buffer) < n {
		return nil, 0, fault.ErrCertificateTruncated
	}

	raw := buffer[:n]
	if cached, ok := parsed.Get(string(raw)); ok {
		return cached.(*Destination), n, nil
	}

	d := &Destination{
		data:        make([]byte, n),
		certificate: CertificateType(buffer[certificateStart]),
		signingType: SigningDSASHA1,
		cryptoType:  CryptoElGamal,
	}
	copy(d.data, raw)

	if CertificateKey == d.certificate {
		payload := d.data[MinimumLength:]
		if len(payload) < keyCertificateMinimum {
			return nil, 0, fault.ErrCertificateTruncated
		}
		d.signingType = SigningType(binary.BigEndian.Uint16(payload[0:2]))
		d.cryptoType = binary.BigEndian.Uint16(payload[2:4])
	}
	d.hash = sha256.Sum256(d.data)

	parsed.Add(string(raw), d)
	return d, n, nil
}

// Create - parse a buffer holding exactly one destination
func Create(buffer []byte) (*Destination, error) {
	d, n, err := Read(buffer)
	if nil != err {
		return nil, err
	}
	if n != len(buffer) {
		return nil, fault.ErrTrailingRecordData
	}
	return d, nil
}

// FromBase64 - decode a network Base64 string
func FromBase64(s string) (*Destination, error) {
	buffer, err := b64.DecodeString(strings.TrimSpace(s))
	if nil != err {
		return nil, fault.ErrInvalidBase64
	}
	return Create(buffer)
}

// Bytes - serialised form, must not be modified
func (d *Destination) Bytes() []byte {
	return d.data
}

// Base64 - network Base64 form
func (d *Destination) Base64() string {
	return b64.EncodeToString(d.data)
}

// Hash - SHA-256 of the serialised form
func (d *Destination) Hash() Hash {
	return d.hash
}

// Base32Address - the self-describing address for this destination
func (d *Destination) Base32Address() string {
	return d.hash.Base32Address()
}

// String - for logging
func (d *Destination) String() string {
	return d.Base32Address()
}

// PublicKey - the encryption key component
//
// nil if the crypto type does not describe the key field
func (d *Destination) PublicKey() []byte {
	if len(d.data) < PublicKeyLength {
		return nil
	}
	switch d.cryptoType {
	case CryptoElGamal:
		return d.data[:PublicKeyLength]
	case CryptoX25519:
		return d.data[:32]
	default:
		return nil
	}
}

// SigningPublicKey - the signing key component
//
// nil if the signing type has no known key length
func (d *Destination) SigningPublicKey() []byte {
	n := d.signingType.KeyLength()
	if n <= 0 || n > SigningPublicKeyLength {
		return nil
	}
	end := PublicKeyLength + SigningPublicKeyLength
	return d.data[end-n : end]
}

// Certificate - certificate type
func (d *Destination) Certificate() CertificateType {
	return d.certificate
}

// SigningType - signature scheme of the signing key
func (d *Destination) SigningType() SigningType {
	return d.signingType
}

// Equal - byte for byte comparison
func (d *Destination) Equal(other *Destination) bool {
	if nil == d || nil == other {
		return d == other
	}
	return bytes.Equal(d.data, other.data)
}

// Base32Address - the self-describing address for this hash
func (h Hash) Base32Address() string {
	return b32.EncodeToString(h[:]) + Base32Suffix
}

// HashFromBase32Address - recover the hash from a self-describing address
func HashFromBase32Address(name string) (Hash, bool) {
	h := Hash{}
	if !IsBase32Address(name) {
		return h, false
	}
	buffer, err := b32.DecodeString(strings.ToLower(name[:Base32HashLength]))
	if nil != err || HashLength != len(buffer) {
		return h, false
	}
	copy(h[:], buffer)
	return h, true
}

// IsBase32Address - check for the self-describing address form
func IsBase32Address(name string) bool {
	return len(name) == Base32HashLength+len(Base32Suffix) &&
		strings.HasSuffix(strings.ToLower(name), Base32Suffix)
}
