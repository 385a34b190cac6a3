// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAttributeKeyTooLong    = LengthError("attribute key too long")
	ErrAttributeValueTooLong  = LengthError("attribute value too long")
	ErrAttributesTooBig       = LengthError("attribute block too big")
	ErrBadAttributeSeparator  = RecordError("bad attribute separator")
	ErrBadConfiguration       = InvalidError("configuration did not return a table")
	ErrBadDestinationCount    = RecordError("bad destination count")
	ErrCertificateTruncated   = RecordError("certificate truncated")
	ErrDatabaseClosed         = ProcessError("database is closed")
	ErrDatabaseVersionTooNew  = RecordError("database version is newer than supported")
	ErrDestinationExists      = ExistsError("destination already exists")
	ErrDestinationNotFound    = NotFoundError("destination not found")
	ErrDestinationTruncated   = LengthError("destination truncated")
	ErrDuplicateAttributeKey  = RecordError("duplicate attribute key")
	ErrInvalidBase64          = InvalidError("invalid base64 destination")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidName            = InvalidError("invalid name")
	ErrInvalidPoolName        = InvalidError("invalid partition name")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrMissingDestination     = InvalidError("missing destination")
	ErrNameExists             = ExistsError("name already exists")
	ErrNameNotFound           = NotFoundError("name not found")
	ErrNoHeader               = RecordError("no database header")
	ErrNoHeaderInfo           = RecordError("no header info")
	ErrNoLists                = RecordError("no lists in header")
	ErrNoVersion              = RecordError("no version in header")
	ErrPoolNotFound           = NotFoundError("partition not found")
	ErrReadOnly               = InvalidError("database is read-only")
	ErrRecordTruncated        = RecordError("record truncated")
	ErrStopIteration          = ProcessError("stop iteration")
	ErrTooManyDestinations    = LengthError("too many destinations")
	ErrTrailingRecordData     = RecordError("trailing record data")
	ErrUnsupportedSigningType = InvalidError("unsupported signing type")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
