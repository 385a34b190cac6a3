// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hoststxt - the plain text host list format
//
//   # comment
//   name=base64-destination[;key=value...][#comment]
//
// names are folded to lower case
package hoststxt

import (
	"bufio"
	"io"
	"strings"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/logger"
)

// longest line accepted, a destination with a large certificate and
// a few attributes fits easily
const maxLineLength = 64 * 1024

// Entry - one parsed line
type Entry struct {
	Name        string
	Destination *destination.Destination
	Attributes  record.Attributes
}

// Handler - called for each valid line, an error stops the parse
type Handler func(entry *Entry) error

// Parse - read a host list, calling fn for every valid entry
//
// lines with a bad destination are logged and skipped; the number of
// entries passed to fn is returned
func Parse(r io.Reader, log *logger.L, fn Handler) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 16*1024), maxLineLength)

	count := 0
	for scanner.Scan() {
		name, b64, attributes, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		d, err := destination.FromBase64(b64)
		if nil != err {
			if nil != log {
				log.Warnf("unable to import entry for: %s  bad base 64: %q  error: %s", name, b64, err)
			}
			continue
		}
		err = fn(&Entry{
			Name:        name,
			Destination: d,
			Attributes:  attributes,
		})
		if nil != err {
			return count, err
		}
		count += 1
	}
	return count, scanner.Err()
}

// ParseLine - split one line into its parts
//
// ok is false for comments, blank lines and lines without a name or
// destination; attributes is nil if the line has none
func ParseLine(line string) (name string, b64 string, attributes record.Attributes, ok bool) {
	if strings.HasPrefix(line, "#") {
		return "", "", nil, false
	}
	split := strings.IndexByte(line, '=')
	if split <= 0 {
		return "", "", nil, false
	}
	name = strings.ToLower(strings.TrimSpace(line[:split]))
	if "" == name {
		return "", "", nil, false
	}

	rest := line[split+1:]
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		attributes = parseAttributes(rest[i+1:])
		rest = rest[:i]
	}
	b64 = strings.TrimSpace(rest)
	if "" == b64 {
		return "", "", nil, false
	}
	return name, b64, attributes, true
}

func parseAttributes(s string) record.Attributes {
	attributes := make(record.Attributes)
	for _, item := range strings.Split(s, ";") {
		i := strings.IndexByte(item, '=')
		if i <= 0 {
			continue
		}
		attributes[strings.TrimSpace(item[:i])] = strings.TrimSpace(item[i+1:])
	}
	return attributes
}

// FormatLine - a line in the form read by Parse, without the newline
func FormatLine(name string, d *destination.Destination, attributes record.Attributes) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(d.Base64())
	for _, k := range attributes.Keys() {
		b.WriteByte(';')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(attributes[k])
	}
	return b.String()
}
