// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/record"
)

// prints each change made by an import
type changePrinter struct {
	w io.Writer
}

func (p *changePrinter) EntryAdded(name string, d *destination.Destination, attributes record.Attributes) {
	fmt.Fprintf(p.w, "added: %s → %s\n", name, d.Base32Address())
}

func (p *changePrinter) EntryChanged(name string, d *destination.Destination, attributes record.Attributes) {
	fmt.Fprintf(p.w, "changed: %s → %s\n", name, d.Base32Address())
}

func (p *changePrinter) EntryRemoved(name string) {
	fmt.Fprintf(p.w, "removed: %s\n", name)
}

func runWatch(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	if 1 != c.NArg() {
		return ErrMissingArguments
	}
	fileName := c.Args().Get(0)
	source := "Imported from " + filepath.Base(fileName) + " file"
	options := listOptions(c)

	if m.verbose {
		printer := &changePrinter{w: m.w}
		m.db.AddListener(printer)
		defer m.db.RemoveListener(printer)
	}

	channels := newWatcherChannels()
	watcher, err := newFileWatcher(fileName, m.log, channels)
	if nil != err {
		return err
	}
	if err := watcher.Start(); nil != err {
		return err
	}
	defer watcher.Stop()

	load := func() {
		n, err := importFile(m.db, fileName, source, options)
		if nil != err {
			m.log.Errorf("import from: %q  error: %s", fileName, err)
			fmt.Fprintf(m.e, "import error: %s\n", err)
			return
		}
		m.log.Infof("imported: %d entries from: %q", n, fileName)
		fmt.Fprintf(m.e, "imported: %d entries\n", n)
	}
	load()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	for {
		select {
		case <-channels.change:
			load()
		case <-channels.remove:
			m.log.Warnf("watched file: %q removed", fileName)
			return nil
		case sig := <-ch:
			m.log.Infof("received signal: %v", sig)
			return nil
		}
	}
}
