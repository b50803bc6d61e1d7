/*
 * files.go, part of tcparse.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package tcparse

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdCloser lets a *zstd.Decoder be used as an io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// Compression returns the compression format implied by the extension of
// filename: "zstd" for .zst, "gzip" for .gz, and "" for anything else.
func Compression(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zst", ".zstd":
		return "zstd"
	case ".gz":
		return "gzip"
	}
	return ""
}

// ReadFile reads the whole of filename, decompressing it if the extension
// says it is compressed (see Compression). The file is closed before returning.
func ReadFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.ReadCloser
	buf := bufio.NewReader(f)
	switch Compression(filename) {
	case "zstd":
		d, err := zstd.NewReader(buf)
		if err != nil {
			return nil, err
		}
		r = zstdCloser{d}
	case "gzip":
		r, err = gzip.NewReader(buf)
		if err != nil {
			return nil, err
		}
	default:
		r = io.NopCloser(buf)
	}
	defer r.Close()
	return io.ReadAll(r)
}
