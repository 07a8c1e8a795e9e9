// Copyright (C) 2025 Specter Ops, Inc.
//
// This file is part of ScopeHound.
//
// ScopeHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ScopeHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ingest

import (
	"bytes"
	"io"
)

type rewindableByteReader struct {
	data *bytes.Reader
}

func (s *rewindableByteReader) Read(p []byte) (int, error) {
	return s.data.Read(p)
}

func (s *rewindableByteReader) Close() error {
	return nil
}

func (s *rewindableByteReader) Rewind() (int64, error) {
	return s.data.Seek(0, io.SeekStart)
}
