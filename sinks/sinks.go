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

package sinks

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/bloodhoundad/scopehound/pipeline"
)

// WriteToFile drains a stream of formatted lines into path. The file is
// truncated first; a cancelled context stops the drain but still flushes
// what was written.
func WriteToFile(ctx context.Context, path string, stream <-chan string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	for line := range pipeline.OrDone(ctx.Done(), stream) {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return fmt.Errorf("unable to write output file: %w", err)
		}
	}
	return nil
}

// WriteToConsole drains a stream of formatted lines to stdout.
func WriteToConsole(ctx context.Context, stream <-chan string) error {
	for line := range pipeline.OrDone(ctx.Done(), stream) {
		fmt.Println(line)
	}
	return nil
}
