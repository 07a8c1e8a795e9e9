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

package panicrecovery

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/go-logr/logr"
)

// panicChan carries panics recovered in worker goroutines up to the
// routine that owns the run.
var panicChan = make(chan error, 1)

// PanicRecovery must be deferred in every goroutine that is not allowed to
// take the process down. The recovered panic is bubbled to HandleBubbledPanic.
func PanicRecovery() {
	if recovered := recover(); recovered != nil {
		select {
		case panicChan <- fmt.Errorf("panic: %v\n%s", recovered, debug.Stack()):
		default:
			// a panic is already pending; drop this one rather than block
		}
	}
}

// HandleBubbledPanic logs any bubbled panic and cancels the run.
func HandleBubbledPanic(ctx context.Context, stop context.CancelFunc, log logr.Logger) {
	go func() {
		select {
		case err := <-panicChan:
			log.Error(err, "recovered from panic in worker goroutine; cancelling run")
			stop()
		case <-ctx.Done():
		}
	}()
}
