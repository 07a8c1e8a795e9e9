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

package pipeline

import (
	"encoding/json"
	"sync"
	"time"
)

// Send pushes an item downstream unless the pipeline has been cancelled.
// It reports whether the item was sent.
func Send[T any](done <-chan struct{}, out chan<- T, item T) bool {
	select {
	case out <- item:
		return true
	case <-done:
		return false
	}
}

// SendAny is Send for untyped streams.
func SendAny(done <-chan struct{}, out chan<- any, item any) bool {
	return Send(done, out, item)
}

// OrDone wraps a channel so a receiver can range over it without also
// selecting on the done channel itself.
func OrDone[T any](done <-chan struct{}, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case item, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- item:
				case <-done:
					return
				}
			}
		}
	}()
	return out
}

// Demux fans items out to a fixed number of worker channels. Used to bound
// concurrent remote calls; pair with Mux to rejoin the worker outputs.
func Demux[T any](done <-chan struct{}, in <-chan T, size int) []<-chan T {
	outputs := make([]chan T, size)
	channels := make([]<-chan T, size)
	for i := range outputs {
		outputs[i] = make(chan T)
		channels[i] = outputs[i]
	}

	go func() {
		defer func() {
			for _, out := range outputs {
				close(out)
			}
		}()
		i := 0
		for item := range OrDone(done, in) {
			// round-robin; a busy worker blocks only its own slot
			if !Send(done, outputs[i%size], item) {
				return
			}
			i++
		}
	}()

	return channels
}

// Mux joins multiple streams back into one; the output closes once every
// input has closed.
func Mux[T any](done <-chan struct{}, channels ...<-chan T) <-chan T {
	var (
		wg  sync.WaitGroup
		out = make(chan T)
	)

	multiplex := func(c <-chan T) {
		defer wg.Done()
		for item := range OrDone(done, c) {
			if !Send(done, out, item) {
				return
			}
		}
	}

	wg.Add(len(channels))
	for _, c := range channels {
		go multiplex(c)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Map transforms each item of the stream through fn.
func Map[T, U any](done <-chan struct{}, in <-chan T, fn func(T) U) <-chan U {
	out := make(chan U)
	go func() {
		defer close(out)
		for item := range OrDone(done, in) {
			if !Send(done, out, fn(item)) {
				return
			}
		}
	}()
	return out
}

// Batch collects items into slices of at most maxItems, flushing early
// when maxTimeout elapses with a partial batch.
func Batch[T any](done <-chan struct{}, in <-chan T, maxItems int, maxTimeout time.Duration) <-chan []T {
	out := make(chan []T)
	go func() {
		defer close(out)
		var (
			batch []T
			timer = time.NewTimer(maxTimeout)
		)
		defer timer.Stop()

		for {
			select {
			case <-done:
				return
			case item, ok := <-in:
				if !ok {
					if len(batch) > 0 {
						Send(done, out, batch)
					}
					return
				}
				batch = append(batch, item)
				if len(batch) >= maxItems {
					if !Send(done, out, batch) {
						return
					}
					batch = nil
					timer.Reset(maxTimeout)
				}
			case <-timer.C:
				if len(batch) > 0 {
					if !Send(done, out, batch) {
						return
					}
					batch = nil
				}
				timer.Reset(maxTimeout)
			}
		}
	}()
	return out
}

// FormatJson marshals each item of the stream into its JSON encoding.
// Items that fail to marshal are dropped.
func FormatJson[T any](done <-chan struct{}, in <-chan T) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for item := range OrDone(done, in) {
			if bytes, err := json.Marshal(item); err == nil {
				if !Send(done, out, string(bytes)) {
					return
				}
			}
		}
	}()
	return out
}
