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
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func source(items ...int) <-chan int {
	out := make(chan int, len(items))
	for _, item := range items {
		out <- item
	}
	close(out)
	return out
}

func TestSend(t *testing.T) {
	t.Run("sends when open", func(t *testing.T) {
		var (
			done = make(chan struct{})
			out  = make(chan int, 1)
		)
		require.True(t, Send(done, out, 42))
		require.Equal(t, 42, <-out)
	})

	t.Run("aborts when done", func(t *testing.T) {
		var (
			done = make(chan struct{})
			out  = make(chan int)
		)
		close(done)
		require.False(t, Send(done, out, 42))
	})
}

func TestOrDone(t *testing.T) {
	t.Run("passes items through", func(t *testing.T) {
		done := make(chan struct{})
		var got []int
		for item := range OrDone(done, source(1, 2, 3)) {
			got = append(got, item)
		}
		require.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("stops on done", func(t *testing.T) {
		var (
			done = make(chan struct{})
			in   = make(chan int)
		)
		close(done)
		_, ok := <-OrDone(done, in)
		require.False(t, ok)
	})
}

func TestDemuxMux(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	lanes := Demux(done, source(1, 2, 3, 4, 5, 6), 3)
	require.Len(t, lanes, 3)

	var got []int
	for item := range Mux(done, lanes...) {
		got = append(got, item)
	}
	sort.Ints(got)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, got)
}

func TestMap(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	var got []int
	for item := range Map(done, source(1, 2, 3), func(i int) int { return i * 10 }) {
		got = append(got, item)
	}
	require.Equal(t, []int{10, 20, 30}, got)
}

func TestBatch(t *testing.T) {
	t.Run("batches by size", func(t *testing.T) {
		done := make(chan struct{})
		defer close(done)

		var got [][]int
		for batch := range Batch(done, source(1, 2, 3, 4, 5), 2, time.Minute) {
			got = append(got, batch)
		}
		require.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, got)
	})

	t.Run("flushes partial batch on timeout", func(t *testing.T) {
		var (
			done = make(chan struct{})
			in   = make(chan int)
		)
		defer close(done)

		out := Batch(done, in, 10, 10*time.Millisecond)
		in <- 7

		select {
		case batch := <-out:
			require.Equal(t, []int{7}, batch)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for partial batch")
		}
		close(in)
	})
}

func TestFormatJson(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	in := make(chan map[string]int, 1)
	in <- map[string]int{"a": 1}
	close(in)

	var got []string
	for line := range FormatJson(done, in) {
		got = append(got, line)
	}
	require.Equal(t, []string{`{"a":1}`}, got)
}
