// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccepts_00(t *testing.T) {
	w, err := NewWatcher(time.Millisecond, []string{"**/*.bak.jelib", "scratch*"}, func([]string) {})
	require.NoError(t, err)
	//
	defer w.Close()
	//
	assert.True(t, w.Accepts("libs/top.jelib"))
	assert.True(t, w.Accepts("cells.SPI"))
	assert.False(t, w.Accepts("notes.txt"))
	assert.False(t, w.Accepts("libs/top.bak.jelib"))
	assert.False(t, w.Accepts("libs/scratch.jelib"))
}

func TestWatcher_00(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "top.jelib")
	require.NoError(t, os.WriteFile(lib, []byte("Htop|9.07\n"), 0o644))
	//
	changes := make(chan []string, 4)
	w, err := NewWatcher(50*time.Millisecond, []string{"*.tmp.jelib"}, func(paths []string) { changes <- paths })
	require.NoError(t, err)
	require.NoError(t, w.Watch([]string{lib}))
	// A burst of writes is reported once
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.tmp.jelib"), []byte("H"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(lib, []byte("Htop|9.07\n#\n"), 0o644))
	require.NoError(t, os.WriteFile(lib, []byte("Htop|9.07\n#\n#\n"), 0o644))
	//
	select {
	case paths := <-changes:
		assert.Equal(t, []string{lib}, paths)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	//
	require.NoError(t, w.Close())
	//
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not finish")
	}
}

func TestWatcher_01(t *testing.T) {
	_, err := NewWatcher(time.Second, []string{"[oops"}, func([]string) {})
	assert.Error(t, err)
}
