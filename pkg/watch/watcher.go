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
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	log "github.com/sirupsen/logrus"
)

// Extensions lists the file extensions of interest.
var Extensions = []string{".jelib", ".sp", ".spi", ".cir"}

// Watcher reports changes to library files within a set of directories.
// Changes arriving in quick succession are gathered together, such that the
// callback sees each burst of changes once.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	exclude   []glob.Glob
	onChange  func([]string)
	// Serialises calls to onChange
	callbackMutex sync.Mutex
	pending       map[string]bool
	pendingMutex  sync.Mutex
	timer         *time.Timer
	done          chan struct{}
}

// NewWatcher constructs a watcher which calls onChange with the paths changed,
// ignoring files matching any of the exclude globs.
func NewWatcher(debounce time.Duration, exclude []string, onChange func([]string)) (*Watcher, error) {
	var globs []glob.Glob
	//
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		//
		globs = append(globs, g)
	}
	//
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	//
	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		exclude:   globs,
		onChange:  onChange,
		pending:   make(map[string]bool),
		done:      make(chan struct{}),
	}, nil
}

// Watch starts watching the directories containing the given files.
func (p *Watcher) Watch(files []string) error {
	dirs := make(map[string]bool)
	//
	for _, f := range files {
		dir := filepath.Dir(f)
		//
		if dirs[dir] {
			continue
		}
		//
		dirs[dir] = true
		//
		if err := p.fsWatcher.Add(dir); err != nil {
			return err
		}
		//
		log.Debugf("watching %s", dir)
	}
	//
	go p.run()
	//
	return nil
}

func (p *Watcher) run() {
	defer close(p.done)
	//
	for {
		select {
		case event, ok := <-p.fsWatcher.Events:
			if !ok {
				return
			}
			//
			if p.Accepts(event.Name) && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				p.schedule(event.Name)
			}
		case err, ok := <-p.fsWatcher.Errors:
			if !ok {
				return
			}
			//
			log.Errorf("watcher error: %v", err)
		}
	}
}

// Accepts checks whether changes to a given file are reported.
func (p *Watcher) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	known := false
	//
	for _, e := range Extensions {
		known = known || e == ext
	}
	//
	if !known {
		return false
	}
	//
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	//
	for _, g := range p.exclude {
		if g.Match(slashed) || g.Match(base) {
			return false
		}
	}
	//
	return true
}

func (p *Watcher) schedule(path string) {
	p.pendingMutex.Lock()
	defer p.pendingMutex.Unlock()
	//
	p.pending[path] = true
	//
	if p.timer != nil {
		p.timer.Stop()
	}
	//
	p.timer = time.AfterFunc(p.debounce, p.flush)
}

func (p *Watcher) flush() {
	p.pendingMutex.Lock()
	paths := make([]string, 0, len(p.pending))
	//
	for path := range p.pending {
		paths = append(paths, path)
	}
	//
	p.pending = make(map[string]bool)
	p.pendingMutex.Unlock()
	//
	if len(paths) > 0 {
		sort.Strings(paths)
		p.callbackMutex.Lock()
		defer p.callbackMutex.Unlock()
		p.onChange(paths)
	}
}

// Close stops watching, waiting for the event loop to finish if it is
// running.
func (p *Watcher) Close() error {
	p.pendingMutex.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.pendingMutex.Unlock()
	//
	return p.fsWatcher.Close()
}

// Done returns a channel which is closed once the event loop finishes.
func (p *Watcher) Done() <-chan struct{} {
	return p.done
}
