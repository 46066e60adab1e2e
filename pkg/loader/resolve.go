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
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Extensions lists the file extensions tried when locating a library.
var Extensions = []string{".jelib", ".sp", ".spi"}

// searchEntry is one element of the search path, which is either a directory
// or a glob over files.
type searchEntry struct {
	dir     string
	pattern glob.Glob
}

func compileSearchPath(paths []string) ([]searchEntry, error) {
	entries := make([]searchEntry, 0, len(paths))
	//
	for _, p := range paths {
		p = filepath.ToSlash(p)
		//
		if !hasMeta(p) {
			entries = append(entries, searchEntry{dir: filepath.FromSlash(p)})
			continue
		}
		//
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}
		//
		entries = append(entries, searchEntry{dir: staticPrefix(p), pattern: g})
	}
	//
	return entries, nil
}

// locate finds the file of a library referenced from some other file, trying
// the declared path, then the declared path relative to the referencing file,
// and finally the search path.
func (p *Loader) locate(name string, declared string, from string) (string, bool) {
	declared = strings.TrimPrefix(declared, "file:")
	//
	var candidates []string
	//
	if declared != "" {
		candidates = append(candidates, declared)
		//
		if from != "" && !filepath.IsAbs(declared) {
			candidates = append(candidates, filepath.Join(filepath.Dir(from), declared))
		}
		//
		if from != "" {
			candidates = append(candidates, filepath.Join(filepath.Dir(from), filepath.Base(declared)))
		}
	}
	//
	if from != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(from), name))
	}
	//
	for _, c := range candidates {
		if path, ok := withExtensions(c); ok {
			return path, true
		}
	}
	//
	for _, e := range p.search {
		if path, ok := e.find(name); ok {
			return path, true
		}
	}
	//
	return "", false
}

func (e searchEntry) find(name string) (string, bool) {
	if e.pattern == nil {
		return withExtensions(filepath.Join(e.dir, name))
	}
	//
	var found string
	//
	_ = filepath.WalkDir(e.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		//
		if libraryName(path) == name && hasExtension(path) && e.pattern.Match(filepath.ToSlash(path)) {
			found = path
			return filepath.SkipAll
		}
		//
		return nil
	})
	//
	return found, found != ""
}

// withExtensions checks whether a file exists, either as given or with one of
// the library extensions appended.
func withExtensions(path string) (string, bool) {
	if hasExtension(path) && isFile(path) {
		return path, true
	}
	//
	for _, ext := range Extensions {
		if isFile(path + ext) {
			return path + ext, true
		}
	}
	//
	return "", false
}

func hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	//
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	//
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	//
	return err == nil && info.Mode().IsRegular()
}

func libraryName(path string) string {
	base := filepath.Base(path)
	//
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// staticPrefix returns the directory prefix of a glob which contains no
// metacharacters, from which the glob's matches can be found by walking.
func staticPrefix(pattern string) string {
	i := strings.IndexAny(pattern, "*?[{")
	dir := pattern[:i]
	//
	if j := strings.LastIndexByte(dir, '/'); j >= 0 {
		return filepath.FromSlash(dir[:j+1])
	}
	//
	return "."
}
