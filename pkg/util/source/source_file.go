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
package source

import (
	"os"
	"strings"
)

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))
	//
	for i, n := range filenames {
		file, err := ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = *file
	}
	//
	return files, nil
}

// ReadFile reads a single source file from disk.
func ReadFile(filename string) (*File, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return NewSourceFile(filename, bytes), nil
}

// Line provides information about a given line within the original file.
// This includes the line number (counting from 1) and the text of the line
// with any line terminator removed.
type Line struct {
	// Text of this line.
	text string
	// Line number of this line (counting from 1).
	number int
}

// NewLine constructs a line with the given text and line number.
func NewLine(text string, number int) Line {
	return Line{text, number}
}

// Get the string representing this line.
func (p *Line) String() string {
	return p.text
}

// Number gets the line number of this line, where the first line in a file has
// line number 1.
func (p *Line) Number() int {
	return p.number
}

// Length returns the number of bytes in this line.
func (p *Line) Length() int {
	return len(p.text)
}

// File represents a given source file (typically stored on disk).  Library
// files are strictly line oriented, hence the contents are held as an array of
// lines.
type File struct {
	// File name for this source file.
	filename string
	// Lines of this file.
	lines []Line
}

// NewSourceFile constructs a new source file from a given byte array.  Both
// unix and dos line endings are accepted.
func NewSourceFile(filename string, bytes []byte) *File {
	text := strings.ReplaceAll(string(bytes), "\r\n", "\n")
	// Drop the empty line which follows a final terminator
	text = strings.TrimSuffix(text, "\n")
	//
	var lines []Line
	//
	if len(text) > 0 {
		for i, l := range strings.Split(text, "\n") {
			lines = append(lines, Line{l, i + 1})
		}
	}
	//
	return &File{filename, lines}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Lines returns the lines of this source file.
func (s *File) Lines() []Line {
	return s.lines
}

// Line returns the line with the given number (counting from 1).  If the number
// is out of range then false is returned.
func (s *File) Line(number int) (Line, bool) {
	if number < 1 || number > len(s.lines) {
		return Line{}, false
	}
	//
	return s.lines[number-1], true
}
