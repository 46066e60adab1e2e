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
package diag

import (
	"fmt"
	"strings"
	"sync"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	// Warning indicates something was recovered from with no loss of data.
	Warning Severity = iota
	// Error indicates something was recovered from, but with loss of data (for
	// example, a record which was dropped).
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	//
	return "warning"
}

// Location identifies where a diagnostic arose.  Parse-time diagnostics carry a
// file and line, whilst instantiation-time diagnostics additionally carry the
// library and cell being filled in.  Unknown components are left empty.
type Location struct {
	File    string
	Line    int
	Library string
	Cell    string
}

func (l Location) String() string {
	var builder strings.Builder
	//
	if l.File != "" {
		builder.WriteString(l.File)
		//
		if l.Line > 0 {
			builder.WriteString(fmt.Sprintf(":%d", l.Line))
		}
	}
	//
	if l.Cell != "" {
		if builder.Len() > 0 {
			builder.WriteString(" ")
		}
		//
		if l.Library != "" {
			builder.WriteString(fmt.Sprintf("[%s:%s]", l.Library, l.Cell))
		} else {
			builder.WriteString(fmt.Sprintf("[%s]", l.Cell))
		}
	}
	//
	return builder.String()
}

// Diagnostic is a single message reported during import.
type Diagnostic struct {
	Severity Severity
	Location Location
	Message  string
}

func (d Diagnostic) String() string {
	if loc := d.Location.String(); loc != "" {
		return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
	}
	//
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Reporter receives diagnostics.  None of the importer's recoverable failures
// are returned as errors; instead they are passed to a reporter.
type Reporter interface {
	Report(d Diagnostic)
}

// Errorf reports an error diagnostic at the given location.
func Errorf(r Reporter, loc Location, format string, args ...any) {
	r.Report(Diagnostic{Error, loc, fmt.Sprintf(format, args...)})
}

// Warnf reports a warning diagnostic at the given location.
func Warnf(r Reporter, loc Location, format string, args ...any) {
	r.Report(Diagnostic{Warning, loc, fmt.Sprintf(format, args...)})
}

// Collector retains every diagnostic it receives, in order.
type Collector struct {
	mutex       sync.Mutex
	diagnostics []Diagnostic
}

// NewCollector constructs an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements Reporter.
func (c *Collector) Report(d Diagnostic) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns a copy of the diagnostics collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	//
	return append([]Diagnostic(nil), c.diagnostics...)
}

// Count returns the number of diagnostics of a given severity.
func (c *Collector) Count(severity Severity) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	//
	n := 0
	//
	for _, d := range c.diagnostics {
		if d.Severity == severity {
			n++
		}
	}
	//
	return n
}

// Contains checks whether any diagnostic (of any severity) has a message
// containing the given text.
func (c *Collector) Contains(text string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	//
	for _, d := range c.diagnostics {
		if strings.Contains(d.Message, text) {
			return true
		}
	}
	//
	return false
}

// Reset discards all collected diagnostics.
func (c *Collector) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.diagnostics = nil
}

// Tee forwards each diagnostic to every one of a set of reporters.
type Tee []Reporter

// Report implements Reporter.
func (t Tee) Report(d Diagnostic) {
	for _, r := range t {
		r.Report(d)
	}
}

// Discard is a reporter which drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}
