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
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLocation_00(t *testing.T) {
	assert.Equal(t, "", Location{}.String())
	assert.Equal(t, "a.jelib:3", Location{File: "a.jelib", Line: 3}.String())
	assert.Equal(t, "a.jelib [lib:top{sch}]", Location{File: "a.jelib", Library: "lib", Cell: "top{sch}"}.String())
}

func TestCollector_00(t *testing.T) {
	c := NewCollector()
	Errorf(c, Location{Line: 1}, "bad %s", "thing")
	Warnf(c, Location{Line: 2}, "odd")
	//
	assert.Equal(t, 1, c.Count(Error))
	assert.Equal(t, 1, c.Count(Warning))
	assert.True(t, c.Contains("bad thing"))
	assert.False(t, c.Contains("missing"))
	assert.Equal(t, "error: bad thing", Diagnostic{Error, Location{}, "bad thing"}.String())
	//
	c.Reset()
	assert.Empty(t, c.Diagnostics())
}

func TestTee_00(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	Warnf(Tee{a, b, Discard}, Location{}, "x")
	assert.Len(t, a.Diagnostics(), 1)
	assert.Len(t, b.Diagnostics(), 1)
}

func TestLogReporter_00(t *testing.T) {
	var buf bytes.Buffer
	//
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.TextFormatter{DisableColors: true, DisableTimestamp: true})
	//
	r := NewLogReporter(logger, 0.0001, 2)
	//
	for i := 0; i < 5; i++ {
		Errorf(r, Location{File: "f", Line: i + 1}, "broken")
	}
	//
	r.Flush()
	//
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "msg=broken"))
	assert.Contains(t, out, "3 further errors suppressed")
	assert.Contains(t, out, "line=1")
}
