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
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_00(t *testing.T) {
	cfg := Default()
	//
	assert.False(t, cfg.Strict)
	assert.Equal(t, 200.0, cfg.Diagnostics.Rate)
	assert.Equal(t, 500, cfg.Diagnostics.Burst)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.DebounceDuration())
	assert.Empty(t, cfg.Technologies)
	assert.NoError(t, Validate(cfg))
}

func TestConfig_01(t *testing.T) {
	cfg, err := Load("testdata/full.toml")
	require.NoError(t, err)
	//
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.DummyPrimitives)
	assert.Equal(t, []string{"libs", "vendor/**/*.jelib"}, cfg.SearchPaths)
	assert.Equal(t, []string{"tech/mocmos.toml"}, cfg.Technologies)
	assert.Equal(t, 50.0, cfg.Diagnostics.Rate)
	assert.Equal(t, 10, cfg.Diagnostics.Burst)
	assert.Equal(t, "out/design.db", cfg.Store.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Address)
	assert.Equal(t, time.Second, cfg.Watch.DebounceDuration())
	assert.Equal(t, []string{"**/*.bak"}, cfg.Watch.Exclude)
}

func TestConfig_02(t *testing.T) {
	checkInvalid(t, "testdata/bad_glob.toml", "watch.exclude")
	checkInvalid(t, "testdata/bad_debounce.toml", "watch.debounce")
	checkInvalid(t, "testdata/negative.toml", "diagnostics.burst must be non-negative")
}

func TestConfig_03(t *testing.T) {
	_, err := Load("testdata/missing.toml")
	assert.ErrorContains(t, err, "failed to read config")
	//
	cfg := Default()
	cfg.SearchPaths = []string{"  "}
	assert.ErrorContains(t, Validate(cfg), "empty entry")
	//
	cfg = Default()
	cfg.Diagnostics.Rate = -1
	assert.ErrorContains(t, Validate(cfg), "diagnostics.rate")
	//
	cfg = Default()
	cfg.Watch.Debounce = "-1s"
	assert.ErrorContains(t, Validate(cfg), "non-negative")
}

// ===================================================================
// Framework
// ===================================================================

func checkInvalid(t *testing.T, filename string, msg string) {
	t.Helper()
	//
	_, err := Load(filename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), msg)
	assert.Contains(t, err.Error(), filename)
}
