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
package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps a token bucket limiter.  A limiter with a non-positive rate
// allows everything.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a new token bucket limiter refilling at r tokens per
// second, with a burst size of b.
func NewLimiter(r float64, b int) *Limiter {
	if r <= 0 {
		return &Limiter{rate.NewLimiter(rate.Inf, max(b, 1))}
	}
	//
	return &Limiter{rate.NewLimiter(rate.Limit(r), b)}
}

// Allow reports whether an event may happen now.
func (l *Limiter) Allow() bool {
	return l.inner.AllowN(time.Now(), 1)
}

// Wait blocks until a token is available, or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.WaitN(ctx, 1)
}
