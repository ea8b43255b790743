// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

// finalizer runs fn at most once unless released first. Deferring run covers
// every early return and panic after the point it was armed.
type finalizer struct {
	fn   func()
	done bool
}

func newFinalizer(fn func()) *finalizer {
	return &finalizer{fn: fn}
}

// release disarms the finalizer.
func (f *finalizer) release() {
	f.done = true
}

func (f *finalizer) run() {
	if f.done {
		return
	}
	f.done = true
	f.fn()
}
