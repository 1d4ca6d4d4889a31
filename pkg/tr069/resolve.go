/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tr069

// Resolution is the outcome of resolving an attribute against a document.
type Resolution struct {
	Path     string
	Value    interface{}
	HasValue bool
	// Legacy is set when Path is a TR-098 path.
	Legacy bool
	// Fallback is set when no candidate held a value and Path is the
	// attribute's default write target.
	Fallback bool
}

// Resolve returns the first candidate path of attr that holds a scalar in
// doc. When none does, it returns the attribute's write target with
// Fallback set. Unknown attributes resolve to an empty Resolution.
func Resolve(doc Document, attr Attribute, index int) Resolution {
	set, ok := attributes[attr]
	if !ok {
		return Resolution{Fallback: true}
	}

	for _, pattern := range set.paths {
		path := expand(pattern, index)

		if v, ok := Extract(doc, path); ok {
			return Resolution{
				Path:     path,
				Value:    v,
				HasValue: true,
				Legacy:   IsLegacyPath(path),
			}
		}
	}

	path := WriteTarget(attr, index)

	return Resolution{
		Path:     path,
		Legacy:   IsLegacyPath(path),
		Fallback: true,
	}
}

// ResolveString resolves attr and returns its value as a string, or "".
func ResolveString(doc Document, attr Attribute, index int) string {
	r := Resolve(doc, attr, index)
	if !r.HasValue {
		return ""
	}

	return ScalarString(r.Value)
}
