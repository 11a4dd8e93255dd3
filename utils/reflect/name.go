/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"fmt"
	"path"
	"reflect"

	"dirpx.dev/cbx/apis"
)

// maxUnwrap bounds container unwrapping when deriving a type name.
const maxUnwrap = 8

// Name returns a stable, human-readable name for an implementation v,
// used in log fields and error messages.
//
// Resolution order:
//  1. If v implements apis.Namer, its EntityName() wins.
//  2. Otherwise the nearest named type of v is rendered as "pkg.Type".
//  3. Anonymous types fall back to Go's %T rendering.
func Name(v any) string {
	if v == nil {
		return "<nil>"
	}
	if n, ok := v.(apis.Namer); ok {
		if name := n.EntityName(); name != "" {
			return name
		}
	}
	return TypeName(reflect.TypeOf(v))
}

// TypeName renders the nearest named type of t as "pkg.Type".
//
// Unwrapping policy:
//   - ptr/slice/array/chan -> Elem()
//   - otherwise: if t.Name() != "", render it; else fall back to t.String().
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	orig := t
	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		default:
			if t.Name() != "" {
				return render(t)
			}
			return orig.String()
		}
	}
	if t != nil && t.Name() != "" {
		return render(t)
	}
	return orig.String()
}

// render joins the last package path element with the type name.
func render(t reflect.Type) string {
	if pkg := t.PkgPath(); pkg != "" {
		return fmt.Sprintf("%s.%s", path.Base(pkg), t.Name())
	}
	return t.Name()
}
