/*
 * Copyright (c) 2017, The Easegress Authors
 * All rights reserved.
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

// Package codectool provides the YAML codec shared by the echo clients.
package codectool

import (
	"fmt"
	"io"

	"github.com/megaease/yaml"
)

// NOTICE: We use megaease-forked yaml vendor to encode/decode yaml,
// it will use json tag if yaml tag not found.

// MustMarshalYAML wraps yaml.Marshal by panic instead of returning error.
func MustMarshalYAML(v interface{}) []byte {
	buff, err := MarshalYAML(v)
	if err != nil {
		panic(fmt.Errorf("marshal %#v to yaml failed: %v", v, err))
	}
	return buff
}

// MarshalYAML wraps yaml.Marshal.
func MarshalYAML(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

// UnmarshalYAML wraps yaml.Unmarshal.
func UnmarshalYAML(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}

// EncodeYAML encodes a value into a yaml stream.
func EncodeYAML(w io.Writer, v interface{}) error {
	return yaml.NewEncoder(w).Encode(v)
}
