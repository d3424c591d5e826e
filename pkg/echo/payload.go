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

package echo

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultMessage is the text sent to the echo server.
	DefaultMessage = "Hello, Server!"
	// DefaultBufferSize is the largest reply accepted in one read.
	DefaultBufferSize = 1024
)

// NewPayload returns the wire bytes of message: its UTF-8 encoding,
// without length prefix or delimiter.
func NewPayload(message string) []byte {
	return []byte(message)
}

// DecodeReply decodes the reply bytes as UTF-8 text.
func DecodeReply(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reply of %d bytes is not valid UTF-8", len(data))
	}
	return string(data), nil
}
