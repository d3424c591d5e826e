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

package test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTCPClient(t *testing.T) {
	assert := assert.New(t)
	addr := startTCPEchoServer(t)

	res := runClient(t, 10*time.Second, "tcpclient", nil, "--address", addr)
	assert.Equal(0, res.exitCode)
	assert.Equal("Connected to server.\nReceived from server: Hello, Server!\n", res.stdout)

	// the address can come from the environment too
	res = runClient(t, 10*time.Second, "tcpclient", []string{"EC_ADDRESS=" + addr, "EC_MESSAGE=again"})
	assert.Equal(0, res.exitCode)
	assert.Equal("Connected to server.\nReceived from server: again\n", res.stdout)
}

func TestTCPClientNoServer(t *testing.T) {
	assert := assert.New(t)

	res := runClient(t, 10*time.Second, "tcpclient", nil, "--address", freeAddress(t))
	assert.Equal(0, res.exitCode)
	assert.Contains(res.stdout, "An error occurred: connection failed")
	assert.Contains(res.stderr, "exchange with")
}

func TestUDPClient(t *testing.T) {
	assert := assert.New(t)
	addr := startUDPServer(t, []byte("PONG"))

	res := runClient(t, 10*time.Second, "udpclient", nil, "--address", addr)
	assert.Equal(0, res.exitCode)
	assert.Equal("Message sent to server.\nReceived from server: PONG\n", res.stdout)
}

func TestUDPClientSilentServer(t *testing.T) {
	assert := assert.New(t)
	addr := startUDPServer(t, nil)

	res := runClient(t, 10*time.Second, "udpclient", nil, "--address", addr, "--timeout", "200ms")
	assert.Equal(0, res.exitCode)
	assert.Equal("Message sent to server.\nAn error occurred: receive failed: context deadline exceeded\n", res.stdout)
}

func TestInvalidOptions(t *testing.T) {
	assert := assert.New(t)

	res := runClient(t, 10*time.Second, "tcpclient", nil, "--buffer-size=-1")
	assert.Equal(1, res.exitCode)
	assert.Empty(res.stdout)
	assert.Contains(res.stderr, "invalid buffer-size")

	res = runClient(t, 10*time.Second, "udpclient", nil, "--version")
	assert.Equal(0, res.exitCode)
	assert.Contains(res.stdout, "udpclient version")
}
