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

package main

import (
	"github.com/megaease/echoclient/cmd/general"
	"github.com/megaease/echoclient/pkg/echo"
	"github.com/megaease/echoclient/pkg/option"
)

const exampleUsage = `  # Send "Hello, Server!" to 127.0.0.1:31337 and print the reply.
  tcpclient

  # Talk to another server with another message.
  tcpclient --address 10.0.0.2:7 --message ping

  # Give up after five seconds.
  tcpclient --timeout 5s
`

func main() {
	cmd := general.NewRootCmd(
		"tcpclient",
		"Send one message to a TCP echo server and print its reply.",
		exampleUsage,
		func(opt *option.Options) echo.Client {
			return echo.NewTCPClient(opt.Address, opt.BufferSize)
		},
	)

	general.Execute(cmd)
}
