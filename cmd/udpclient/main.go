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

// NOTE: Without --timeout the client waits forever for the reply datagram.
const exampleUsage = `  # Send "Hello, Server!" to 127.0.0.1:31337 and print the reply.
  udpclient

  # Read the settings from a file.
  udpclient -f udpclient.yaml

  # Stop waiting for the reply after two seconds.
  udpclient --timeout 2s
`

func main() {
	cmd := general.NewRootCmd(
		"udpclient",
		"Send one datagram to a UDP echo server and print its reply.",
		exampleUsage,
		func(opt *option.Options) echo.Client {
			return echo.NewUDPClient(opt.Address, opt.BufferSize)
		},
	)

	general.Execute(cmd)
}
