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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter prints the progress of an exchange as plain text lines.
type Reporter struct {
	w        io.Writer
	errColor *color.Color
}

var _ Observer = (*Reporter)(nil)

// NewReporter creates a Reporter writing to w. Only stdout gets colors,
// and only when it is a terminal.
func NewReporter(w io.Writer) *Reporter {
	errColor := color.New(color.FgRed)
	if f, ok := w.(*os.File); !ok || f != os.Stdout {
		errColor.DisableColor()
	}

	return &Reporter{
		w:        w,
		errColor: errColor,
	}
}

// Opened confirms the connection of connection oriented clients.
func (r *Reporter) Opened(client Client) {
	if client.Connected() {
		fmt.Fprintln(r.w, "Connected to server.")
	}
}

// Sent confirms the send of connectionless clients.
func (r *Reporter) Sent(client Client, size int) {
	if !client.Connected() {
		fmt.Fprintln(r.w, "Message sent to server.")
	}
}

// Received prints the reply.
func (r *Reporter) Received(reply *Reply) {
	fmt.Fprintf(r.w, "Received from server: %s\n", reply.Text)
}

// Failed prints err.
func (r *Reporter) Failed(err error) {
	r.errColor.Fprint(r.w, "An error occurred: ")
	fmt.Fprintf(r.w, "%v\n", err)
}

// Run performs one exchange and reports it to w. The error is returned
// after it has been printed, the caller decides whether it matters.
func Run(ctx context.Context, w io.Writer, client Client, message string) (*Reply, error) {
	reporter := NewReporter(w)

	reply, err := Exchange(ctx, client, message, reporter)
	if err != nil {
		reporter.Failed(err)
		return nil, err
	}

	reporter.Received(reply)
	return reply, nil
}
