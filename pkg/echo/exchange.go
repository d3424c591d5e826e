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

// Package echo implements the single request/reply exchange of the echo
// clients: open a socket, send one message, read one reply, close.
package echo

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/megaease/echoclient/pkg/logger"
)

// aLongTimeAgo is a non-zero time in the past, setting it as deadline
// unblocks any pending read or write at once.
var aLongTimeAgo = time.Unix(1, 0)

type (
	// Client opens the socket of one exchange.
	Client interface {
		// Open opens a session, it dials the peer for connection oriented
		// transports.
		Open(ctx context.Context) (Session, error)
		// Connected reports whether Open establishes a connection with the peer.
		Connected() bool
		Network() string
		Addr() string
	}

	// Session is the socket owned by one exchange between Open and Close.
	Session interface {
		// Send writes the whole payload.
		Send(payload []byte) error
		// Receive performs exactly one read.
		Receive() (data []byte, from net.Addr, err error)
		Close() error
	}

	// Observer is notified of the progress of an exchange.
	Observer interface {
		Opened(client Client)
		Sent(client Client, size int)
	}

	// Reply is the decoded reply of an exchange.
	Reply struct {
		ID   string
		Text string
		Size int
		From net.Addr
	}

	nopObserver struct{}
)

func (nopObserver) Opened(Client)    {}
func (nopObserver) Sent(Client, int) {}

// Exchange sends message through client and reads the reply. The session
// is closed on every path, every returned error is an *Error.
func Exchange(ctx context.Context, client Client, message string, observer Observer) (*Reply, error) {
	if observer == nil {
		observer = nopObserver{}
	}

	id := uuid.NewString()
	addr := client.Addr()

	logger.Debugf("[exchange %s] open %s session to %s", id, client.Network(), addr)
	session, err := client.Open(ctx)
	if err != nil {
		return nil, newError(ctx, ConnectionFailed, "open", addr, err)
	}
	defer func() {
		err := session.Close()
		if err != nil {
			logger.Debugf("[exchange %s] close session failed: %v", id, err)
		}
	}()
	observer.Opened(client)

	payload := NewPayload(message)
	err = session.Send(payload)
	if err != nil {
		return nil, newError(ctx, SendFailed, "send", addr, err)
	}
	logger.Debugf("[exchange %s] sent %d bytes", id, len(payload))
	observer.Sent(client, len(payload))

	data, from, err := session.Receive()
	if err != nil {
		return nil, newError(ctx, ReceiveFailed, "receive", addr, err)
	}
	logger.Debugf("[exchange %s] received %d bytes from %v", id, len(data), from)

	text, err := DecodeReply(data)
	if err != nil {
		return nil, newError(ctx, DecodeFailed, "decode", addr, err)
	}

	return &Reply{
		ID:   id,
		Text: text,
		Size: len(data),
		From: from,
	}, nil
}

// bindContext expires the deadline of conn once ctx is done. The returned
// function detaches it.
func bindContext(ctx context.Context, conn net.Conn) func() bool {
	return context.AfterFunc(ctx, func() {
		conn.SetDeadline(aLongTimeAgo)
	})
}
