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
	"errors"
	"io"
	"net"
)

type (
	// TCPClient exchanges one message over a stream connection.
	TCPClient struct {
		address    string
		bufferSize int
		dialer     net.Dialer
	}

	tcpSession struct {
		conn net.Conn
		buf  []byte
		stop func() bool
	}
)

var _ Client = (*TCPClient)(nil)

// NewTCPClient creates a TCPClient, bufferSize falls back to
// DefaultBufferSize if it is not positive.
func NewTCPClient(address string, bufferSize int) *TCPClient {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &TCPClient{
		address:    address,
		bufferSize: bufferSize,
	}
}

// Open dials the peer.
func (c *TCPClient) Open(ctx context.Context) (Session, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return nil, err
	}

	return &tcpSession{
		conn: conn,
		buf:  make([]byte, c.bufferSize),
		stop: bindContext(ctx, conn),
	}, nil
}

// Connected returns true.
func (c *TCPClient) Connected() bool { return true }

// Network returns "tcp".
func (c *TCPClient) Network() string { return "tcp" }

// Addr returns the address of the peer.
func (c *TCPClient) Addr() string { return c.address }

func (s *tcpSession) Send(payload []byte) error {
	// Write of net.Conn only returns early with an error.
	_, err := s.conn.Write(payload)
	return err
}

func (s *tcpSession) Receive() ([]byte, net.Addr, error) {
	n, err := s.conn.Read(s.buf)
	// The peer closed without replying, it is an empty reply.
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return nil, nil, err
	}

	return s.buf[:n], s.conn.RemoteAddr(), nil
}

func (s *tcpSession) Close() error {
	s.stop()
	return s.conn.Close()
}
