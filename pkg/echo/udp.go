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
	"net"
)

type (
	// UDPClient exchanges one datagram over an unconnected socket, the
	// reply is accepted from any source.
	UDPClient struct {
		address    string
		bufferSize int
	}

	udpSession struct {
		conn  *net.UDPConn
		raddr *net.UDPAddr
		buf   []byte
		stop  func() bool
	}
)

var _ Client = (*UDPClient)(nil)

// NewUDPClient creates a UDPClient, bufferSize falls back to
// DefaultBufferSize if it is not positive.
func NewUDPClient(address string, bufferSize int) *UDPClient {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &UDPClient{
		address:    address,
		bufferSize: bufferSize,
	}
}

// Open resolves the peer and binds a socket on an ephemeral local port.
// No packet is sent.
func (c *UDPClient) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raddr, err := net.ResolveUDPAddr("udp", c.address)
	if err != nil {
		return nil, err
	}

	network := "udp"
	if raddr.IP.To4() != nil {
		network = "udp4"
	}

	conn, err := net.ListenUDP(network, nil)
	if err != nil {
		return nil, err
	}

	return &udpSession{
		conn:  conn,
		raddr: raddr,
		buf:   make([]byte, c.bufferSize),
		stop:  bindContext(ctx, conn),
	}, nil
}

// Connected returns false.
func (c *UDPClient) Connected() bool { return false }

// Network returns "udp".
func (c *UDPClient) Network() string { return "udp" }

// Addr returns the address of the peer.
func (c *UDPClient) Addr() string { return c.address }

func (s *udpSession) Send(payload []byte) error {
	_, err := s.conn.WriteToUDP(payload, s.raddr)
	return err
}

// Receive blocks until a datagram arrives, there is no deadline unless
// the context carries one. Datagrams longer than the buffer are truncated.
func (s *udpSession) Receive() ([]byte, net.Addr, error) {
	n, from, err := s.conn.ReadFromUDP(s.buf)
	if err != nil {
		return nil, nil, err
	}

	return s.buf[:n], from, nil
}

func (s *udpSession) Close() error {
	s.stop()
	return s.conn.Close()
}
