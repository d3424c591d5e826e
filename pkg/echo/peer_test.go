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
	"net"
	"testing"

	"github.com/phayes/freeport"
	"golang.org/x/sync/errgroup"
)

func freeAddress(t *testing.T) string {
	port, err := freeport.GetFreePort()
	if err != nil {
		t.Fatalf("get free port failed: %v", err)
	}
	return fmt.Sprintf("127.0.0.1:%d", port)
}

// startTCPPeer serves exactly one connection with handle.
func startTCPPeer(t *testing.T, handle func(conn net.Conn) error) string {
	addr := freeAddress(t)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("listen %s failed: %v", addr, err)
	}

	g := &errgroup.Group{}
	g.Go(func() error {
		conn, err := ln.Accept()
		if err != nil {
			// listener closed before any client came
			return nil
		}
		defer conn.Close()
		return handle(conn)
	})

	t.Cleanup(func() {
		ln.Close()
		if err := g.Wait(); err != nil {
			t.Errorf("tcp peer failed: %v", err)
		}
	})

	return addr
}

// startUDPPeer handles datagrams until the test ends.
func startUDPPeer(t *testing.T, handle func(conn *net.UDPConn, data []byte, from *net.UDPAddr) error) string {
	addr := freeAddress(t)
	laddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		t.Fatalf("resolve %s failed: %v", addr, err)
	}
	conn, err := net.ListenUDP("udp4", laddr)
	if err != nil {
		t.Fatalf("listen %s failed: %v", addr, err)
	}

	g := &errgroup.Group{}
	g.Go(func() error {
		buf := make([]byte, 65535)
		for {
			n, from, err := conn.ReadFromUDP(buf)
			if err != nil {
				// closed by cleanup
				return nil
			}
			data := append([]byte(nil), buf[:n]...)
			if err := handle(conn, data, from); err != nil {
				return err
			}
		}
	})

	t.Cleanup(func() {
		conn.Close()
		if err := g.Wait(); err != nil {
			t.Errorf("udp peer failed: %v", err)
		}
	})

	return addr
}
