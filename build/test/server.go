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

// Package test is for integration testing of the built binaries.
package test

import (
	"fmt"
	"io"
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

// startTCPEchoServer echoes the first read of every connection.
func startTCPEchoServer(t *testing.T) string {
	addr := freeAddress(t)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("listen %s failed: %v", addr, err)
	}

	g := &errgroup.Group{}
	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return nil
			}
			g.Go(func() error {
				defer conn.Close()
				buf := make([]byte, 1024)
				n, err := conn.Read(buf)
				if err != nil && err != io.EOF {
					return nil
				}
				conn.Write(buf[:n])
				return nil
			})
		}
	})

	t.Cleanup(func() {
		ln.Close()
		g.Wait()
	})
	return addr
}

// startUDPServer answers every datagram with reply, or stays silent if
// reply is nil.
func startUDPServer(t *testing.T, reply []byte) string {
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
			_, from, err := conn.ReadFromUDP(buf)
			if err != nil {
				return nil
			}
			if reply != nil {
				conn.WriteToUDP(reply, from)
			}
		}
	})

	t.Cleanup(func() {
		conn.Close()
		g.Wait()
	})
	return addr
}
