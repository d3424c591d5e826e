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
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type (
	fakeClient struct {
		connected bool
		openErr   error
		session   *fakeSession
	}

	fakeSession struct {
		sendErr error
		recvErr error
		reply   []byte
		sent    [][]byte
		closed  int
	}

	recordObserver struct {
		events []string
	}
)

func (c *fakeClient) Open(ctx context.Context) (Session, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.session, nil
}

func (c *fakeClient) Connected() bool { return c.connected }
func (c *fakeClient) Network() string { return "fake" }
func (c *fakeClient) Addr() string    { return "peer:1" }

func (s *fakeSession) Send(payload []byte) error {
	s.sent = append(s.sent, payload)
	return s.sendErr
}

func (s *fakeSession) Receive() ([]byte, net.Addr, error) {
	if s.recvErr != nil {
		return nil, nil, s.recvErr
	}
	return s.reply, &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1}, nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

func (o *recordObserver) Opened(Client)    { o.events = append(o.events, "opened") }
func (o *recordObserver) Sent(Client, int) { o.events = append(o.events, "sent") }

func TestExchangeClosesSessionOnEveryPath(t *testing.T) {
	at := assert.New(t)
	boom := errors.New("boom")

	cases := []struct {
		name    string
		session *fakeSession
		kind    Kind
		events  []string
	}{
		{"ok", &fakeSession{reply: []byte("hi")}, 0, []string{"opened", "sent"}},
		{"send", &fakeSession{sendErr: boom}, SendFailed, []string{"opened"}},
		{"receive", &fakeSession{recvErr: boom}, ReceiveFailed, []string{"opened", "sent"}},
		{"decode", &fakeSession{reply: []byte{0xff}}, DecodeFailed, []string{"opened", "sent"}},
	}

	for _, c := range cases {
		observer := &recordObserver{}
		client := &fakeClient{session: c.session}
		reply, err := Exchange(context.Background(), client, "hi", observer)

		at.Equal(1, c.session.closed, c.name)
		at.Equal(c.events, observer.events, c.name)
		at.Equal(c.kind, KindOf(err), c.name)
		if c.kind == 0 {
			at.NoError(err, c.name)
			at.Equal("hi", reply.Text, c.name)
			continue
		}

		at.Nil(reply, c.name)
		var e *Error
		if at.True(errors.As(err, &e), c.name) {
			at.Equal("peer:1", e.Addr, c.name)
		}
		if c.kind != DecodeFailed {
			at.True(errors.Is(err, boom), c.name)
		}
	}
}

func TestExchangeOpenFailure(t *testing.T) {
	at := assert.New(t)
	observer := &recordObserver{}
	client := &fakeClient{openErr: errors.New("refused")}

	reply, err := Exchange(context.Background(), client, "hi", observer)
	at.Nil(reply)
	at.Equal(ConnectionFailed, KindOf(err))
	at.Empty(observer.events)
	at.Equal("connection failed: refused", err.Error())
}

func TestExchangeSendsFixedPayload(t *testing.T) {
	at := assert.New(t)
	session := &fakeSession{reply: []byte("ok")}
	client := &fakeClient{session: session}

	_, err := Exchange(context.Background(), client, DefaultMessage, nil)
	at.NoError(err)
	session.closed = 0
	_, err = Exchange(context.Background(), client, DefaultMessage, nil)
	at.NoError(err)

	at.Len(session.sent, 2)
	at.Equal(session.sent[0], session.sent[1])
	at.Equal([]byte("Hello, Server!"), session.sent[0])
}
