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
	"fmt"
)

// Kind classifies the stage at which an exchange failed.
type Kind int

// The closed set of failure kinds.
const (
	// ConnectionFailed means the socket could not be opened or connected.
	ConnectionFailed Kind = iota + 1
	// SendFailed means the payload could not be written.
	SendFailed
	// ReceiveFailed means no reply could be read.
	ReceiveFailed
	// DecodeFailed means the reply is not valid UTF-8 text.
	DecodeFailed
)

var (
	// ErrConnectionFailed matches every error of kind ConnectionFailed.
	ErrConnectionFailed = errors.New("connection failed")
	// ErrSendFailed matches every error of kind SendFailed.
	ErrSendFailed = errors.New("send failed")
	// ErrReceiveFailed matches every error of kind ReceiveFailed.
	ErrReceiveFailed = errors.New("receive failed")
	// ErrDecodeFailed matches every error of kind DecodeFailed.
	ErrDecodeFailed = errors.New("decode failed")
)

func (k Kind) sentinel() error {
	switch k {
	case ConnectionFailed:
		return ErrConnectionFailed
	case SendFailed:
		return ErrSendFailed
	case ReceiveFailed:
		return ErrReceiveFailed
	case DecodeFailed:
		return ErrDecodeFailed
	default:
		return nil
	}
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("unknown failure(%d)", int(k))
}

// Error is the error returned by an exchange.
type Error struct {
	Kind Kind
	// Op is the socket operation that failed: open, send, receive or decode.
	Op   string
	Addr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// newError builds an *Error, the context error replaces the cause once
// the context is done, since that is what unblocked the socket.
func newError(ctx context.Context, kind Kind, op, addr string, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}

	return &Error{
		Kind: kind,
		Op:   op,
		Addr: addr,
		Err:  err,
	}
}
