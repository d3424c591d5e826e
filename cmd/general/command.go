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

// Package general holds the command shared by the echo client binaries.
package general

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/megaease/echoclient/pkg/echo"
	"github.com/megaease/echoclient/pkg/logger"
	"github.com/megaease/echoclient/pkg/option"
	"github.com/megaease/echoclient/pkg/version"
)

// ClientFactory builds the client of a binary from its options.
type ClientFactory func(opt *option.Options) echo.Client

// NewRootCmd creates the root command of an echo client binary. The
// exchange outcome never fails the command, only invalid options do.
func NewRootCmd(use, short, example string, newClient ClientFactory) *cobra.Command {
	opt := option.New(use)

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Example:       example,
		Version:       version.RELEASE,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opt.Load()
			if err != nil {
				return err
			}

			logger.Init(opt)
			defer logger.Close()
			logger.Debugf("%s", version.Long)

			if opt.ShowConfig {
				fmt.Fprint(cmd.OutOrStdout(), opt.YAML())
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if opt.TimeoutDuration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opt.TimeoutDuration)
				defer cancel()
			}

			client := newClient(opt)
			reply, err := echo.Run(ctx, cmd.OutOrStdout(), client, opt.Message)
			if err != nil {
				logger.Warnf("%s exchange with %s failed: %v", client.Network(), client.Addr(), err)
				return nil
			}

			logger.Debugf("[exchange %s] %d bytes reply from %v", reply.ID, reply.Size, reply.From)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(opt.Flags())

	return cmd
}

// Execute runs cmd until it finishes or the process is interrupted.
func Execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	ExitWithError(err)
}

// ExitWithError exits with self-defined message not the one of cobra(such as usage).
func ExitWithError(err error) {
	if err != nil {
		color.New(color.FgRed).Fprint(os.Stderr, "Error: ")
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
