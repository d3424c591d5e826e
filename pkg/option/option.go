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

// Package option loads the startup options of the echo clients from
// command line flags, environment variables and an optional config file.
package option

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/megaease/echoclient/pkg/util/codectool"
)

const (
	// DefaultAddress is the peer both clients talk to.
	DefaultAddress = "127.0.0.1:31337"
	// DefaultMessage is the payload text sent to the peer.
	DefaultMessage = "Hello, Server!"
	// DefaultBufferSize is the largest reply accepted in one read.
	DefaultBufferSize = 1024

	// MaxBufferSize bounds buffer-size to the largest IP datagram.
	MaxBufferSize = 65535

	envPrefix = "EC"
)

// Options is the startup options.
type Options struct {
	flags   *pflag.FlagSet
	viper   *viper.Viper
	yamlStr string

	// Flags from command line only.
	ShowConfig bool   `yaml:"-"`
	ConfigFile string `yaml:"-"`

	// If a config file is specified, below command line flags will be ignored
	// unless they are set explicitly.

	Address    string `yaml:"address"`
	Message    string `yaml:"message"`
	BufferSize int    `yaml:"buffer-size"`
	Timeout    string `yaml:"timeout"`
	Debug      bool   `yaml:"debug"`
	LogFile    string `yaml:"log-file"`

	// Prepare the items below in advance.
	TimeoutDuration time.Duration `yaml:"-"`
	AbsLogFile      string        `yaml:"-"`
}

// New creates a default Options, name is used as the flag set name.
func New(name string) *Options {
	opt := &Options{
		flags: pflag.NewFlagSet(name, pflag.ContinueOnError),
		viper: viper.New(),
	}

	opt.flags.BoolVarP(&opt.ShowConfig, "print-config", "c", false, "Print the configuration.")
	opt.flags.StringVarP(&opt.ConfigFile, "config-file", "f", "", "Load client configuration from a file(yaml format).")
	opt.flags.StringVar(&opt.Address, "address", DefaultAddress, "Address(host:port) of the echo server.")
	opt.flags.StringVar(&opt.Message, "message", DefaultMessage, "Text message sent to the echo server.")
	opt.flags.IntVar(&opt.BufferSize, "buffer-size", DefaultBufferSize, "Maximum number of reply bytes accepted in one read.")
	opt.flags.StringVar(&opt.Timeout, "timeout", "0s", "Deadline of the whole exchange, 0 means wait forever.")
	opt.flags.BoolVar(&opt.Debug, "debug", false, "Flag to set lowest log level from INFO downgrade DEBUG.")
	opt.flags.StringVar(&opt.LogFile, "log-file", "", "Path to a log file, logs go to stderr only if empty.")

	opt.viper.BindPFlags(opt.flags)

	return opt
}

// Flags returns the flag set, so that a command can attach it.
func (opt *Options) Flags() *pflag.FlagSet {
	return opt.flags
}

// FlagUsages returns the usages of all flags.
func (opt *Options) FlagUsages() string {
	return opt.flags.FlagUsages()
}

// YAML returns yaml string of option, need to be called after calling Load.
func (opt *Options) YAML() string {
	return opt.yamlStr
}

// Parse parses the arguments and loads the options.
func (opt *Options) Parse(args []string) error {
	err := opt.flags.Parse(args)
	if err != nil {
		return err
	}

	return opt.Load()
}

// Load merges environment variables and the config file into the flags
// which have already been parsed, then validates the result.
func (opt *Options) Load() error {
	opt.viper.AutomaticEnv()
	opt.viper.SetEnvPrefix(envPrefix)
	opt.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if opt.ConfigFile != "" {
		opt.viper.SetConfigFile(opt.ConfigFile)
		opt.viper.SetConfigType("yaml")
		err := opt.viper.ReadInConfig()
		if err != nil {
			return fmt.Errorf("read config file %s failed: %v",
				opt.ConfigFile, err)
		}
	}

	// NOTE: Workaround because viper does not treat env vars the same as other config.
	// Reference: https://github.com/spf13/viper/issues/188#issuecomment-399518663
	for _, key := range opt.viper.AllKeys() {
		opt.viper.Set(key, opt.viper.Get(key))
	}

	err := opt.viper.Unmarshal(opt, func(c *mapstructure.DecoderConfig) {
		c.TagName = "yaml"
	})
	if err != nil {
		return fmt.Errorf("unmarshal options failed: %v", err)
	}

	err = opt.validate()
	if err != nil {
		return err
	}

	err = opt.prepare()
	if err != nil {
		return err
	}

	buff, err := codectool.MarshalYAML(opt)
	if err != nil {
		return fmt.Errorf("marshal config to yaml failed: %v", err)
	}
	opt.yamlStr = string(buff)

	return nil
}

func (opt *Options) validate() error {
	if opt.Address == "" {
		return fmt.Errorf("empty address")
	}
	_, port, err := net.SplitHostPort(opt.Address)
	if err != nil {
		return fmt.Errorf("invalid address: %v", err)
	}
	if port == "" {
		return fmt.Errorf("invalid address %s: empty port", opt.Address)
	}

	if opt.Message == "" {
		return fmt.Errorf("empty message")
	}

	if opt.BufferSize <= 0 || opt.BufferSize > MaxBufferSize {
		return fmt.Errorf("invalid buffer-size %d: must be in [1, %d]",
			opt.BufferSize, MaxBufferSize)
	}

	timeout, err := time.ParseDuration(opt.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %v", err)
	}
	if timeout < 0 {
		return fmt.Errorf("invalid timeout %s: negative", opt.Timeout)
	}

	return nil
}

func (opt *Options) prepare() error {
	// validate has guaranteed it parses.
	opt.TimeoutDuration, _ = time.ParseDuration(opt.Timeout)

	if opt.LogFile == "" {
		opt.AbsLogFile = ""
		return nil
	}

	if filepath.IsAbs(opt.LogFile) {
		opt.AbsLogFile = filepath.Clean(opt.LogFile)
		return nil
	}

	abs, err := filepath.Abs(opt.LogFile)
	if err != nil {
		return err
	}
	opt.AbsLogFile = abs

	return nil
}
