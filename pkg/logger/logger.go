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

// Package logger provides the diagnostic logger of the echo clients.
// Diagnostics go to stderr and, optionally, to a rotated log file, so that
// stdout only carries the lines of the exchange itself.
package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/megaease/echoclient/pkg/option"
)

const (
	// RFC3339Milli is the time format of log entries.
	RFC3339Milli = "2006-01-02T15:04:05.000Z07:00"

	logFileMaxSizeMB  = 64
	logFileMaxBackups = 3
	logFileMaxAgeDays = 7
)

var (
	defaultLogger *zap.SugaredLogger // equal stderrLogger + fileLogger
	logFile       *lumberjack.Logger
)

func init() {
	defaultLogger = newLogger(zap.InfoLevel, nil)
}

// Init initializes logger.
func Init(opt *option.Options) {
	lowestLevel := zap.InfoLevel
	if opt.Debug {
		lowestLevel = zap.DebugLevel
	}

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if opt.AbsLogFile != "" {
		logFile = &lumberjack.Logger{
			Filename:   opt.AbsLogFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			LocalTime:  true,
		}
	}

	defaultLogger = newLogger(lowestLevel, logFile)
}

func defaultEncoderConfig() zapcore.EncoderConfig {
	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(RFC3339Milli))
	}

	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "", // no need
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "", // no need
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func newLogger(lowestLevel zapcore.Level, file *lumberjack.Logger) *zap.SugaredLogger {
	encoderConfig := defaultEncoderConfig()
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}

	stderrSyncer := zapcore.Lock(zapcore.AddSync(os.Stderr))
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), stderrSyncer, lowestLevel)

	if file != nil {
		// no color codes in files
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		fileCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(file), lowestLevel)
		core = zapcore.NewTee(fileCore, core)
	}

	return zap.New(core, opts...).Sugar()
}

// Debugf is the wrapper of default logger Debugf.
func Debugf(template string, args ...interface{}) {
	defaultLogger.Debugf(template, args...)
}

// Infof is the wrapper of default logger Infof.
func Infof(template string, args ...interface{}) {
	defaultLogger.Infof(template, args...)
}

// Warnf is the wrapper of default logger Warnf.
func Warnf(template string, args ...interface{}) {
	defaultLogger.Warnf(template, args...)
}

// Errorf is the wrapper of default logger Errorf.
func Errorf(template string, args ...interface{}) {
	defaultLogger.Errorf(template, args...)
}

// Sync flushes buffered entries.
func Sync() {
	defaultLogger.Sync()
}

// Close flushes buffered entries and releases the log file.
func Close() {
	Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
