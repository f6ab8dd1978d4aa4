// Copyright (c) 2017 Uber Technologies, Inc.
// Copyright (c) 2026 The lazycats Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package lazyevent

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is a loader event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger

	logLevel   zapcore.Level // default: zapcore.InfoLevel
	errorLevel *zapcore.Level
}

var _ Logger = (*ZapLogger)(nil)

// UseErrorLevel sets the level of error logs emitted by the loader to level.
func (l *ZapLogger) UseErrorLevel(level zapcore.Level) {
	l.errorLevel = &level
}

// UseLogLevel sets the level of non-error logs emitted by the loader to level.
func (l *ZapLogger) UseLogLevel(level zapcore.Level) {
	l.logLevel = level
}

func (l *ZapLogger) logEvent(msg string, fields ...zap.Field) {
	l.Logger.Log(l.logLevel, msg, fields...)
}

func (l *ZapLogger) logError(msg string, fields ...zap.Field) {
	lvl := zapcore.ErrorLevel
	if l.errorLevel != nil {
		lvl = *l.errorLevel
	}
	l.Logger.Log(lvl, msg, fields...)
}

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Loading:
		l.logEvent("loading module", zap.String("module", e.ModuleName))
	case *Loaded:
		if e.Err != nil {
			l.logError("module load failed",
				zap.String("module", e.ModuleName),
				zap.Error(e.Err),
			)
		} else {
			l.logEvent("module loaded",
				zap.String("module", e.ModuleName),
				zap.Bool("cached", e.Cached),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *Supplied:
		if e.Err != nil {
			l.logError("error encountered while supplying value",
				zap.String("type", e.TypeName),
				zap.String("module", e.ModuleName),
				zap.Error(e.Err))
		} else {
			l.logEvent("supplied",
				zap.String("type", e.TypeName),
				zap.String("module", e.ModuleName),
			)
		}
	case *Provided:
		for _, rtype := range e.OutputTypeNames {
			l.logEvent("provided",
				zap.String("constructor", e.ConstructorName),
				zap.String("type", rtype),
				zap.String("module", e.ModuleName),
			)
		}
		if e.Err != nil {
			l.logError("error encountered while applying options",
				zap.String("module", e.ModuleName),
				zap.Error(e.Err))
		}
	case *Invoked:
		if e.Err != nil {
			l.logError("invoke failed",
				zap.String("function", e.FunctionName),
				zap.String("module", e.ModuleName),
				zap.Error(e.Err))
		} else {
			l.logEvent("invoked",
				zap.String("function", e.FunctionName),
				zap.String("module", e.ModuleName),
			)
		}
	case *HookExecuted:
		if e.Err != nil {
			l.logError("hook execute failed",
				zap.String("module", e.ModuleName),
				zap.String("method", e.Method),
				zap.String("callee", e.FunctionName),
				zap.String("caller", e.CallerName),
				zap.Error(e.Err),
			)
		} else {
			l.logEvent("hook executed",
				zap.String("module", e.ModuleName),
				zap.String("method", e.Method),
				zap.String("callee", e.FunctionName),
				zap.String("caller", e.CallerName),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *Resolved:
		if e.Err != nil {
			l.logError("lookup failed",
				zap.String("module", e.ModuleName),
				zap.String("token", e.TokenName),
				zap.Error(e.Err),
			)
		} else {
			l.logEvent("resolved",
				zap.String("module", e.ModuleName),
				zap.String("token", e.TokenName),
			)
		}
	case *Stopped:
		if e.Err != nil {
			l.logError("module stop failed",
				zap.String("module", e.ModuleName),
				zap.Error(e.Err))
		} else {
			l.logEvent("module stopped", zap.String("module", e.ModuleName))
		}
	}
}
