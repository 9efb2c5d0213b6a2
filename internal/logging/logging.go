// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the console logger. Log output always goes to
// stderr because stdout carries the host protocol.
package logging

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Log levels accepted by New.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// New returns the logger for level.
func New(level string) (*zap.Logger, error) {
	return newLogger(level, zapcore.Lock(os.Stderr), term.IsTerminal(int(os.Stderr.Fd())))
}

func newLogger(level string, w zapcore.WriteSyncer, color bool) (*zap.Logger, error) {
	var enabled zapcore.Level
	switch level {
	case LevelNone:
		return zap.NewNop(), nil
	case LevelNormal, "":
		enabled = zapcore.InfoLevel
	case LevelDebug:
		enabled = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level '%s'. Use '%s', '%s' or '%s'", level, LevelNone, LevelNormal, LevelDebug)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(consoleEnc{zapcore.NewConsoleEncoder(ec)}, w, enabled)
	return zap.New(core), nil
}

// consoleEnc prints errors by message only, without the verbose chain.
type consoleEnc struct {
	zapcore.Encoder
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			f.Interface = errors.New(f.Interface.(error).Error())
		}
		out = append(out, f)
	}
	return c.Encoder.EncodeEntry(ent, out)
}
