/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the process logger. With logging on it is a development
// logger at debug level, otherwise a production logger. A non-empty logFile
// sends the output to a rotating file instead of stderr.
func newLogger(logging bool, logFile string) (*zap.Logger, error) {
	var cfg zap.Config
	if logging {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.DisableCaller = true
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if logFile == "" {
		return cfg.Build()
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	})
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), w, cfg.Level)
	return zap.New(core, zap.AddCaller()), nil
}
