/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Seednode/bingohub/internal/room"
)

var (
	errTooManyBots    = errors.New("bot limit reached for this room")
	errUnknownMessage = errors.New("unknown message type")
	errNoBot          = errors.New("no such bot")
)

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	cfg.logger().Infof(format, args...)
}

// errorCode is the stable wire name for err.
func errorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, room.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, room.ErrExhausted):
		return "exhausted"
	case errors.Is(err, room.ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, room.ErrNoSession):
		return "no_session"
	case errors.Is(err, room.ErrAlreadyInRoom):
		return "already_in_room"
	case errors.Is(err, room.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, room.ErrNotPlaying):
		return "not_playing"
	case errors.Is(err, room.ErrInvalidCell):
		return "invalid_cell"
	case errors.Is(err, room.ErrNotCalled):
		return "not_called"
	case errors.Is(err, room.ErrNotWinning):
		return "not_winning"
	case errors.Is(err, room.ErrWinnerDeclared):
		return "winner_declared"
	case errors.Is(err, room.ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, room.ErrStale):
		return "stale"
	case errors.Is(err, errTooManyBots):
		return "too_many_bots"
	case errors.Is(err, errNoBot):
		return "no_bot"
	case errors.Is(err, errUnknownMessage):
		return "unknown_message"
	}
	return "internal"
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body{height:100%;width:100%;margin:0;font-family:sans-serif;}`)
	htmlBody.WriteString(`body{display:flex;flex-direction:column;align-items:center;justify-content:center;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", html.EscapeString(title)))
	htmlBody.WriteString(fmt.Sprintf("<body>%s</body></html>", body))

	return htmlBody.String()
}
