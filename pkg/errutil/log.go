// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package errutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error at error level with structured context if it's an
// oops error.
func LogError(logger *slog.Logger, msg string, err error) {
	LogErrorContext(context.Background(), logger, slog.LevelError, msg, err)
}

// LogErrorContext logs err at the given level. For oops errors it adds the
// code and context attributes; other errors are logged as their string.
func LogErrorContext(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if code := oopsErr.Code(); code != nil && code != "" {
			attrs = append(attrs, "code", code)
		}
		if errCtx := oopsErr.Context(); len(errCtx) > 0 {
			attrs = append(attrs, "context", errCtx)
		}
		logger.Log(ctx, level, msg, attrs...)
		return
	}
	logger.Log(ctx, level, msg, "error", err)
}

// Code returns the oops code carried by err, or "" when there is none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code := oopsErr.Code()
	if code == nil {
		return ""
	}
	if s, ok := code.(string); ok {
		return s
	}
	return fmt.Sprint(code)
}
