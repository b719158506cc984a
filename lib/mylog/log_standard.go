package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	sugar *zap.SugaredLogger
}

func newStandardLogger(componentName string) Logger {
	logger, err := zap.NewDevelopmentConfig().Build(zap.WithCaller(false))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating console logger: %s", err)
		logger = zap.NewNop()
	}

	return standardLogger{
		sugar: logger.Sugar().Named(componentName),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	l.sugar.Logw(severity.level(), fmt.Sprintf(format, a...), "aggregate", traceLabel)
}
