package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/storefront/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

type structuredLogger struct {
	componentName string
	logger        *zap.Logger
}

// newGcloudLogger writes one JSON document per line in the format understood by Cloud Logging.
func newGcloudLogger(componentName string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "severity"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	// A timestamp is added when shipping logs to Cloud Logging.
	cfg.EncoderConfig.TimeKey = ""

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating structured logger: %s", err)
		logger = zap.NewNop()
	}

	return newStructuredLogger(componentName, logger)
}

func newStructuredLogger(componentName string, logger *zap.Logger) structuredLogger {
	return structuredLogger{
		componentName: componentName,
		logger:        logger,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := []zap.Field{
		zap.String("component", l.componentName),
	}
	if traceLabel != "" {
		fields = append(fields, zap.Any("labels", map[string]string{"aggregate": traceLabel}))
	}
	if trace := mycontext.TraceFromContext(ctx); trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
	}

	if ce := l.logger.Check(severity.level(), l.componentName+":"+fmt.Sprintf(format, a...)); ce != nil {
		ce.Write(fields...)
	}
}
