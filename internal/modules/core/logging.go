package core

import (
	"context"
	"sync/atomic"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the logger used by the package level log helpers.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

func LogError(ctx context.Context, msg string, fields ...zap.Field) {
	logger.Load().Error(msg, append(contextFields(ctx), fields...)...)
}

func contextFields(ctx context.Context) []zap.Field {
	var fields []zap.Field

	if requestID := middleware.GetReqID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if correlationID, ok := ctx.Value(CorrelationIDContextKey).(string); ok && correlationID != "" {
		fields = append(fields, zap.String("correlation_id", correlationID))
	}

	if playerID := Session(ctx).PlayerID; playerID != uuid.Nil {
		fields = append(fields, zap.String("player_id", playerID.String()))
	}

	return fields
}

var _ mediator.PipelineBehavior = (*RequestLoggingBehavior)(nil)

type RequestLoggingBehavior struct {
	Logger *zap.Logger
}

func (b *RequestLoggingBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	logFields := contextFields(ctx)

	if request != nil {
		logFields = append(logFields, zap.Any("request_body", request))
	}

	b.Logger.Info("processing request", logFields...)

	return next(ctx, request)
}

var _ mediator.PipelineBehavior = (*HandlerErrorLoggingBehavior)(nil)

type HandlerErrorLoggingBehavior struct {
	Logger *zap.Logger
}

func (b *HandlerErrorLoggingBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	response, err := next(ctx, request)
	if err != nil {
		b.Logger.Error("handler returned error", append(contextFields(ctx), zap.Error(err))...)
	}

	return response, err
}
