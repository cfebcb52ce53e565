package metrics

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/mediator"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
)

// PrometheusMiddleware creates a middleware that records command execution metrics:
// duration (histogram), outcome counts (counter) and in-flight commands (gauge).
//
// Command names are extracted via reflection and simplified to remove package prefixes.
// For example: "*commands.TransferResourceCommand" becomes "TransferResourceCommand"
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		collector.CommandStarted()
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), classifyOutcome(err))
		return response, err
	}
}

// classifyOutcome separates domain refusals from infrastructure failures
func classifyOutcome(err error) string {
	if err == nil {
		return StatusSuccess
	}

	var (
		insufficient *stockpile.ErrInsufficientResources
		badAmount    *stockpile.ErrInvalidAmount
		badTransfer  *stockpile.ErrInvalidTransfer
		cannotHold   *stockpile.ErrCannotHold
		invalid      *shared.ValidationError
		notFound     *shared.NotFoundError
	)
	switch {
	case errors.As(err, &insufficient), errors.As(err, &badAmount), errors.As(err, &badTransfer),
		errors.As(err, &cannotHold), errors.As(err, &invalid), errors.As(err, &notFound):
		return StatusRejected
	default:
		return StatusError
	}
}

// extractCommandName extracts a clean command name from the request using reflection
// Examples:
//   - "*commands.GenerateSupplyNetworkCommand" → "GenerateSupplyNetworkCommand"
//   - "*queries.GetCityLedgerQuery" → "GetCityLedgerQuery"
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
