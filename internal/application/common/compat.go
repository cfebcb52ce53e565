package common

// Re-exports of the mediator package so handlers depend on a single application package.

import (
	"github.com/andrescamacho/spaceeconomy-go/internal/application/mediator"
)

// Mediator types
type (
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware
	Mediator       = mediator.Mediator
)

// Mediator functions
var (
	NewMediator = mediator.NewMediator
)

// RegisterHandler is generic and must be called from the mediator package:
// mediator.RegisterHandler[*MyCommand](m, handler)
