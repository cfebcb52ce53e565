package mediator_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/mediator"
)

type pingCommand struct{ Value int }
type pongResponse struct{ Value int }

type pingHandler struct{ calls int }

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	cmd := request.(*pingCommand)
	if cmd.Value < 0 {
		return nil, errors.New("negative ping")
	}
	return &pongResponse{Value: cmd.Value + 1}, nil
}

func TestSend_DispatchesByRequestType(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))

	resp, err := m.Send(context.Background(), &pingCommand{Value: 41})
	require.NoError(t, err)
	assert.Equal(t, 42, resp.(*pongResponse).Value)
	assert.Equal(t, 1, handler.calls)
}

func TestSend_UnregisteredType(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestSend_NilRequest(t *testing.T) {
	_, err := mediator.NewMediator().Send(context.Background(), nil)
	require.Error(t, err)
}

func TestRegister_RejectsDuplicatesAndNil(t *testing.T) {
	m := mediator.NewMediator()
	typ := reflect.TypeOf(&pingCommand{})

	require.NoError(t, m.Register(typ, &pingHandler{}))
	assert.Error(t, m.Register(typ, &pingHandler{}))
	assert.Error(t, m.Register(nil, &pingHandler{}))
	assert.Error(t, m.Register(reflect.TypeOf(&pongResponse{}), nil))
}

func TestMiddleware_FirstRegisteredIsOutermost(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))

	var trace []string
	tracer := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			trace = append(trace, name+">")
			resp, err := next(ctx, request)
			trace = append(trace, "<"+name)
			return resp, err
		}
	}
	m.RegisterMiddleware(tracer("outer"))
	m.RegisterMiddleware(tracer("inner"))

	_, err := m.Send(context.Background(), &pingCommand{Value: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer>", "inner>", "<inner", "<outer"}, trace)
}

func TestMiddleware_SeesHandlerErrors(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))

	var seen error
	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		resp, err := next(ctx, request)
		seen = err
		return resp, err
	})

	_, err := m.Send(context.Background(), &pingCommand{Value: -1})
	require.Error(t, err)
	assert.Equal(t, err, seen)
}

func TestMiddleware_CanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))

	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, errors.New("blocked")
	})

	_, err := m.Send(context.Background(), &pingCommand{Value: 1})
	require.EqualError(t, err, "blocked")
	assert.Zero(t, handler.calls)
}
