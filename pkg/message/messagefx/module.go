// Package messagefx wires a message.Bus into a go.uber.org/fx application.
//
// The bus is started by the application's OnStart hook, after every
// constructor and invoke has run, so components built during graph
// construction can trigger events freely and receive nothing until the whole
// graph exists. OnStop stops the bus.
//
//	app := fx.New(
//	    messagefx.Module(),
//	    messagefx.AsOption(message.WithDrainOrder(message.FIFO)),
//	    fx.Invoke(newSidebar, newEditor),
//	)
package messagefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/randalmurphal/message/pkg/message"
)

// optionsGroup collects message.Option values from the graph.
const optionsGroup = `group:"message.options"`

// Params are the bus constructor's inputs.
type Params struct {
	fx.In

	Logger  *zap.Logger      `optional:"true"`
	Options []message.Option `group:"message.options"`
}

// Result is the bus constructor's output.
type Result struct {
	fx.Out

	Bus *message.Bus
}

// Module returns the fx module providing *message.Bus.
func Module() fx.Option {
	return fx.Module("message",
		fx.Provide(ProvideBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideBus builds the bus. When a *zap.Logger is in the graph the
// not-started warning goes to it; options from the group are applied after
// that and may override it.
func ProvideBus(p Params) Result {
	opts := make([]message.Option, 0, len(p.Options)+1)
	if p.Logger != nil {
		opts = append(opts, message.WithWarner(ZapWarner{Logger: p.Logger}))
	}
	opts = append(opts, p.Options...)
	return Result{Bus: message.New(opts...)}
}

// AsOption contributes a bus option to the module.
func AsOption(opt message.Option) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func() message.Option { return opt },
			fx.ResultTags(optionsGroup),
		),
	)
}

type lifecycleParams struct {
	fx.In

	LC     fx.Lifecycle
	Bus    *message.Bus
	Logger *zap.Logger `optional:"true"`
}

func registerLifecycle(p lifecycleParams) {
	p.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pending := p.Bus.Len()
			if err := p.Bus.Start(); err != nil {
				return err
			}
			if p.Logger != nil {
				p.Logger.Debug("message bus started", zap.Int("drained", pending))
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			p.Bus.Stop()
			return nil
		},
	})
}

// EventLogger routes fx's own lifecycle events to zap.
//
//	fx.WithLogger(messagefx.EventLogger)
func EventLogger(logger *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger}
}
