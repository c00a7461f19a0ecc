package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"TankBattle/modules/kit/errx"
)

type Dispatcher struct {
	handlers map[reflect.Type]reflect.Value
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]reflect.Value),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, MH.HandleStartRound)
	register(d, MH.HandleTick)
	register(d, MH.HandleEliminate)
	register(d, MH.HandleStandings)
}

func register[Req MatchMessage](
	d *Dispatcher,
	fn func(ctx actor.Context, a *MatchActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if _, dup := d.handlers[reqType]; dup {
		panic("dispatcher: duplicate handler for " + reqType.String())
	}
	d.handlers[reqType] = reflect.ValueOf(fn)
}

// Dispatch 找不到处理函数时回复 ErrInternal，调用方不会卡到超时。
func (d *Dispatcher) Dispatch(ctx actor.Context, a *MatchActor, req MatchMessage) {
	fn, ok := d.handlers[reflect.TypeOf(req)]
	if !ok {
		ctx.Respond(errx.ErrInternal.WithData("reason", "no handler").WithData("type", reflect.TypeOf(req).String()))
		return
	}
	fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(a),
		reflect.ValueOf(req),
	})
}
