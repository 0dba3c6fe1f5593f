//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-eq/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
	render []float32
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		channels := 2
		if len(args) > 0 {
			sr = args[0].Float()
		}
		if len(args) > 1 {
			channels = args[1].Int()
		}
		e, err := webdemo.NewEngine(sr, channels)
		if err != nil {
			return err.Error()
		}
		if engine != nil {
			_ = engine.Close()
		}
		engine = e
		return js.Null()
	}))

	api.Set("setParam", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		value := args[1]
		v := 0.0
		if value.Type() == js.TypeBoolean {
			if value.Bool() {
				v = 1
			}
		} else {
			v = value.Float()
		}
		if err := engine.SetParam(args[0].String(), v); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("tick", export(func(args []js.Value) any {
		if engine == nil {
			return false
		}
		return engine.Tick()
	}))

	api.Set("responseCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		curve := engine.ResponseCurve(args[0].Int())
		arr := js.Global().Get("Float32Array").New(len(curve))
		for i, v := range curve {
			arr.SetIndex(i, v)
		}
		return arr
	}))

	// render fills the given interleaved Float32Array in place.
	api.Set("render", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		out := args[0]
		n := out.Length()
		if cap(render) < n {
			render = make([]float32, n)
		}
		render = render[:n]
		engine.Render(render)
		for i, v := range render {
			out.SetIndex(i, v)
		}
		return out
	}))

	api.Set("setTransport", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		engine.SetTransport(args[0].Float(), args[1].Float())
		return js.Null()
	}))

	api.Set("setRunning", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetRunning(args[0].Bool())
		return js.Null()
	}))

	api.Set("setWaveform", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetWaveform(webdemo.ParseWaveform(args[0].String()))
		return js.Null()
	}))

	api.Set("setSteps", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		arr := args[0]
		steps := make([]webdemo.StepConfig, arr.Length())
		for i := range steps {
			item := arr.Index(i)
			steps[i] = webdemo.StepConfig{
				Enabled: item.Get("enabled").Bool(),
				FreqHz:  item.Get("freq").Float(),
			}
		}
		engine.SetSteps(steps)
		return js.Null()
	}))

	api.Set("currentStep", export(func(args []js.Value) any {
		if engine == nil {
			return -1
		}
		return engine.CurrentStep()
	}))

	js.Global().Set("AlgoEQDemo", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
