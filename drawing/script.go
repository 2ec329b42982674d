package drawing

import (
	"fmt"
	"log/slog"

	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// scriptOptions lets drawing scripts loop at top level, which is how most
// parametric patterns are written.
var scriptOptions = &syntax.FileOptions{
	TopLevelControl: true,
	While:           true,
	GlobalReassign:  true,
}

// Evaluate runs a Starlark drawing script. The script calls the builtins
// line(x1, y1, x2, y2), arc(cx, cy, r, start, end) and circle(cx, cy, r)
// and may set a global `name`. The math module is predeclared. params are
// exposed as globals.
func Evaluate(threadName, script string, params map[string]interface{}) (*Drawing, error) {
	d := &Drawing{}
	thread := &starlark.Thread{
		Name: threadName,
		Print: func(_ *starlark.Thread, msg string) {
			slog.Info("drawing script", "script", threadName, "msg", msg)
		},
	}

	globals := starlark.StringDict{
		"line":   entityBuiltin("line", []string{"x1", "y1", "x2", "y2"}, d, func(v []float64) Entity { return Line(v[0], v[1], v[2], v[3]) }),
		"arc":    entityBuiltin("arc", []string{"cx", "cy", "r", "start", "end"}, d, func(v []float64) Entity { return Arc(v[0], v[1], v[2], v[3], v[4]) }),
		"circle": entityBuiltin("circle", []string{"cx", "cy", "r"}, d, func(v []float64) Entity { return Circle(v[0], v[1], v[2]) }),
		"math":   starlarkmath.Module,
	}
	for k, v := range params {
		val, err := toStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", k, err)
		}
		globals[k] = val
	}

	result, err := starlark.ExecFileOptions(scriptOptions, thread, threadName, script, globals)
	if err != nil {
		return nil, err
	}
	if name, ok := fromStarlarkValue(result["name"]).(string); ok {
		d.Name = name
	}
	return d, nil
}

func entityBuiltin(name string, argNames []string, d *Drawing, build func([]float64) Entity) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		raw := make([]starlark.Value, len(argNames))
		pairs := make([]interface{}, 0, 2*len(argNames))
		for i, n := range argNames {
			pairs = append(pairs, n, &raw[i])
		}
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
			return nil, err
		}

		vals := make([]float64, len(raw))
		for i, v := range raw {
			f, ok := starlark.AsFloat(v)
			if !ok {
				return nil, fmt.Errorf("%s: %s must be a number, got %s", b.Name(), argNames[i], v.Type())
			}
			vals[i] = f
		}
		d.Entities = append(d.Entities, build(vals))
		return starlark.None, nil
	})
}

func toStarlarkValue(v interface{}) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

func fromStarlarkValue(v starlark.Value) interface{} {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	}
	return nil
}
