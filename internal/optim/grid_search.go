// Package optim sweeps orb settings over a grid and ranks the runs by a
// metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

var ErrNoTrials = errors.New("optim: no trial succeeded")

// Param is one axis of the grid. Name is the yaml key of an orb setting;
// duration settings take their values in seconds.
type Param struct {
	Name   string
	Values []float64
}

// ParseParam reads "name=v1,v2,...".
func ParseParam(s string) (Param, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return Param{}, fmt.Errorf("optim: param %q is not name=v1,v2", s)
	}
	p := Param{Name: strings.TrimSpace(name)}
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Param{}, fmt.Errorf("optim: param %s: %w", p.Name, err)
		}
		p.Values = append(p.Values, v)
	}
	return p, nil
}

// Evaluator runs one configuration and returns its metrics.
type Evaluator func(ctx context.Context, s orb.Settings) (map[string]float64, error)

type Trial struct {
	Params  map[string]float64
	Metrics map[string]float64
	Err     error
}

type GridSearch struct {
	params   []Param
	Maximize bool
}

func NewGridSearch(params ...Param) *GridSearch {
	return &GridSearch{params: params}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, p := range g.params {
		n *= len(p.Values)
	}
	return n
}

// Search evaluates every grid point on top of base and returns the best
// trial by metric along with all trials in grid order. Points whose
// settings fail validation or whose run fails are kept with Err set and
// never win.
func (g *GridSearch) Search(ctx context.Context, base orb.Settings, eval Evaluator, metric string) (Trial, []Trial, error) {
	var trials []Trial
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, base, eval, &trials); err != nil {
		return Trial{}, trials, err
	}

	best := -1
	bestVal := math.Inf(1)
	if g.Maximize {
		bestVal = math.Inf(-1)
	}
	for i, tr := range trials {
		if tr.Err != nil {
			continue
		}
		v, ok := tr.Metrics[metric]
		if !ok {
			return Trial{}, trials, fmt.Errorf("optim: metric %q not reported", metric)
		}
		if (g.Maximize && v > bestVal) || (!g.Maximize && v < bestVal) {
			best, bestVal = i, v
		}
	}
	if best < 0 {
		return Trial{}, trials, ErrNoTrials
	}
	return trials[best], trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base orb.Settings,
	eval Evaluator,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.params) {
		tr := Trial{Params: maps.Clone(current)}
		s, err := Apply(base, current)
		if err == nil {
			tr.Metrics, err = eval(ctx, s)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		tr.Err = err
		*trials = append(*trials, tr)
		return nil
	}

	p := g.params[depth]
	for _, val := range p.Values {
		next := maps.Clone(current)
		next[p.Name] = val
		if err := g.searchRecursive(ctx, depth+1, next, base, eval, trials); err != nil {
			return err
		}
	}
	return nil
}

// Apply overrides settings by yaml key and validates the result.
func Apply(base orb.Settings, params map[string]float64) (orb.Settings, error) {
	out := base
	v := reflect.ValueOf(&out).Elem()
	for name, val := range params {
		f, ok := fieldByTag(v, name)
		if !ok {
			return base, fmt.Errorf("optim: unknown setting %q", name)
		}
		switch {
		case f.Type() == durationType:
			f.SetInt(int64(time.Duration(val * float64(time.Second))))
		case f.Kind() == reflect.Int:
			if val != math.Trunc(val) {
				return base, fmt.Errorf("optim: %s takes whole numbers, got %g", name, val)
			}
			f.SetInt(int64(val))
		case f.Kind() == reflect.Float64:
			f.SetFloat(val)
		default:
			return base, fmt.Errorf("optim: %s cannot be swept", name)
		}
	}
	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := range t.NumField() {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
