package app

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/x402dash/x402dash/domain/usage"
)

// Instrument runs fn and records its outcome as a usage event: SUCCESS when
// fn returns nil, UNKNOWN_ERROR when it returns an error or panics. The event
// is logged in a deferred block, so it is written on every path; a panic is
// re-raised after logging. Failures to log are reported through the logger's
// own zerolog logger and never replace fn's result.
//
// An empty c.Endpoint is filled with fn's function name.
func Instrument(ctx context.Context, l *UsageLogger, c Call, fn func(context.Context) error) error {
	if c.Endpoint == "" {
		c.Endpoint = funcName(fn)
	}
	_, err := InstrumentValue(ctx, l, c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// InstrumentValue is Instrument for functions that return a value.
func InstrumentValue[T any](ctx context.Context, l *UsageLogger, c Call, fn func(context.Context) (T, error)) (result T, err error) {
	if c.Endpoint == "" {
		c.Endpoint = funcName(fn)
	}
	start := l.sink.clock.Now()

	defer func() {
		rec := recover()

		e := usage.Event{
			AgentID:   c.AgentID,
			Method:    c.Method,
			Endpoint:  c.Endpoint,
			Status:    usage.StatusSuccess,
			LatencyMs: Millis(l.sink.clock.Now().Sub(start)),
		}
		switch {
		case rec != nil:
			e.Status = usage.StatusUnknownError
			e.ErrorMessage = fmt.Sprintf("panic: %v", rec)
		case err != nil:
			e.Status = usage.StatusUnknownError
			e.ErrorMessage = err.Error()
		}

		// A canceled caller context must not prevent the outcome from being recorded.
		if _, logErr := l.Log(context.WithoutCancel(ctx), e); logErr != nil {
			l.sink.logger.Warn().Err(logErr).Str("endpoint", c.Endpoint).Msg("instrumented call not logged")
		}

		if rec != nil {
			panic(rec)
		}
	}()

	return fn(ctx)
}

func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "unknown"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
