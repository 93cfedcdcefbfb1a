// Package omniscio is the external, C-API-shaped facade over the
// predictor: a process-wide singleton tracer reached through Init,
// the *Start/*End bracket pairs, Next, Finalize and PredictFrom.
package omniscio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/omniscio/omniscio-go/config"
	omniscioctx "github.com/omniscio/omniscio-go/context"
	"github.com/omniscio/omniscio-go/tracer"
)

// ApiType re-exports tracer.ApiType so callers never need to import the
// tracer package directly.
type ApiType = tracer.ApiType

const (
	POSIX = tracer.POSIX
	MPIIO = tracer.MPIIO
	LIBC  = tracer.LIBC
)

// Prediction re-exports tracer.Prediction.
type Prediction = tracer.Prediction

// Handle re-exports tracer.Handle.
type Handle = tracer.Handle

// ErrUnsupported is returned by PredictFrom.
var ErrUnsupported = tracer.ErrUnsupported

var (
	once sync.Once
	t    *tracer.Tracer
)

func instance() *tracer.Tracer {
	once.Do(func() { t = tracer.New() })
	return t
}

// Init enables tracing. If the OMNISCIO_DISABLE environment variable is
// set, Init leaves the predictor permanently disabled and every other
// entry point becomes a no-op. Otherwise output files are created under
// OMNISCIO_DIRECTORY (default: the current directory), named
// "omniscio.<unix-time>.".
func Init() error {
	if os.Getenv("OMNISCIO_DISABLE") != "" {
		instance().Disable()
		return nil
	}

	dir := os.Getenv("OMNISCIO_DIRECTORY")
	if dir == "" {
		dir = "."
	}

	settings, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("omniscio: load config: %w", err)
	}

	prefix := fmt.Sprintf("omniscio.%d.", time.Now().Unix())
	return instance().Init(dir, prefix, tracer.Options{
		SizeThreshold:   settings.SizeUpgradeThreshold,
		OffsetThreshold: settings.OffsetUpgradeThreshold,
		WindowSize:      settings.TimeWindowSize,
	})
}

// OpenStart brackets the beginning of an open() call.
func OpenStart(filename string, api ApiType) (omniscioctx.Symbol, error) {
	return instance().OpenStart(filename, api)
}

// OpenEnd brackets the end of an open() call, reporting the handle
// open() produced.
func OpenEnd(success bool, handle Handle) error { return instance().OpenEnd(success, handle) }

// CloseStart brackets the beginning of a close() call on handle.
func CloseStart(api ApiType, handle Handle) (omniscioctx.Symbol, error) {
	return instance().CloseStart(api, handle)
}

// CloseEnd brackets the end of a close() call.
func CloseEnd(success bool) error { return instance().CloseEnd(success) }

// ReadStart brackets the beginning of a read() call on handle.
func ReadStart(api ApiType, handle Handle, offset, size int64) (omniscioctx.Symbol, error) {
	return instance().ReadStart(api, handle, offset, size)
}

// ReadEnd brackets the end of a read() call.
func ReadEnd(success bool) error { return instance().ReadEnd(success) }

// WriteStart brackets the beginning of a write() call on handle.
func WriteStart(api ApiType, handle Handle, offset, size int64) (omniscioctx.Symbol, error) {
	return instance().WriteStart(api, handle, offset, size)
}

// WriteEnd brackets the end of a write() call.
func WriteEnd(success bool) error { return instance().WriteEnd(success) }

// Next forecasts the operations that may follow the one that just
// completed.
func Next() ([]Prediction, error) { return instance().Next() }

// Free is a documented no-op kept for symmetry with the C-API shape this
// predictor mirrors; Go's garbage collector reclaims everything a Tracer
// owns.
func Free() { instance().Free() }

// PredictFrom is not implemented: see tracer.ErrUnsupported.
func PredictFrom(c omniscioctx.Context) ([]Prediction, error) {
	return instance().PredictFrom(c)
}

// Finalize flushes every output file and disables the predictor.
func Finalize() error { return instance().Finalize() }
