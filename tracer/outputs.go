package tracer

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// outputs owns the tracer's append-only log files and the path prefix
// used to derive their names. Append-only files degrade silently on
// write failure, matching the dictionary's own policy: a logging error
// must never perturb the model being built.
type outputs struct {
	prefix string

	opsLog  *os.File
	predLog *os.File
}

func newOutputs(prefix string) (*outputs, error) {
	o := &outputs{prefix: prefix}
	var err error
	o.opsLog, err = os.OpenFile(prefix+"log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "tracer: open operations log")
	}
	o.predLog, err = os.OpenFile(prefix+"pred", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		o.opsLog.Close()
		return nil, errors.Wrap(err, "tracer: open predictions log")
	}
	return o, nil
}

func (o *outputs) logOp(line string) {
	if o.opsLog == nil {
		return
	}
	_, _ = o.opsLog.WriteString(line)
}

func (o *outputs) logPredictions(preds []Prediction) {
	if o.predLog == nil {
		return
	}
	for _, p := range preds {
		_, _ = fmt.Fprintf(o.predLog, "%d %.6f\n", p.Symbol, p.Probability)
	}
}

// writeModel rewrites the full grammar model file atomically: unlike the
// append-only dictionary and logs, the model is a complete snapshot that
// is only meaningful as a whole.
func (o *outputs) writeModel(content string) error {
	return renameio.WriteFile(o.prefix+"model", []byte(content), 0644)
}

// summary is the diagnostic dump written once, at Finalize.
type summary struct {
	Symbols     int            `yaml:"symbols"`
	Rules       int            `yaml:"rules"`
	SizeStates  map[string]int `yaml:"size_tracker_states"`
	OffsetState map[string]int `yaml:"offset_tracker_states"`
}

func (o *outputs) writeSummary(s summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "tracer: marshal summary")
	}
	return renameio.WriteFile(o.prefix+"summary.yaml", data, 0644)
}

func (o *outputs) close() error {
	var firstErr error
	if o.opsLog != nil {
		if err := o.opsLog.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		o.opsLog = nil
	}
	if o.predLog != nil {
		if err := o.predLog.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		o.predLog = nil
	}
	return firstErr
}
