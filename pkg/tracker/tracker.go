// Package tracker runs sensor packages through the training calculator and
// reports the result of each one.
package tracker

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/ftracker/pkg/training"
)

// User-facing report lines.
const (
	MsgInvalidParams = "Параметры переданы неправильно!"
	MsgSensorFault   = "Датчики не исправны!"
	MsgNoPackages    = "Параметры фитнесс-трекера не переданы!"
)

// Package is a single reading sent by the fitness tracker.
type Package struct {
	Type   string    `json:"type"`
	Params []float64 `json:"params"`
}

// DemoPackages are the reference readings run by "ftracker demo".
var DemoPackages = []Package{
	{Type: "SWM", Params: []float64{720, 1, 80, 25, 40}},
	{Type: "RUN", Params: []float64{15000, 1, 75}},
	{Type: "WLK", Params: []float64{9000, 1, 75, 180}},
}

// ParsePackage parses the TYPE:p1,p2,... notation used on the command line.
func ParsePackage(s string) (Package, error) {
	code, rawParams, ok := strings.Cut(s, ":")
	if !ok || code == "" {
		return Package{}, fmt.Errorf("invalid package %q, expected TYPE:p1,p2,...", s)
	}

	p := Package{Type: strings.TrimSpace(code)}
	for _, raw := range strings.Split(rawParams, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Package{}, pkgerrors.Wrapf(err, "invalid param %q in package %q", raw, s)
		}
		p.Params = append(p.Params, v)
	}

	return p, nil
}

// Runner processes packages one by one and writes a line for each.
type Runner struct {
	out      io.Writer
	color    bool
	observer Observer
}

// Observer is notified of the outcome of every processed package.
type Observer func(p Package, info training.InfoMessage, err error)

type Option func(*Runner)

// WithColor highlights error lines in red.
func WithColor(enabled bool) Option {
	return func(r *Runner) {
		r.color = enabled
	}
}

// WithObserver registers o to be called after each package is processed.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		r.observer = o
	}
}

func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process computes the training info message of a single package.
func (r *Runner) Process(p Package) (training.InfoMessage, error) {
	info, err := r.process(p)
	if r.observer != nil {
		r.observer(p, info, err)
	}
	return info, err
}

func (r *Runner) process(p Package) (training.InfoMessage, error) {
	t, err := training.ReadPackage(p.Type, p.Params)
	if err != nil {
		return training.InfoMessage{}, err
	}
	return training.ShowTrainingInfo(t)
}

// Run processes packages in order. A failed package is reported in place of
// its message and does not stop the run.
func (r *Runner) Run(packages []Package) error {
	if len(packages) == 0 {
		return r.printError(MsgNoPackages)
	}

	for _, p := range packages {
		info, err := r.Process(p)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"type":   p.Type,
				"params": p.Params,
				"error":  err,
			}).Debug("failed to process package")

			if err := r.printError(ErrorMessage(err)); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintln(r.out, info.Message()); err != nil {
			return pkgerrors.Wrap(err, "failed to write training info")
		}
	}

	return nil
}

// ErrorMessage maps a processing error to the line reported to the user.
func ErrorMessage(err error) string {
	if errors.Is(err, training.ErrSensorFault) {
		return MsgSensorFault
	}
	return MsgInvalidParams
}

func (r *Runner) printError(msg string) error {
	if r.color {
		msg = color.RedString("%s", msg)
	}
	if _, err := fmt.Fprintln(r.out, msg); err != nil {
		return pkgerrors.Wrap(err, "failed to write report")
	}
	return nil
}
