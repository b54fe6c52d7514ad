package main

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"sort"

	"gamestats/domain/core"
	"gamestats/internal/config"
	"gamestats/internal/container"
	"gamestats/internal/dataset"
	apperrors "gamestats/internal/errors"
)

type globalOptions struct {
	dataset string
	envFile string
	events  bool
	metrics bool
}

// session is one CLI invocation: the wired container and the cached
// pipeline result of the configured dataset.
type session struct {
	*container.Container
	config *config.Config
	result *dataset.Result
	opts   *globalOptions
}

func openSession(opts *globalOptions) (*session, error) {
	cfg, err := config.LoadFrom(opts.envFile)
	if err != nil {
		return nil, err
	}
	if opts.dataset != "" {
		cfg.Dataset.Path = opts.dataset
	}

	c, err := container.New(cfg)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to initialize")
	}
	result, err := c.Load()
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.WithCode(apperrors.CodeNotFound, err)
		}
		return nil, apperrors.Wrapf(err, "failed to prepare %s", cfg.Dataset.Path)
	}

	s := &session{Container: c, config: cfg, result: result, opts: opts}
	if opts.events {
		for _, e := range result.Events {
			fmt.Printf("• %s\n", e)
		}
		fmt.Println()
	}
	return s, nil
}

// close prints the gathered metrics when asked to.
func (s *session) close() {
	if !s.opts.metrics {
		return
	}
	families, err := s.Registry.Gather()
	if err != nil {
		s.Logger.Warn("[CLI] gathering metrics failed: %v", err)
		return
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	fmt.Printf("\n⏱  METRICS\n")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf("{%s=%s}", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Printf("%s%s count=%d sum=%.3fs\n", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

func isNoData(err error) bool {
	return core.IsNoDataError(err)
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch apperrors.GetCode(err) {
	case apperrors.CodeNoData:
		return fmt.Sprintf("no data for this selection: %v", err)
	case apperrors.CodeDatasetInvalid:
		return fmt.Sprintf("dataset does not match the expected schema: %v", err)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
