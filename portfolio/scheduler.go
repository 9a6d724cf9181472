// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package portfolio implements the process-wall concurrency named in
// spec §5 ("a portfolio runner may spawn multiple processes, each with
// a private copy of the core"): a bounded worker pool running one
// saturation.Loop per job, a compact wire protocol for the case where a
// worker is a separate process, and a Prometheus exporter over the
// core's public event surface. Scheduler is grounded on gini's ax.T
// (_examples/go-air-gini/ax/ax.go): a request/response exchange
// (Ex/TryEx) over a bounded pool, adapted from a growable pool of
// cloned solvers to a fixed-size pool of goroutines, since each Job
// already carries its own private Loop rather than needing the
// scheduler to clone one from a prototype.
package portfolio

import "github.com/irifrance/saturn/saturation"

// Job is one unit of work submitted to a Scheduler: a fully constructed
// Loop (built by the caller, over its own private Arena/Environment/
// containers, per §5's "single-threaded and cooperative" requirement)
// tagged with an ID the caller can use to correlate the eventual
// Response.
type Job struct {
	ID   string
	Loop *saturation.Loop
}

// Response is the outcome of running a Job's Loop to completion.
type Response struct {
	ID    string
	Stats *saturation.Statistics
	Err   error
}

// Scheduler runs Jobs across a bounded pool of goroutines, mirroring
// ax.T's Ex/TryEx exchange shape: submitting a Job and receiving a
// Response are two branches of the same operation, so a caller pumping
// jobs through Ex never has to poll a separate result channel.
type Scheduler struct {
	jobs     chan *Job
	results  chan *Response
	fromPool chan *Response
	done     chan struct{}
}

// NewScheduler starts a Scheduler with cap concurrently running Jobs.
// NewScheduler panics if cap < 1, matching ax.NewT's own guard.
func NewScheduler(cap int) *Scheduler {
	if cap < 1 {
		panic("portfolio: scheduler capacity must be >= 1")
	}
	s := &Scheduler{
		jobs:     make(chan *Job),
		results:  make(chan *Response),
		fromPool: make(chan *Response, cap),
		done:     make(chan struct{}),
	}
	go s.serve(cap)
	return s
}

func (s *Scheduler) serve(cap int) {
	sem := make(chan struct{}, cap)
	inflight := 0
	jobs := s.jobs
	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				jobs = nil
				if inflight == 0 {
					close(s.done)
					return
				}
				continue
			}
			sem <- struct{}{}
			inflight++
			go func(job *Job) {
				defer func() { <-sem }()
				stats, err := job.Loop.Run()
				s.fromPool <- &Response{ID: job.ID, Stats: stats, Err: err}
			}(job)
		case resp := <-s.fromPool:
			inflight--
			s.results <- resp
			if jobs == nil && inflight == 0 {
				close(s.done)
				return
			}
		}
	}
}

// Ex blocks until an exchange occurs: either job is accepted for
// running (resp is nil), or a previously completed Job's Response is
// returned. As with ax.T.Ex, passing a nil job blocks until a Response
// is ready without submitting anything.
func (s *Scheduler) Ex(job *Job) (resp *Response) {
	if job == nil {
		return <-s.results
	}
	select {
	case s.jobs <- job:
		return nil
	case resp := <-s.results:
		return resp
	}
}

// TryEx is Ex's non-blocking counterpart: ok is false if neither
// submitting job nor receiving a Response was immediately possible.
func (s *Scheduler) TryEx(job *Job) (resp *Response, ok bool) {
	if job == nil {
		select {
		case resp := <-s.results:
			return resp, true
		default:
			return nil, false
		}
	}
	select {
	case s.jobs <- job:
		return nil, true
	case resp := <-s.results:
		return resp, true
	default:
		return nil, false
	}
}

// Stop closes the Scheduler to new Jobs. In-flight Jobs still run to
// completion; their Responses remain retrievable via Ex(nil)/TryEx(nil)
// until Wait returns.
func (s *Scheduler) Stop() { close(s.jobs) }

// Wait blocks until every submitted Job has completed and Stop has been
// called.
func (s *Scheduler) Wait() { <-s.done }
