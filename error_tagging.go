package memopool

import (
	"errors"
	"fmt"
)

// TaskMetaError exposes correlation metadata for a task failure.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() (string, bool)
	Fingerprint() (string, bool)
}

type taskTaggedError struct {
	err error
	id  string
	fp  string
}

func newTaskTaggedError(err error, id, fp string) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, id: id, fp: fp}
}

func (e *taskTaggedError) Error() string { return e.err.Error() }
func (e *taskTaggedError) Unwrap() error { return e.err }

func (e *taskTaggedError) TaskID() (string, bool) {
	if e.id == "" {
		return "", false
	}
	return e.id, true
}

func (e *taskTaggedError) Fingerprint() (string, bool) {
	if e.fp == "" {
		return "", false
	}
	return e.fp, true
}

func (e *taskTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(id=%s,fingerprint=%s): %+v", e.id, e.fp, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the task identity from err if present.
func ExtractTaskID(err error) (string, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID()
	}
	return "", false
}

// ExtractFingerprint returns the cache fingerprint from err if present.
func ExtractFingerprint(err error) (string, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.Fingerprint()
	}
	return "", false
}
