// Package view holds the presentation helpers shared by the web pages and the CLI:
// the per-operation request state, short-code extraction and display formatting.
package view

import "context"

// Kind tags the lifecycle stage of one operation.
type Kind int

const (
	Idle Kind = iota
	Loading
	Success
	Failure
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "error"
	default:
		return "unknown"
	}
}

// State is the state of one operation. Data is only meaningful in Success,
// Message only in Failure.
type State[T any] struct {
	Kind    Kind
	Data    T
	Message string
}

// NewIdle returns the state of an operation that was never submitted.
func NewIdle[T any]() State[T] { return State[T]{Kind: Idle} }

// NewLoading returns the state of an in-flight operation.
func NewLoading[T any]() State[T] { return State[T]{Kind: Loading} }

// NewSuccess wraps the result of a completed operation.
func NewSuccess[T any](data T) State[T] { return State[T]{Kind: Success, Data: data} }

// NewFailure wraps the user-facing message of a failed operation.
func NewFailure[T any](message string) State[T] { return State[T]{Kind: Failure, Message: message} }

func (s State[T]) IsIdle() bool    { return s.Kind == Idle }
func (s State[T]) IsLoading() bool { return s.Kind == Loading }
func (s State[T]) IsSuccess() bool { return s.Kind == Success }
func (s State[T]) IsFailure() bool { return s.Kind == Failure }

// Observer is notified on every transition of an operation.
type Observer[T any] func(State[T])

// Run drives one submission through Loading to Success or Failure. fn performs the work;
// message maps its error to the static text shown to users. Each call starts from a fresh
// state, so nothing carries over between submissions.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error), message func(error) string, observe Observer[T]) State[T] {
	notify := func(s State[T]) State[T] {
		if observe != nil {
			observe(s)
		}
		return s
	}

	notify(NewLoading[T]())

	data, err := fn(ctx)
	if err != nil {
		return notify(NewFailure[T](message(err)))
	}
	return notify(NewSuccess(data))
}
