package provision

import "errors"

// Kind classifies how a provisioning run ended.
type Kind int

const (
	KindSuccess Kind = iota
	KindAuth
	KindPrecondition
	KindCancelled
	KindTransport
	KindTimeout
	KindExtraction
	KindInstall
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAuth:
		return "auth"
	case KindPrecondition:
		return "precondition"
	case KindCancelled:
		return "cancelled"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindExtraction:
		return "extraction"
	case KindInstall:
		return "install"
	default:
		return "unknown"
	}
}

// Result is the outcome of Workflow.Run. Err is set for every kind except
// KindSuccess.
type Result struct {
	Kind Kind
	Err  error

	// Populated as far as the run got.
	Project     string
	Destination string
	Selection   *Selection
	ArchiveSize int64
	Installed   bool
	DryRun      bool

	// Reported is set once the failure has been shown to the user.
	Reported bool
}

// OK reports whether the run succeeded.
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	switch r.Kind {
	case KindSuccess:
		return 0
	case KindCancelled:
		return 130
	default:
		return 1
	}
}

// kindError tags an error with the result kind it should produce.
type kindError struct {
	kind     Kind
	err      error
	reported bool
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

func withKind(kind Kind, err error) error {
	return &kindError{kind: kind, err: err}
}

// reportedKind is withKind for failures whose message is already on screen.
func reportedKind(kind Kind, err error) error {
	return &kindError{kind: kind, err: err, reported: true}
}

func isReported(err error) bool {
	var ke *kindError
	return errors.As(err, &ke) && ke.reported
}

// classify picks the result kind for an error returned by a stage.
// Cancellation wins over any tag so an aborted prompt or interrupted
// download is never reported as a failure of the stage it interrupted.
// Untagged errors come from prompts that could not run at all, such as a
// missing terminal.
func classify(err error) Kind {
	if errors.Is(err, ErrCancelled) {
		return KindCancelled
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindPrecondition
}
