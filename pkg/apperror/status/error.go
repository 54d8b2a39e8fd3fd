package status

import "errors"

// ErrorCode is a numeric code to classify pipeline errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   1000-1999: Document normalization
//   2000-2999: Context assembly
//   3000-3999: Model calls
//   4000-4999: Quiz engine

const (
	DocumentBase ErrorCode = 1000
	ContextBase  ErrorCode = 2000
	ModelBase    ErrorCode = 3000
	QuizBase     ErrorCode = 4000
)

// Document normalization errors
const (
	UnsupportedFormat ErrorCode = DocumentBase + iota // 1000
	EncodingFailed                                    // 1001
	InvalidStructure                                  // 1002
	EmptyDocument                                     // 1003
)

// Context assembly errors
const (
	EmptyContext ErrorCode = ContextBase + iota // 2000
)

// Model call errors. The wrapped error names the originating task so partial
// failures can be attributed.
const (
	ModelTimeout   ErrorCode = ModelBase + iota // 3000
	ModelQuota                                  // 3001
	ModelMalformed                              // 3002
)

// Quiz engine errors
const (
	QuizParseFailed ErrorCode = QuizBase + iota // 4000
)

const Internal ErrorCode = 9000

// CodedError represents an error with an associated ErrorCode
type CodedError interface {
	error
	ErrorCode() ErrorCode
}

type codedError struct {
	code ErrorCode
	err  error
}

func (e codedError) Error() string        { return e.err.Error() }
func (e codedError) Unwrap() error        { return e.err }
func (e codedError) ErrorCode() ErrorCode { return e.code }

// New creates a new CodedError with the given code and underlying error
func New(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return codedError{code: code, err: err}
}

// Code extracts the ErrorCode from err's chain, or Internal when none is set
func Code(err error) ErrorCode {
	var ce CodedError
	if errors.As(err, &ce) {
		return ce.ErrorCode()
	}
	return Internal
}

// Is reports whether err carries the given code anywhere in its chain
func Is(err error, code ErrorCode) bool {
	var ce CodedError
	return errors.As(err, &ce) && ce.ErrorCode() == code
}

// Recoverable reports whether a caller may retry the failed operation.
// Structural failures (bad input, unparsable documents) are terminal.
func Recoverable(code ErrorCode) bool {
	switch code {
	case ModelTimeout, ModelQuota:
		return true
	default:
		return false
	}
}
