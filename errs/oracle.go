package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Oracle (text-generation endpoint) errors. The oracle is an opaque
// prompt->text service; callers that parse its output as JSON handle the
// malformed-response case themselves and apply their own fallback.
var (
	ErrOracleTransport         = errors.New("oracle returned bad HTTP status")
	ErrOracleRemote            = errors.New("oracle reported failure")
	ErrOracleUnavailable       = errors.New("oracle unreachable")
	ErrOracleMalformedResponse = errors.New("oracle response is not valid JSON")
)

// Export errors
var (
	ErrNothingToExport = errors.New("nothing to export")
)

// NewOracleTransportError reports a non-2xx status from the oracle endpoint.
func NewOracleTransportError(statusCode int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrOracleTransport,
		Details:    fmt.Sprintf("Oracle endpoint returned HTTP %d", statusCode),
	}
}

// NewOracleRemoteError reports a well-formed response body whose success flag
// is false; remoteMessage is the server-provided error text.
func NewOracleRemoteError(remoteMessage string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrOracleRemote,
		Details:    remoteMessage,
	}
}

// NewOracleUnavailableError reports a network-level failure reaching the oracle.
func NewOracleUnavailableError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrOracleUnavailable,
		Details:    "Failed to communicate with the generation service",
		Cause:      cause,
	}
}

// NewOracleMalformedResponseError reports oracle output that could not be
// parsed as JSON by the call site that required it.
func NewOracleMalformedResponseError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrOracleMalformedResponse,
		Details:    "Generation service returned unparseable output",
		Cause:      cause,
	}
}

// NewNothingToExportError reports an archive request against an empty tree.
func NewNothingToExportError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrNothingToExport,
		Details:    "Project has no files to export",
	}
}

func IsOracleTransportError(err error) bool {
	return errors.Is(err, ErrOracleTransport)
}

func IsOracleRemoteError(err error) bool {
	return errors.Is(err, ErrOracleRemote)
}

func IsOracleUnavailableError(err error) bool {
	return errors.Is(err, ErrOracleUnavailable)
}

func IsOracleMalformedResponseError(err error) bool {
	return errors.Is(err, ErrOracleMalformedResponse)
}

func IsNothingToExportError(err error) bool {
	return errors.Is(err, ErrNothingToExport)
}
