package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApiErrUnwrapsToSentinel(t *testing.T) {
	err := NewGenerationInFlightError("abc")
	require.True(t, errors.Is(err, ErrGenerationInFlight))
	require.True(t, IsGenerationInFlightError(err))
	require.Equal(t, http.StatusConflict, err.StatusCode)
}

func TestOracleErrorsCarryStatusCodes(t *testing.T) {
	require.Equal(t, http.StatusBadGateway, NewOracleTransportError(500).StatusCode)
	require.Equal(t, http.StatusBadGateway, NewOracleRemoteError("boom").StatusCode)
	require.Equal(t, http.StatusServiceUnavailable, NewOracleUnavailableError(errors.New("refused")).StatusCode)
	require.Equal(t, http.StatusBadRequest, NewNothingToExportError().StatusCode)
}

func TestGetFullErrorChainsCauses(t *testing.T) {
	inner := NewOracleUnavailableError(errors.New("connection refused"))
	outer := &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrOracleTransport,
		Cause:      inner,
	}

	full := outer.GetFullError()
	require.Contains(t, full, ErrOracleTransport.Error())
	require.Contains(t, full, ErrOracleUnavailable.Error())
	require.Contains(t, full, "connection refused")
}

func TestErrorIncludesDetails(t *testing.T) {
	err := NewAccessDeniedError("project")
	require.Contains(t, err.Error(), "access denied")
	require.Contains(t, err.Error(), "You do not have access to this project")
}

func TestDatabaseErrorClassification(t *testing.T) {
	dup := NewDatabaseError("insert", "project", errors.New(`duplicate key value violates unique constraint`))
	require.Equal(t, http.StatusConflict, dup.StatusCode)

	missing := NewDatabaseError("select", "project", errors.New("record not found"))
	require.Equal(t, http.StatusNotFound, missing.StatusCode)

	down := NewDatabaseError("select", "project", errors.New("connection refused"))
	require.Equal(t, http.StatusServiceUnavailable, down.StatusCode)

	generic := NewDatabaseError("select", "project", errors.New("syntax error"))
	require.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	require.True(t, errors.Is(generic, ErrDatabaseQuery))
}
