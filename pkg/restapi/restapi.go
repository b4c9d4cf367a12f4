package restapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/account"
)

const (
	// ParameterAddress is used to identify an address.
	ParameterAddress = "address"

	// ParameterProposalID is used to identify a proposal.
	ParameterProposalID = "proposalID"

	// ParameterKey is used to identify a ledger entry.
	ParameterKey = "key"

	// QueryParameterDryRun is used to evaluate an invocation without committing it.
	QueryParameterDryRun = "dryRun"
)

var (
	// ErrInvalidParameter defines the invalid parameter error.
	ErrInvalidParameter = echo.NewHTTPError(http.StatusBadRequest, "invalid parameter")

	// ErrNotFound defines the not found error.
	ErrNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

	// ErrForbidden defines the forbidden error.
	ErrForbidden = echo.NewHTTPError(http.StatusForbidden, "forbidden")
)

// JSONResponse sends the JSON response with status code.
func JSONResponse(c echo.Context, statusCode int, result interface{}) error {
	return c.JSON(statusCode, result)
}

// HTTPErrorResponse defines the error struct for the HTTPErrorResponseEnvelope.
type HTTPErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPErrorResponseEnvelope defines the error response schema for node API responses.
type HTTPErrorResponseEnvelope struct {
	Error HTTPErrorResponse `json:"error"`
}

// ErrorHandler renders errors as HTTPErrorResponseEnvelope.
// onError is called for every failed request if given.
func ErrorHandler(onError ...func(err error, c echo.Context)) func(error, echo.Context) {
	return func(err error, c echo.Context) {

		for _, f := range onError {
			f(err, c)
		}

		var statusCode int
		var message string

		var e *echo.HTTPError
		if errors.As(err, &e) {
			statusCode = e.Code
			message = fmt.Sprintf("%s, error: %s", e.Message, err)
		} else {
			statusCode = http.StatusInternalServerError
			message = fmt.Sprintf("internal server error. error: %s", err)
		}

		_ = c.JSON(statusCode, HTTPErrorResponseEnvelope{Error: HTTPErrorResponse{Code: strconv.Itoa(statusCode), Message: message}})
	}
}

func ParseAddressParam(c echo.Context) (account.Address, error) {
	addressParam := strings.TrimSpace(c.Param(ParameterAddress))

	address, err := account.ParseAddress(addressParam)
	if err != nil {
		return account.Address{}, errors.WithMessagef(ErrInvalidParameter, "invalid address: %s, error: %s", addressParam, err)
	}
	return address, nil
}

func ParseProposalIDParam(c echo.Context) (int64, error) {
	proposalIDParam := strings.TrimSpace(c.Param(ParameterProposalID))
	if proposalIDParam == "" {
		return 0, errors.WithMessagef(ErrInvalidParameter, "parameter \"%s\" not specified", ParameterProposalID)
	}

	proposalID, err := strconv.ParseInt(proposalIDParam, 10, 64)
	if err != nil {
		return 0, errors.WithMessagef(ErrInvalidParameter, "invalid proposal ID: %s, error: %s", proposalIDParam, err)
	}
	return proposalID, nil
}

func ParseKeyParam(c echo.Context) (string, error) {
	key := c.Param(ParameterKey)
	if key == "" {
		return "", errors.WithMessagef(ErrInvalidParameter, "parameter \"%s\" not specified", ParameterKey)
	}
	return key, nil
}

func ParseBoolQueryParam(c echo.Context, paramName string) (bool, error) {
	param := c.QueryParam(paramName)
	if param == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(param)
	if err != nil {
		return false, errors.WithMessagef(ErrInvalidParameter, "invalid value for query parameter %s: %s, error: %s", paramName, param, err)
	}
	return value, nil
}
