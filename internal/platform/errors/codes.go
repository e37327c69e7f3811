// Package errors provides structured error handling with localized user copy.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog errors
	CodeProductNotFound  Code = "PRODUCT_NOT_FOUND"
	CodeProductNameEmpty Code = "PRODUCT_NAME_EMPTY"
	CodePriceInvalid     Code = "PRICE_INVALID"

	// Cart errors
	CodeCartEmpty Code = "CART_EMPTY"

	// Conversation errors
	CodeWorkflowStepInvalid Code = "WORKFLOW_STEP_INVALID"
	CodeActionMalformed     Code = "ACTION_MALFORMED"

	// Authorization errors
	CodeUnauthorized Code = "UNAUTHORIZED"

	// Delivery errors
	CodeRenderUnavailable Code = "RENDER_UNAVAILABLE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodePriceInvalid,
		CodeProductNameEmpty,
		CodeActionMalformed:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow the operation
	case CodeCartEmpty,
		CodeWorkflowStepInvalid:
		return codes.FailedPrecondition

	// NotFound - missing records
	case CodeProductNotFound,
		CodeNotFound:
		return codes.NotFound

	// PermissionDenied - caller lacks access
	case CodeUnauthorized:
		return codes.PermissionDenied

	// Unavailable - collaborator outage
	case CodeRenderUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}
