package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// Duplicated as strings to avoid an import cycle.
const (
	CodeUnknown             = "UNKNOWN"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeProductNameEmpty    = "PRODUCT_NAME_EMPTY"
	CodePriceInvalid        = "PRICE_INVALID"
	CodeCartEmpty           = "CART_EMPTY"
	CodeWorkflowStepInvalid = "WORKFLOW_STEP_INVALID"
	CodeActionMalformed     = "ACTION_MALFORMED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeRenderUnavailable   = "RENDER_UNAVAILABLE"
	CodeNotFound            = "NOT_FOUND"
)

func init() {
	RegisterCatalog("en", NewCatalog("en", map[Code]string{
		CodeUnknown:             "Something went wrong. Please try again.",
		CodeProductNotFound:     "Product not found.",
		CodeProductNameEmpty:    "The product name cannot be empty.",
		CodePriceInvalid:        "Invalid price. Enter a positive whole number, e.g. 79900.",
		CodeCartEmpty:           "Your cart is empty. Add products before checking out.",
		CodeWorkflowStepInvalid: "That reply does not fit the current step.",
		CodeActionMalformed:     "This action is no longer available.",
		CodeUnauthorized:        "You do not have access to the admin panel.",
		CodeRenderUnavailable:   "Message delivery is temporarily unavailable.",
		CodeNotFound:            "Record not found.",
	}))
}
