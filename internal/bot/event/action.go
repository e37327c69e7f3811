package event

import (
	"strconv"
	"strings"

	platformerrors "github.com/louisbranch/bazaar.chat/internal/platform/errors"
)

// Action is a button token parsed into a closed tagged variant. Parsing
// happens once at the router boundary; handlers never see raw tokens.
type Action interface {
	// ActionKind is the registry key a handler binds to.
	ActionKind() string

	isAction()
}

// Action token grammar. Tokens with a target carry it after a colon.
const (
	tokenView            = "view"
	tokenAdd             = "add"
	tokenProducts        = "products"
	tokenCart            = "cart"
	tokenClearCart       = "clear_cart"
	tokenContacts        = "contacts"
	tokenCheckoutStart   = "checkout:start"
	tokenCheckoutConfirm = "checkout:confirm"
	tokenCheckoutCancel  = "checkout:cancel"
	tokenIntakeStart     = "intake:start"
	tokenIntakeCancel    = "intake:cancel"
)

// ViewProduct opens one product's detail view.
type ViewProduct struct{ ProductID int64 }

// ActionKind implements Action.
func (ViewProduct) ActionKind() string { return tokenView }
func (ViewProduct) isAction()          {}

// AddProduct adds one unit of a product to the cart.
type AddProduct struct{ ProductID int64 }

// ActionKind implements Action.
func (AddProduct) ActionKind() string { return tokenAdd }
func (AddProduct) isAction()          {}

// ShowProducts lists the catalog.
type ShowProducts struct{}

// ActionKind implements Action.
func (ShowProducts) ActionKind() string { return tokenProducts }
func (ShowProducts) isAction()          {}

// ShowCart shows the cart with its recomputed total.
type ShowCart struct{}

// ActionKind implements Action.
func (ShowCart) ActionKind() string { return tokenCart }
func (ShowCart) isAction()          {}

// ClearCart empties the cart.
type ClearCart struct{}

// ActionKind implements Action.
func (ClearCart) ActionKind() string { return tokenClearCart }
func (ClearCart) isAction()          {}

// ShowContacts shows the store contact card.
type ShowContacts struct{}

// ActionKind implements Action.
func (ShowContacts) ActionKind() string { return tokenContacts }
func (ShowContacts) isAction()          {}

// StartCheckout enters the checkout workflow.
type StartCheckout struct{}

// ActionKind implements Action.
func (StartCheckout) ActionKind() string { return tokenCheckoutStart }
func (StartCheckout) isAction()          {}

// ConfirmCheckout confirms the snapshotted order.
type ConfirmCheckout struct{}

// ActionKind implements Action.
func (ConfirmCheckout) ActionKind() string { return tokenCheckoutConfirm }
func (ConfirmCheckout) isAction()          {}

// CancelCheckout abandons checkout, leaving the cart untouched.
type CancelCheckout struct{}

// ActionKind implements Action.
func (CancelCheckout) ActionKind() string { return tokenCheckoutCancel }
func (CancelCheckout) isAction()          {}

// StartIntake enters the admin product-intake workflow.
type StartIntake struct{}

// ActionKind implements Action.
func (StartIntake) ActionKind() string { return tokenIntakeStart }
func (StartIntake) isAction()          {}

// CancelIntake abandons product intake.
type CancelIntake struct{}

// ActionKind implements Action.
func (CancelIntake) ActionKind() string { return tokenIntakeCancel }
func (CancelIntake) isAction()          {}

// ParseAction parses an opaque button token into a typed action. Unknown or
// malformed tokens yield an ACTION_MALFORMED error, never a panic.
func ParseAction(token string) (Action, error) {
	trimmed := strings.TrimSpace(token)
	switch trimmed {
	case tokenProducts:
		return ShowProducts{}, nil
	case tokenCart:
		return ShowCart{}, nil
	case tokenClearCart:
		return ClearCart{}, nil
	case tokenContacts:
		return ShowContacts{}, nil
	case tokenCheckoutStart:
		return StartCheckout{}, nil
	case tokenCheckoutConfirm:
		return ConfirmCheckout{}, nil
	case tokenCheckoutCancel:
		return CancelCheckout{}, nil
	case tokenIntakeStart:
		return StartIntake{}, nil
	case tokenIntakeCancel:
		return CancelIntake{}, nil
	}

	kind, target, found := strings.Cut(trimmed, ":")
	if !found {
		return nil, malformed(token)
	}
	switch kind {
	case tokenView, tokenAdd:
		productID, err := strconv.ParseInt(target, 10, 64)
		if err != nil || productID <= 0 {
			return nil, malformed(token)
		}
		if kind == tokenView {
			return ViewProduct{ProductID: productID}, nil
		}
		return AddProduct{ProductID: productID}, nil
	}
	return nil, malformed(token)
}

// FormatAction renders the token for a typed action, the inverse of
// ParseAction. Keyboard builders use it so tokens never drift from the
// grammar.
func FormatAction(action Action) string {
	switch a := action.(type) {
	case ViewProduct:
		return tokenView + ":" + strconv.FormatInt(a.ProductID, 10)
	case AddProduct:
		return tokenAdd + ":" + strconv.FormatInt(a.ProductID, 10)
	default:
		return action.ActionKind()
	}
}

func malformed(token string) error {
	return platformerrors.WithMetadata(
		platformerrors.CodeActionMalformed,
		"unknown action token",
		map[string]string{"token": token},
	)
}
