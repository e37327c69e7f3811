// Package render builds localized outbound copy and keyboards for the shop
// conversation. Handlers pick the template; transports deliver the result.
package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	cartdomain "github.com/louisbranch/bazaar.chat/internal/cart/domain"
	catalogdomain "github.com/louisbranch/bazaar.chat/internal/catalog/domain"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	ordersdomain "github.com/louisbranch/bazaar.chat/internal/orders/domain"
)

// Localizer is the minimal message-printer contract required by the renderer.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// NewLocalizer returns a printer for the locale, falling back to English
// when the tag does not parse.
func NewLocalizer(locale string) Localizer {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func price(value int64) string {
	return strconv.FormatInt(value, 10) + "₽"
}

// Welcome is the /start greeting with the main menu keyboard.
func Welcome(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("bot.welcome"), MainMenu(loc)
}

// Help describes the available commands.
func Help(loc Localizer) string {
	return loc.Sprintf("bot.help")
}

// MainMenu is the persistent top-level keyboard.
func MainMenu(loc Localizer) []event.Button {
	return []event.Button{
		{Label: loc.Sprintf("bot.menu.products"), ActionID: event.FormatAction(event.ShowProducts{})},
		{Label: loc.Sprintf("bot.menu.cart"), ActionID: event.FormatAction(event.ShowCart{})},
		{Label: loc.Sprintf("bot.menu.contacts"), ActionID: event.FormatAction(event.ShowContacts{})},
	}
}

// CatalogList renders the product listing with one button per product.
func CatalogList(loc Localizer, products []catalogdomain.Product) (string, []event.Button) {
	if len(products) == 0 {
		return loc.Sprintf("catalog.empty"), MainMenu(loc)
	}
	buttons := make([]event.Button, 0, len(products)+1)
	for _, product := range products {
		buttons = append(buttons, event.Button{
			Label:    product.Name + " - " + price(product.Price),
			ActionID: event.FormatAction(event.ViewProduct{ProductID: product.ID}),
		})
	}
	buttons = append(buttons, event.Button{
		Label:    loc.Sprintf("bot.menu.cart"),
		ActionID: event.FormatAction(event.ShowCart{}),
	})
	return loc.Sprintf("catalog.header"), buttons
}

// ProductDetail renders one product view with add/back buttons.
func ProductDetail(loc Localizer, product catalogdomain.Product) (string, []event.Button) {
	text := loc.Sprintf("catalog.detail", product.Name, product.Description, price(product.Price))
	buttons := []event.Button{
		{Label: loc.Sprintf("catalog.add_to_cart"), ActionID: event.FormatAction(event.AddProduct{ProductID: product.ID})},
		{Label: loc.Sprintf("catalog.back"), ActionID: event.FormatAction(event.ShowProducts{})},
	}
	return text, buttons
}

// AddedToCart acknowledges a successful add.
func AddedToCart(loc Localizer, productName string) string {
	return loc.Sprintf("cart.added", productName)
}

// CartView renders the cart lines with the recomputed total, or the empty
// cart notice.
func CartView(loc Localizer, lines []cartdomain.PricedLine, total int64) (string, []event.Button) {
	if len(lines) == 0 {
		return loc.Sprintf("cart.empty"), MainMenu(loc)
	}

	var b strings.Builder
	b.WriteString(loc.Sprintf("cart.header"))
	b.WriteString("\n\n")
	for _, line := range lines {
		b.WriteString(loc.Sprintf("cart.line", line.Name, line.Quantity, price(line.Subtotal)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(loc.Sprintf("cart.total", price(total)))

	buttons := []event.Button{
		{Label: loc.Sprintf("cart.checkout"), ActionID: event.FormatAction(event.StartCheckout{})},
		{Label: loc.Sprintf("cart.clear"), ActionID: event.FormatAction(event.ClearCart{})},
	}
	return b.String(), buttons
}

// CartCleared confirms an emptied cart.
func CartCleared(loc Localizer) string {
	return loc.Sprintf("cart.cleared")
}

// PhonePrompt opens checkout.
func PhonePrompt(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("checkout.phone_prompt"), cancelCheckoutButtons(loc)
}

// AddressPrompt follows the phone step.
func AddressPrompt(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("checkout.address_prompt"), cancelCheckoutButtons(loc)
}

// ConfirmationSummary renders the frozen order snapshot with confirm and
// cancel buttons.
func ConfirmationSummary(loc Localizer, snapshot conversationdomain.OrderSnapshot, phone, address string) (string, []event.Button) {
	var b strings.Builder
	b.WriteString(loc.Sprintf("checkout.summary_header"))
	b.WriteString("\n\n")
	for _, item := range snapshot.Items {
		b.WriteString(loc.Sprintf("cart.line", item.Name, item.Quantity, price(item.UnitPrice*item.Quantity)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(loc.Sprintf("cart.total", price(snapshot.Total)))
	b.WriteString("\n")
	b.WriteString(loc.Sprintf("checkout.summary_contact", phone, address))

	buttons := []event.Button{
		{Label: loc.Sprintf("checkout.confirm"), ActionID: event.FormatAction(event.ConfirmCheckout{})},
		{Label: loc.Sprintf("checkout.cancel"), ActionID: event.FormatAction(event.CancelCheckout{})},
	}
	return b.String(), buttons
}

// OrderConfirmed closes checkout with the recorded order.
func OrderConfirmed(loc Localizer, order ordersdomain.Order) (string, []event.Button) {
	return loc.Sprintf("checkout.confirmed", order.ID, price(order.Total)), MainMenu(loc)
}

// CheckoutCancelled acknowledges an abandoned checkout.
func CheckoutCancelled(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("checkout.cancelled"), MainMenu(loc)
}

// NamePrompt opens product intake.
func NamePrompt(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("intake.name_prompt"), cancelIntakeButtons(loc)
}

// DescriptionPrompt follows the name step.
func DescriptionPrompt(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("intake.description_prompt"), cancelIntakeButtons(loc)
}

// PricePrompt follows the description step.
func PricePrompt(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("intake.price_prompt"), cancelIntakeButtons(loc)
}

// PriceInvalid re-prompts the price step after a failed parse.
func PriceInvalid(loc Localizer) string {
	return loc.Sprintf("intake.price_invalid")
}

// ProductCreated closes intake with the new catalog entry.
func ProductCreated(loc Localizer, product catalogdomain.Product) (string, []event.Button) {
	text := loc.Sprintf("intake.created",
		product.ID, product.Name, product.Description, price(product.Price))
	buttons := []event.Button{
		{Label: loc.Sprintf("intake.add_another"), ActionID: event.FormatAction(event.StartIntake{})},
		{Label: loc.Sprintf("bot.menu.products"), ActionID: event.FormatAction(event.ShowProducts{})},
	}
	return text, buttons
}

// IntakeCancelled acknowledges an abandoned intake.
func IntakeCancelled(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("intake.cancelled"), MainMenu(loc)
}

// AdminMenu is the admin panel entry.
func AdminMenu(loc Localizer) (string, []event.Button) {
	return loc.Sprintf("admin.header"), []event.Button{
		{Label: loc.Sprintf("admin.add_product"), ActionID: event.FormatAction(event.StartIntake{})},
	}
}

// Contacts is the store contact card.
func Contacts(loc Localizer) string {
	return loc.Sprintf("bot.contacts")
}

// Unrecognized is the fallback for input the router cannot route.
func Unrecognized(loc Localizer) string {
	return loc.Sprintf("bot.unrecognized")
}

// SessionExpired notifies a user their stalled workflow was auto-cancelled.
func SessionExpired(loc Localizer) string {
	return loc.Sprintf("bot.session_expired")
}

func cancelCheckoutButtons(loc Localizer) []event.Button {
	return []event.Button{
		{Label: loc.Sprintf("checkout.cancel"), ActionID: event.FormatAction(event.CancelCheckout{})},
	}
}

func cancelIntakeButtons(loc Localizer) []event.Button {
	return []event.Button{
		{Label: loc.Sprintf("checkout.cancel"), ActionID: event.FormatAction(event.CancelIntake{})},
	}
}
