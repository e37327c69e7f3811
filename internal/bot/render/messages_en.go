package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "bot.welcome", "🏪 Welcome to the electronics store!\nPick an action:")
	message.SetString(lang, "bot.help", "ℹ️ Help:\n/products — catalog\n/cart — your cart\n/order — checkout\n/contacts — contacts\n/cancel — abandon the current step")
	message.SetString(lang, "bot.menu.products", "📦 Products")
	message.SetString(lang, "bot.menu.cart", "🛒 Cart")
	message.SetString(lang, "bot.menu.contacts", "📞 Contacts")
	message.SetString(lang, "bot.contacts", "📞 Our contacts:\n\nPhone: +7 999 083-51-98\nAddress: Khabarovsk, Pankova st., 15\nOpen: 10:00 - 20:00")
	message.SetString(lang, "bot.unrecognized", "I did not understand that. Use /help to see the commands.")
	message.SetString(lang, "bot.session_expired", "⌛ The previous step timed out and was cancelled.")

	message.SetString(lang, "catalog.header", "🏪 Product catalog:\nPick a product:")
	message.SetString(lang, "catalog.empty", "The catalog is empty for now.")
	message.SetString(lang, "catalog.detail", "%s\n\n%s\n\n💰 Price: %s")
	message.SetString(lang, "catalog.add_to_cart", "✅ Add to cart")
	message.SetString(lang, "catalog.back", "🔙 Back")

	message.SetString(lang, "cart.header", "🛒 Your cart:")
	message.SetString(lang, "cart.empty", "🛒 Your cart is empty")
	message.SetString(lang, "cart.line", "%s × %d = %s")
	message.SetString(lang, "cart.total", "💰 Total: %s")
	message.SetString(lang, "cart.added", "%s added to cart!")
	message.SetString(lang, "cart.cleared", "🗑 Cart cleared")
	message.SetString(lang, "cart.checkout", "✅ Checkout")
	message.SetString(lang, "cart.clear", "🗑 Clear cart")

	message.SetString(lang, "checkout.phone_prompt", "📱 Enter your contact phone number:")
	message.SetString(lang, "checkout.address_prompt", "🏠 Enter the delivery address:")
	message.SetString(lang, "checkout.summary_header", "📋 Your order:")
	message.SetString(lang, "checkout.summary_contact", "📱 Phone: %s\n🏠 Address: %s")
	message.SetString(lang, "checkout.confirm", "✅ Confirm order")
	message.SetString(lang, "checkout.cancel", "❌ Cancel")
	message.SetString(lang, "checkout.confirmed", "✅ Order %s confirmed!\n💰 Total: %s\nWe will contact you shortly.")
	message.SetString(lang, "checkout.cancelled", "❌ Checkout cancelled. Your cart is untouched.")

	message.SetString(lang, "intake.name_prompt", "➕ Adding a new product\n\nEnter the product name:")
	message.SetString(lang, "intake.description_prompt", "✅ Name saved!\n\nNow enter the product description:")
	message.SetString(lang, "intake.price_prompt", "✅ Description saved!\n\nNow enter the price (whole number only):")
	message.SetString(lang, "intake.price_invalid", "❌ Invalid price format!\nEnter a positive whole number, e.g. 79900.")
	message.SetString(lang, "intake.created", "✅ Product added!\n\n🆔 ID: %d\n📦 Name: %s\n📝 Description: %s\n💰 Price: %s\n\nIt is now visible in the catalog.")
	message.SetString(lang, "intake.add_another", "➕ Add another product")
	message.SetString(lang, "intake.cancelled", "❌ Product intake cancelled.")

	message.SetString(lang, "admin.header", "🛠️ Store admin panel\n\nPick an action:")
	message.SetString(lang, "admin.add_product", "➕ Add product")
}
