package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Russian

	message.SetString(lang, "bot.welcome", "🏪 Добро пожаловать в магазин электроники!\nВыберите действие:")
	message.SetString(lang, "bot.help", "ℹ️ Помощь:\n/products — каталог\n/cart — корзина\n/order — заказ\n/contacts — контакты\n/cancel — отменить текущий шаг")
	message.SetString(lang, "bot.menu.products", "📦 Каталог товаров")
	message.SetString(lang, "bot.menu.cart", "🛒 Корзина")
	message.SetString(lang, "bot.menu.contacts", "📞 Контакты")
	message.SetString(lang, "bot.contacts", "📞 Наши контакты:\n\nТелефон: +7 999 083-51-98\nАдрес: г. Хабаровск, ул. Панькова, 15\nВремя работы: 10:00 - 20:00")
	message.SetString(lang, "bot.unrecognized", "Я не понял сообщение. Используйте /help, чтобы посмотреть команды.")
	message.SetString(lang, "bot.session_expired", "⌛ Предыдущий шаг истёк и был отменён.")

	message.SetString(lang, "catalog.header", "🏪 Каталог товаров:\nВыберите товар:")
	message.SetString(lang, "catalog.empty", "Каталог пока пуст.")
	message.SetString(lang, "catalog.detail", "%s\n\n%s\n\n💰 Цена: %s")
	message.SetString(lang, "catalog.add_to_cart", "✅ Добавить в корзину")
	message.SetString(lang, "catalog.back", "🔙 Назад")

	message.SetString(lang, "cart.header", "🛒 Ваша корзина:")
	message.SetString(lang, "cart.empty", "🛒 Ваша корзина пуста")
	message.SetString(lang, "cart.line", "%s × %d = %s")
	message.SetString(lang, "cart.total", "💰 Итого: %s")
	message.SetString(lang, "cart.added", "%s добавлен в корзину!")
	message.SetString(lang, "cart.cleared", "🗑 Корзина очищена")
	message.SetString(lang, "cart.checkout", "✅ Оформить заказ")
	message.SetString(lang, "cart.clear", "🗑 Очистить корзину")

	message.SetString(lang, "checkout.phone_prompt", "📱 Введите контактный номер телефона:")
	message.SetString(lang, "checkout.address_prompt", "🏠 Введите адрес доставки:")
	message.SetString(lang, "checkout.summary_header", "📋 Ваш заказ:")
	message.SetString(lang, "checkout.summary_contact", "📱 Телефон: %s\n🏠 Адрес: %s")
	message.SetString(lang, "checkout.confirm", "✅ Подтвердить заказ")
	message.SetString(lang, "checkout.cancel", "❌ Отмена")
	message.SetString(lang, "checkout.confirmed", "✅ Заказ %s подтверждён!\n💰 Итого: %s\nМы свяжемся с вами в ближайшее время.")
	message.SetString(lang, "checkout.cancelled", "❌ Оформление отменено. Корзина не изменилась.")

	message.SetString(lang, "intake.name_prompt", "➕ Добавление нового товара\n\nВведите название товара:")
	message.SetString(lang, "intake.description_prompt", "✅ Название сохранено!\n\nТеперь введите описание товара:")
	message.SetString(lang, "intake.price_prompt", "✅ Описание сохранено!\n\nТеперь введите цену товара (только число):")
	message.SetString(lang, "intake.price_invalid", "❌ Неверный формат цены!\nВведите целое положительное число, например 79900.")
	message.SetString(lang, "intake.created", "✅ Товар успешно добавлен!\n\n🆔 ID: %d\n📦 Название: %s\n📝 Описание: %s\n💰 Цена: %s\n\nТеперь он доступен в каталоге.")
	message.SetString(lang, "intake.add_another", "➕ Добавить ещё товар")
	message.SetString(lang, "intake.cancelled", "❌ Добавление товара отменено.")

	message.SetString(lang, "admin.header", "🛠️ Админ-панель магазина\n\nВыберите действие:")
	message.SetString(lang, "admin.add_product", "➕ Добавить товар")
}
