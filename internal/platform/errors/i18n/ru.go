package i18n

func init() {
	RegisterCatalog("ru", NewCatalog("ru", map[Code]string{
		CodeUnknown:             "Что-то пошло не так. Попробуйте ещё раз.",
		CodeProductNotFound:     "Товар не найден.",
		CodeProductNameEmpty:    "Название товара не может быть пустым.",
		CodePriceInvalid:        "Неверный формат цены. Введите целое положительное число, например 79900.",
		CodeCartEmpty:           "Ваша корзина пуста. Добавьте товары перед оформлением заказа.",
		CodeWorkflowStepInvalid: "Этот ответ не подходит для текущего шага.",
		CodeActionMalformed:     "Это действие больше недоступно.",
		CodeUnauthorized:        "У вас нет доступа к админ-панели.",
		CodeRenderUnavailable:   "Доставка сообщений временно недоступна.",
		CodeNotFound:            "Запись не найдена.",
	}))
}
