package i18n

import "testing"

func TestGetCatalogFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	cat := GetCatalog("fr")
	if cat == nil {
		t.Fatal("expected base catalog")
	}
	if cat.Locale() != BaseLocale {
		t.Fatalf("locale = %q, want %q", cat.Locale(), BaseLocale)
	}
}

func TestGetCatalogNormalizesRegionalLocales(t *testing.T) {
	t.Parallel()

	for _, locale := range []string{"ru", "ru-RU", "ru_RU", "RU"} {
		cat := GetCatalog(locale)
		if cat.Locale() != "ru" {
			t.Fatalf("GetCatalog(%q).Locale() = %q, want ru", locale, cat.Locale())
		}
	}
}

func TestFormatTemplatesMetadata(t *testing.T) {
	t.Parallel()

	cat := NewCatalog("en", map[Code]string{
		"PRODUCT_NOT_FOUND": "Product {{.product_id}} not found.",
	})

	got := cat.Format("PRODUCT_NOT_FOUND", map[string]string{"product_id": "7"})
	if got != "Product 7 not found." {
		t.Fatalf("formatted = %q", got)
	}
}

func TestFormatUnknownCodeReturnsCode(t *testing.T) {
	t.Parallel()

	cat := GetCatalog("en")
	if got := cat.Format("NO_SUCH_CODE", nil); got != "NO_SUCH_CODE" {
		t.Fatalf("formatted = %q", got)
	}
}
