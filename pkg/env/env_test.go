package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("KITCHENBOARD_TEST_VALUE", "  console ")
	if got := Get("KITCHENBOARD_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	t.Setenv("KITCHENBOARD_TEST_VALUE", "   ")
	if got := Get("KITCHENBOARD_TEST_VALUE", "json"); got != "json" {
		t.Fatalf("blank value should fall back, got %q", got)
	}
	if got := Get("KITCHENBOARD_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("unset value should fall back, got %q", got)
	}
}
