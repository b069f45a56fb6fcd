package assessment

import "testing"

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	if got := len(cat.Themes); got != 8 {
		t.Fatalf("got %d themes, want 8", got)
	}
	if got := len(cat.CrossCutting); got != 6 {
		t.Fatalf("got %d cross-cutting themes, want 6", got)
	}

	seen := make(map[string]bool)
	for _, th := range cat.Themes {
		if th.Code == "" || th.Name == "" {
			t.Errorf("theme %+v missing code or name", th)
		}
		if seen[th.Code] {
			t.Errorf("duplicate theme code %s", th.Code)
		}
		seen[th.Code] = true

		if len(th.SubThemes) == 0 {
			t.Errorf("theme %s has no sub-themes", th.Code)
		}
		for _, st := range th.SubThemes {
			if seen[st.Code] {
				t.Errorf("duplicate sub-theme code %s", st.Code)
			}
			seen[st.Code] = true
		}

		// every core theme must have recommendation content
		if _, ok := themeRecTemplates[th.Code]; !ok {
			t.Errorf("theme %s has no recommendation template", th.Code)
		}
	}
	for _, ct := range cat.CrossCutting {
		if seen[ct.Code] {
			t.Errorf("duplicate cross-cutting code %s", ct.Code)
		}
		seen[ct.Code] = true
	}
}

func TestCatalogTheme(t *testing.T) {
	cat := DefaultCatalog()
	if th, ok := cat.Theme("2"); !ok || th.Name != "ICT Infrastructure" {
		t.Errorf("Theme(2) = %+v, %v", th, ok)
	}
	if _, ok := cat.Theme("42"); ok {
		t.Error("Theme(42) found, want miss")
	}
}
