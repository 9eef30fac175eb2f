package labelcache

import "testing"

func TestFormatTimeLogicalDecimalCachesOnSecondCall(t *testing.T) {
	m := NewManager()
	profile := TimeProfile{Kind: LogicalDecimalProfile, Precision: 2, Locale: "en-US"}
	first, err := m.FormatTime(12.3456, profile, 1, 0, false, false)
	if err != nil {
		t.Fatalf("FormatTime() error = %v", err)
	}
	if first != "12.35" {
		t.Fatalf("FormatTime() = %q, want %q", first, "12.35")
	}
	second, err := m.FormatTime(12.3456, profile, 1, 0, false, false)
	if err != nil {
		t.Fatalf("FormatTime() error = %v", err)
	}
	if second != first {
		t.Fatalf("FormatTime() second call = %q, want %q", second, first)
	}
	stats := m.TimeStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("TimeStats() = %+v, want 1 hit and 1 miss", stats)
	}
}

func TestFormatTimeLocaleSwapsDecimalSeparator(t *testing.T) {
	m := NewManager()
	enProfile := TimeProfile{Kind: LogicalDecimalProfile, Precision: 2, Locale: "en-US"}
	esProfile := TimeProfile{Kind: LogicalDecimalProfile, Precision: 2, Locale: "es-ES"}
	en, err := m.FormatTime(12.3, enProfile, 1, 0, false, false)
	if err != nil {
		t.Fatalf("FormatTime() error = %v", err)
	}
	es, err := m.FormatTime(12.3, esProfile, 1, 0, false, false)
	if err != nil {
		t.Fatalf("FormatTime() error = %v", err)
	}
	if en == es {
		t.Fatalf("en/es formatted the same: %q == %q, want different separators", en, es)
	}
}

func TestFormatTimeUtcAdaptiveGranularity(t *testing.T) {
	m := NewManager()
	profile := TimeProfile{Kind: UtcProfile, Timezone: "UTC"}
	tight, err := m.FormatTime(0, profile, 0, 500, false, false)
	if err != nil {
		t.Fatalf("FormatTime() error = %v", err)
	}
	wide, err := m.FormatTime(0, profile, 0, 1e7, false, false)
	if err != nil {
		t.Fatalf("FormatTime() error = %v", err)
	}
	if tight == wide {
		t.Fatalf("tight/wide span formatted the same: %q == %q", tight, wide)
	}
}

func TestFormatTimeCustomFormatterInvalidatesOnGenerationBump(t *testing.T) {
	m := NewManager()
	m.SetCustomTimeFormatter(func(v float64) (string, bool) { return "v1", true })
	profile := TimeProfile{Kind: CustomTimeProfile, Generation: 1}
	first, _ := m.FormatTime(5, profile, 0, 0, false, false)
	if first != "v1" {
		t.Fatalf("FormatTime() = %q, want %q", first, "v1")
	}

	m.SetCustomTimeFormatter(func(v float64) (string, bool) { return "v2", true })
	stale, _ := m.FormatTime(5, profile, 0, 0, false, false)
	if stale != "v1" {
		t.Fatalf("FormatTime() with unchanged generation = %q, want cached %q", stale, "v1")
	}

	profile.Generation = 2
	fresh, _ := m.FormatTime(5, profile, 0, 0, false, false)
	if fresh != "v2" {
		t.Fatalf("FormatTime() after generation bump = %q, want %q", fresh, "v2")
	}
}

func TestFormatPriceBuiltInPolicyPrecision(t *testing.T) {
	m := NewManager()
	profile := PriceProfile{Kind: BuiltInPriceProfile, Locale: "en-US", PolicyProfile: "integer"}
	text, err := m.FormatPrice(123.6, profile, 1, false)
	if err != nil {
		t.Fatalf("FormatPrice() error = %v", err)
	}
	if text != "124" {
		t.Fatalf("FormatPrice() = %q, want %q", text, "124")
	}
}

func TestCacheClearsWholesaleAtCapacity(t *testing.T) {
	c := NewCache[int](2)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c") // triggers wholesale clear before insert
	if _, ok := c.Get(1); ok {
		t.Fatalf("entry 1 survived wholesale clear, want evicted")
	}
	if v, ok := c.Get(3); !ok || v != "c" {
		t.Fatalf("Get(3) = (%q, %v), want (\"c\", true)", v, ok)
	}
}
