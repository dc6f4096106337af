package service

import (
	"testing"

	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/models"
)

func standardEntries() []models.LeadTimeEntry {
	return []models.LeadTimeEntry{
		{QuantityRange: "0-1", StartQty: 0, EndQty: 1, LeadTime: 3, LeadTimeUnit: "days"},
		{QuantityRange: "2-5", StartQty: 2, EndQty: 5, LeadTime: 5, LeadTimeUnit: "days"},
		{QuantityRange: "6-9", StartQty: 6, EndQty: 9, LeadTime: 7, LeadTimeUnit: "days"},
		{QuantityRange: "10+", StartQty: 10, EndQty: 10, LeadTime: 1, LeadTimeUnit: "month"},
	}
}

func reverseEntries(entries []models.LeadTimeEntry) []models.LeadTimeEntry {
	reversed := make([]models.LeadTimeEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	return reversed
}

func TestRangeBoundsLookup(t *testing.T) {
	cases := []struct {
		quantityRange string
		start, end    int
	}{
		{"0-1", 0, 1},
		{"2-5", 2, 5},
		{"6-9", 6, 9},
		{"10+", 10, 10},
	}
	for _, tc := range cases {
		start, end, ok := RangeBounds(tc.quantityRange)
		if !ok {
			t.Fatalf("expected bounds for %q", tc.quantityRange)
		}
		if start != tc.start || end != tc.end {
			t.Fatalf("range %q: expected (%d,%d), got (%d,%d)", tc.quantityRange, tc.start, tc.end, start, end)
		}
		if got := RangeForBounds(tc.start, tc.end); got != tc.quantityRange {
			t.Fatalf("bounds (%d,%d): expected %q, got %q", tc.start, tc.end, tc.quantityRange, got)
		}
	}

	if _, _, ok := RangeBounds("3-7"); ok {
		t.Fatalf("expected no bounds for free-form range")
	}
	if got := RangeForBounds(3, 7); got != constants.QuantityRangeOther {
		t.Fatalf("expected other for unknown bounds, got %q", got)
	}
}

func TestEntriesEqual_PermutationInsensitive(t *testing.T) {
	a := standardEntries()
	b := reverseEntries(a)

	if !EntriesEqual(a, b) {
		t.Fatalf("expected permuted entry sets to compare equal")
	}

	// 任一字段差异即不相等
	c := standardEntries()
	c[1].LeadTimeUnit = "month"
	if EntriesEqual(a, c) {
		t.Fatalf("expected unit difference to break equality")
	}

	d := standardEntries()
	d[0].LeadTime = 4
	if EntriesEqual(a, d) {
		t.Fatalf("expected duration difference to break equality")
	}

	if EntriesEqual(a, a[:3]) {
		t.Fatalf("expected length difference to break equality")
	}
}

func TestFindMatchByData_IgnoresName(t *testing.T) {
	templates := []models.LeadTimeTemplate{
		{ID: 1, Name: "Slow", Entries: func() []models.LeadTimeEntry {
			entries := standardEntries()
			entries[0].LeadTime = 30
			return entries
		}()},
		{ID: 2, Name: "Standard", Entries: standardEntries()},
	}

	match := FindMatchByData(reverseEntries(standardEntries()), templates)
	if match == nil || match.ID != 2 {
		t.Fatalf("expected match on template 2, got %v", match)
	}

	if FindMatchByData(nil, templates) != nil {
		t.Fatalf("expected no match for empty entry set")
	}
}

func TestFindMatchByNameAndData(t *testing.T) {
	templates := []models.LeadTimeTemplate{
		{ID: 2, Name: "Standard", Entries: standardEntries()},
	}

	if m := FindMatchByNameAndData(standardEntries(), "  standard ", templates); m == nil {
		t.Fatalf("expected trimmed case-insensitive name match")
	}
	if m := FindMatchByNameAndData(standardEntries(), "Express", templates); m != nil {
		t.Fatalf("expected no match for different name")
	}
	changed := standardEntries()
	changed[0].LeadTime = 9
	if m := FindMatchByNameAndData(changed, "Standard", templates); m != nil {
		t.Fatalf("expected no match when data diverges")
	}
}

func TestMissingRequiredRanges(t *testing.T) {
	missing := MissingRequiredRanges(standardEntries()[:3])
	if len(missing) != 1 || missing[0] != "10+" {
		t.Fatalf("expected 10+ reported missing, got %v", missing)
	}
	if missing := MissingRequiredRanges(standardEntries()); len(missing) != 0 {
		t.Fatalf("expected no missing ranges, got %v", missing)
	}
}

func TestReconcile_StateTransitions(t *testing.T) {
	templates := []models.LeadTimeTemplate{
		{ID: 7, Name: "Standard", Entries: standardEntries()},
	}

	state := ReconciliationState{}
	if phase := state.Phase(nil); phase != LeadTimePhaseEmpty {
		t.Fatalf("expected empty phase, got %q", phase)
	}

	// 手工录入与模板一致的数据 → 静默激活
	entries := standardEntries()
	state = Reconcile(entries, templates, state)
	if state.ActiveTemplateID == nil || *state.ActiveTemplateID != 7 {
		t.Fatalf("expected template 7 activated, got %v", state.ActiveTemplateID)
	}
	if phase := state.Phase(entries); phase != LeadTimePhaseTemplateActive {
		t.Fatalf("expected template_active phase, got %q", phase)
	}

	// 数据偏离 → 激活指针清除，进入 dirty
	entries[0].LeadTime = 99
	state = Reconcile(entries, templates, state)
	if state.ActiveTemplateID != nil {
		t.Fatalf("expected active template cleared after divergence")
	}
	if phase := state.Phase(entries); phase != LeadTimePhaseDirty {
		t.Fatalf("expected dirty phase, got %q", phase)
	}

	// 改回原值 → 重新激活
	entries[0].LeadTime = 3
	state = Reconcile(entries, templates, state)
	if state.ActiveTemplateID == nil || *state.ActiveTemplateID != 7 {
		t.Fatalf("expected template reactivated after revert")
	}

	// 清空条目 → 回到 empty
	state = Reconcile(nil, templates, state)
	if phase := state.Phase(nil); phase != LeadTimePhaseEmpty {
		t.Fatalf("expected empty phase after clearing entries, got %q", phase)
	}
}

func TestReconcile_ConfirmedBadgeLifecycle(t *testing.T) {
	templates := []models.LeadTimeTemplate{
		{ID: 3, Name: "Express", Entries: standardEntries()},
		{ID: 4, Name: "Bulk", Entries: func() []models.LeadTimeEntry {
			entries := standardEntries()
			entries[3].LeadTime = 2
			return entries
		}()},
	}

	// 载入非激活模板需要显式确认
	state := ReconciliationState{}
	state = ApplyTemplate(state, templates[0])
	if state.PendingTemplateID == nil || *state.PendingTemplateID != 3 {
		t.Fatalf("expected pending template 3, got %v", state.PendingTemplateID)
	}
	if state.ConfirmedTemplateName != "" {
		t.Fatalf("expected no badge before confirmation")
	}

	state = ConfirmTemplate(state, templates)
	if state.ConfirmedTemplateName != "Express" {
		t.Fatalf("expected badge Express after confirm, got %q", state.ConfirmedTemplateName)
	}
	if state.PendingTemplateID != nil {
		t.Fatalf("expected pending cleared after confirm")
	}

	// 对已激活模板再次应用跳过确认
	state = ApplyTemplate(state, templates[0])
	if state.PendingTemplateID != nil {
		t.Fatalf("expected no pending when re-applying the active template")
	}
	if state.ConfirmedTemplateName != "Express" {
		t.Fatalf("expected badge kept for active template")
	}

	// 数据偏离后徽标清除
	diverged := standardEntries()
	diverged[0].LeadTime = 42
	state = Reconcile(diverged, templates, state)
	if state.ConfirmedTemplateName != "" {
		t.Fatalf("expected badge cleared after data divergence, got %q", state.ConfirmedTemplateName)
	}
}

func TestHasDataChanged_StructuralDirtyFlag(t *testing.T) {
	entries := standardEntries()
	snapshot := &LeadTimeSnapshot{Name: "Express", Entries: standardEntries()}

	if HasDataChanged("Express", entries, snapshot) {
		t.Fatalf("expected no change right after save")
	}
	if !HasDataChanged("Express", entries, nil) {
		t.Fatalf("expected change with absent snapshot")
	}

	entries[2].LeadTime = 8
	if !HasDataChanged("Express", entries, snapshot) {
		t.Fatalf("expected change after editing a duration")
	}

	entries[2].LeadTime = 7
	if HasDataChanged("Express", entries, snapshot) {
		t.Fatalf("expected flag to flip back after reverting the edit")
	}

	if !HasDataChanged("Standard", entries, snapshot) {
		t.Fatalf("expected name difference to mark change")
	}
}
