package service

import (
	"reflect"
	"testing"

	"github.com/sellerdesk/internal/models"
)

func colorSizeDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Size", Values: []string{"S", "M", "L"}},
	}
}

func TestGenerateCombinations_CartesianCompleteness(t *testing.T) {
	combos := GenerateCombinations(colorSizeDefinitions())
	if len(combos) != 6 {
		t.Fatalf("expected 6 combinations, got %d", len(combos))
	}

	seen := make(map[string]struct{}, len(combos))
	for _, combo := range combos {
		if len(combo.Parts) != 2 {
			t.Fatalf("expected 2 parts, got %d for %q", len(combo.Parts), combo.Key)
		}
		if _, dup := seen[combo.Key]; dup {
			t.Fatalf("duplicate combination key %q", combo.Key)
		}
		seen[combo.Key] = struct{}{}
	}

	expectedFirst := "Red x S"
	if combos[0].Key != expectedFirst {
		t.Fatalf("expected first key %q, got %q", expectedFirst, combos[0].Key)
	}
	expectedLast := "Blue x L"
	if combos[5].Key != expectedLast {
		t.Fatalf("expected last key %q, got %q", expectedLast, combos[5].Key)
	}
}

func TestGenerateCombinations_Deterministic(t *testing.T) {
	first := GenerateCombinations(colorSizeDefinitions())
	second := GenerateCombinations(colorSizeDefinitions())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical combination order across calls")
	}
}

func TestGenerateCombinations_EmptyAndInvalidDefinitions(t *testing.T) {
	if combos := GenerateCombinations(nil); len(combos) != 0 {
		t.Fatalf("expected empty result for nil definitions, got %d", len(combos))
	}

	onlyEmpty := []OptionDefinition{{Name: "Color", Values: []string{" ", ""}}}
	if combos := GenerateCombinations(onlyEmpty); len(combos) != 0 {
		t.Fatalf("expected empty result when all values are blank, got %d", len(combos))
	}

	mixed := []OptionDefinition{
		{Name: "Color", Values: []string{"Red"}},
		{Name: "Size", Values: nil},
	}
	combos := GenerateCombinations(mixed)
	if len(combos) != 1 {
		t.Fatalf("expected 1 combination after filtering empty definition, got %d", len(combos))
	}
	if combos[0].Key != "Red" {
		t.Fatalf("expected key %q, got %q", "Red", combos[0].Key)
	}
}

func TestCountCombinations_CeilingShortCircuit(t *testing.T) {
	defs := []OptionDefinition{
		{Name: "A", Values: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
		{Name: "B", Values: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
		{Name: "C", Values: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
	}
	if count := CountCombinations(defs, 0); count != 1000 {
		t.Fatalf("expected 1000 without limit, got %d", count)
	}
	if count := CountCombinations(defs, 100); count != 101 {
		t.Fatalf("expected limit+1 short circuit, got %d", count)
	}
}

func TestFilterExcluded_Idempotence(t *testing.T) {
	combos := GenerateCombinations(colorSizeDefinitions())
	excluded := map[string]struct{}{}

	key := combos[0].Key
	excluded[key] = struct{}{}
	excluded[key] = struct{}{} // 再次排除等价于一次

	active := FilterExcluded(combos, excluded)
	if len(active) != 5 {
		t.Fatalf("expected 5 active combinations, got %d", len(active))
	}
	for _, combo := range active {
		if combo.Key == key {
			t.Fatalf("excluded key %q still active", key)
		}
	}

	delete(excluded, key)
	restored := FilterExcluded(combos, excluded)
	if len(restored) != 6 {
		t.Fatalf("expected 6 combinations after include, got %d", len(restored))
	}
}

func TestMaterializeVariants_AssignsPositionStableCodes(t *testing.T) {
	defs := colorSizeDefinitions()
	combos := GenerateCombinations(defs)
	records := MaterializeVariants(defs, combos, nil)

	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}
	if records[0].VariantCode != "D001" {
		t.Fatalf("expected first code D001, got %q", records[0].VariantCode)
	}
	if records[5].VariantCode != "D006" {
		t.Fatalf("expected last code D006, got %q", records[5].VariantCode)
	}
	if got := records[0].Attributes["Color"]; got != "Red" {
		t.Fatalf("expected Color=Red, got %v", got)
	}
	if got := records[0].Attributes["Size"]; got != "S" {
		t.Fatalf("expected Size=S, got %v", got)
	}
	if records[0].Stock != 0 {
		t.Fatalf("expected zeroed stock, got %d", records[0].Stock)
	}
}

func TestMaterializeVariants_MergePreservesEnteredValues(t *testing.T) {
	defs := colorSizeDefinitions()
	combos := GenerateCombinations(defs)
	records := MaterializeVariants(defs, combos, nil)

	records[0].Stock = 12
	records[0].Media = models.StringArray{"https://cdn.example.com/red-s.jpg"}
	records[0].Weight = 1.5
	records[0].WeightUnit = "kg"

	remade := MaterializeVariants(defs, combos, records)
	if remade[0].Stock != 12 {
		t.Fatalf("expected merged stock 12, got %d", remade[0].Stock)
	}
	if len(remade[0].Media) != 1 {
		t.Fatalf("expected merged media preserved, got %v", remade[0].Media)
	}
	if remade[0].Weight != 1.5 || remade[0].WeightUnit != "kg" {
		t.Fatalf("expected merged physical attributes preserved")
	}
	if remade[1].Stock != 0 {
		t.Fatalf("expected untouched record to stay zeroed, got %d", remade[1].Stock)
	}
}

func TestPruneInvalidVariants_DefinitionRemovalFailsClosed(t *testing.T) {
	defs := colorSizeDefinitions()
	combos := GenerateCombinations(defs)
	records := MaterializeVariants(defs, combos, nil)

	colorOnly := []OptionDefinition{{Name: "Color", Values: []string{"Red", "Blue"}}}
	pruned := PruneInvalidVariants(records, colorOnly)
	if len(pruned) != 0 {
		t.Fatalf("expected all two-attribute records dropped after removing Size, got %d", len(pruned))
	}

	if remaining := PruneInvalidVariants(records, nil); len(remaining) != 0 {
		t.Fatalf("expected empty set with zero definitions, got %d", len(remaining))
	}
}

func TestPruneInvalidVariants_NarrowedValueListDropsRecord(t *testing.T) {
	defs := colorSizeDefinitions()
	combos := GenerateCombinations(defs)
	records := MaterializeVariants(defs, combos, nil)

	narrowed := []OptionDefinition{
		{Name: "Color", Values: []string{"Red"}},
		{Name: "Size", Values: []string{"S", "M", "L"}},
	}
	pruned := PruneInvalidVariants(records, narrowed)
	if len(pruned) != 3 {
		t.Fatalf("expected 3 surviving records for Color=Red, got %d", len(pruned))
	}
	for _, record := range pruned {
		if record.Attributes["Color"] != "Red" {
			t.Fatalf("expected only Red records to survive, got %v", record.Attributes)
		}
	}
}

func TestDefinitionSignature_ChangesOnAnyEdit(t *testing.T) {
	base := DefinitionSignature(colorSizeDefinitions())

	reordered := []OptionDefinition{
		{Name: "Size", Values: []string{"S", "M", "L"}},
		{Name: "Color", Values: []string{"Red", "Blue"}},
	}
	if DefinitionSignature(reordered) == base {
		t.Fatalf("expected signature to change when definition order changes")
	}

	edited := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Green"}},
		{Name: "Size", Values: []string{"S", "M", "L"}},
	}
	if DefinitionSignature(edited) == base {
		t.Fatalf("expected signature to change when a value changes")
	}

	withEmpty := append(colorSizeDefinitions(), OptionDefinition{Name: "Material", Values: nil})
	if DefinitionSignature(withEmpty) != base {
		t.Fatalf("expected empty-valued definition to not affect the signature")
	}
}
