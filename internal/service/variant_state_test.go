package service

import "testing"

func buildColorSizeState() VariantState {
	state := NewVariantState()
	state = ReduceVariant(state, VariantAction{Type: VariantActionAddOption, Name: "Color", Values: []string{"Red", "Blue"}})
	state = ReduceVariant(state, VariantAction{Type: VariantActionSetOptionValues, Name: "Color", Values: []string{"Red", "Blue"}})
	state = ReduceVariant(state, VariantAction{Type: VariantActionAddOption, Name: "Size", Values: []string{"S", "M"}})
	return state
}

func TestReduceVariant_AddAndSetOptions(t *testing.T) {
	state := buildColorSizeState()
	if len(state.Definitions) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(state.Definitions))
	}
	if combos := state.Combinations(); len(combos) != 4 {
		t.Fatalf("expected 4 combinations, got %d", len(combos))
	}

	// 重复添加同名属性不改变状态
	dup := ReduceVariant(state, VariantAction{Type: VariantActionAddOption, Name: "Color"})
	if len(dup.Definitions) != 2 {
		t.Fatalf("expected duplicate add to be ignored, got %d definitions", len(dup.Definitions))
	}
}

func TestReduceVariant_ExcludeIncludeRoundTrip(t *testing.T) {
	state := buildColorSizeState()
	key := state.Combinations()[0].Key

	state = ReduceVariant(state, VariantAction{Type: VariantActionExclude, Key: key})
	state = ReduceVariant(state, VariantAction{Type: VariantActionExclude, Key: key})
	if active := state.ActiveCombinations(); len(active) != 3 {
		t.Fatalf("expected 3 active combinations after exclusion, got %d", len(active))
	}

	state = ReduceVariant(state, VariantAction{Type: VariantActionInclude, Key: key})
	if active := state.ActiveCombinations(); len(active) != 4 {
		t.Fatalf("expected 4 active combinations after include, got %d", len(active))
	}
}

func TestReduceVariant_DefinitionChangeClearsExclusions(t *testing.T) {
	state := buildColorSizeState()
	key := state.Combinations()[0].Key
	state = ReduceVariant(state, VariantAction{Type: VariantActionExclude, Key: key})

	state = ReduceVariant(state, VariantAction{Type: VariantActionSetOptionValues, Name: "Size", Values: []string{"S", "M", "L"}})
	if len(state.Excluded) != 0 {
		t.Fatalf("expected exclusions cleared after definition change, got %d", len(state.Excluded))
	}
	if active := state.ActiveCombinations(); len(active) != 6 {
		t.Fatalf("expected 6 active combinations in new space, got %d", len(active))
	}
}

func TestReduceVariant_MaterializeAndRemoveVariant(t *testing.T) {
	state := buildColorSizeState()
	state = ReduceVariant(state, VariantAction{Type: VariantActionMaterialize})
	if len(state.Records) != 4 {
		t.Fatalf("expected 4 materialized records, got %d", len(state.Records))
	}

	state.Records[0].Stock = 7
	state = ReduceVariant(state, VariantAction{Type: VariantActionMaterialize})
	if state.Records[0].Stock != 7 {
		t.Fatalf("expected re-materialize to merge entered stock, got %d", state.Records[0].Stock)
	}

	state = ReduceVariant(state, VariantAction{Type: VariantActionRemoveVariant, Code: "D001"})
	if len(state.Records) != 3 {
		t.Fatalf("expected 3 records after removal, got %d", len(state.Records))
	}
}

func TestReduceVariant_RemoveOptionPrunesRecords(t *testing.T) {
	state := buildColorSizeState()
	state = ReduceVariant(state, VariantAction{Type: VariantActionMaterialize})

	state = ReduceVariant(state, VariantAction{Type: VariantActionRemoveOption, Name: "Size"})
	if len(state.Records) != 0 {
		t.Fatalf("expected two-attribute records dropped after removing Size, got %d", len(state.Records))
	}
	if combos := state.Combinations(); len(combos) != 2 {
		t.Fatalf("expected 2 combinations over Color alone, got %d", len(combos))
	}

	state = ReduceVariant(state, VariantAction{Type: VariantActionRemoveOption, Name: "Color"})
	if combos := state.Combinations(); len(combos) != 0 {
		t.Fatalf("expected empty combination space, got %d", len(combos))
	}
	if len(state.Records) != 0 {
		t.Fatalf("expected materialized set cleared with zero definitions")
	}
}

func TestReduceVariant_ResetAndPurity(t *testing.T) {
	state := buildColorSizeState()
	before := len(state.Definitions)

	next := ReduceVariant(state, VariantAction{Type: VariantActionReset})
	if len(next.Definitions) != 0 || len(next.Records) != 0 || len(next.Excluded) != 0 {
		t.Fatalf("expected reset to return empty session")
	}
	if len(state.Definitions) != before {
		t.Fatalf("expected input state to remain untouched")
	}
}
