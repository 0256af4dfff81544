package extract

import (
	"testing"

	"github.com/ordlabs/ordscan/internal/model"
	"github.com/ordlabs/ordscan/internal/ord"
)

func reactionWith(key string, comps ...ord.Compound) *ord.Reaction {
	return &ord.Reaction{
		ID:     "ord-test",
		Inputs: map[string]ord.Input{key: {Components: comps}},
	}
}

func categoriesOf(evs []Evidence) map[model.Category]int {
	got := make(map[model.Category]int)
	for _, ev := range evs {
		got[ev.Category]++
	}
	return got
}

func TestExtractRecord_SlotCategoryClaimsEverything(t *testing.T) {
	rxn := reactionWith("base", ord.Compound{
		Role: "REAGENT",
		Identifiers: []ord.Identifier{
			{Type: "SMILES", Value: "O"},      // would never match Base by keyword
			{Type: "NAME", Value: "pyridine"}, // ditto
		},
	})

	evs := ExtractRecord(rxn)
	if len(evs) != 2 {
		t.Fatalf("expected 2 evidence items, got %d: %v", len(evs), evs)
	}
	for _, ev := range evs {
		if ev.Category != model.CategoryBase {
			t.Errorf("expected Base, got %s", ev.Category)
		}
		if ev.Item.InputKey != "base" || ev.Item.ReactionID != "ord-test" {
			t.Errorf("evidence item not tagged with slot and reaction: %+v", ev.Item)
		}
		if ev.Item.ReactionRole != "REAGENT" {
			t.Errorf("expected REAGENT role on item, got %q", ev.Item.ReactionRole)
		}
	}
}

func TestExtractRecord_StructuralSlotKey(t *testing.T) {
	rxn := reactionWith("m1_m2", ord.Compound{
		Role:        "CATALYST",
		Identifiers: []ord.Identifier{{Type: "SMILES", Value: "whatever"}},
	})

	evs := ExtractRecord(rxn)
	if len(evs) != 1 {
		t.Fatalf("expected 1 evidence item, got %d", len(evs))
	}
	if evs[0].Category != model.Category("m1_m2") {
		t.Errorf("expected structural category m1_m2, got %s", evs[0].Category)
	}
}

func TestExtractRecord_ReagentUnion(t *testing.T) {
	// Property: a reagent matching both the base and amine families emits
	// evidence under both categories.
	rxn := reactionWith("unmapped slot", ord.Compound{
		Role:        "REAGENT",
		Identifiers: []ord.Identifier{{Type: "NAME", Value: "triethylamine"}},
	})

	got := categoriesOf(ExtractRecord(rxn))
	if got[model.CategoryBase] != 1 || got[model.CategoryAmine] != 1 {
		t.Errorf("expected evidence under both Base and amine, got %v", got)
	}
}

func TestExtractRecord_SolventUnconditional(t *testing.T) {
	rxn := reactionWith("quench", ord.Compound{
		Role:        "SOLVENT",
		Identifiers: []ord.Identifier{{Type: "NAME", Value: "anything at all"}},
	})

	got := categoriesOf(ExtractRecord(rxn))
	if got[model.CategorySolvent] != 1 {
		t.Errorf("expected Solvent evidence regardless of value, got %v", got)
	}
}

func TestExtractRecord_CatalystMetalAndLigand(t *testing.T) {
	rxn := reactionWith("cat mix", ord.Compound{
		Role:        "CATALYST",
		Identifiers: []ord.Identifier{{Type: "NAME", Value: "palladium xphos"}},
	})

	got := categoriesOf(ExtractRecord(rxn))
	if got[model.CategoryMetal] != 1 || got[model.CategoryLigand] != 1 {
		t.Errorf("expected Metal and Ligand evidence, got %v", got)
	}
}

func TestExtractRecord_OtherRolesEmitNothing(t *testing.T) {
	rxn := reactionWith("unmapped slot", ord.Compound{
		Role:        "PRODUCT",
		Identifiers: []ord.Identifier{{Type: "NAME", Value: "triethylamine"}},
	})

	if evs := ExtractRecord(rxn); len(evs) != 0 {
		t.Errorf("expected no evidence for PRODUCT role, got %v", evs)
	}
}

func TestExtractRecord_Nil(t *testing.T) {
	if evs := ExtractRecord(nil); evs != nil {
		t.Errorf("expected nil for nil reaction, got %v", evs)
	}
}
