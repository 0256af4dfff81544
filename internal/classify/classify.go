// Package classify assigns chemical identifiers to semantic categories using
// layered heuristics: explicit role labels when available, keyword and
// pattern matching as fallback.
package classify

import (
	"strings"

	"github.com/ordlabs/ordscan/internal/model"
)

// IsBase reports whether the identifier value looks like a base.
func IsBase(value string) bool {
	v := strings.ToLower(value)
	if containsAny(v, baseKeywords) {
		return true
	}
	if alkoxideSaltPattern.MatchString(v) {
		return true
	}
	return basePattern.MatchString(v)
}

// IsAmine reports whether the identifier value looks like an amine.
func IsAmine(value string) bool {
	v := strings.ToLower(value)
	return containsAny(v, amineKeywords) || aminePattern.MatchString(v)
}

// IsArylHalide reports whether the identifier value looks like an aryl
// halide. The halogen pattern also matches many aliphatic halides.
func IsArylHalide(value string) bool {
	v := strings.ToLower(value)
	return containsAny(v, arylHalideKeywords) || halogenPattern.MatchString(v)
}

// IsMetal reports whether the identifier value names a catalytic metal.
func IsMetal(value string) bool {
	return containsAny(strings.ToLower(value), metalKeywords)
}

// IsLigand reports whether the identifier value names a ligand.
func IsLigand(value string) bool {
	return containsAny(strings.ToLower(value), ligandKeywords)
}

// Classify returns the categories an identifier belongs to, given its
// declared role if known. An explicitly typed role (SOLVENT, LIGAND, METAL,
// BASE) short-circuits keyword inference and yields exactly that category.
// Ambiguous roles and the no-role case return the union of every matching
// keyword family; an identifier can land in several categories at once.
func Classify(value string, known model.Role) []model.Category {
	switch known {
	case model.RoleSolvent:
		return []model.Category{model.CategorySolvent}
	case model.RoleLigand:
		return []model.Category{model.CategoryLigand}
	case model.RoleMetal:
		return []model.Category{model.CategoryMetal}
	case model.RoleBase:
		return []model.Category{model.CategoryBase}
	case model.RoleCatalyst:
		var cats []model.Category
		if IsMetal(value) {
			cats = append(cats, model.CategoryMetal)
		}
		if IsLigand(value) {
			cats = append(cats, model.CategoryLigand)
		}
		return cats
	case model.RoleReagent, model.RoleReactant:
		var cats []model.Category
		if IsBase(value) {
			cats = append(cats, model.CategoryBase)
		}
		if IsAmine(value) {
			cats = append(cats, model.CategoryAmine)
		}
		if IsArylHalide(value) {
			cats = append(cats, model.CategoryArylHalide)
		}
		return cats
	case "":
		var cats []model.Category
		if IsBase(value) {
			cats = append(cats, model.CategoryBase)
		}
		if IsAmine(value) {
			cats = append(cats, model.CategoryAmine)
		}
		if IsArylHalide(value) {
			cats = append(cats, model.CategoryArylHalide)
		}
		if IsMetal(value) {
			cats = append(cats, model.CategoryMetal)
		}
		if IsLigand(value) {
			cats = append(cats, model.CategoryLigand)
		}
		return cats
	default:
		return nil
	}
}

// FirstCategory classifies a named entity found in rendered summary text.
// Unlike Classify it returns only the first match, in a fixed priority order
// (Base, amine, Ligand, Metal, aryl halide). The two behaviors are kept
// distinct on purpose: unifying them would change which evidence exists.
func FirstCategory(name, label string) (model.Category, bool) {
	nm := strings.ToLower(name)
	switch strings.ToLower(label) {
	case "solvent":
		return model.CategorySolvent, true
	case "ligand":
		return model.CategoryLigand, true
	case "metal":
		return model.CategoryMetal, true
	case "base":
		return model.CategoryBase, true
	case "reagent", "reactant":
		switch {
		case containsAny(nm, baseKeywords):
			return model.CategoryBase, true
		case containsAny(nm, amineKeywords):
			return model.CategoryAmine, true
		case containsAny(nm, ligandKeywords):
			return model.CategoryLigand, true
		case containsAny(nm, metalKeywords):
			return model.CategoryMetal, true
		case containsAny(nm, arylHalideKeywords) || hasCarbonHalogenPair(nm):
			return model.CategoryArylHalide, true
		}
	}
	return "", false
}

// SlotCategory resolves an input-slot key to a category: first through the
// fixed key map, then through the structural m<N>(_m<N>)* pattern, in which
// case the key itself is the category.
func SlotCategory(inputKey string) (model.Category, bool) {
	if cat, ok := slotCategories[strings.ToLower(inputKey)]; ok {
		return cat, true
	}
	if structuralKeyPattern.MatchString(inputKey) {
		return model.Category(inputKey), true
	}
	return "", false
}

func containsAny(v string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(v, k) {
			return true
		}
	}
	return false
}

func hasCarbonHalogenPair(v string) bool {
	if !strings.Contains(v, "c") {
		return false
	}
	return strings.Contains(v, "br") || strings.Contains(v, "cl") || strings.Contains(v, "i")
}
