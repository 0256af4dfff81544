package classify

import (
	"regexp"

	"github.com/ordlabs/ordscan/internal/model"
)

// Keyword tables are matched by case-insensitive substring containment
// against the identifier value. They are deliberately loose: short metal
// symbols and the amine pattern produce known false positives, kept for
// artifact compatibility.

var baseKeywords = []string{
	"carbonate",
	"bicarbonate",
	"hydroxide",
	"tert-butoxide",
	"otbu",
	"triethylamine",
	"dipea",
	"hunig",
	"dbu",
	"dbn",
	"k3po4",
	"k2co3",
	"cs2co3",
	"naoh",
	"koh",
	"naome",
	"kom e",
	"lihmds",
	"nahmds",
	"sodium hydride",
}

var amineKeywords = []string{
	"amine",
	"aniline",
	"nh2",
	"primary amine",
	"secondary amine",
	"tertiary amine",
}

var arylHalideKeywords = []string{
	"aryl halide",
	"chlorobenz",
	"bromobenz",
	"iodobenz",
	"chloro",
	"bromo",
	"iodo",
	"halide",
}

var metalKeywords = []string{
	"palladium",
	"pd",
	"nickel",
	"ni",
	"copper",
	"cu",
	"iron",
	"fe",
	"ruthenium",
	"ru",
	"iridium",
	"ir",
}

var ligandKeywords = []string{
	"phos",
	"xphos",
	"sphos",
	"johnphos",
	"binap",
	"dppe",
	"dppf",
	"dppp",
	"bipy",
	"phen",
	"bipyridine",
	"phosphine",
	"pcy3",
}

var (
	// alkoxide or hydroxide salt written in SMILES, e.g. [O-].[Na+]
	alkoxideSaltPattern = regexp.MustCompile(`\[o-\].*\[(na|k|li)\+\]`)
	basePattern         = regexp.MustCompile(`(carbonate|hydroxide|hmds|otbu|tert-?butoxide)`)
	aminePattern        = regexp.MustCompile(`n[h]?2`)
	// loose proxy for "halogen on an aromatic carbon": any carbon followed
	// later by cl/br/i
	halogenPattern = regexp.MustCompile(`c.*(cl|br|i)`)

	// structural slot keys such as "m1" or "m2_m4" name paired
	// reactant/catalyst groupings and become their own category
	structuralKeyPattern = regexp.MustCompile(`(?i)^m\d+(?:_m\d+)*$`)
)

// slotCategories maps known input-slot keys (lowercased) to their category.
var slotCategories = map[string]model.Category{
	"base":             model.CategoryBase,
	"solvent":          model.CategorySolvent,
	"ligand":           model.CategoryLigand,
	"metal":            model.CategoryMetal,
	"catalyst":         model.CategoryMetal,
	"amine":            model.CategoryAmine,
	"aryl halide":      model.CategoryArylHalide,
	"carboxylic acid":  model.CategoryCarboxylicAcid,
	"activation agent": model.CategoryActivationAgent,
	"additive":         model.CategoryAdditive,
}
