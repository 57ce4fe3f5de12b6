package translation

import "strings"

const maxAlternatives = 3

type wordSwap struct {
	from, to string
}

// AI output alternatives are simple verb-form variants
var aiSwaps = map[string][]wordSwap{
	"hi": {{"है", "हैं"}, {"करता", "करते"}, {"देता", "देते"}},
	"mr": {{"आहे", "आहोत"}, {"करतो", "करतात"}, {"देतो", "देतात"}},
}

type enhancedVariant struct {
	prefix string
	swaps  []wordSwap
}

var enhancedVariants = map[string][]enhancedVariant{
	"hi": {
		{"सरल भाषा में: ", []wordSwap{{"कानूनी", "आसान"}, {"अनुबंध", "समझौता"}}},
		{"व्यावहारिक अर्थ: ", []wordSwap{{"अदालत", "न्यायालय"}, {"वकील", "कानूनी सलाहकार"}}},
		{"सामान्य भाषा: ", []wordSwap{{"मामला", "विवाद"}, {"सबूत", "प्रमाण"}}},
	},
	"mr": {
		{"सोप्या भाषेत: ", []wordSwap{{"कायदेशीर", "सोपे"}, {"करार", "करारनामा"}}},
		{"व्यावहारिक अर्थ: ", []wordSwap{{"कोर्ट", "न्यायालय"}, {"वकील", "कायदेशीर सल्लागार"}}},
		{"सामान्य भाषा: ", []wordSwap{{"खटला", "वाद"}, {"पुरावा", "प्रमाण"}}},
	},
}

// AIAlternatives returns up to three word-swap variants of text that differ
// from it. Languages without variants yield an empty list.
func AIAlternatives(text, targetLang string) []string {
	out := []string{}
	for _, swap := range aiSwaps[baseLanguage(targetLang)] {
		alt := strings.ReplaceAll(text, swap.from, swap.to)
		if alt != text {
			out = append(out, alt)
		}
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}

// EnhancedAlternatives returns the prefixed plain-language renditions
// produced alongside a glossary explanation.
func EnhancedAlternatives(text, targetLang string) []string {
	out := []string{}
	for _, v := range enhancedVariants[baseLanguage(targetLang)] {
		alt := text
		for _, swap := range v.swaps {
			alt = strings.ReplaceAll(alt, swap.from, swap.to)
		}
		out = append(out, v.prefix+alt)
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}
