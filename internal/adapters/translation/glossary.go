package translation

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultGlossaryLanguage is used for target languages without a glossary
const defaultGlossaryLanguage = "hi"

type glossaryEntry struct {
	term        string
	explanation string
}

var legalTerms = map[string][]glossaryEntry{
	"hi": {
		{"अनुबंध", "अनुबंध (Contract - दो या अधिक पक्षों के बीच कानूनी समझौता)"},
		{"अदालत", "अदालत (Court - न्याय प्रदान करने वाला स्थान)"},
		{"वकील", "वकील (Lawyer - कानूनी सलाह देने वाला व्यक्ति)"},
		{"मामला", "मामला (Case - अदालत में दायर किया गया विवाद)"},
		{"सबूत", "सबूत (Evidence - किसी बात को सिद्ध करने वाला प्रमाण)"},
		{"फैसला", "फैसला (Verdict - अदालत का निर्णय)"},
		{"अपील", "अपील (Appeal - उच्च न्यायालय में पुनर्विचार की मांग)"},
		{"जमानत", "जमानत (Bail - अदालत से मिली अस्थायी स्वतंत्रता)"},
		{"गवाह", "गवाह (Witness - घटना देखने वाला व्यक्ति)"},
		{"गवाही", "गवाही (Testimony - गवाह का बयान)"},
		{"आरोप", "आरोप (Charge - किसी के खिलाफ लगाया गया दोष)"},
		{"दोषी", "दोषी (Guilty - अपराध करने वाला)"},
		{"निर्दोष", "निर्दोष (Innocent - बिना दोष के)"},
		{"सजा", "सजा (Punishment - अपराध के लिए दिया गया दंड)"},
		{"कैद", "कैद (Imprisonment - जेल में रखना)"},
		{"जुर्माना", "जुर्माना (Fine - पैसे का दंड)"},
		{"माफी", "माफी (Pardon - सजा माफ करना)"},
		{"रिहाई", "रिहाई (Release - जेल से छोड़ना)"},
		{"हिरासत", "हिरासत (Custody - पुलिस की देखरेख में रखना)"},
		{"तलाशी", "तलाशी (Search - किसी स्थान की जांच)"},
		{"जब्त", "जब्त (Seizure - किसी वस्तु को ले लेना)"},
		{"निषेधाज्ञा", "निषेधाज्ञा (Injunction - किसी कार्य को रोकने का आदेश)"},
		{"क्षतिपूर्ति", "क्षतिपूर्ति (Compensation - नुकसान की भरपाई)"},
		{"हर्जाना", "हर्जाना (Damages - नुकसान के लिए पैसा)"},
		{"ब्याज", "ब्याज (Interest - देर से भुगतान पर अतिरिक्त राशि)"},
		{"दस्तावेज", "दस्तावेज (Document - लिखित प्रमाण)"},
		{"हस्ताक्षर", "हस्ताक्षर (Signature - किसी का नाम लिखना)"},
		{"मुहर", "मुहर (Stamp - आधिकारिक छाप)"},
		{"प्रमाणित", "प्रमाणित (Certified - आधिकारिक रूप से सत्यापित)"},
		{"कानूनी", "कानूनी (Legal - कानून के अनुसार)"},
		{"अवैध", "अवैध (Illegal - कानून के विरुद्ध)"},
		{"वैध", "वैध (Valid - कानूनी रूप से मान्य)"},
		{"अमान्य", "अमान्य (Invalid - कानूनी रूप से अमान्य)"},
	},
	"mr": {
		{"करार", "करार (Contract - दो किंवा अधिक पक्षांमधील कायदेशीर करार)"},
		{"कोर्ट", "कोर्ट (Court - न्याय देणारे ठिकाण)"},
		{"वकील", "वकील (Lawyer - कायदेशीर सल्ला देणारा व्यक्ती)"},
		{"खटला", "खटला (Case - कोर्टात दाखल केलेला वाद)"},
		{"पुरावा", "पुरावा (Evidence - एखादी गोष्ट सिद्ध करणारा पुरावा)"},
		{"निर्णय", "निर्णय (Verdict - कोर्टाचा निर्णय)"},
		{"अपील", "अपील (Appeal - उच्च न्यायालयात पुनर्विचाराची मागणी)"},
		{"जामीन", "जामीन (Bail - कोर्टाकडून मिळालेली तात्पुरती स्वातंत्र्य)"},
		{"साक्षीदार", "साक्षीदार (Witness - घटना पाहणारा व्यक्ती)"},
		{"साक्ष", "साक्ष (Testimony - साक्षीदाराचे बयान)"},
		{"आरोप", "आरोप (Charge - एखाद्यावर लावलेला दोष)"},
		{"दोषी", "दोषी (Guilty - गुन्हा करणारा)"},
		{"निर्दोष", "निर्दोष (Innocent - दोष नसलेला)"},
		{"शिक्षा", "शिक्षा (Punishment - गुन्ह्यासाठी दिलेला दंड)"},
		{"तुरुंग", "तुरुंग (Imprisonment - तुरुंगात ठेवणे)"},
		{"दंड", "दंड (Fine - पैशाचा दंड)"},
		{"माफी", "माफी (Pardon - शिक्षा माफ करणे)"},
		{"सोडणे", "सोडणे (Release - तुरुंगातून सोडणे)"},
		{"हिरासत", "हिरासत (Custody - पोलीसांच्या देखरेखीत ठेवणे)"},
		{"शोध", "शोध (Search - एखाद्या ठिकाणाची तपासणी)"},
		{"जप्त", "जप्त (Seizure - एखादी वस्तू घेणे)"},
		{"निषेध", "निषेध (Injunction - एखादे काम रोखण्याचा आदेश)"},
		{"नुकसानभरपाई", "नुकसानभरपाई (Compensation - नुकसानाची भरपाई)"},
		{"हर्जाना", "हर्जाना (Damages - नुकसानासाठी पैसे)"},
		{"व्याज", "व्याज (Interest - उशीरा भरण्यासाठी अतिरिक्त रक्कम)"},
		{"दस्तऐवज", "दस्तऐवज (Document - लिखित पुरावा)"},
		{"सही", "सही (Signature - एखाद्याचे नाव लिहिणे)"},
		{"शिक्का", "शिक्का (Stamp - अधिकृत छाप)"},
		{"प्रमाणित", "प्रमाणित (Certified - अधिकृतपणे पडताळलेले)"},
		{"कायदेशीर", "कायदेशीर (Legal - कायद्यानुसार)"},
		{"बेकायदेशीर", "बेकायदेशीर (Illegal - कायद्याविरुद्ध)"},
		{"वैध", "वैध (Valid - कायदेशीरपणे मान्य)"},
		{"अवैध", "अवैध (Invalid - कायदेशीरपणे अमान्य)"},
	},
}

// Glossary annotates legal terms of one language with plain explanations
type Glossary struct {
	terms   map[string]string
	ordered []string
}

// GlossaryFor returns the glossary of the target language, falling back to
// Hindi for languages without one.
func GlossaryFor(targetLang string) *Glossary {
	entries, ok := legalTerms[baseLanguage(targetLang)]
	if !ok {
		entries = legalTerms[defaultGlossaryLanguage]
	}
	return newGlossary(entries)
}

func newGlossary(entries []glossaryEntry) *Glossary {
	terms := make(map[string]string, len(entries))
	ordered := make([]string, 0, len(entries))
	for _, e := range entries {
		terms[e.term] = e.explanation
		ordered = append(ordered, e.term)
	}
	// longest first so that "गवाही" wins over "गवाह"
	sort.Slice(ordered, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(ordered[i]), utf8.RuneCountInString(ordered[j])
		if li != lj {
			return li > lj
		}
		return ordered[i] < ordered[j]
	})
	return &Glossary{terms: terms, ordered: ordered}
}

// Annotate replaces every whole-word occurrence of a known term with its
// explanation. Substitution is a single left-to-right pass, so inserted
// explanations are never annotated again.
func (g *Glossary) Annotate(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	prevWordRune := false
	for i := 0; i < len(text); {
		if !prevWordRune {
			if term, ok := g.matchAt(text, i); ok {
				b.WriteString(g.terms[term])
				i += len(term)
				prevWordRune = true
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		prevWordRune = isWordRune(r)
		i += size
	}
	return b.String()
}

func (g *Glossary) matchAt(text string, i int) (string, bool) {
	rest := text[i:]
	for _, term := range g.ordered {
		if !strings.HasPrefix(rest, term) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(rest[len(term):])
		if len(rest) == len(term) || !isWordRune(next) {
			return term, true
		}
	}
	return "", false
}

// Devanagari vowel signs are marks, so they count as part of a word
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}
