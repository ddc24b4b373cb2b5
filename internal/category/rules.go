package category

import "regexp"

// rule maps one synonym pattern to its canonical code. Rules are evaluated
// in slice order, first match wins, so more specific spellings must come
// before the looser ones.
type rule struct {
	re    *regexp.Regexp
	canon string
}

// matchFirst returns the canonical code of the first rule matching s.
func matchFirst(rules []rule, s string) string {
	for _, r := range rules {
		if r.re.MatchString(s) {
			return r.canon
		}
	}
	return ""
}

// Canonical value sets. Anything outside these is reset to empty at the end
// of the parse, so a bad synonym rule can never leak an unknown token.
var (
	validGrado = map[string]struct{}{
		"G3": {}, "G2": {}, "G1": {}, "PRE": {}, "PROM": {}, "COMP": {},
		"ROOKIES": {}, "TRIATHLON": {},
	}
	validCat = map[string]struct{}{
		"I": {}, "L": {}, "M": {}, "S": {}, "XS": {},
		"20": {}, "30": {}, "40": {}, "50": {}, "60": {},
	}
	validExtra = map[string]struct{}{
		"J12": {}, "J15": {}, "J19": {}, "SEN": {}, "PA": {}, "MST": {}, "ESP": {},
	}
)

// Inputs are uppercased and diacritic-stripped before matching, so the
// patterns only need the unaccented uppercase spellings.
var gradoRules = []rule{
	{regexp.MustCompile(`\bG\s*3\b`), "G3"},
	{regexp.MustCompile(`\bG\s*2\b`), "G2"},
	{regexp.MustCompile(`\bG\s*1\b`), "G1"},
	{regexp.MustCompile(`\bGRADO\s*3\b`), "G3"},
	{regexp.MustCompile(`\bGRADO\s*2\b`), "G2"},
	{regexp.MustCompile(`\bGRADO\s*1\b`), "G1"},
	{regexp.MustCompile(`\bPRE\b`), "PRE"},
	{regexp.MustCompile(`\bPRE\s*AGILITY\b`), "PRE"},
	{regexp.MustCompile(`\bPREAGILITY\b`), "PRE"},
	{regexp.MustCompile(`\bPROM\b`), "PROM"},
	{regexp.MustCompile(`\bPROMO`), "PROM"},
	{regexp.MustCompile(`\bPROMOCION\b`), "PROM"},
	{regexp.MustCompile(`\bCOMP\b`), "COMP"},
	{regexp.MustCompile(`\bCOMPET(ICION|ITION)?\b`), "COMP"},
	{regexp.MustCompile(`\bROOK(IE|IES)?\b`), "ROOKIES"},
	{regexp.MustCompile(`\bTRIAT(H?L)ON\b`), "TRIATHLON"},
	{regexp.MustCompile(`\bTRIATLON\b`), "TRIATHLON"},
}

var catRules = []rule{
	{regexp.MustCompile(`\bXS(MALL)?\b`), "XS"},
	{regexp.MustCompile(`\bX[-\s]?SMALL\b`), "XS"},
	{regexp.MustCompile(`\bTOY\b`), "XS"},
	{regexp.MustCompile(`\bEXTRA\s*SMALL\b`), "XS"},
	{regexp.MustCompile(`\bS(MALL)?\b`), "S"},
	{regexp.MustCompile(`\bM(EDIUM)?\b`), "M"},
	{regexp.MustCompile(`\bL(ARGE)?\b`), "L"},
	{regexp.MustCompile(`\bI(NTER(MEDIATE)?)?\b`), "I"},
	{regexp.MustCompile(`\bINTERMED(IO|IA|IATE)\b`), "I"},
}

var extraRules = []rule{
	{regexp.MustCompile(`\bJ\s*1\s*2\b`), "J12"},
	{regexp.MustCompile(`\bJUNIOR\s*12\b`), "J12"},
	{regexp.MustCompile(`\bJ\s*1\s*5\b`), "J15"},
	{regexp.MustCompile(`\bJUNIOR\s*15\b`), "J15"},
	{regexp.MustCompile(`\bJ\s*1\s*9\b`), "J19"},
	{regexp.MustCompile(`\bJUNIOR\s*19\b`), "J19"},
	{regexp.MustCompile(`\bSEN(IOR)?\b`), "SEN"},
	{regexp.MustCompile(`\bPA(RA(GILITY)?)?\b`), "PA"},
	{regexp.MustCompile(`\bMASTER\b`), "MST"},
	{regexp.MustCompile(`\bMST\b`), "MST"},
	{regexp.MustCompile(`\bESP(ECIAL)?\b`), "ESP"},
}
