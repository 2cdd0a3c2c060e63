package gs1

// Application-Identifier schema table. Each AI maps to a sequence of
// field parts; variable-length AIs are FNC1-terminated unless the AI is
// in GS1's predefined fixed-length set. AIs whose fourth digit is a
// decimal-point position are stored under their three-digit stem with an
// upper bound for that digit.

type fieldKind int

const (
	kindNumeric   fieldKind = iota // digits only
	kindCSET82                     // GS1 character set 82
	kindDate6                      // YYMMDD, strict calendar, day 00 allowed
	kindDate10                     // YYMMDDHHMM
	kindDateHours                  // YYMMDDHH[MM[SS]]
)

type part struct {
	kind     fieldKind
	min, max int // value length bounds; min == max means fixed
}

type schema struct {
	parts []part
	fnc1  bool // variable length, FNC1-terminated
	check bool // last digit is a modulo-10 check digit (SSCC/GTIN)
	maxN  byte // for decimal-position AIs: maximum value of digit n
}

func fixedN(n int) []part { return []part{{kindNumeric, n, n}} }
func varN(max int) []part { return []part{{kindNumeric, 0, max}} }
func varX(max int) []part { return []part{{kindCSET82, 0, max}} }
func date(k fieldKind, min, max int) []part {
	return []part{{k, min, max}}
}

// aiTable holds AIs with explicit digits; aiDecimal holds the
// three-digit stems of AIs with an embedded decimal-position digit.
var aiTable = map[string]*schema{
	// Identification
	"00": {parts: fixedN(18), check: true},
	"01": {parts: fixedN(14), check: true},
	"02": {parts: fixedN(14), check: true},
	"10": {parts: varX(20), fnc1: true},
	"11": {parts: date(kindDate6, 6, 6)},
	"12": {parts: date(kindDate6, 6, 6)},
	"13": {parts: date(kindDate6, 6, 6)},
	"15": {parts: date(kindDate6, 6, 6)},
	"16": {parts: date(kindDate6, 6, 6)},
	"17": {parts: date(kindDate6, 6, 6)},
	"20": {parts: fixedN(2)},
	"21": {parts: varX(20), fnc1: true},
	"22": {parts: varX(20), fnc1: true},

	"235": {parts: varX(28), fnc1: true},
	"240": {parts: varX(30), fnc1: true},
	"241": {parts: varX(30), fnc1: true},
	"242": {parts: varN(6), fnc1: true},
	"243": {parts: varX(20), fnc1: true},
	"250": {parts: varX(30), fnc1: true},
	"251": {parts: varX(30), fnc1: true},
	"253": {parts: []part{{kindNumeric, 13, 13}, {kindCSET82, 0, 17}}, fnc1: true},
	"254": {parts: varX(20), fnc1: true},
	"255": {parts: []part{{kindNumeric, 13, 13}, {kindNumeric, 0, 12}}, fnc1: true},

	// Quantities and amounts
	"30": {parts: varN(8), fnc1: true},
	"37": {parts: varN(8), fnc1: true},

	// Transaction references
	"400": {parts: varX(30), fnc1: true},
	"401": {parts: varX(30), fnc1: true},
	"402": {parts: fixedN(17), fnc1: true},
	"403": {parts: varX(30), fnc1: true},
	"410": {parts: fixedN(13)},
	"411": {parts: fixedN(13)},
	"412": {parts: fixedN(13)},
	"413": {parts: fixedN(13)},
	"414": {parts: fixedN(13)},
	"415": {parts: fixedN(13)},
	"416": {parts: fixedN(13)},
	"417": {parts: fixedN(13)},
	"420": {parts: varX(20), fnc1: true},
	"421": {parts: []part{{kindNumeric, 3, 3}, {kindCSET82, 0, 9}}, fnc1: true},
	"422": {parts: fixedN(3), fnc1: true},
	"423": {parts: []part{{kindNumeric, 3, 3}, {kindNumeric, 0, 12}}, fnc1: true},
	"424": {parts: fixedN(3), fnc1: true},
	"425": {parts: []part{{kindNumeric, 3, 3}, {kindNumeric, 0, 12}}, fnc1: true},
	"426": {parts: fixedN(3), fnc1: true},
	"427": {parts: varX(3), fnc1: true},

	"4300": {parts: varX(35), fnc1: true},
	"4301": {parts: varX(35), fnc1: true},
	"4302": {parts: varX(70), fnc1: true},
	"4303": {parts: varX(70), fnc1: true},
	"4304": {parts: varX(70), fnc1: true},
	"4305": {parts: varX(70), fnc1: true},
	"4306": {parts: varX(70), fnc1: true},
	"4307": {parts: []part{{kindCSET82, 2, 2}}, fnc1: true},
	"4308": {parts: varX(30), fnc1: true},
	"4309": {parts: fixedN(20), fnc1: true},
	"4310": {parts: varX(35), fnc1: true},
	"4311": {parts: varX(35), fnc1: true},
	"4312": {parts: varX(70), fnc1: true},
	"4313": {parts: varX(70), fnc1: true},
	"4314": {parts: varX(70), fnc1: true},
	"4315": {parts: varX(70), fnc1: true},
	"4316": {parts: varX(70), fnc1: true},
	"4317": {parts: []part{{kindCSET82, 2, 2}}, fnc1: true},
	"4318": {parts: varX(20), fnc1: true},
	"4319": {parts: varX(30), fnc1: true},
	"4320": {parts: varX(35), fnc1: true},
	"4321": {parts: fixedN(1), fnc1: true},
	"4322": {parts: fixedN(1), fnc1: true},
	"4323": {parts: fixedN(1), fnc1: true},
	"4324": {parts: date(kindDate10, 10, 10), fnc1: true},
	"4325": {parts: date(kindDate10, 10, 10), fnc1: true},
	"4326": {parts: date(kindDate6, 6, 6), fnc1: true},

	// Logistics
	"7001": {parts: fixedN(13), fnc1: true},
	"7002": {parts: varX(30), fnc1: true},
	"7003": {parts: date(kindDate10, 10, 10), fnc1: true},
	"7004": {parts: varN(4), fnc1: true},
	"7005": {parts: varX(12), fnc1: true},
	"7006": {parts: date(kindDate6, 6, 6), fnc1: true},
	"7007": {parts: date(kindDate6, 6, 12), fnc1: true},
	"7008": {parts: varX(3), fnc1: true},
	"7009": {parts: varX(10), fnc1: true},
	"7010": {parts: varX(2), fnc1: true},
	"7011": {parts: date(kindDateHours, 6, 10), fnc1: true},
	"7020": {parts: varX(20), fnc1: true},
	"7021": {parts: varX(20), fnc1: true},
	"7022": {parts: varX(20), fnc1: true},
	"7023": {parts: varX(30), fnc1: true},
	"7040": {parts: []part{{kindNumeric, 1, 1}, {kindCSET82, 3, 3}}, fnc1: true},
	"710":  {parts: varX(20), fnc1: true},
	"711":  {parts: varX(20), fnc1: true},
	"712":  {parts: varX(20), fnc1: true},
	"713":  {parts: varX(20), fnc1: true},
	"714":  {parts: varX(20), fnc1: true},
	"715":  {parts: varX(20), fnc1: true},
	"7240": {parts: varX(20), fnc1: true},

	// Product attributes
	"8001": {parts: fixedN(14), fnc1: true},
	"8002": {parts: varX(20), fnc1: true},
	"8003": {parts: []part{{kindNumeric, 14, 14}, {kindCSET82, 0, 16}}, fnc1: true},
	"8004": {parts: varX(30), fnc1: true},
	"8005": {parts: fixedN(6), fnc1: true},
	"8006": {parts: []part{{kindNumeric, 14, 14}, {kindNumeric, 2, 2}, {kindNumeric, 2, 2}}, fnc1: true},
	"8007": {parts: varX(34), fnc1: true},
	"8008": {parts: date(kindDateHours, 8, 12), fnc1: true},
	"8009": {parts: varX(50), fnc1: true},
	"8010": {parts: varX(30), fnc1: true},
	"8011": {parts: varN(12), fnc1: true},
	"8012": {parts: varX(20), fnc1: true},
	"8013": {parts: varX(25), fnc1: true},
	"8017": {parts: fixedN(18), fnc1: true},
	"8018": {parts: fixedN(18), fnc1: true},
	"8019": {parts: varN(10), fnc1: true},
	"8020": {parts: varX(25), fnc1: true},
	"8026": {parts: []part{{kindNumeric, 14, 14}, {kindNumeric, 2, 2}, {kindNumeric, 2, 2}}, fnc1: true},
	"8110": {parts: varX(70), fnc1: true},
	"8111": {parts: fixedN(4), fnc1: true},
	"8112": {parts: varX(70), fnc1: true},
	"8200": {parts: varX(70), fnc1: true},

	// Internal / mutually agreed
	"90": {parts: varX(30), fnc1: true},
	"91": {parts: varX(90), fnc1: true},
	"92": {parts: varX(90), fnc1: true},
	"93": {parts: varX(90), fnc1: true},
	"94": {parts: varX(90), fnc1: true},
	"95": {parts: varX(90), fnc1: true},
	"96": {parts: varX(90), fnc1: true},
	"97": {parts: varX(90), fnc1: true},
	"98": {parts: varX(90), fnc1: true},
	"99": {parts: varX(90), fnc1: true},
}

// aiDecimal maps three-digit stems of AIs whose fourth digit gives the
// number of decimal positions.
var aiDecimal = map[string]*schema{
	// Trade measures (fixed length, no FNC1)
	"310": {parts: fixedN(6), maxN: 5},
	"311": {parts: fixedN(6), maxN: 5},
	"312": {parts: fixedN(6), maxN: 5},
	"313": {parts: fixedN(6), maxN: 5},
	"314": {parts: fixedN(6), maxN: 5},
	"315": {parts: fixedN(6), maxN: 5},
	"316": {parts: fixedN(6), maxN: 5},
	"320": {parts: fixedN(6), maxN: 5},
	"321": {parts: fixedN(6), maxN: 5},
	"322": {parts: fixedN(6), maxN: 5},
	"323": {parts: fixedN(6), maxN: 5},
	"324": {parts: fixedN(6), maxN: 5},
	"325": {parts: fixedN(6), maxN: 5},
	"326": {parts: fixedN(6), maxN: 5},
	"327": {parts: fixedN(6), maxN: 5},
	"328": {parts: fixedN(6), maxN: 5},
	"329": {parts: fixedN(6), maxN: 5},
	// Logistic measures
	"330": {parts: fixedN(6), maxN: 5},
	"331": {parts: fixedN(6), maxN: 5},
	"332": {parts: fixedN(6), maxN: 5},
	"333": {parts: fixedN(6), maxN: 5},
	"334": {parts: fixedN(6), maxN: 5},
	"335": {parts: fixedN(6), maxN: 5},
	"336": {parts: fixedN(6), maxN: 5},
	"337": {parts: fixedN(6), maxN: 5},
	"340": {parts: fixedN(6), maxN: 5},
	"341": {parts: fixedN(6), maxN: 5},
	"342": {parts: fixedN(6), maxN: 5},
	"343": {parts: fixedN(6), maxN: 5},
	"344": {parts: fixedN(6), maxN: 5},
	"345": {parts: fixedN(6), maxN: 5},
	"346": {parts: fixedN(6), maxN: 5},
	"347": {parts: fixedN(6), maxN: 5},
	"348": {parts: fixedN(6), maxN: 5},
	"349": {parts: fixedN(6), maxN: 5},
	"350": {parts: fixedN(6), maxN: 5},
	"351": {parts: fixedN(6), maxN: 5},
	"352": {parts: fixedN(6), maxN: 5},
	"353": {parts: fixedN(6), maxN: 5},
	"354": {parts: fixedN(6), maxN: 5},
	"355": {parts: fixedN(6), maxN: 5},
	"356": {parts: fixedN(6), maxN: 5},
	"357": {parts: fixedN(6), maxN: 5},
	"360": {parts: fixedN(6), maxN: 5},
	"361": {parts: fixedN(6), maxN: 5},
	"362": {parts: fixedN(6), maxN: 5},
	"363": {parts: fixedN(6), maxN: 5},
	"364": {parts: fixedN(6), maxN: 5},
	"365": {parts: fixedN(6), maxN: 5},
	"366": {parts: fixedN(6), maxN: 5},
	"367": {parts: fixedN(6), maxN: 5},
	"368": {parts: fixedN(6), maxN: 5},
	"369": {parts: fixedN(6), maxN: 5},
	// Amounts payable and area/volume counts (FNC1-terminated)
	"390": {parts: varN(15), fnc1: true, maxN: 9},
	"391": {parts: []part{{kindNumeric, 3, 3}, {kindNumeric, 0, 15}}, fnc1: true, maxN: 9},
	"392": {parts: varN(15), fnc1: true, maxN: 9},
	"393": {parts: []part{{kindNumeric, 3, 3}, {kindNumeric, 0, 15}}, fnc1: true, maxN: 9},
	"394": {parts: fixedN(4), fnc1: true, maxN: 4},
	"395": {parts: fixedN(6), fnc1: true, maxN: 6},
	// Kilograms per square metre, etc.
	"703": {parts: []part{{kindNumeric, 3, 3}, {kindCSET82, 1, 27}}, fnc1: true, maxN: 9},
	"723": {parts: []part{{kindCSET82, 2, 30}}, fnc1: true, maxN: 9},
}

// cset82 is the GS1 encodable character set 82.
func cset82(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '"', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
		':', ';', '<', '=', '>', '?', '_':
		return true
	}
	return false
}
