package charset

import "strings"

// Canonical names for the character sets that come up most often.
const (
	USASCII = "us-ascii"
	UTF8    = "utf-8"
	Latin1  = "iso-8859-1"
)

// aliases maps lower-cased charset labels to the canonical name used for
// lookup. Every canonical name maps to itself.
var aliases = map[string]string{
	// us-ascii
	"us-ascii":         USASCII,
	"ascii":            USASCII,
	"us":               USASCII,
	"iso646-us":        USASCII,
	"iso_646.irv:1991": USASCII,
	"ansi_x3.4-1968":   USASCII,
	"ansi_x3.4-1986":   USASCII,
	"cp367":            USASCII,
	"ibm367":           USASCII,
	"csascii":          USASCII,
	"iso-ir-6":         USASCII,
	"646":              USASCII,

	// unicode
	"utf-8":             UTF8,
	"utf8":              UTF8,
	"unicode-1-1-utf-8": UTF8,
	"x-unicode20utf8":   UTF8,
	"cp65001":           UTF8,
	"utf-16":            "utf-16",
	"utf16":             "utf-16",
	"ucs-2":             "utf-16",
	"utf-16be":          "utf-16be",
	"utf-16le":          "utf-16le",
	"unicodefffe":       "utf-16be",
	"unicode":           "utf-16le",

	// latin
	Latin1:            Latin1,
	"iso8859-1":       Latin1,
	"iso_8859-1":      Latin1,
	"iso_8859-1:1987": Latin1,
	"latin1":          Latin1,
	"latin-1":         Latin1,
	"l1":              Latin1,
	"cp819":           Latin1,
	"ibm819":          Latin1,
	"iso-ir-100":      Latin1,
	"csisolatin1":     Latin1,
	"8859-1":          Latin1,

	"iso-8859-2":  "iso-8859-2",
	"iso8859-2":   "iso-8859-2",
	"iso_8859-2":  "iso-8859-2",
	"latin2":      "iso-8859-2",
	"l2":          "iso-8859-2",
	"csisolatin2": "iso-8859-2",

	"iso-8859-3": "iso-8859-3",
	"iso8859-3":  "iso-8859-3",
	"iso_8859-3": "iso-8859-3",
	"latin3":     "iso-8859-3",
	"l3":         "iso-8859-3",

	"iso-8859-4": "iso-8859-4",
	"iso8859-4":  "iso-8859-4",
	"iso_8859-4": "iso-8859-4",
	"latin4":     "iso-8859-4",
	"l4":         "iso-8859-4",

	"iso-8859-5":         "iso-8859-5",
	"iso8859-5":          "iso-8859-5",
	"iso_8859-5":         "iso-8859-5",
	"cyrillic":           "iso-8859-5",
	"csisolatincyrillic": "iso-8859-5",

	"iso-8859-6": "iso-8859-6",
	"iso8859-6":  "iso-8859-6",
	"iso_8859-6": "iso-8859-6",
	"arabic":     "iso-8859-6",
	"ecma-114":   "iso-8859-6",
	"asmo-708":   "iso-8859-6",

	"iso-8859-7": "iso-8859-7",
	"iso8859-7":  "iso-8859-7",
	"iso_8859-7": "iso-8859-7",
	"greek":      "iso-8859-7",
	"greek8":     "iso-8859-7",
	"elot_928":   "iso-8859-7",
	"ecma-118":   "iso-8859-7",

	"iso-8859-8":   "iso-8859-8",
	"iso8859-8":    "iso-8859-8",
	"iso_8859-8":   "iso-8859-8",
	"hebrew":       "iso-8859-8",
	"iso-8859-8-i": "iso-8859-8",
	"iso-8859-8-e": "iso-8859-8",

	"iso-8859-9": "iso-8859-9",
	"iso8859-9":  "iso-8859-9",
	"iso_8859-9": "iso-8859-9",
	"latin5":     "iso-8859-9",
	"l5":         "iso-8859-9",

	"iso-8859-10": "iso-8859-10",
	"iso8859-10":  "iso-8859-10",
	"latin6":      "iso-8859-10",
	"l6":          "iso-8859-10",

	"iso-8859-13": "iso-8859-13",
	"iso8859-13":  "iso-8859-13",
	"latin7":      "iso-8859-13",

	"iso-8859-14": "iso-8859-14",
	"iso8859-14":  "iso-8859-14",
	"latin8":      "iso-8859-14",

	"iso-8859-15": "iso-8859-15",
	"iso8859-15":  "iso-8859-15",
	"iso_8859-15": "iso-8859-15",
	"latin9":      "iso-8859-15",
	"latin-9":     "iso-8859-15",
	"l9":          "iso-8859-15",

	"iso-8859-16": "iso-8859-16",
	"iso8859-16":  "iso-8859-16",
	"latin10":     "iso-8859-16",

	// windows code pages
	"windows-1250": "windows-1250",
	"cp1250":       "windows-1250",
	"x-cp1250":     "windows-1250",
	"win-1250":     "windows-1250",
	"windows-1251": "windows-1251",
	"cp1251":       "windows-1251",
	"x-cp1251":     "windows-1251",
	"win-1251":     "windows-1251",
	"windows-1252": "windows-1252",
	"cp1252":       "windows-1252",
	"x-cp1252":     "windows-1252",
	"win-1252":     "windows-1252",
	"ansi":         "windows-1252",
	"windows-1253": "windows-1253",
	"cp1253":       "windows-1253",
	"windows-1254": "windows-1254",
	"cp1254":       "windows-1254",
	"windows-1255": "windows-1255",
	"cp1255":       "windows-1255",
	"windows-1256": "windows-1256",
	"cp1256":       "windows-1256",
	"windows-1257": "windows-1257",
	"cp1257":       "windows-1257",
	"windows-1258": "windows-1258",
	"cp1258":       "windows-1258",
	"windows-874":  "windows-874",
	"cp874":        "windows-874",
	"tis-620":      "windows-874",

	// dos code pages
	"ibm437": "ibm437",
	"cp437":  "ibm437",
	"437":    "ibm437",
	"ibm850": "ibm850",
	"cp850":  "ibm850",
	"850":    "ibm850",
	"ibm852": "ibm852",
	"cp852":  "ibm852",
	"ibm866": "ibm866",
	"cp866":  "ibm866",
	"866":    "ibm866",

	// cyrillic
	"koi8-r":         "koi8-r",
	"koi8r":          "koi8-r",
	"koi8":           "koi8-r",
	"cskoi8r":        "koi8-r",
	"koi8-u":         "koi8-u",
	"koi8u":          "koi8-u",
	"koi8-ru":        "koi8-u",
	"x-mac-cyrillic": "macintosh",

	// mac
	"macintosh":   "macintosh",
	"mac":         "macintosh",
	"macroman":    "macintosh",
	"x-mac-roman": "macintosh",
	"csmacintosh": "macintosh",

	// chinese
	"gb2312":      "gbk",
	"gb_2312-80":  "gbk",
	"gb_2312":     "gbk",
	"csgb2312":    "gbk",
	"euc-cn":      "gbk",
	"x-euc-cn":    "gbk",
	"chinese":     "gbk",
	"gbk":         "gbk",
	"cp936":       "gbk",
	"ms936":       "gbk",
	"windows-936": "gbk",
	"x-gbk":       "gbk",
	"gb18030":     "gb18030",
	"hz-gb-2312":  "hz-gb-2312",
	"big5":        "big5",
	"big-5":       "big5",
	"cn-big5":     "big5",
	"csbig5":      "big5",
	"x-x-big5":    "big5",
	"big5-hkscs":  "big5",
	"cp950":       "big5",

	// japanese
	"shift_jis":           "shift_jis",
	"shift-jis":           "shift_jis",
	"sjis":                "shift_jis",
	"x-sjis":              "shift_jis",
	"ms_kanji":            "shift_jis",
	"csshiftjis":          "shift_jis",
	"windows-31j":         "shift_jis",
	"cp932":               "shift_jis",
	"ms932":               "shift_jis",
	"euc-jp":              "euc-jp",
	"eucjp":               "euc-jp",
	"x-euc-jp":            "euc-jp",
	"cseucpkdfmtjapanese": "euc-jp",
	"iso-2022-jp":         "iso-2022-jp",
	"csiso2022jp":         "iso-2022-jp",
	"jis":                 "iso-2022-jp",

	// korean
	"euc-kr":         "euc-kr",
	"euckr":          "euc-kr",
	"x-euc-kr":       "euc-kr",
	"cseuckr":        "euc-kr",
	"ks_c_5601-1987": "euc-kr",
	"ks_c_5601-1989": "euc-kr",
	"ksc5601":        "euc-kr",
	"ksc_5601":       "euc-kr",
	"korean":         "euc-kr",
	"windows-949":    "euc-kr",
	"cp949":          "euc-kr",
	"uhc":            "euc-kr",
}

// normalize lower-cases a label and strips the quoting and whitespace that
// sometimes surrounds it.
func normalize(name string) string {
	return strings.ToLower(strings.Trim(name, " \t\r\n\"'"))
}

// Canonical returns the canonical name for the given charset label. The
// boolean is false when the label is not in the alias table, in which case
// the normalized label is returned.
func Canonical(name string) (string, bool) {
	n := normalize(name)
	if c, ok := aliases[n]; ok {
		return c, true
	}
	return n, false
}

// IsKnown returns true if the label is in the alias table.
func IsKnown(name string) bool {
	_, ok := Canonical(name)
	return ok
}
