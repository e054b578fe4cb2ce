package etymology

// LanguageTable maps Wiktionary language codes to display names.
// It is immutable once built and safe for concurrent use.
type LanguageTable struct {
	names map[string]string
}

// NewLanguageTable copies names into a new table.
func NewLanguageTable(names map[string]string) *LanguageTable {
	m := make(map[string]string, len(names))
	for code, name := range names {
		m[code] = name
	}
	return &LanguageTable{names: m}
}

// Name returns the display name for code, or code itself when unknown.
func (t *LanguageTable) Name(code string) string {
	if name, ok := t.names[code]; ok {
		return name
	}
	return code
}

var frenchLanguages = NewLanguageTable(map[string]string{
	"en":      "anglais",
	"la":      "latin",
	"la-new":  "latin moderne",
	"la-med":  "latin médiéval",
	"grc":     "grec ancien",
	"grc-koi": "grec koinè",
	"el":      "grec",
	"fr":      "français",
	"fro":     "ancien français",
	"frm":     "moyen français",
	"ang":     "vieil anglais",
	"enm":     "moyen anglais",
	"de":      "allemand",
	"goh":     "vieux haut allemand",
	"gmh":     "moyen haut allemand",
	"non":     "vieux norrois",
	"gem-pro": "proto-germanique",
	"ine-pro": "proto-indo-européen",
	"it":      "italien",
	"es":      "espagnol",
	"pt":      "portugais",
	"ar":      "arabe",
	"he":      "hébreu",
	"sa":      "sanskrit",
	"fa":      "persan",
	"nl":      "néerlandais",
	"dum":     "moyen néerlandais",
})

// FrenchLanguages returns the shared table of French display names.
func FrenchLanguages() *LanguageTable { return frenchLanguages }
