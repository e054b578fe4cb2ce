package etymology

import (
	"strings"
)

// Kind identifies how a template is rendered.
type Kind int

const (
	KindUnknown Kind = iota
	KindOrigin
	KindTransliteration
	KindOmitted
	KindBorrowed
	KindDerived
	KindInherited
	KindMention
	KindCognate
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindOrigin:          "origin",
	KindTransliteration: "transliteration",
	KindOmitted:         "omitted",
	KindBorrowed:        "borrowed",
	KindDerived:         "derived",
	KindInherited:       "inherited",
	KindMention:         "mention",
	KindCognate:         "cognate",
}

func (k Kind) String() string { return kindNames[k] }

var kindByName = map[string]Kind{
	"étyl":        KindOrigin,
	"etyl":        KindOrigin,
	"polytonique": KindTransliteration,
	"poly":        KindTransliteration,
	"date":        KindOmitted,
	"R":           KindOmitted,
	"réf":         KindOmitted,
	"ref":         KindOmitted,
	"bor":         KindBorrowed,
	"borrowed":    KindBorrowed,
	"der":         KindDerived,
	"derived":     KindDerived,
	"inh":         KindInherited,
	"inherited":   KindInherited,
	"m":           KindMention,
	"mention":     KindMention,
	"l":           KindMention,
	"link":        KindMention,
	"lien":        KindMention,
	"cog":         KindCognate,
	"cognate":     KindCognate,
}

// KindOf returns the kind registered for a template name.
func KindOf(name string) Kind {
	return kindByName[name]
}

// Interpreter renders parsed templates as display fragments.
type Interpreter struct {
	langs *LanguageTable
}

// NewInterpreter creates an Interpreter backed by langs.
// A nil table falls back to FrenchLanguages.
func NewInterpreter(langs *LanguageTable) *Interpreter {
	if langs == nil {
		langs = FrenchLanguages()
	}
	return &Interpreter{langs: langs}
}

// Render returns the fragment for t. Unknown templates render as "".
func (in *Interpreter) Render(t Template) string {
	switch KindOf(t.Name) {
	case KindOrigin:
		return in.origin(t)
	case KindTransliteration:
		return transliteration(t)
	case KindBorrowed, KindDerived, KindInherited:
		return in.lineage(t)
	case KindMention:
		return in.mention(t)
	case KindCognate:
		return in.cognate(t)
	default:
		// KindOmitted and KindUnknown contribute nothing.
		return ""
	}
}

// {{étyl|la|fr|mot=chaos}}, {{étyl|la|fr|paradoxon}}, {{étyl|grc|fr|mot=χάος|tr=kháos}}
func (in *Interpreter) origin(t Template) string {
	if len(t.Positional) == 0 {
		return ""
	}
	lang := in.langs.Name(t.Arg(0))
	word := t.Param("mot")
	if word == "" {
		word = t.Arg(2)
	}
	if word == "" {
		return italic(lang)
	}
	out := italic(lang) + " " + italic(word)
	if tr := t.Param("tr"); tr != "" {
		out += " (" + tr + ")"
	}
	return out
}

// {{polytonique|word|transliteration|meaning}}
func transliteration(t Template) string {
	if len(t.Positional) == 0 {
		return ""
	}
	word := strings.Trim(FlattenLinks(t.Arg(0)), "[]")
	tr, gloss := t.Arg(1), t.Arg(2)

	switch {
	case tr != "" && gloss != "":
		return italic(word) + " (" + tr + ", " + guillemets(gloss) + ")"
	case gloss != "":
		return italic(word) + " (" + guillemets(gloss) + ")"
	case tr != "":
		return italic(word) + " (" + tr + ")"
	default:
		return italic(word)
	}
}

// {{bor|en|la|word}}, {{der|…}}, {{inh|…}}: target language first, source second.
func (in *Interpreter) lineage(t Template) string {
	code := t.Arg(1)
	if code == "" {
		return ""
	}
	lang := in.langs.Name(code)
	if word := t.Arg(2); word != "" {
		return italic(lang) + " " + italic(word)
	}
	return italic(lang)
}

// {{m|la|word||gloss}}
func (in *Interpreter) mention(t Template) string {
	code, word := t.Arg(0), t.Arg(1)
	if code == "" || word == "" {
		return ""
	}
	out := italic(in.langs.Name(code)) + " " + italic(word)
	gloss := t.Arg(3)
	if gloss == "" {
		gloss = t.Param("t", "gloss")
	}
	if gloss != "" {
		out += " " + guillemets(gloss)
	}
	return out
}

// {{cog|de|word}}
func (in *Interpreter) cognate(t Template) string {
	code, word := t.Arg(0), t.Arg(1)
	if code == "" || word == "" {
		return ""
	}
	return italic(in.langs.Name(code)) + " " + italic(word)
}

func italic(s string) string { return "*" + s + "*" }

func guillemets(s string) string { return "« " + s + " »" }
