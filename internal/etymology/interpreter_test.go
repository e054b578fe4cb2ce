package etymology

import "testing"

func TestInterpreter_Render(t *testing.T) {
	in := NewInterpreter(nil)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"origin with mot", "{{étyl|la|fr|mot=chaos}}", "*latin* *chaos*"},
		{"origin with transliteration", "{{étyl|grc|fr|mot=χάος|tr=kháos}}", "*grec ancien* *χάος* (kháos)"},
		{"origin positional word", "{{étyl|la|fr|paradoxon}}", "*latin* *paradoxon*"},
		{"origin language only", "{{étyl|la|fr}}", "*latin*"},
		{"origin unknown code", "{{étyl|xx|fr}}", "*xx*"},
		{"origin without arguments", "{{étyl}}", ""},
		{"origin ascii alias", "{{etyl|de|fr|mot=Haus}}", "*allemand* *Haus*"},
		{"polytonique word only", "{{polytonique|χάος}}", "*χάος*"},
		{"polytonique with tr", "{{polytonique|χάος|kháos}}", "*χάος* (kháos)"},
		{"polytonique with tr and gloss", "{{polytonique|χάος|kháos|abîme}}", "*χάος* (kháos, « abîme »)"},
		{"polytonique gloss only", "{{polytonique|χάος||abîme}}", "*χάος* (« abîme »)"},
		{"polytonique link word", "{{poly|[[χάος]]|kháos}}", "*χάος* (kháos)"},
		{"date omitted", "{{date|lang=fr}}", ""},
		{"reference omitted", "{{R|TLFi}}", ""},
		{"borrowed", "{{bor|en|la|chaos}}", "*latin* *chaos*"},
		{"derived language only", "{{der|en|grc}}", "*grec ancien*"},
		{"inherited language only", "{{inh|en|ang}}", "*vieil anglais*"},
		{"inherited without source", "{{inh|en}}", ""},
		{"mention", "{{m|la|chaos}}", "*latin* *chaos*"},
		{"mention positional gloss", "{{m|la|chaos||void}}", "*latin* *chaos* « void »"},
		{"mention named gloss", "{{lien|la|chaos|t=void}}", "*latin* *chaos* « void »"},
		{"mention without word", "{{m|la}}", ""},
		{"cognate", "{{cog|de|Chaos}}", "*allemand* *Chaos*"},
		{"unknown template", "{{foo|bar}}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := in.Render(ParseTemplate(tt.raw))
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"étyl", KindOrigin},
		{"polytonique", KindTransliteration},
		{"réf", KindOmitted},
		{"inh", KindInherited},
		{"l", KindMention},
		{"cog", KindCognate},
		{"Étyl", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		if got := KindOf(tt.name); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInterpreter_CustomLanguages(t *testing.T) {
	in := NewInterpreter(NewLanguageTable(map[string]string{"la": "Latin"}))

	if got := in.Render(ParseTemplate("{{étyl|la|fr|mot=chaos}}")); got != "*Latin* *chaos*" {
		t.Errorf("Render = %q, want %q", got, "*Latin* *chaos*")
	}
	if got := in.Render(ParseTemplate("{{étyl|grc|fr}}")); got != "*grc*" {
		t.Errorf("Render = %q, want %q", got, "*grc*")
	}
}

func TestLanguageTable_Immutable(t *testing.T) {
	src := map[string]string{"la": "latin"}
	table := NewLanguageTable(src)
	src["la"] = "changed"

	if got := table.Name("la"); got != "latin" {
		t.Errorf("Name(la) = %q, want %q", got, "latin")
	}
	src["grc"] = "grec ancien"
	if got := table.Name("grc"); got != "grc" {
		t.Errorf("Name(grc) = %q, want %q", got, "grc")
	}
}
