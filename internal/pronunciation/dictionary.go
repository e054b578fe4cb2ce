package pronunciation

import (
	"fmt"
	"strings"

	"github.com/temporal-IPA/tipa/pkg/phonodict"
)

// Dictionary transcribes words from a main phonetic dictionary and an
// optional fallback one. Both accept the text, gob and ipa_dict_txt
// formats understood by phonodict.
type Dictionary struct {
	main  map[string][]string
	final map[string][]string
}

// LoadDictionary loads the dictionary files at mainPath and, when not
// empty, finalPath.
func LoadDictionary(mainPath, finalPath string) (*Dictionary, error) {
	mainDict, err := loadPath(mainPath)
	if err != nil {
		return nil, fmt.Errorf("pronunciation: load %s: %w", mainPath, err)
	}

	var finalDict map[string][]string
	if strings.TrimSpace(finalPath) != "" {
		finalDict, err = loadPath(finalPath)
		if err != nil {
			return nil, fmt.Errorf("pronunciation: load %s: %w", finalPath, err)
		}
	}

	return NewDictionary(mainDict, finalDict), nil
}

// NewDictionary builds a Dictionary from already loaded entries.
func NewDictionary(main, final map[string][]string) *Dictionary {
	return &Dictionary{main: main, final: final}
}

func loadPath(path string) (map[string][]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty dictionary path")
	}
	entries, _, _, err := phonodict.PreloadPaths(phonodict.MergeModeAppend, path)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Transcribe returns the IPA for word without slashes. Multi-word entries
// are transcribed token by token and joined with a space. It reports false
// when any token is unknown to both dictionaries or when the output is the
// word itself.
func (d *Dictionary) Transcribe(word string) (string, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return "", false
	}

	if ipa, ok := d.lookup(word); ok {
		return accept(word, ipa)
	}

	tokens := strings.Fields(word)
	if len(tokens) < 2 {
		return "", false
	}
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		ipa, ok := d.lookup(tok)
		if !ok {
			return "", false
		}
		parts = append(parts, ipa)
	}
	return accept(word, strings.Join(parts, " "))
}

func (d *Dictionary) lookup(word string) (string, bool) {
	if ipa, ok := first(d.main[word]); ok {
		return ipa, true
	}
	return first(d.final[word])
}

func first(prons []string) (string, bool) {
	for _, p := range prons {
		if p = strings.Trim(strings.TrimSpace(p), "/[]"); p != "" {
			return p, true
		}
	}
	return "", false
}

func accept(word, ipa string) (string, bool) {
	if ipa == "" || ipa == word {
		return "", false
	}
	return ipa, true
}
