package wiktionary

// definitionResponse is the REST definition payload: entries keyed by
// language code.
type definitionResponse map[string][]definitionEntry

type definitionEntry struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Language     string `json:"language"`
	Etymology    string `json:"etymology"`
}

// parseResponse is the action=parse payload with prop=wikitext.
type parseResponse struct {
	Parse *struct {
		Title    string `json:"title"`
		Wikitext struct {
			Content string `json:"*"`
		} `json:"wikitext"`
	} `json:"parse"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}
