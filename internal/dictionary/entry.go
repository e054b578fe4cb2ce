package dictionary

// Well-known front matter keys.
const (
	KeyWord          = "word"
	KeyEtymology     = "etymology"
	KeyPronunciation = "pronunciation"
	KeyAudio         = "audio"
	KeySeeAlso       = "see_also"
)

// Entry is one dictionary file: a YAML header and a Markdown body.
type Entry struct {
	Path        string
	FrontMatter *FrontMatter
	Body        string
}

// Word returns the headword declared in the header.
func (e *Entry) Word() string {
	return e.FrontMatter.String(KeyWord)
}
