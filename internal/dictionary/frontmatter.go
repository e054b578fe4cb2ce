package dictionary

import (
	"bytes"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

var frontMatterRe = regexp.MustCompile(`(?s)\A---\n(.*?)\n---\n(.*)\z`)

// Link is one see-also reference.
type Link struct {
	Text string `yaml:"text"`
	URL  string `yaml:"url"`
}

// FrontMatter is the YAML header of an entry. It keeps keys in file order and
// preserves the formatting of values it does not touch.
type FrontMatter struct {
	node *yaml.Node
}

// NewFrontMatter returns an empty header.
func NewFrontMatter() *FrontMatter {
	return &FrontMatter{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// Split separates raw file content into header and body. Content without a
// header yields an empty header and the whole content as body.
func Split(content string) (*FrontMatter, string, error) {
	m := frontMatterRe.FindStringSubmatch(content)
	if m == nil {
		return NewFrontMatter(), content, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(m[1]), &doc); err != nil {
		return nil, "", fmt.Errorf("dictionary: parse front matter: %w", err)
	}

	fm := NewFrontMatter()
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		switch {
		case root.Kind == yaml.MappingNode:
			fm.node = root
		case root.Tag == "!!null":
		default:
			return nil, "", fmt.Errorf("dictionary: front matter is not a mapping (line %d)", root.Line)
		}
	}
	return fm, m[2], nil
}

// Join renders header and body back into file content.
func Join(fm *FrontMatter, body string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	if len(fm.node.Content) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fm.node); err != nil {
			return "", fmt.Errorf("dictionary: encode front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("dictionary: encode front matter: %w", err)
		}
	}
	buf.WriteString("---\n")
	buf.WriteString(body)
	return buf.String(), nil
}

// Has reports whether key is present, whatever its value.
func (fm *FrontMatter) Has(key string) bool {
	return fm.value(key) != nil
}

// HasValue reports whether key holds something: a non-empty scalar other
// than null or false, or a non-empty list or mapping.
func (fm *FrontMatter) HasValue(key string) bool {
	return filled(fm.value(key))
}

func filled(v *yaml.Node) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case yaml.AliasNode:
		return filled(v.Alias)
	case yaml.SequenceNode, yaml.MappingNode:
		return len(v.Content) > 0
	case yaml.ScalarNode:
		switch v.Tag {
		case "!!null":
			return false
		case "!!bool":
			return v.Value != "false" && v.Value != "False" && v.Value != "FALSE"
		}
		return v.Value != ""
	}
	return false
}

// String returns the scalar value of key, or "" when missing, null or not a
// scalar.
func (fm *FrontMatter) String(key string) string {
	v := fm.value(key)
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return ""
	}
	return v.Value
}

// SetString sets key to a string scalar. A new key is appended at the end.
func (fm *FrontMatter) SetString(key, value string) {
	fm.set(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

// Links decodes key as a list of links.
func (fm *FrontMatter) Links(key string) ([]Link, error) {
	v := fm.value(key)
	if v == nil {
		return nil, nil
	}
	var links []Link
	if err := v.Decode(&links); err != nil {
		return nil, fmt.Errorf("dictionary: decode %s: %w", key, err)
	}
	return links, nil
}

// SetLinks sets key to a list of links.
func (fm *FrontMatter) SetLinks(key string, links []Link) error {
	var n yaml.Node
	if err := n.Encode(links); err != nil {
		return fmt.Errorf("dictionary: encode %s: %w", key, err)
	}
	fm.set(key, &n)
	return nil
}

func (fm *FrontMatter) value(key string) *yaml.Node {
	for i := 0; i+1 < len(fm.node.Content); i += 2 {
		if fm.node.Content[i].Value == key {
			return fm.node.Content[i+1]
		}
	}
	return nil
}

func (fm *FrontMatter) set(key string, value *yaml.Node) {
	for i := 0; i+1 < len(fm.node.Content); i += 2 {
		if fm.node.Content[i].Value == key {
			fm.node.Content[i+1] = value
			return
		}
	}
	fm.node.Content = append(fm.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}
