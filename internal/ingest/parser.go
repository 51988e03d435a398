package ingest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var (
	errUnterminated = errors.New("metadata header is not terminated")
	errNotMapping   = errors.New("metadata header is not a key/value mapping")
)

const (
	yamlDelim = "---"
	tomlDelim = "+++"
	jsonDelim = ";;;"
)

// ParseFrontMatter splits a document into its metadata header and body.
// A document without a header yields an empty mapping and the whole text as
// body. YAML headers sit between "---" lines, TOML between "+++" and JSON
// between ";;;".
func ParseFrontMatter(raw []byte) (map[string]any, []byte, error) {
	// 统一换行符
	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))
	norm = bytes.TrimPrefix(norm, []byte("\xef\xbb\xbf"))

	delim := openingDelim(norm)
	if delim == "" {
		return map[string]any{}, norm, nil
	}

	header, body, ok := splitHeader(norm, delim)
	if !ok {
		return nil, nil, errUnterminated
	}
	body = bytes.TrimLeft(body, "\n")

	if delim != yamlDelim {
		if len(bytes.TrimSpace(header)) == 0 {
			return map[string]any{}, body, nil
		}
		meta, err := parseForeign(norm)
		if err != nil {
			return nil, nil, err
		}
		return meta, body, nil
	}

	meta, err := parseYAML(header)
	if err != nil {
		return nil, nil, err
	}
	return meta, body, nil
}

func openingDelim(doc []byte) string {
	for _, d := range []string{yamlDelim, tomlDelim, jsonDelim} {
		if bytes.HasPrefix(doc, []byte(d+"\n")) || bytes.Equal(bytes.TrimRight(doc, " \t"), []byte(d)) {
			return d
		}
	}
	return ""
}

// splitHeader finds the first line after the opening one that consists of
// delim alone.
func splitHeader(doc []byte, delim string) (header, body []byte, ok bool) {
	rest, found := bytes.CutPrefix(doc, []byte(delim+"\n"))
	if !found {
		return nil, nil, false
	}
	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		end := bytes.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if string(bytes.TrimRight(line, " \t")) == delim {
			header = rest[:offset]
			if end < 0 {
				return header, nil, true
			}
			return header, rest[offset+end+1:], true
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return nil, nil, false
}

func parseYAML(header []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(header)) == 0 {
		return map[string]any{}, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(header, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return map[string]any{}, nil
	}
	root := doc.Content[0]
	switch {
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return map[string]any{}, nil
	case root.Kind != yaml.MappingNode:
		return nil, errNotMapping
	}

	// 非字符串的键（如 2024）按原文转成字符串
	meta := map[string]any{}
	if err := root.Decode(&meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// parseForeign decodes TOML and JSON headers.
func parseForeign(doc []byte) (map[string]any, error) {
	meta := map[string]any{}
	if _, err := frontmatter.Parse(bytes.NewReader(doc), &meta); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	return meta, nil
}
