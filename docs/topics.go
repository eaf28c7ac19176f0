// Package docs embeds the wallet user documentation and serves it by topic.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.md
var content embed.FS

// Topic returns the markdown of one documentation topic. The special topic
// "*" expands to every topic concatenated.
func Topic(name string) (string, error) {
	if name == "*" {
		all, err := All()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}
	data, err := content.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(data), nil
}

// Topics concatenates the markdown of several topics, expanding "*".
func Topics(names ...string) (string, error) {
	var sb strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			all, err := All()
			if err != nil {
				return "", err
			}
			expanded = all
		}
		for _, t := range expanded {
			md, err := Topic(t)
			if err != nil {
				return "", err
			}
			sb.WriteString(md)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// All lists the available topics, sorted. The readme is the index, not a
// topic of its own.
func All() ([]string, error) {
	entries, err := fs.Glob(content, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, entry := range entries {
		name := strings.TrimSuffix(filepath.Base(entry), ".md")
		if name == "readme" {
			continue
		}
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics, nil
}
