package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LinkTable maps course -> classStand -> download URL. The "" classStand entry
// of a course is its fallback. Read-only after load.
type LinkTable map[string]map[string]string

func LoadLinks(path string) (LinkTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open link table: %w", err)
	}
	defer f.Close()
	return ParseLinks(f)
}

func ParseLinks(r io.Reader) (LinkTable, error) {
	var t LinkTable
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode link table: %w", err)
	}
	for course, byStand := range t {
		for stand, url := range byStand {
			if url == "" {
				return nil, fmt.Errorf("link table: empty url for course=%q classstand=%q", course, stand)
			}
		}
	}
	return t, nil
}

// Resolve returns the exact entry, else the course fallback, else ErrNoDownloadLink.
func (t LinkTable) Resolve(course, classStand string) (string, error) {
	byStand, ok := t[course]
	if !ok {
		return "", ErrNoDownloadLink
	}
	if url, ok := byStand[classStand]; ok && url != "" {
		return url, nil
	}
	if url, ok := byStand[""]; ok && url != "" {
		return url, nil
	}
	return "", ErrNoDownloadLink
}
