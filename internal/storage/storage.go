// Package storage persists collected record sets as indented JSON files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/playamaps/brc-directory/internal/record"
)

// SaveCamps writes camps to path as JSON.
func SaveCamps(path string, camps []*record.Camp) error {
	return saveJSON(path, camps)
}

// LoadCamps reads a camps JSON file. A missing file is not an error; it
// yields an empty list.
func LoadCamps(path string) ([]*record.Camp, error) {
	var camps []*record.Camp
	if err := loadJSON(path, &camps); err != nil {
		return nil, err
	}
	return camps, nil
}

// SaveArt writes artworks to path as JSON.
func SaveArt(path string, art []*record.Art) error {
	return saveJSON(path, art)
}

// LoadArt reads an artworks JSON file.
func LoadArt(path string) ([]*record.Art, error) {
	var art []*record.Art
	if err := loadJSON(path, &art); err != nil {
		return nil, err
	}
	return art, nil
}

// SaveEvents writes events to path as JSON.
func SaveEvents(path string, events []*record.Event) error {
	return saveJSON(path, events)
}

// LoadEvents reads an events JSON file.
func LoadEvents(path string) ([]*record.Event, error) {
	var events []*record.Event
	if err := loadJSON(path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// saveJSON writes v to path via a temp file and rename so readers never see
// a partial file.
func saveJSON(path string, v interface{}) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing records file: %w", err)
	}
	return nil
}

func loadJSON(path string, v interface{}) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading records: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing records: %w", err)
	}
	return nil
}
