package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"planningapp/src-server/ical"
	"planningapp/src-server/model"
)

// File helpers used by the settings export flow: render to a temp file first
// so a failed export never leaves a truncated file behind.

func SaveICS(path string, events []model.Event) error {
	return save(path, func(f *os.File) error {
		if cerr := ical.MarshalTo(f, events); cerr != nil {
			return cerr
		}
		return nil
	})
}

func SaveCSV(path string, events []model.Event, loc *time.Location) error {
	return save(path, func(f *os.File) error {
		return WriteCSV(f, events, loc)
	})
}

func SaveJSON(path string, events []model.Event) error {
	return save(path, func(f *os.File) error {
		return WriteJSON(f, events)
	})
}

func save(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
