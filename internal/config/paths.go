package config

import (
	"os"
	"path/filepath"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	DataHome   string // ~/.local/share/spritepad
	OutputDir  string // ~/.local/share/spritepad/output
	DBPath     string // ~/.local/share/spritepad/exports.db
	ConfigPath string // ~/.config/spritepad/config.yaml
}

// DefaultPaths returns the default paths configuration
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dataHome := filepath.Join(home, ".local", "share", "spritepad")

	return &Paths{
		DataHome:   dataHome,
		OutputDir:  filepath.Join(dataHome, "output"),
		DBPath:     filepath.Join(dataHome, "exports.db"),
		ConfigPath: filepath.Join(home, ".config", "spritepad", "config.yaml"),
	}, nil
}
