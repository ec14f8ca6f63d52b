package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PlayerID   string
	PlayerFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("POIRE_SERVER", "http://localhost:8080"),
		PlayerID:   os.Getenv("POIRE_PLAYER"),
		PlayerFile: getEnvOrDefault("POIRE_PLAYER_FILE", defaultPlayerFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadPlayer loads the saved player id from file if not already set
func (c *Config) LoadPlayer() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.PlayerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No saved player is fine
		}
		return err
	}

	c.PlayerID = strings.TrimSpace(string(data))
	return nil
}

// SavePlayer saves the player id to the player file
func (c *Config) SavePlayer(id string) error {
	c.PlayerID = id

	dir := filepath.Dir(c.PlayerFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerFile, []byte(id), 0600)
}

// ClearPlayer removes the saved player file
func (c *Config) ClearPlayer() error {
	c.PlayerID = ""
	if err := os.Remove(c.PlayerFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultPlayerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".poire/player"
	}
	return filepath.Join(home, ".poire", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
