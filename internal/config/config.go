// Package config loads the engine's settings from an INI-style file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Config holds the parsed settings, grouped by section.
type Config struct {
	settings map[string]map[string]string
	filePath string
	mu       sync.RWMutex
}

var (
	globalConfig *Config
	once         sync.Once
)

// Initialize loads the global configuration from configPath, creating a
// default file if none exists yet. A sibling "<name>.local.cfg" is loaded
// afterward, if present, and overrides the base file key by key.
func Initialize(configPath string) error {
	var err error
	once.Do(func() {
		globalConfig, err = loadConfig(configPath)
		if err != nil {
			return
		}
		localPath := localConfigPath(configPath)
		if _, statErr := os.Stat(localPath); statErr == nil {
			_ = globalConfig.loadOverrides(localPath)
		}
	})
	return err
}

// New builds a standalone Config, independent of the package-level global.
// Used by tests and by embedders that want more than one engine instance
// in the same process, each with its own settings.
func New(configPath string) (*Config, error) {
	return loadConfig(configPath)
}

func localConfigPath(base string) string {
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".local" + ext
}

func loadConfig(filePath string) (*Config, error) {
	c := &Config{
		settings: make(map[string]map[string]string),
		filePath: filePath,
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.createDefaults()
		if err := c.saveToFile(); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := parseInto(file, c.settings); err != nil {
		return nil, err
	}
	c.fillDefaults()
	return c, nil
}

func (c *Config) loadOverrides(filePath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return parseInto(file, c.settings)
}

func parseInto(r *os.File, settings map[string]map[string]string) error {
	scanner := bufio.NewScanner(r)
	currentSection := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = line[1 : len(line)-1]
			if settings[currentSection] == nil {
				settings[currentSection] = make(map[string]string)
			}
			continue
		}

		if idx := strings.Index(line, "="); idx >= 0 && currentSection != "" {
			key := strings.TrimSpace(line[:idx])
			value := strings.TrimSpace(line[idx+1:])
			settings[currentSection][key] = value
		}
	}
	return scanner.Err()
}

// createDefaults populates every section with its default values.
func (c *Config) createDefaults() {
	c.settings["Limits"] = map[string]string{
		"max_string_bytes": "4096",
		"max_array_len":    "1000000",
		"max_call_args":    "8",
		"max_paren_depth":  "64",
	}
	c.settings["REPL"] = map[string]string{
		"history_file": ".itl_history",
		"prompt":       "] ",
	}
	c.settings["Debug"] = map[string]string{
		"enable_debug_logging": "false",
		"log_level":             "INFO",
		"log_file":              "itl-debug.log",
		"max_log_size_mb":       "10",
		"log_rotation_count":    "3",
		"log_splitter":          "false",
		"log_evaluator":         "false",
		"log_executor":          "false",
		"log_driver":            "false",
		"log_forwardref":        "false",
		"log_host":              "false",
		"log_repl":              "false",
		"log_config":            "false",
	}
}

// fillDefaults adds any default key missing from a loaded file, so that
// upgrading the binary never crashes on an old config file.
func (c *Config) fillDefaults() {
	defaults := &Config{settings: make(map[string]map[string]string)}
	defaults.createDefaults()

	for section, keys := range defaults.settings {
		if c.settings[section] == nil {
			c.settings[section] = make(map[string]string)
		}
		for k, v := range keys {
			if _, exists := c.settings[section][k]; !exists {
				c.settings[section][k] = v
			}
		}
	}
}

func (c *Config) saveToFile() error {
	dir := filepath.Dir(c.filePath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(c.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	file.WriteString("; ITL engine configuration\n")
	file.WriteString("; generated automatically - edit with care\n\n")

	for _, section := range []string{"Limits", "REPL", "Debug"} {
		settings, exists := c.settings[section]
		if !exists {
			continue
		}
		fmt.Fprintf(file, "[%s]\n", section)
		for key, value := range settings {
			fmt.Fprintf(file, "%s = %s\n", key, value)
		}
		file.WriteString("\n")
	}
	return nil
}

func (c *Config) getString(section, key, defaultValue string) string {
	if c == nil {
		return defaultValue
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if sectionMap, ok := c.settings[section]; ok {
		if value, ok := sectionMap[key]; ok {
			return value
		}
	}
	return defaultValue
}

func (c *Config) GetString(section, key, defaultValue string) string {
	return c.getString(section, key, defaultValue)
}

func (c *Config) GetInt(section, key string, defaultValue int) int {
	str := c.getString(section, key, "")
	if str == "" {
		return defaultValue
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return defaultValue
}

func (c *Config) GetBool(section, key string, defaultValue bool) bool {
	str := c.getString(section, key, "")
	if str == "" {
		return defaultValue
	}
	if v, err := strconv.ParseBool(str); err == nil {
		return v
	}
	return defaultValue
}

// Package-level helpers operate on the global Config set up by Initialize.
// They silently fall back to defaultValue when Initialize was never called,
// matching the teacher's package-level configuration getters.

func GetString(section, key, defaultValue string) string {
	return globalConfig.GetString(section, key, defaultValue)
}

func GetInt(section, key string, defaultValue int) int {
	return globalConfig.GetInt(section, key, defaultValue)
}

func GetBool(section, key string, defaultValue bool) bool {
	return globalConfig.GetBool(section, key, defaultValue)
}
