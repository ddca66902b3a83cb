package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .wastewatch.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to wastewatch! Let's configure your server.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Responder mode.
	responderPrompt := promptui.Select{
		Label: "Select sampling responder",
		Items: []string{
			"placeholder — canned deterministic answers, no model needed",
			"session     — forward sampling requests to the connected MCP client",
			"none        — disable sampling, tools use metric fallbacks",
		},
	}
	responderIdx, _, err := responderPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("responder selection: %w", err)
	}
	responders := []string{"placeholder", "session", "none"}
	responder := responders[responderIdx]

	// 2. Data directory.
	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory for the SQLite database",
		Default: defaults.DataDir,
	}
	dataDir, err := dataDirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Sampling timeout.
	timeoutPrompt := promptui.Prompt{
		Label:    "Sampling timeout in seconds",
		Default:  strconv.Itoa(defaults.SamplingTimeoutSeconds),
		Validate: validatePositiveInt,
	}
	timeoutStr, err := timeoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sampling timeout: %w", err)
	}
	timeout, _ := strconv.Atoi(timeoutStr)

	// 4. HTTP port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP server port",
		Default:  strconv.Itoa(defaults.HTTP.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("http port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := &Config{
		DataDir:                dataDir,
		Responder:              responder,
		SamplingTimeoutSeconds: timeout,
		FixturesDir:            defaults.FixturesDir,
		HTTP: HTTPConfig{
			Port:     port,
			AllowAll: defaults.HTTP.AllowAll,
		},
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive integer")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}
