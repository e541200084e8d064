package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to vidsite! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.SiteName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.SiteName = strings.TrimSpace(name)

	// 2. Data API URL.
	apiPrompt := promptui.Prompt{
		Label:    "Data API URL",
		Default:  cfg.DataAPIURL,
		Validate: validateAPIURL,
	}
	apiURL, err := apiPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data api url: %w", err)
	}
	cfg.DataAPIURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 4. Export directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for static export",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 5. Shared assets.
	assetsPrompt := promptui.Prompt{
		Label:   "Shared assets directory",
		Default: cfg.AssetsDir,
	}
	assetsDir, err := assetsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("assets dir: %w", err)
	}
	cfg.AssetsDir = assetsDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if os.Getenv(EnvPrefix+"DATA_API_KEY") == "" {
		fmt.Printf("\nNote: Set %sDATA_API_KEY in your environment before running vidsite serve.\n", EnvPrefix)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateAPIURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a number")
	}
	if n < 1 || n > 65535 {
		return errors.New("must be between 1 and 65535")
	}
	return nil
}
