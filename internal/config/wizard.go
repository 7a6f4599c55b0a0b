package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentDirCandidates are directories checked for existing Markdown pages.
var contentDirCandidates = []string{"content", "pages", "docs"}

// detectContentDir returns the first candidate directory holding Markdown
// files, or "".
func detectContentDir() string {
	for _, dir := range contentDirCandidates {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
		if len(matches) > 0 {
			return dir
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to pageshell! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	contentDir := detectContentDir()
	if contentDir != "" {
		fmt.Printf("Detected Markdown pages in %s/\n\n", contentDir)
	}

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.SiteName,
	}
	siteName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.SiteName = strings.TrimSpace(siteName)

	// 2. Renderer.
	rendererPrompt := promptui.Select{
		Label: "Select Markdown renderer",
		Items: []string{
			"builtin  - headings, emphasis, code, links and lists",
			"goldmark - full CommonMark with tables and highlighting",
		},
	}
	rendererIdx, _, err := rendererPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("renderer selection: %w", err)
	}
	cfg.Renderer = []Renderer{RendererBuiltin, RendererGoldmark}[rendererIdx]

	// 3. Content directory.
	contentPrompt := promptui.Prompt{
		Label:   "Content directory (leave blank for the built-in pages)",
		Default: contentDir,
	}
	dir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(dir)

	// 4. Extra exclude patterns.
	if cfg.ContentDir != "" {
		excludePrompt := promptui.Prompt{
			Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
			Default: "",
		}
		excludeStr, err := excludePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("exclude patterns: %w", err)
		}
		cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)
	}

	// 5. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 6. Server port.
	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
