// Copyright COAZ Digital, 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text
// files: the filename is the key name, the trimmed contents the value.
// This keeps tokens out of the YAML config and out of version control.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coazdigital/coaz-assist/pkg/types"
)

// Recognized key files.
const (
	KeyInferenceAPI = "inference-api-key"
	KeyAdminToken   = "admin-token"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Unreadable files
// produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply copies recognized secrets into the config, without overriding
// values already set there.
func Apply(secrets map[string]string, cfg *types.AppConfig) {
	if cfg.Inference.APIKey == "" {
		cfg.Inference.APIKey = secrets[KeyInferenceAPI]
	}
	if cfg.Server.AdminToken == "" {
		cfg.Server.AdminToken = secrets[KeyAdminToken]
	}
}
