// Package apikeys resolves provider API keys from the key file, environment
// variables, or an interactive prompt.
package apikeys

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/term"
)

const apiKeysFile = ".docify/api_keys.json"

var (
	apiKeys     map[string]string
	apiKeysOnce sync.Once
	apiKeysMu   sync.Mutex
)

// GetAPIKey retrieves the API key for the specified provider. It checks the
// in-memory cache, then the key file, then the <PROVIDER>_API_KEY environment
// variable, and finally prompts the user if interactive mode is enabled.
func GetAPIKey(provider string, interactive bool) (string, error) {
	apiKeysOnce.Do(func() {
		apiKeys = make(map[string]string)
		loadedKeys, err := loadAPIKeys()
		if err == nil {
			apiKeysMu.Lock()
			for k, v := range loadedKeys {
				apiKeys[k] = v
			}
			apiKeysMu.Unlock()
		} else {
			fmt.Printf("Warning: Could not load API keys from file: %v\n", err)
		}
	})

	apiKeysMu.Lock()
	key, ok := apiKeys[provider]
	apiKeysMu.Unlock()

	if ok && key != "" {
		return key, nil
	}

	envVar := strings.ToUpper(provider) + "_API_KEY"
	key = os.Getenv(envVar)
	if key != "" {
		apiKeysMu.Lock()
		apiKeys[provider] = key
		apiKeysMu.Unlock()
		return key, nil
	}

	if interactive {
		key = promptForAPIKey(provider)
		if key != "" {
			apiKeysMu.Lock()
			apiKeys[provider] = key
			saveAPIKeys(apiKeys)
			apiKeysMu.Unlock()
			return key, nil
		}
	}

	return "", fmt.Errorf("API key for %s not found (set %s or add it to ~/%s)", provider, envVar, apiKeysFile)
}

// promptForAPIKey reads the key from the terminal without echoing it.
func promptForAPIKey(provider string) string {
	fmt.Printf("Enter API key for %s: ", provider)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func loadAPIKeys() (map[string]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get user home directory: %w", err)
	}
	filePath := filepath.Join(homeDir, apiKeysFile)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("could not read API keys file: %w", err)
	}

	var keys map[string]string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("could not unmarshal API keys: %w", err)
	}
	return keys, nil
}

func saveAPIKeys(keys map[string]string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not get user home directory: %w", err)
	}
	filePath := filepath.Join(homeDir, apiKeysFile)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal API keys: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("could not write API keys file: %w", err)
	}
	return nil
}
