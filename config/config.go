package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ImportFolderPath  string `json:"importFolderPath"`
	CatalogBackupPath string `json:"catalogBackupPath"`
	DefaultMerchantID string `json:"defaultMerchantID"`
	PortalURL         string `json:"portalURL"`
	PortalUserID      string `json:"portalUserID"`
	PortalPassword    string `json:"portalPassword"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./pricebook_config.json"

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Config{DefaultMerchantID: "default"}
			return cfg, nil
		}
		return Config{DefaultMerchantID: "default"}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{DefaultMerchantID: "default"}, err
	}
	cfg = tempCfg

	if cfg.DefaultMerchantID == "" {
		cfg.DefaultMerchantID = "default"
	}

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if newCfg.DefaultMerchantID == "" {
		newCfg.DefaultMerchantID = "default"
	}

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
