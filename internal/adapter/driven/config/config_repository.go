package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// Load monta a configuração final: padrões, depois o arquivo (se houver) e por fim as
// variáveis de ambiente.
func Load(repo repository.ConfigRepository, filePath string, lookup func(string) (string, bool)) (*types.Config, error) {
	cfg := types.DefaultConfig()

	if filePath != "" {
		fileCfg, err := repo.LoadConfigFile(filePath)
		if err != nil {
			return nil, err
		}
		Merge(cfg, fileCfg)
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	ApplyEnv(cfg, lookup)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge copia para dst todos os campos não vazios de src.
func Merge(dst, src *types.Config) {
	if src == nil {
		return
	}
	setString(&dst.Server.Host, src.Server.Host)
	setString(&dst.Server.Port, src.Server.Port)
	setString(&dst.Server.ShutdownTimeout, src.Server.ShutdownTimeout)
	setString(&dst.Server.SessionTTL, src.Server.SessionTTL)

	setString(&dst.SMTP.Host, src.SMTP.Host)
	if src.SMTP.Port != 0 {
		dst.SMTP.Port = src.SMTP.Port
	}
	setString(&dst.SMTP.User, src.SMTP.User)
	setString(&dst.SMTP.Pass, src.SMTP.Pass)
	setString(&dst.SMTP.From, src.SMTP.From)
	setString(&dst.SMTP.TLSPolicy, src.SMTP.TLSPolicy)
	setString(&dst.SMTP.DemoDelay, src.SMTP.DemoDelay)
	if src.SMTP.SkipVerify {
		dst.SMTP.SkipVerify = true
	}

	setString(&dst.Demo.Email, src.Demo.Email)
	setString(&dst.Demo.Password, src.Demo.Password)

	setString(&dst.Archive.Bucket, src.Archive.Bucket)
	setString(&dst.Archive.Prefix, src.Archive.Prefix)
	setString(&dst.Archive.Profile, src.Archive.Profile)
	setString(&dst.Archive.Region, src.Archive.Region)

	if src.Sample.Seed != 0 {
		dst.Sample.Seed = src.Sample.Seed
	}
	if src.Sample.Transactions > 0 {
		dst.Sample.Transactions = src.Sample.Transactions
	}
	if src.Sample.Customers > 0 {
		dst.Sample.Customers = src.Sample.Customers
	}
	if src.Sample.Withdrawals > 0 {
		dst.Sample.Withdrawals = src.Sample.Withdrawals
	}

	setString(&dst.Currency, src.Currency)
	setString(&dst.MailRelayURL, src.MailRelayURL)
	setString(&dst.LogLevel, src.LogLevel)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
