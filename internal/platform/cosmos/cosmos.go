package cosmos

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
)

// 必須の環境変数。どれか欠けたらネットワークに出る前に ConfigError で落とす。
const (
	EnvKey       = "COSMOS_KEY"
	EnvEndpoint  = "COSMOS_ENDPOINT"
	EnvDatabase  = "COSMOS_DATABASE"
	EnvContainer = "COSMOS_CONTAINER"

	// 任意。デバイスカタログ用コンテナ名（既定 "products"）。
	EnvDevicesContainer = "COSMOS_DEVICES_CONTAINER"

	defaultDevicesContainer = "products"
)

// ConfigError reports required environment values that are absent. It is a
// distinct type so callers can branch on it without inspecting messages.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

type Config struct {
	Key              string
	Endpoint         string
	Database         string
	Container        string
	DevicesContainer string
}

// FromEnv reads the Cosmos settings. Every missing required variable is
// reported, not just the first.
func FromEnv() (Config, error) {
	cfg := Config{
		Key:              os.Getenv(EnvKey),
		Endpoint:         os.Getenv(EnvEndpoint),
		Database:         os.Getenv(EnvDatabase),
		Container:        os.Getenv(EnvContainer),
		DevicesContainer: os.Getenv(EnvDevicesContainer),
	}
	if cfg.DevicesContainer == "" {
		cfg.DevicesContainer = defaultDevicesContainer
	}

	var missing []string
	for _, v := range []struct {
		name, value string
	}{
		{EnvKey, cfg.Key},
		{EnvEndpoint, cfg.Endpoint},
		{EnvDatabase, cfg.Database},
		{EnvContainer, cfg.Container},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, &ConfigError{Missing: missing}
	}
	return cfg, nil
}

// Provider is a caller-owned handle to the Cosmos client. The client is
// built exactly once, on first use; concurrent first requests share the
// same construction via sync.Once. The outcome (client or error) is cached
// for the life of the provider.
type Provider struct {
	once   sync.Once
	client *azcosmos.Client
	cfg    Config
	err    error
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) connect() {
	p.cfg, p.err = FromEnv()
	if p.err != nil {
		return
	}
	cred, err := azcosmos.NewKeyCredential(p.cfg.Key)
	if err != nil {
		p.err = fmt.Errorf("cosmos credential: %w", err)
		return
	}
	client, err := azcosmos.NewClientWithKey(p.cfg.Endpoint, cred, nil)
	if err != nil {
		p.err = fmt.Errorf("cosmos client: %w", err)
		return
	}
	p.client = client
}

// LoansContainer returns the container holding loan documents.
func (p *Provider) LoansContainer() (*azcosmos.ContainerClient, error) {
	p.once.Do(p.connect)
	if p.err != nil {
		return nil, p.err
	}
	return p.client.NewContainer(p.cfg.Database, p.cfg.Container)
}

// DevicesContainer returns the container holding the device catalogue.
func (p *Provider) DevicesContainer() (*azcosmos.ContainerClient, error) {
	p.once.Do(p.connect)
	if p.err != nil {
		return nil, p.err
	}
	return p.client.NewContainer(p.cfg.Database, p.cfg.DevicesContainer)
}
