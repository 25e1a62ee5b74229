package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Provider tags the backend kind carried by a ProviderConfig.
type Provider string

// Supported backend kinds.
const (
	ProviderS3    Provider = "S3Storage"
	ProviderAzure Provider = "AzureStorage"
)

// S3Config holds credentials and addressing for an S3-compatible backend.
// Either Region or Endpoint must be set; everything else is optional.
type S3Config struct {
	Bucket          string
	AccessKeyID     string
	AccessSecretKey string
	Region          string
	Endpoint        string
	ForcePathStyle  bool
	PublicURL       string
}

// AzureConfig holds credentials and addressing for an Azure Blob container.
type AzureConfig struct {
	ConnectionString string
	Container        string
	PublicURL        string
}

// ProviderConfig is a closed tagged union over the supported backends.
// Exactly the variant matching Provider is populated; the other is nil.
type ProviderConfig struct {
	Provider Provider
	S3       *S3Config
	Azure    *AzureConfig
}

// providerConfigJSON is the flat wire format the config is persisted and
// exchanged in, e.g. {"provider":"S3Storage","bucket":"b","accessKeyId":...}.
type providerConfigJSON struct {
	Provider         Provider `json:"provider"`
	Bucket           string   `json:"bucket,omitempty"`
	AccessKeyID      string   `json:"accessKeyId,omitempty"`
	AccessSecretKey  string   `json:"accessSecretKey,omitempty"`
	Region           string   `json:"region,omitempty"`
	Endpoint         string   `json:"endpoint,omitempty"`
	ForcePathStyle   bool     `json:"forcePathStyle,omitempty"`
	ConnectionString string   `json:"connectionString,omitempty"`
	Container        string   `json:"container,omitempty"`
	PublicURL        string   `json:"publicUrl,omitempty"`
}

// MarshalJSON flattens the union into the wire format, emitting only the
// fields of the active variant.
func (c ProviderConfig) MarshalJSON() ([]byte, error) {
	flat := providerConfigJSON{Provider: c.Provider}
	switch c.Provider {
	case ProviderS3:
		if c.S3 == nil {
			return nil, errors.New("storage: S3 config missing for S3Storage provider")
		}
		flat.Bucket = c.S3.Bucket
		flat.AccessKeyID = c.S3.AccessKeyID
		flat.AccessSecretKey = c.S3.AccessSecretKey
		flat.Region = c.S3.Region
		flat.Endpoint = c.S3.Endpoint
		flat.ForcePathStyle = c.S3.ForcePathStyle
		flat.PublicURL = c.S3.PublicURL
	case ProviderAzure:
		if c.Azure == nil {
			return nil, errors.New("storage: Azure config missing for AzureStorage provider")
		}
		flat.ConnectionString = c.Azure.ConnectionString
		flat.Container = c.Azure.Container
		flat.PublicURL = c.Azure.PublicURL
	default:
		return nil, fmt.Errorf("storage: unknown provider %q", c.Provider)
	}
	return json.Marshal(flat)
}

// UnmarshalJSON parses the flat wire format and populates exactly one
// variant, so fields can never leak across the wrong tag.
func (c *ProviderConfig) UnmarshalJSON(data []byte) error {
	var flat providerConfigJSON
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	switch flat.Provider {
	case ProviderS3:
		*c = ProviderConfig{
			Provider: ProviderS3,
			S3: &S3Config{
				Bucket:          flat.Bucket,
				AccessKeyID:     flat.AccessKeyID,
				AccessSecretKey: flat.AccessSecretKey,
				Region:          flat.Region,
				Endpoint:        flat.Endpoint,
				ForcePathStyle:  flat.ForcePathStyle,
				PublicURL:       flat.PublicURL,
			},
		}
	case ProviderAzure:
		*c = ProviderConfig{
			Provider: ProviderAzure,
			Azure: &AzureConfig{
				ConnectionString: flat.ConnectionString,
				Container:        flat.Container,
				PublicURL:        flat.PublicURL,
			},
		}
	default:
		return fmt.Errorf("storage: unknown provider %q", flat.Provider)
	}
	return nil
}

// Validate checks that the active variant carries every required field.
func (c *ProviderConfig) Validate() error {
	switch c.Provider {
	case ProviderS3:
		if c.S3 == nil {
			return errors.New("storage: S3 config missing")
		}
		if c.S3.Bucket == "" {
			return errors.New("storage: S3 bucket is required")
		}
		if c.S3.AccessKeyID == "" || c.S3.AccessSecretKey == "" {
			return errors.New("storage: S3 credentials are required")
		}
		if c.S3.Region == "" && c.S3.Endpoint == "" {
			return errors.New("storage: either S3 region or endpoint must be provided")
		}
	case ProviderAzure:
		if c.Azure == nil {
			return errors.New("storage: Azure config missing")
		}
		if c.Azure.ConnectionString == "" {
			return errors.New("storage: Azure connection string is required")
		}
		if c.Azure.Container == "" {
			return errors.New("storage: Azure container is required")
		}
	default:
		return fmt.Errorf("storage: unknown provider %q", c.Provider)
	}
	return nil
}

// Build constructs the backend adapter for the config's tag.
func Build(cfg *ProviderConfig) (Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderS3:
		return NewS3Storage(cfg.S3)
	case ProviderAzure:
		return NewAzureStorage(cfg.Azure)
	default:
		return nil, fmt.Errorf("storage: unknown provider %q", cfg.Provider)
	}
}
