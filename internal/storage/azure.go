package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureStorage implements Storage against one Azure Blob Storage container.
type AzureStorage struct {
	client    *azblob.Client
	container string
	publicURL string
}

// NewAzureStorage builds the azblob client from a connection string.
func NewAzureStorage(cfg *AzureConfig) (*AzureStorage, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("azure: create client: %w", err)
	}
	return &AzureStorage{
		client:    client,
		container: cfg.Container,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

func (a *AzureStorage) blobClient(key string) *blob.Client {
	return a.client.ServiceClient().NewContainerClient(a.container).NewBlobClient(key)
}

// Upload stores data under key with the given content type and returns the
// blob's public URL (the configured override wins over the account URL).
func (a *AzureStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := a.client.UploadBuffer(ctx, a.container, key, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
	})
	if err != nil {
		return "", fmt.Errorf("azure: upload blob %q: %w", key, err)
	}
	if a.publicURL != "" {
		return a.publicURL + "/" + key, nil
	}
	return a.blobClient(key).URL(), nil
}

// Download fetches the blob body; byteRange is forwarded as an HTTP range so
// only the requested bytes are transferred.
func (a *AzureStorage) Download(ctx context.Context, key string, byteRange *ByteRange) (*DownloadResult, error) {
	opts := &azblob.DownloadStreamOptions{}
	if byteRange != nil {
		// Count 0 requests everything from Offset to the end of the blob.
		opts.Range = blob.HTTPRange{Offset: byteRange.Offset, Count: byteRange.Count}
	}

	resp, err := a.client.DownloadStream(ctx, a.container, key, opts)
	if err != nil {
		return nil, a.normalizeError("download blob", key, err)
	}

	res := &DownloadResult{Body: resp.Body}
	if resp.ContentLength != nil {
		res.ContentLength = *resp.ContentLength
	}
	if resp.ContentType != nil {
		res.ContentType = *resp.ContentType
	}
	return res, nil
}

// Exists reports whether the blob is present.
func (a *AzureStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		norm := a.normalizeError("get properties", key, err)
		if errors.Is(norm, ErrNotFound) {
			return false, nil
		}
		return false, norm
	}
	return true, nil
}

// Properties fetches blob metadata without transferring the body.
func (a *AzureStorage) Properties(ctx context.Context, key string) (*Properties, error) {
	resp, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		return nil, a.normalizeError("get properties", key, err)
	}

	props := &Properties{}
	if resp.ContentLength != nil {
		props.ContentLength = *resp.ContentLength
	}
	if resp.ContentType != nil {
		props.ContentType = *resp.ContentType
	}
	return props, nil
}

// Delete removes the blob at key.
func (a *AzureStorage) Delete(ctx context.Context, key string) error {
	if _, err := a.client.DeleteBlob(ctx, a.container, key, nil); err != nil {
		return fmt.Errorf("azure: delete blob %q: %w", key, err)
	}
	return nil
}

// List returns the keys of all blobs under prefix.
func (a *AzureStorage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{Prefix: to.Ptr(prefix)})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("azure: list %q: %w", prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				keys = append(keys, *item.Name)
			}
		}
	}
	return keys, nil
}

// normalizeError maps missing-blob responses to ErrNotFound and wraps
// everything else with operation context.
func (a *AzureStorage) normalizeError(op, key string, err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return fmt.Errorf("azure: %s %q: %w", op, key, ErrNotFound)
	}
	return fmt.Errorf("azure: %s %q: %w", op, key, err)
}
