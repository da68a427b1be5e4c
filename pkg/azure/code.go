package azure

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/hashicorp/go-multierror"

	"amlsubmit/models"
)

const codeVersion = "1"

// GetCode returns the ARM id of the code snapshot with the given name
func (c *Client) GetCode(ctx context.Context, ws *models.Workspace, name string) (string, error) {
	resp, err := c.CodeVersionsClient.Get(ctx, ws.ResourceGroup, ws.Name, name, codeVersion, nil)
	if err != nil {
		return "", notFound(err, "code", name)
	}

	return deref(resp.ID), nil
}

// UploadCode copies the staging snapshot into the datastore container under
// LocalUpload/<digest>/ and registers it as a code version named after the digest.
func (c *Client) UploadCode(ctx context.Context, ws *models.Workspace, ds *models.Datastore, staging *models.StagingResult, parallelism int) (string, error) {
	prefix := path.Join("LocalUpload", staging.Digest, filepath.Base(staging.Dir))

	err := c.uploadFiles(ctx, ds, staging, prefix, parallelism)
	if err != nil {
		return "", err
	}

	codeURI := ds.BlobServiceURL() + path.Join(ds.ContainerName, prefix)

	resp, err := c.CodeVersionsClient.CreateOrUpdate(ctx, ws.ResourceGroup, ws.Name, staging.Digest, codeVersion, armmachinelearning.CodeVersion{
		Properties: &armmachinelearning.CodeVersionProperties{
			CodeURI:     to.Ptr(codeURI),
			IsAnonymous: to.Ptr(true),
		},
	}, nil)
	if err != nil {
		return "", err
	}

	id := deref(resp.ID)
	if id == "" {
		id = fmt.Sprintf("%s/codes/%s/versions/%s", ws.ID, staging.Digest, codeVersion)
	}

	return id, nil
}

func (c *Client) uploadFiles(ctx context.Context, ds *models.Datastore, staging *models.StagingResult, prefix string, parallelism int) error {
	blobClient, err := azblob.NewClient(ds.BlobServiceURL(), c.credential, nil)
	if err != nil {
		return err
	}

	if parallelism < 1 {
		parallelism = 1
	}

	wg := sync.WaitGroup{}
	mut := sync.Mutex{}
	sem := make(chan struct{}, parallelism)
	var anyErr error

	for _, rel := range staging.Files {
		wg.Add(1)
		go func(rel string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			err := uploadFile(ctx, blobClient, ds.ContainerName, path.Join(prefix, filepath.ToSlash(rel)), filepath.Join(staging.Dir, rel))
			if err != nil {
				mut.Lock()
				anyErr = multierror.Append(anyErr, fmt.Errorf("upload %s: %w", rel, err))
				mut.Unlock()
			}
		}(rel)
	}
	wg.Wait()

	return anyErr
}

func uploadFile(ctx context.Context, client *azblob.Client, container, blobName, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = client.UploadFile(ctx, container, blobName, f, nil)
	return err
}
