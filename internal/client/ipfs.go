package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
)

type ipfsClientImpl struct {
	httpClient *http.Client
	apiURL     string
}

// NewIPFSClient returns a StorageBackend speaking the IPFS HTTP API
// (POST /api/v0/add, POST /api/v0/cat).
func NewIPFSClient(apiURL string) StorageBackend {
	return &ipfsClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiURL: apiURL,
	}
}

type ipfsAddResult struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

func (c *ipfsClientImpl) Add(ctx context.Context, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "blob")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/api/v0/add?cid-version=1", &buf)
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: ipfs add: %v", common.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: ipfs add status %d: %s", common.ErrStorageUnavailable, resp.StatusCode, string(b))
	}

	var result ipfsAddResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode ipfs add response: %w", err)
	}
	if result.Hash == "" {
		return "", fmt.Errorf("%w: ipfs add returned empty hash", common.ErrStorageUnavailable)
	}

	return result.Hash, nil
}

func (c *ipfsClientImpl) Cat(ctx context.Context, cid string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/api/v0/cat?arg="+cid, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ipfs cat: %v", common.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusInternalServerError || resp.StatusCode == http.StatusNotFound {
		// go-ipfs reports unknown CIDs as a 500 with an error payload
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: cid %s: %s", common.ErrNotFound, cid, string(b))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: ipfs cat status %d: %s", common.ErrStorageUnavailable, resp.StatusCode, string(b))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ipfs cat response: %w", err)
	}

	return data, nil
}
