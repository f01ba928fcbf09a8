package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIPFSServer implements just enough of the IPFS HTTP API for the client.
func fakeIPFSServer(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()

	var objects sync.Map
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v0/add", func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		sum := sha256.Sum256(data)
		cid := "bafy" + hex.EncodeToString(sum[:8])
		objects.Store(cid, data)

		fmt.Fprintf(w, `{"Name":"blob","Hash":%q,"Size":"%d"}`, cid, len(data))
	})

	mux.HandleFunc("/api/v0/cat", func(w http.ResponseWriter, r *http.Request) {
		cid := r.URL.Query().Get("arg")
		data, ok := objects.Load(cid)
		if !ok {
			http.Error(w, `{"Message":"merkledag: not found"}`, http.StatusInternalServerError)
			return
		}
		w.Write(data.([]byte))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &objects
}

func TestIPFSClient_AddCatRoundTrip(t *testing.T) {
	srv, _ := fakeIPFSServer(t)
	c := NewIPFSClient(srv.URL)
	ctx := context.Background()

	payload := []byte("ciphertext bytes")

	cid, err := c.Add(ctx, payload)
	require.NoError(t, err)
	require.NotEmpty(t, cid)

	got, err := c.Cat(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestIPFSClient_CatUnknownCID(t *testing.T) {
	srv, _ := fakeIPFSServer(t)
	c := NewIPFSClient(srv.URL)

	_, err := c.Cat(context.Background(), "bafyunknown")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestIPFSClient_NodeUnreachable(t *testing.T) {
	c := NewIPFSClient("http://127.0.0.1:1") // nothing listens here
	ctx := context.Background()

	_, err := c.Add(ctx, []byte("payload"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = c.Cat(ctx, "bafyanything")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}
