package statetree

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// SnapshotReader and SnapshotWriter narrow the Azure blob client down to the
// two operations snapshot persistence needs. Either interface can be
// satisfied by an in-memory fake instead of a storage account.
type SnapshotReader interface {
	DownloadSnapshot(ctx context.Context, name string) ([]byte, error)
}

type SnapshotWriter interface {
	UploadSnapshot(ctx context.Context, name string, data []byte) error
}

// SnapshotStore is the read/write union most callers want.
type SnapshotStore interface {
	SnapshotReader
	SnapshotWriter
}

// AzureBlobSnapshotStore persists MemoryAdapter snapshots as block blobs
// in a single container. It exists so deployments that want a durable,
// out-of-process copy of the reference adapter's state have somewhere to
// put it; the compressed state tree itself remains an external collaborator
// and is never implemented here.
type AzureBlobSnapshotStore struct {
	client    *azblob.Client
	container string
}

// NewAzureBlobSnapshotStore wraps an already-constructed azblob.Client.
// Constructing the client (credential selection, service URL) is left to
// the caller.
func NewAzureBlobSnapshotStore(client *azblob.Client, container string) *AzureBlobSnapshotStore {
	return &AzureBlobSnapshotStore{client: client, container: container}
}

// UploadSnapshot implements SnapshotWriter. It overwrites any existing blob
// of the same name: snapshots are whole-state dumps, not logs, so there is
// no append semantics to preserve.
func (s *AzureBlobSnapshotStore) UploadSnapshot(ctx context.Context, name string, data []byte) error {
	_, err := s.client.UploadBuffer(ctx, s.container, name, data, nil)
	if err != nil {
		return fmt.Errorf("statetree: uploading snapshot %q: %w", name, err)
	}
	return nil
}

// DownloadSnapshot implements SnapshotReader.
func (s *AzureBlobSnapshotStore) DownloadSnapshot(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		return nil, fmt.Errorf("statetree: downloading snapshot %q: %w", name, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("statetree: reading snapshot %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// recordsSnapshot is the CBOR-encoded shape persisted by Snapshot and read
// back by Restore.
type recordsSnapshot struct {
	Records []recordEntry `cbor:"1,keyasint"`
}

type recordEntry struct {
	Address [32]byte `cbor:"1,keyasint"`
	Data    []byte   `cbor:"2,keyasint"`
}

// Snapshot encodes the adapter's current records and uploads them to store
// under name.
func (m *MemoryAdapter) Snapshot(ctx context.Context, store SnapshotWriter, name string) error {
	m.mu.RLock()
	snap := recordsSnapshot{Records: make([]recordEntry, 0, len(m.records))}
	for addr, data := range m.records {
		snap.Records = append(snap.Records, recordEntry{Address: addr, Data: data})
	}
	m.mu.RUnlock()

	encoded, err := MarshalRecord(snap)
	if err != nil {
		return fmt.Errorf("statetree: encoding snapshot: %w", err)
	}
	return store.UploadSnapshot(ctx, name, encoded)
}

// Restore replaces the adapter's records with the contents of the named
// snapshot. Any records held before the call are discarded.
func (m *MemoryAdapter) Restore(ctx context.Context, store SnapshotReader, name string) error {
	encoded, err := store.DownloadSnapshot(ctx, name)
	if err != nil {
		return err
	}
	var snap recordsSnapshot
	if err := UnmarshalRecord(encoded, &snap); err != nil {
		return fmt.Errorf("statetree: decoding snapshot: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[[32]byte][]byte, len(snap.Records))
	for _, r := range snap.Records {
		m.records[r.Address] = r.Data
	}
	return nil
}
