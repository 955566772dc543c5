package storage

import (
	"os"
	"path/filepath"
	"paywall/internal/providers"
	"paywall/internal/structures"
	"strings"
)

// FileStore persists each logical key as its own file under Dir.
// Writes go through a temp file with fsync and rename, so a crash
// mid-write leaves the previous value intact.
type FileStore struct {
	dir        string
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileStore(conf *structures.Config, compressor CompressorInterface, logger providers.Logger) (*FileStore, error) {
	if err := os.MkdirAll(conf.Storage.Dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		dir:        conf.Storage.Dir,
		compressor: compressor,
		logger:     logger,
	}, nil
}

func (fs *FileStore) path(key string) string {
	// Keys are fixed identifiers, but never trust them as path components.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(fs.dir, safe+".dat")
}

func (fs *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	val, err := fs.compressor.Decompress(data)
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (fs *FileStore) Set(key string, value []byte) error {
	data, err := fs.compressor.Compress(value)
	if err != nil {
		return err
	}

	fileName := fs.path(key)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (fs *FileStore) Remove(key string) error {
	err := os.Remove(fs.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (fs *FileStore) Close() {
	fs.compressor.Close()
}
