package session

import (
	"os"

	json "github.com/goccy/go-json"

	"bgmix/internal/models"
	"bgmix/internal/providers"
	"bgmix/internal/services"
	"bgmix/internal/session/interfaces"
)

// snapshotFile is the on-disk shape of a session snapshot.
type snapshotFile struct {
	Sessions []*models.Session `json:"sessions"`
}

// FileManager persists session snapshots as zstd-compressed JSON,
// written to a temp file and renamed so a crash mid-write never leaves
// a truncated snapshot behind.
type FileManager struct {
	service    services.SessionServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.SessionServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := snapshotFile{Sessions: f.service.Snapshot()}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

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

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot snapshotFile
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		f.logger.Warnf(providers.TypeApp, "Session snapshot unreadable, starting empty: %s", err)
		return nil
	}

	f.service.Restore(snapshot.Sessions)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
