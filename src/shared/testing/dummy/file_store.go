package dummy

import (
	"context"
	"sync"

	"github.com/voxsplit/voxsplit-be/src/shared/lib/cloudstorage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

const fileStoreHost = "https://storage.example.com/test-bucket/"

var _ cloudstorage.FileStore = &FileStore{}

func NewFileStore() *FileStore {
	return &FileStore{
		Files: map[string][]byte{},
	}
}

type FileStore struct {
	mutex sync.RWMutex
	Files map[string][]byte
}

func (f *FileStore) GetFile(_ context.Context, url string) ([]byte, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	contents, ok := f.Files[url]
	if !ok {
		return nil, mark.Message(marks.NotFound, "No file stored at "+url)
	}

	return contents, nil
}

func (f *FileStore) WriteFile(_ context.Context, url string, fileContent []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.Files[url] = fileContent
	return nil
}

func (f *FileStore) FileURL(objectPath string) string {
	return fileStoreHost + objectPath
}
