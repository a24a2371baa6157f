package source

import (
	"bytes"
	"fmt"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/ports"
)

// MemorySource реализует интерфейс FileSource для файлов, хранящихся в памяти.
type MemorySource struct {
	files map[string][]byte
}

// NewMemorySource создает новый экземпляр MemorySource.
func NewMemorySource(files map[string][]byte) ports.FileSource {
	return &MemorySource{files: files}
}

// Open возвращает копию содержимого файла path.
func (s *MemorySource) Open(path string) (domain.UploadFile, func() error, error) {
	data, ok := s.files[path]
	if !ok {
		return domain.UploadFile{}, nil, fmt.Errorf("файл %s не найден", path)
	}

	// Копия, чтобы загрузка не меняла исходные данные
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	return domain.UploadFile{Name: path, Content: bytes.NewReader(dataCopy)}, func() error { return nil }, nil
}
