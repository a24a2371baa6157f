package source

import (
	"os"
	"path/filepath"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/ports"

	"golang.org/x/xerrors"
)

// CliSource реализует интерфейс FileSource для файлов, переданных в командной строке
// или введенных в поле выбора файлов.
type CliSource struct{}

// NewCliSource создает новый экземпляр CliSource.
func NewCliSource() ports.FileSource {
	return &CliSource{}
}

// Open открывает файл по указанному пути. Имя файла в форме — базовое имя пути.
// Вызывающий обязан вызвать возвращенную функцию закрытия.
func (s *CliSource) Open(path string) (domain.UploadFile, func() error, error) {
	if path == "" {
		return domain.UploadFile{}, nil, xerrors.New("не указан путь к файлу")
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.UploadFile{}, nil, xerrors.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.UploadFile{}, nil, xerrors.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.UploadFile{}, nil, xerrors.Errorf("failed to open file %s: %w", path, err)
	}

	return domain.UploadFile{Name: filepath.Base(path), Content: f}, f.Close, nil
}
