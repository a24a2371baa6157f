package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCliSource(t *testing.T) {
	t.Run("NewCliSource создает корректный экземпляр", func(t *testing.T) {
		source := NewCliSource()
		if source == nil {
			t.Error("Ожидался экземпляр CliSource, получен nil")
		}
	})

	t.Run("Open возвращает ошибку для пустого пути к файлу", func(t *testing.T) {
		source := &CliSource{}

		_, closeFn, err := source.Open("")
		if err == nil {
			t.Fatal("Ожидалась ошибка для пустого пути к файлу, получено nil")
		}
		if closeFn != nil {
			t.Error("Ожидалась nil функция закрытия")
		}
		if err.Error() != "не указан путь к файлу" {
			t.Errorf("Ожидалось сообщение об ошибке 'не указан путь к файлу', получено '%s'", err.Error())
		}
	})

	t.Run("Open возвращает ошибку для несуществующего файла", func(t *testing.T) {
		source := &CliSource{}

		if _, _, err := source.Open(filepath.Join(t.TempDir(), "non_existing_file.txt")); err == nil {
			t.Error("Ожидалась ошибка для несуществующего файла, получено nil")
		}
	})

	t.Run("Open возвращает ошибку для каталога", func(t *testing.T) {
		source := &CliSource{}

		if _, _, err := source.Open(t.TempDir()); err == nil {
			t.Error("Ожидалась ошибка для каталога, получено nil")
		}
	})

	t.Run("Open возвращает содержимое существующего файла", func(t *testing.T) {
		testData := []byte("01/02/24, 10:00 - Ana: hola\n")
		path := filepath.Join(t.TempDir(), "WhatsApp Chat.txt")
		if err := os.WriteFile(path, testData, 0644); err != nil {
			t.Fatal("Не удалось записать временный файл")
		}

		source := &CliSource{}
		file, closeFn, err := source.Open(path)
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}
		defer closeFn()

		if file.Name != "WhatsApp Chat.txt" {
			t.Errorf("Ожидалось имя 'WhatsApp Chat.txt', получено '%s'", file.Name)
		}

		data, err := io.ReadAll(file.Content)
		if err != nil {
			t.Fatalf("Не удалось прочитать содержимое: %v", err)
		}
		if string(data) != string(testData) {
			t.Errorf("Ожидалось %q, получено %q", testData, data)
		}
	})
}
