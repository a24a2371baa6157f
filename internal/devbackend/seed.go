package devbackend

import (
	"fmt"
	"os"

	"chat-viewer/internal/domain"

	"gopkg.in/yaml.v2"
)

// Seed — содержимое YAML-файла с начальными чатами
type Seed struct {
	Chats []SeedChat `yaml:"chats"`
}

// SeedChat — один чат из файла начальных данных
type SeedChat struct {
	Name       string        `yaml:"name"`
	UploadDate string        `yaml:"upload_date"`
	Messages   []SeedMessage `yaml:"messages"`
}

// SeedMessage — одно сообщение из файла начальных данных
type SeedMessage struct {
	Sender string `yaml:"sender"`
	Date   string `yaml:"date"`
	Time   string `yaml:"time"`
	Text   string `yaml:"text"`
}

// LoadSeed читает файл начальных данных и добавляет чаты в хранилище.
// Возвращает число добавленных чатов.
func LoadSeed(filename string, store *Store) (int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("не удалось прочитать файл начальных данных %s: %w", filename, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("не удалось разобрать YAML начальных данных: %w", err)
	}

	for _, c := range seed.Chats {
		messages := make([]domain.Message, 0, len(c.Messages))
		for _, m := range c.Messages {
			messages = append(messages, domain.Message{
				Sender: m.Sender,
				Date:   m.Date,
				Time:   m.Time,
				Text:   m.Text,
			})
		}
		store.AddChat(c.Name, c.UploadDate, messages)
	}

	return len(seed.Chats), nil
}
