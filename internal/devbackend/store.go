// Package devbackend — хранящий все в памяти бэкенд для разработки и тестов,
// который отдает те же три конечные точки, что и настоящий сервис.
package devbackend

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"chat-viewer/internal/domain"

	"github.com/google/uuid"
)

// ErrChatNotFound возвращается, когда чата с запрошенным идентификатором нет
var ErrChatNotFound = errors.New("chat not found")

const uploadDateLayout = "2006-01-02 15:04:05"

// chatRecord — чат вместе с перепиской
type chatRecord struct {
	chat     domain.Chat
	messages []domain.Message
}

// Store управляет хранением загруженных чатов
type Store struct {
	chats  map[string]*chatRecord
	order  []string
	hashes map[string]string // хеш содержимого -> id чата
	mutex  sync.RWMutex
	now    func() time.Time
}

// NewStore создает новый экземпляр Store
func NewStore() *Store {
	return &Store{
		chats:  make(map[string]*chatRecord),
		hashes: make(map[string]string),
		now:    time.Now,
	}
}

// AddChat добавляет чат с перепиской и возвращает его описание
func (s *Store) AddChat(name, uploadDate string, messages []domain.Message) domain.Chat {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.addLocked(name, uploadDate, messages)
}

func (s *Store) addLocked(name, uploadDate string, messages []domain.Message) domain.Chat {
	if uploadDate == "" {
		uploadDate = s.now().Format(uploadDateLayout)
	}

	id := uuid.NewString()
	chat := domain.Chat{
		ID:         domain.NewChatID(id),
		Name:       name,
		UploadDate: uploadDate,
	}
	s.chats[id] = &chatRecord{
		chat:     chat,
		messages: append([]domain.Message(nil), messages...),
	}
	s.order = append(s.order, id)
	return chat
}

// Import сохраняет загруженный файл. Повторная загрузка того же содержимого
// возвращает уже существующий чат; второй признак сообщает, был ли чат создан.
func (s *Store) Import(name string, content []byte, messages []domain.Message) (domain.Chat, bool) {
	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id, ok := s.hashes[hash]; ok {
		if record, exists := s.chats[id]; exists {
			return record.chat, false
		}
	}

	chat := s.addLocked(name, "", messages)
	s.hashes[hash] = chat.ID.String()
	return chat, true
}

// Chats возвращает все чаты в порядке загрузки
func (s *Store) Chats() []domain.Chat {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	chats := make([]domain.Chat, 0, len(s.order))
	for _, id := range s.order {
		chats = append(chats, s.chats[id].chat)
	}
	return chats
}

// Messages возвращает переписку чата id в исходном порядке
func (s *Store) Messages(id string) ([]domain.Message, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.chats[id]
	if !exists {
		return nil, fmt.Errorf("чат с ID %s: %w", id, ErrChatNotFound)
	}

	return append([]domain.Message{}, record.messages...), nil
}
