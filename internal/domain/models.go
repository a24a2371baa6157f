package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ChatID — непрозрачный идентификатор чата.
// Бэкенд может прислать его числом или строкой; значение хранится в текстовом виде
// и подставляется в путь запроса без изменений.
type ChatID struct {
	value   string
	numeric bool
}

// NewChatID создает строковый идентификатор чата.
func NewChatID(value string) ChatID {
	return ChatID{value: value}
}

// String возвращает идентификатор в том виде, в котором он уходит в URL.
func (id ChatID) String() string {
	return id.value
}

// Valid сообщает, можно ли использовать идентификатор для запроса.
// Пустая строка, null и числовой ноль считаются недопустимыми.
func (id ChatID) Valid() bool {
	if id.value == "" {
		return false
	}
	if id.numeric {
		if n, err := strconv.ParseFloat(id.value, 64); err == nil && n == 0 {
			return false
		}
	}
	return true
}

// UnmarshalJSON принимает число, строку, логическое значение или null.
// false считается отсутствием идентификатора.
func (id *ChatID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ChatID{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid chat id %s: %w", data, err)
		}
		*id = ChatID{value: s}
		return nil
	}

	switch {
	case bytes.Equal(data, []byte("true")):
		*id = ChatID{value: "true"}
		return nil
	case bytes.Equal(data, []byte("false")):
		*id = ChatID{}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid chat id %s: %w", data, err)
	}
	*id = ChatID{value: n.String(), numeric: true}
	return nil
}

// MarshalJSON сохраняет исходную форму идентификатора.
func (id ChatID) MarshalJSON() ([]byte, error) {
	if id.value == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// Chat — один импортированный чат в том виде, как его отдает GET /chats.
// Имена полей совпадают с ответом бэкенда с учетом регистра.
type Chat struct {
	ID         ChatID `json:"id"`
	Name       string `json:"Nombre"`
	UploadDate string `json:"FechaCarga"`
}

// UnmarshalJSON читает только поля с точными именами. Элемент, который не является
// объектом, дает пустой чат; значения других типов приводятся к строке.
func (c *Chat) UnmarshalJSON(data []byte) error {
	fields, err := wireFields(data)
	if err != nil {
		return err
	}

	*c = Chat{
		Name:       wireText(fields["Nombre"]),
		UploadDate: wireText(fields["FechaCarga"]),
	}
	if raw, ok := fields["id"]; ok {
		if err := c.ID.UnmarshalJSON(raw); err != nil {
			c.ID = ChatID{}
		}
	}
	return nil
}

// Message — одно сообщение из GET /mensajes/{chatId}.
type Message struct {
	Sender string `json:"usuario"`
	Date   string `json:"fecha"`
	Time   string `json:"hora"`
	Text   string `json:"mensaje"`
}

// UnmarshalJSON читает только поля с точными именами, как и Chat.
// Отсутствующий "usuario" оставляет отправителя пустым.
func (m *Message) UnmarshalJSON(data []byte) error {
	fields, err := wireFields(data)
	if err != nil {
		return err
	}

	*m = Message{
		Sender: wireText(fields["usuario"]),
		Date:   wireText(fields["fecha"]),
		Time:   wireText(fields["hora"]),
		Text:   wireText(fields["mensaje"]),
	}
	return nil
}

// wireFields раскладывает объект по точным именам ключей.
// Для значения, которое не является объектом, возвращается пустой набор.
func wireFields(data []byte) (map[string]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		if !json.Valid(data) {
			return nil, fmt.Errorf("invalid json element %q", data)
		}
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode object: %w", err)
	}
	return fields, nil
}

// wireText возвращает строку как есть, null и отсутствие поля как "",
// а остальные значения в их JSON-записи.
func wireText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

// UploadFile — файл экспорта, подготовленный к отправке на бэкенд.
type UploadFile struct {
	Name    string
	Content io.Reader
}
