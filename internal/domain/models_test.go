package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatID_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantValue string
		wantValid bool
	}{
		{"number", `42`, "42", true},
		{"string", `"42"`, "42", true},
		{"uuid string", `"5f0c3f4e-1c7a-4a53-9d43-0f1e8e3a8b10"`, "5f0c3f4e-1c7a-4a53-9d43-0f1e8e3a8b10", true},
		{"numeric zero is falsy", `0`, "0", false},
		{"string zero is truthy", `"0"`, "0", true},
		{"empty string", `""`, "", false},
		{"null", `null`, "", false},
		{"true", `true`, "true", true},
		{"false", `false`, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var id ChatID
			require.NoError(t, json.Unmarshal([]byte(tc.input), &id))
			assert.Equal(t, tc.wantValue, id.String())
			assert.Equal(t, tc.wantValid, id.Valid())
		})
	}

	t.Run("object is rejected", func(t *testing.T) {
		var id ChatID
		assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
	})
}

func TestChatID_MarshalJSON(t *testing.T) {
	var numeric ChatID
	require.NoError(t, json.Unmarshal([]byte(`7`), &numeric))

	data, err := json.Marshal(numeric)
	require.NoError(t, err)
	assert.JSONEq(t, `7`, string(data))

	data, err = json.Marshal(NewChatID("abc"))
	require.NoError(t, err)
	assert.JSONEq(t, `"abc"`, string(data))

	data, err = json.Marshal(ChatID{})
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(data))
}

func TestChat_WireNames(t *testing.T) {
	raw := `[{"id": 3, "Nombre": "Familia", "FechaCarga": "2024-05-01 10:00"}]`

	var chats []Chat
	require.NoError(t, json.Unmarshal([]byte(raw), &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, "3", chats[0].ID.String())
	assert.Equal(t, "Familia", chats[0].Name)
	assert.Equal(t, "2024-05-01 10:00", chats[0].UploadDate)

	t.Run("lowercase names do not bind", func(t *testing.T) {
		var other []Chat
		require.NoError(t, json.Unmarshal([]byte(`[{"nombre": "x", "fechaCarga": "y"}]`), &other))
		require.Len(t, other, 1)
		assert.Empty(t, other[0].Name)
		assert.Empty(t, other[0].UploadDate)
	})
}

func TestChat_ExactKeys(t *testing.T) {
	var chats []Chat
	raw := `[{"id":1,"Nombre":"Real","nombre":"Shadow","FechaCarga":"d1","FECHACARGA":"d2"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, "Real", chats[0].Name)
	assert.Equal(t, "d1", chats[0].UploadDate)
}

func TestChat_LenientElements(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		want      Chat
		wantValid bool
	}{
		{"number name is stringified", `{"id":1,"Nombre":5,"FechaCarga":null}`, Chat{ID: mustChatID(t, `1`), Name: "5"}, true},
		{"bool id", `{"id":true,"Nombre":"A"}`, Chat{ID: NewChatID("true"), Name: "A"}, true},
		{"object id is unusable", `{"id":{},"Nombre":"A"}`, Chat{Name: "A"}, false},
		{"non object element", `1`, Chat{}, false},
		{"array element", `[1,2]`, Chat{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var chat Chat
			require.NoError(t, json.Unmarshal([]byte(tc.input), &chat))
			assert.Equal(t, tc.want, chat)
			assert.Equal(t, tc.wantValid, chat.ID.Valid())
		})
	}
}

func mustChatID(t *testing.T, raw string) ChatID {
	t.Helper()
	var id ChatID
	require.NoError(t, json.Unmarshal([]byte(raw), &id))
	return id
}

func TestMessage_WireNames(t *testing.T) {
	raw := `{"usuario": "Ana", "fecha": "01/02/2024", "hora": "10:15", "mensaje": "hola"}`

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	assert.Equal(t, Message{Sender: "Ana", Date: "01/02/2024", Time: "10:15", Text: "hola"}, msg)

	t.Run("other case does not bind", func(t *testing.T) {
		var messages []Message
		raw := `[{"USUARIO":"Ana","Mensaje":"x"},{"usuario":"Beto","mensaje":"y"}]`
		require.NoError(t, json.Unmarshal([]byte(raw), &messages))
		require.Len(t, messages, 2)
		assert.Empty(t, messages[0].Sender)
		assert.Empty(t, messages[0].Text)
		assert.Equal(t, "Beto", messages[1].Sender)
	})

	t.Run("scalars are stringified", func(t *testing.T) {
		var msg Message
		require.NoError(t, json.Unmarshal([]byte(`{"usuario":7,"mensaje":true,"hora":null}`), &msg))
		assert.Equal(t, Message{Sender: "7", Text: "true"}, msg)
	})
}
