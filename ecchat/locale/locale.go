// Package locale holds the user-facing strings of the chat client. Only
// presentation varies by language; protocol and crypto are shared.
package locale

import "strings"

// Catalog is the set of strings one language needs.
type Catalog struct {
	Tag string

	Listening     string // %s: address
	Connecting    string // %s: address
	Connected     string // %s: remote address
	KeyGenerated  string
	LocalKey      string // %s: fingerprint
	PeerKey       string // %s: fingerprint
	CompareHint   string
	Prompt        string
	PeerSays      string // %s: message
	Truncated     string // %d: limit
	PeerLeft      string
	YouLeft       string
	Goodbye       string
	Unauthentic   string
	Authenticated string
	Error         string // %v: error
}

var English = Catalog{
	Tag:           "en",
	Listening:     "Waiting for a peer on %s",
	Connecting:    "Connecting to %s",
	Connected:     "Connected to %s",
	KeyGenerated:  "Session key generated",
	LocalKey:      "Your key fingerprint: %s",
	PeerKey:       "Peer key fingerprint: %s",
	CompareHint:   "Compare fingerprints with your peer over another channel.",
	Prompt:        "you> ",
	PeerSays:      "peer> %s",
	Truncated:     "Message cut to %d bytes",
	PeerLeft:      "Peer ended the chat.",
	YouLeft:       "You ended the chat.",
	Goodbye:       "Type 'bye' to end the chat.",
	Unauthentic:   "Warning: messages are encrypted but not authenticated.",
	Authenticated: "Messages are encrypted and authenticated.",
	Error:         "Error: %v",
}

var Russian = Catalog{
	Tag:           "ru",
	Listening:     "Ожидание собеседника на %s",
	Connecting:    "Подключение к %s",
	Connected:     "Соединение с %s установлено",
	KeyGenerated:  "Ключ сеанса создан",
	LocalKey:      "Отпечаток вашего ключа: %s",
	PeerKey:       "Отпечаток ключа собеседника: %s",
	CompareHint:   "Сверьте отпечатки с собеседником по другому каналу.",
	Prompt:        "вы> ",
	PeerSays:      "собеседник> %s",
	Truncated:     "Сообщение обрезано до %d байт",
	PeerLeft:      "Собеседник завершил чат.",
	YouLeft:       "Вы завершили чат.",
	Goodbye:       "Введите 'bye', чтобы завершить чат.",
	Unauthentic:   "Внимание: сообщения шифруются, но не аутентифицируются.",
	Authenticated: "Сообщения шифруются и аутентифицируются.",
	Error:         "Ошибка: %v",
}

var Slovak = Catalog{
	Tag:           "sk",
	Listening:     "Čakám na partnera na %s",
	Connecting:    "Pripájam sa k %s",
	Connected:     "Pripojené k %s",
	KeyGenerated:  "Kľúč relácie vygenerovaný",
	LocalKey:      "Odtlačok vášho kľúča: %s",
	PeerKey:       "Odtlačok kľúča partnera: %s",
	CompareHint:   "Porovnajte odtlačky s partnerom cez iný kanál.",
	Prompt:        "vy> ",
	PeerSays:      "partner> %s",
	Truncated:     "Správa skrátená na %d bajtov",
	PeerLeft:      "Partner ukončil chat.",
	YouLeft:       "Ukončili ste chat.",
	Goodbye:       "Napíšte 'bye' na ukončenie chatu.",
	Unauthentic:   "Upozornenie: správy sú šifrované, ale nie overené.",
	Authenticated: "Správy sú šifrované a overené.",
	Error:         "Chyba: %v",
}

var catalogs = map[string]*Catalog{
	"en": &English,
	"ru": &Russian,
	"sk": &Slovak,
}

// Lookup accepts a bare tag ("ru") or a POSIX locale ("sk_SK.UTF-8") and
// falls back to English.
func Lookup(lang string) *Catalog {
	tag := strings.ToLower(lang)
	if i := strings.IndexAny(tag, "_-.@"); i >= 0 {
		tag = tag[:i]
	}
	if c, ok := catalogs[tag]; ok {
		return c
	}
	return &English
}

// Tags lists the supported languages.
func Tags() []string {
	return []string{"en", "ru", "sk"}
}
