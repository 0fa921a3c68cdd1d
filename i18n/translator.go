package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "kind" or "style").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			msg = "型が一致しません"
		case "constraint_violation":
			msg = "許可されていない値です"
		case "unknown_unit":
			msg = "未知の単位です"
		case "schema_mismatch":
			msg = "文書がスキーマと一致しません"
		case "configuration_error":
			msg = "値の定義が不正です"
		case "unknown_style":
			msg = "未知のレコードスタイルです"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			msg = "type mismatch"
		case "constraint_violation":
			msg = "value not allowed"
		case "unknown_unit":
			msg = "unknown unit"
		case "schema_mismatch":
			msg = "document does not match schema"
		case "configuration_error":
			msg = "invalid value declaration"
		case "unknown_style":
			msg = "unknown record style"
		}
	}
	if msg == "" {
		return code
	}
	if d := data["detail"]; d != "" {
		msg += ": " + d
	}
	return msg
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
