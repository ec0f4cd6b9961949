package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Phone нормализованный телефон клиента
type Phone struct {
	Number string `json:"number"`
}

// PhoneInput телефон во входных данных. Допустимые формы в JSON:
// строка, число, объект с полем number, объект без number (берется
// значение первого по алфавиту ключа). Все остальное считается
// неразрешимым и отбрасывается при нормализации.
type PhoneInput struct {
	number string
	ok     bool
}

// UnmarshalJSON разбирает одну из допустимых форм телефона.
// Неразрешимая форма не считается ошибкой разбора: запись помечается
// как пустая и позже молча отбрасывается.
func (p *PhoneInput) UnmarshalJSON(data []byte) error {
	p.number, p.ok = "", false

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.set(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		p.set(n.String())
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		if raw, exists := obj["number"]; exists {
			if value, valueOK := scalarToString(raw); valueOK {
				p.set(value)
				return nil
			}
		}

		// Объект без number: берем значение первого ключа (порядок ключей фиксируем сортировкой)
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if value, valueOK := scalarToString(obj[k]); valueOK && strings.TrimSpace(value) != "" {
				p.set(value)
				return nil
			}
		}
		return nil
	}

	return nil
}

// Resolve возвращает номер телефона и признак того, что запись удалось разобрать
func (p PhoneInput) Resolve() (string, bool) {
	return p.number, p.ok
}

// NewPhoneInput создает запись телефона из готового номера (для тестов и повторной отправки)
func NewPhoneInput(number string) PhoneInput {
	p := PhoneInput{}
	p.set(number)
	return p
}

func (p *PhoneInput) set(value string) {
	p.number = strings.TrimSpace(value)
	p.ok = p.number != ""
}

// scalarToString приводит скалярное JSON-значение к строке
func scalarToString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}

	return "", false
}

// NormalizePhones приводит входные телефоны к списку записей {number}.
// Пустые и неразрешимые записи отбрасываются, порядок сохраняется.
func NormalizePhones(inputs []PhoneInput) []Phone {
	phones := make([]Phone, 0, len(inputs))
	for _, in := range inputs {
		number, ok := in.Resolve()
		if !ok || number == "" {
			continue
		}
		phones = append(phones, Phone{Number: number})
	}
	return phones
}
