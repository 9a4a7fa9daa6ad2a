// Package i18n holds the ru/en message tables used by the contact endpoint
// and shipped to the browser for the catalog page.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported site language.
type Lang string

const (
	RU Lang = "ru"
	EN Lang = "en"
)

// DefaultLang is used when a request carries no or an unsupported language.
const DefaultLang = RU

// Langs lists the supported languages in display order.
var Langs = []Lang{RU, EN}

// ParseLang lowercases s and restricts it to the supported languages.
func ParseLang(s string) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case EN:
		return EN
	case RU:
		return RU
	default:
		return DefaultLang
	}
}

// Tag returns the BCP 47 tag used for number formatting.
func (l Lang) Tag() language.Tag {
	if l == EN {
		return language.AmericanEnglish
	}
	return language.Russian
}

// Other returns the second site language.
func (l Lang) Other() Lang {
	if l == EN {
		return RU
	}
	return EN
}

// MessageKey identifies a server-side response message.
type MessageKey string

const (
	MsgFieldsRequired   MessageKey = "fields_required"
	MsgInvalidRecipient MessageKey = "invalid_recipient"
	MsgInvalidEmail     MessageKey = "invalid_email"
	MsgInvalidName      MessageKey = "invalid_name"
	MsgInvalidPhone     MessageKey = "invalid_phone"
	MsgCooldown         MessageKey = "cooldown"
	MsgSuccess          MessageKey = "success"
	MsgSendError        MessageKey = "send_error"
	MsgMethodNotAllowed MessageKey = "method_not_allowed"
)

// MessageKeys lists every server message key.
var MessageKeys = []MessageKey{
	MsgFieldsRequired,
	MsgInvalidRecipient,
	MsgInvalidEmail,
	MsgInvalidName,
	MsgInvalidPhone,
	MsgCooldown,
	MsgSuccess,
	MsgSendError,
	MsgMethodNotAllowed,
}

var messages = map[MessageKey]map[Lang]string{
	MsgFieldsRequired: {
		RU: "Пожалуйста, заполните все обязательные поля.",
		EN: "Please fill in all required fields.",
	},
	MsgInvalidRecipient: {
		RU: "Неверно указан email получателя в конфигурации.",
		EN: "Recipient email address is not configured correctly.",
	},
	MsgInvalidEmail: {
		RU: "Укажите корректный email.",
		EN: "Please provide a valid email address.",
	},
	MsgInvalidName: {
		RU: "Имя содержит недопустимые символы.",
		EN: "The name contains invalid characters.",
	},
	MsgInvalidPhone: {
		RU: "Пожалуйста, укажите корректный номер телефона.",
		EN: "Please provide a valid phone number.",
	},
	MsgCooldown: {
		RU: "Подождите {seconds} с перед повторной отправкой.",
		EN: "Please wait {seconds}s before sending again.",
	},
	MsgSuccess: {
		RU: "Спасибо, ваша заявка отправлена!",
		EN: "Thank you, your request has been sent!",
	},
	MsgSendError: {
		RU: "Не удалось отправить письмо. Пожалуйста, попробуйте позже.",
		EN: "Unable to send the message. Please try again later.",
	},
	MsgMethodNotAllowed: {
		RU: "Неверный метод запроса.",
		EN: "Invalid request method.",
	},
}

// Translate returns the message for key in lang, falling back to Russian
// and then to "".
func Translate(key MessageKey, lang Lang) string {
	return lookup(messages[key], lang)
}

// Format translates key and replaces {name} placeholders from vars.
func Format(key MessageKey, lang Lang, vars map[string]string) string {
	return Substitute(Translate(key, lang), vars)
}

// Substitute replaces every {name} placeholder in text with vars[name].
func Substitute(text string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(text, "{") {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func lookup(byLang map[Lang]string, lang Lang) string {
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang[DefaultLang]
}
