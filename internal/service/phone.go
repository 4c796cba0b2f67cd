package service

import (
	"strings"
	"unicode"
)

// NormalizePhone убирает из номера всё кроме букв и цифр ("010-1234-5678" -> "01012345678")
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}
