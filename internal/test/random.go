package test

import (
	"math/rand/v2"
	"strings"
)

// titleAlphabet mixes ASCII and Cyrillic so length checks count runes, not bytes.
const titleAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 абвгдеёжзийклмнопрстуфхцчшщъыьэюя"

var titleRunes = []rune(titleAlphabet)

// RandomTitle returns a string of n runes that has no leading or trailing spaces.
func RandomTitle(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for i := range n {
		r := titleRunes[rand.IntN(len(titleRunes))]
		if r == ' ' && (i == 0 || i == n-1) {
			r = 'x'
		}
		b.WriteRune(r)
	}
	return b.String()
}
