package report

import (
	"strings"
	"unicode"

	"github.com/IT-Nick/careerpath/internal/domain/model"
)

// DisplayName имя студента для отчета: полное имя, иначе локальная часть e-mail
// с заглавной буквой в начале каждого слова ("jane.doe" -> "Jane.Doe").
func DisplayName(u model.User) string {
	if name := u.FullName(); name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	if local == "" {
		return "Student"
	}
	return titleCase(local)
}

// titleCase начинает каждое слово с заглавной, остальные буквы строчные.
// Словом считается последовательность букв.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			inWord = true
		} else {
			inWord = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
