package relay

import "regexp"

// Пробельные символы в широком смысле: ASCII, \v, все Zs, разделители строк и абзацев, BOM.
const spaceClass = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

// Минимальная проверка формы: схема http(s), после "//" символ, не являющийся
// пробелом, '/', '$', '.', '?' или '#', затем любой символ кроме перевода строки,
// и дальше ни одного пробельного символа.
var urlShape = regexp.MustCompile(`(?i)^https?://[^` + spaceClass + `/$.?#][^\n\r\x{2028}\x{2029}][^` + spaceClass + `]*$`)

// ValidURL сообщает, похож ли longURL на абсолютный http(s) URL.
func ValidURL(longURL string) bool {
	return longURL != "" && urlShape.MatchString(longURL)
}
