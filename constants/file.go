package constants

import "strings"

// EmailExtension is the extension of source order emails (one plain-text file per email).
const EmailExtension = "txt"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsEmailFile reports whether name looks like a source email file.
func IsEmailFile(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	return NormalizeExt(name[i:]) == EmailExtension
}
