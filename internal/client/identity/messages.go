package identity

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// English texts double as catalog keys.
const (
	msgEmailExists        = "Email is already registered. Please sign in or use another email."
	msgWeakPassword       = "Password is too weak. Use at least 6 characters."
	msgInvalidEmail       = "Invalid email format."
	msgInvalidCredentials = "Wrong email or password. Make sure you have registered first."
	msgEmailNotFound      = "Email not found. Please register first."
	msgInvalidPassword    = "Wrong password. Please try again."
	msgUserDisabled       = "This account has been disabled."
	msgSignUpFailed       = "Failed to sign up"
	msgSignInFailed       = "Failed to sign in"
	msgUnavailable        = "The identity service is unavailable. Check your connection and try again."
)

// msgSignInFailed has no Indonesian entry: the app shows it in English.
var indonesian = map[string]string{
	msgEmailExists:        "Email sudah terdaftar. Silakan login atau gunakan email lain.",
	msgWeakPassword:       "Password terlalu lemah. Gunakan minimal 6 karakter.",
	msgInvalidEmail:       "Format email tidak valid.",
	msgInvalidCredentials: "Email atau password salah. Pastikan Anda sudah mendaftar terlebih dahulu.",
	msgEmailNotFound:      "Email tidak ditemukan. Silakan daftar terlebih dahulu.",
	msgInvalidPassword:    "Password salah. Silakan coba lagi.",
	msgUserDisabled:       "Akun ini telah dinonaktifkan.",
	msgSignUpFailed:       "Gagal mendaftar",
	msgUnavailable:        "Layanan autentikasi tidak tersedia. Periksa koneksi Anda dan coba lagi.",
}

type operation int

const (
	opSignUp operation = iota
	opSignIn
)

func (o operation) String() string {
	if o == opSignUp {
		return "signUp"
	}
	return "signInWithPassword"
}

// errorMessages maps upstream error codes to message keys, per operation.
// Codes not listed here fall through to the upstream text.
var errorMessages = map[operation]map[string]string{
	opSignUp: {
		"EMAIL_EXISTS":  msgEmailExists,
		"WEAK_PASSWORD": msgWeakPassword,
		"INVALID_EMAIL": msgInvalidEmail,
	},
	opSignIn: {
		"INVALID_LOGIN_CREDENTIALS": msgInvalidCredentials,
		"EMAIL_NOT_FOUND":           msgEmailNotFound,
		"INVALID_PASSWORD":          msgInvalidPassword,
		"USER_DISABLED":             msgUserDisabled,
	},
}

var fallbackMessages = map[operation]string{
	opSignUp: msgSignUpFailed,
	opSignIn: msgSignInFailed,
}

// credentialCodes are the codes that mean the credentials were rejected.
var credentialCodes = map[string]struct{}{
	"INVALID_LOGIN_CREDENTIALS": {},
	"EMAIL_NOT_FOUND":           {},
	"INVALID_PASSWORD":          {},
	"USER_DISABLED":             {},
}

var messageCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, translated := range indonesian {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Indonesian, key, translated)
	}
	return b
}

// NewPrinter returns a printer for locale ("id", "en", ...). Unknown or
// malformed locales print English.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(messageCatalog))
}

// splitCode extracts "WEAK_PASSWORD" from "WEAK_PASSWORD : Password should be ...".
func splitCode(upstream string) string {
	code, _, _ := strings.Cut(upstream, " : ")
	return strings.TrimSpace(code)
}

// describe turns an upstream error message into user-facing text.
func describe(p *message.Printer, op operation, upstream string) (code, text string) {
	code = splitCode(upstream)
	if key, ok := errorMessages[op][code]; ok {
		return code, p.Sprintf(key)
	}
	if upstream != "" {
		return code, upstream
	}
	return code, p.Sprintf(fallbackMessages[op])
}
