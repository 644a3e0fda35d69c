package app

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Auth configuration
var (
	EditUser       string
	authSecretFile string
	authHash       []byte
)

const (
	DefaultAuthFile = "auth.secret"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// authFilePath resolves the auth file location: AUTH_FILE env var or
// auth.secret next to the binary.
func authFilePath() (string, error) {
	if path := os.Getenv("AUTH_FILE"); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

// LoadAuthCredentials loads auth credentials from file. A missing file
// leaves edit mode unprotected; intended for local development only.
func LoadAuthCredentials() error {
	path, err := authFilePath()
	if err != nil {
		return err
	}
	authSecretFile = path

	data, err := os.ReadFile(authSecretFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️  NO AUTH FILE FOUND - EDIT MODE UNPROTECTED (local development only!)")
			log.Printf("    Expected file: %s", authSecretFile)
			log.Printf("    Create one with: ./leave-planner hash-password")
			return nil
		}
		return fmt.Errorf("failed to read auth file: %w", err)
	}

	// Parse auth file (format: username:hash)
	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid auth file format (expected: username:hash)")
	}

	EditUser = parts[0]
	authHash = []byte(parts[1])

	log.Printf("✅ Basic Auth enabled for edit mode (user: %s, file: %s)", EditUser, authSecretFile)
	return nil
}

// HashPassword creates an Argon2id hash of the password
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// Encode as: $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	computedHash := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(decodedHash)))

	return subtle.ConstantTimeCompare(decodedHash, computedHash) == 1, nil
}

// RequireAuth is a middleware that enforces Basic Auth with Argon2id
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// If no auth file loaded, skip auth (dev mode)
		if authHash == nil {
			next(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(EditUser)) == 1

		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifyPassword(pass, string(authHash))
			if err != nil {
				log.Printf("Error verifying password: %v", err)
				passMatch = false
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="Leave Planner Edit Mode"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			log.Printf("⚠️  Failed auth attempt from %s (user: %s)", r.RemoteAddr, user)
			return
		}

		next(w, r)
	}
}

// CreateAuthFile creates an auth.secret file with username and hashed
// password. An existing file is only replaced when overwrite is set.
func CreateAuthFile(username, password string, overwrite bool) error {
	authFile, err := authFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(authFile); err == nil {
		if !overwrite {
			return fmt.Errorf("auth file already exists: %s (use -overwrite to replace)", authFile)
		}
		// Delete first: the file is written 0400 read-only
		if err := os.Remove(authFile); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(authFile, []byte(content), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}

	fmt.Printf("✅ Auth file created: %s (mode: 0400 read-only)\n", authFile)
	fmt.Printf("   Username: %s\n", username)
	return nil
}
