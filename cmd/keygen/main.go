package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"learnpath.backend/pkg/crypto"
)

// sessionKeyBytes is the AES-256 key size expected by the session store
const sessionKeyBytes = 32

var generateTokenFn = crypto.GenerateRandomToken

// keygen prints fresh secrets in .env format.
func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jwtBytes := fs.Int("jwt-bytes", 48, "random bytes for JWT_SECRET (min 32)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jwtBytes < 32 {
		return errors.New("jwt-bytes must be at least 32")
	}

	jwtSecret, err := generateTokenFn(*jwtBytes)
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	sessionKey, err := generateTokenFn(sessionKeyBytes)
	if err != nil {
		return fmt.Errorf("failed to generate session key: %w", err)
	}

	_, err = fmt.Fprintf(out, "JWT_SECRET=%s\nSESSION_ENCRYPTION_KEY=%s\n", jwtSecret, sessionKey)
	return err
}
