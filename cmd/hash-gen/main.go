package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"learnpath.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
	getenvFn       = os.Getenv
)

var errNoPassword = errors.New("usage: hash-gen <password> (or set HASH_PASSWORD)")

func resolvePassword(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if p := getenvFn("HASH_PASSWORD"); p != "" {
		return p, nil
	}
	return "", errNoPassword
}

// hash-gen prints a bcrypt hash for seeding users by hand.
func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
