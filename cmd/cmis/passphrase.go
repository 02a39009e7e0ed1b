package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassphrase returns CMIS_PASSPHRASE when set and otherwise prompts on
// the terminal without echo.
func readPassphrase() (string, error) {
	if p := os.Getenv("CMIS_PASSPHRASE"); p != "" {
		return p, nil
	}
	return prompt("Passphrase: ")
}

// newPassphrase asks for a new passphrase twice.
func newPassphrase() (string, error) {
	if p := os.Getenv("CMIS_PASSPHRASE"); p != "" {
		return p, nil
	}
	p, err := prompt("New passphrase: ")
	if err != nil {
		return "", err
	}
	again, err := prompt("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if p != again {
		return "", fmt.Errorf("passphrases do not match")
	}
	return p, nil
}

func prompt(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; set CMIS_PASSPHRASE")
	}
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
