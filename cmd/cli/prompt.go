package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptPassword prints prompt to w and reads a password without echo.
func promptPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	if len(pw) == 0 {
		return "", errors.New("empty password")
	}
	return string(pw), nil
}

// passwordOrPrompt returns flagVal when set, otherwise asks on the terminal.
func passwordOrPrompt(w io.Writer, flagVal, prompt string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}
	return promptPassword(w, prompt)
}
