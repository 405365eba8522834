package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/martijn/lexdesk/internal/core/domain"
)

// readNewPassword prompts twice without echo and checks the minimum length.
func readNewPassword(label string) (string, error) {
	fmt.Printf("Enter %s: ", label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Printf("Confirm %s: ", label)
	confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirmPassword) {
		return "", fmt.Errorf("passwords do not match")
	}

	if len(password) < domain.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", domain.MinPasswordLength)
	}

	return string(password), nil
}

// confirm asks a yes/no question; only "yes" confirms.
func confirm(question string) bool {
	fmt.Printf("%s (yes/no): ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}
