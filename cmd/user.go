package cmd

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookshop/shop"
)

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(args[0])
		if username == "" {
			return errors.New("username cannot be empty")
		}

		password, err := readPassword(fmt.Sprintf("Enter password for %s: ", username))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if password == "" {
			return errors.New("password cannot be empty")
		}

		id, err := users.Register(username, password)
		if err != nil {
			if errors.Is(err, shop.ErrUserExists) {
				return fmt.Errorf("username '%s' is already taken", username)
			}
			return err
		}
		fmt.Printf("Registered '%s' with ID %d\n", username, id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
