package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/taskflow/internal/ports/primary"
	"github.com/example/taskflow/internal/wire"
)

// LoginCmd returns the login command.
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in to the task tracker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			email := ""
			if len(args) > 0 {
				email = args[0]
			}
			if email == "" {
				fmt.Print("Email: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}

			password, err := readPassword()
			if err != nil {
				return err
			}

			state, err := wire.AuthService().Login(ctx, email, password)
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("✓ Signed in as %s (%s)\n", state.User.FullName(), state.User.Role)
			if state.Capabilities.NeedsEmailVerification {
				fmt.Println("Your email address is not verified yet. Check your inbox before using the tracker.")
			}
			return nil
		},
	}
	return cmd
}

// RegisterCmd returns the register command.
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			email, _ := cmd.Flags().GetString("email")

			if firstName == "" || lastName == "" || email == "" {
				return fmt.Errorf("all of --first-name, --last-name and --email are required")
			}

			password, err := readPassword()
			if err != nil {
				return err
			}

			state, err := wire.AuthService().Register(ctx, primary.RegisterRequest{
				FirstName:            firstName,
				LastName:             lastName,
				Email:                email,
				Password:             password,
				PasswordConfirmation: password,
			})
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("✓ Registered as %s\n", state.User.FullName())
			fmt.Println("Check your inbox to verify your email address.")
			return nil
		},
	}
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("email", "", "Email address")
	return cmd
}

// LogoutCmd returns the logout command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.AuthService().Logout(context.Background()); err != nil {
				return presentError(err)
			}
			fmt.Println("✓ Signed out")
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command.
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := requireAuth(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("User: %s\n", state.User.FullName())
			fmt.Printf("Email: %s\n", state.User.Email)
			fmt.Printf("Role: %s\n", state.User.Role)
			caps := state.Capabilities
			switch {
			case caps.IsSuperAdmin:
				fmt.Println("Access: super admin")
			case caps.IsAdmin:
				fmt.Println("Access: admin")
			case caps.IsIncharge:
				fmt.Println("Access: incharge")
			default:
				fmt.Println("Access: member")
			}
			return nil
		},
	}
}

// requireAuth restores and validates the stored session, and enforces
// the email-verification gate for plain users. Commands that need a
// signed-in user call this first.
func requireAuth(ctx context.Context) (*primary.AuthState, error) {
	state, err := wire.AuthService().Restore(ctx)
	if err != nil {
		return nil, presentError(err)
	}
	if !state.Authenticated {
		fmt.Println("Not signed in. Run 'taskflow login' first.")
		return nil, ErrSilentFailure
	}
	if state.Capabilities.NeedsEmailVerification {
		fmt.Println("Your email address must be verified before using the tracker. Check your inbox.")
		return nil, ErrSilentFailure
	}
	return state, nil
}

// readPassword prompts for the password on stdin. The TASKFLOW_PASSWORD
// environment variable bypasses the prompt for scripted use.
func readPassword() (string, error) {
	if pw := os.Getenv("TASKFLOW_PASSWORD"); pw != "" {
		return pw, nil
	}
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
