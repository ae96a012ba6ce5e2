package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wishlist-backend/internal/client/api"
	"wishlist-backend/internal/domains/user"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and sign out",
	}

	cmd.AddCommand(signUpCmd())
	cmd.AddCommand(signInCmd())
	cmd.AddCommand(signOutCmd())
	cmd.AddCommand(whoAmICmd())

	return cmd
}

// passwordFlag falls back to WISHCTL_PASSWORD so the secret stays out of
// shell history.
func passwordFlag(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("WISHCTL_PASSWORD"); env != "" {
		return env, nil
	}
	return "", errors.New("password required: pass --password or set WISHCTL_PASSWORD")
}

func signUpCmd() *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := passwordFlag(password)
			if err != nil {
				return err
			}
			s, err := newClient().SignUp(cmd.Context(), user.SignUpRequest{
				Email:    email,
				Password: pw,
				FullName: strings.TrimSpace(fullName),
			})
			if err != nil {
				return fmt.Errorf("sign up failed: %w", err)
			}
			fmt.Println(SuccessStyle.Render("✓ Welcome, " + displayName(s.User)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or WISHCTL_PASSWORD)")
	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func signInCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = viper.GetString(keyEmail)
			}
			if email == "" {
				return errors.New("email required: pass --email")
			}
			pw, err := passwordFlag(password)
			if err != nil {
				return err
			}

			s, err := newClient().SignIn(cmd.Context(), user.SignInRequest{Email: email, Password: pw})
			if err != nil {
				if errors.Is(err, api.ErrUnauthorized) {
					return errors.New("invalid email or password")
				}
				return fmt.Errorf("sign in failed: %w", err)
			}
			fmt.Println(SuccessStyle.Render("✓ Signed in as " + displayName(s.User)))
			fmt.Println(SubtleStyle.Render("Session expires " + s.ExpiresAt.Local().Format("2006-01-02 15:04")))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (default: last used)")
	cmd.Flags().StringVar(&password, "password", "", "account password (or WISHCTL_PASSWORD)")

	return cmd
}

func signOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Revoke the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := newClient().SignOut(cmd.Context())
			switch {
			case errors.Is(err, api.ErrNoSession):
				fmt.Println(SubtleStyle.Render("Not signed in."))
				return nil
			case errors.Is(err, api.ErrUnauthorized):
				// token already expired or revoked; the local session is gone either way
			case err != nil:
				return fmt.Errorf("sign out failed: %w", err)
			}
			fmt.Println(SuccessStyle.Render("✓ Signed out"))
			return nil
		},
	}
}

func whoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			me, err := c.Me(cmd.Context())
			if err != nil {
				if errors.Is(err, api.ErrUnauthorized) {
					return errNotSignedIn
				}
				return err
			}
			fmt.Printf("%s <%s>\n", displayName(*me), me.Email)
			return nil
		},
	}
}

func displayName(u user.UserDTO) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
