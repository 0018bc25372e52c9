// Command fintrack is a CLI client for the fintrack record service.
// It drives the same SDK the mobile shell uses: authenticate, then
// list and mutate the finance collections.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	fintrack "github.com/fintrackapp/fintrack-go"
	"github.com/fintrackapp/fintrack-go/tokenstore"
)

var (
	apiFlag      string
	authFileFlag string
	rootCmd      = &cobra.Command{
		Use:   "fintrack",
		Short: "CLI client for the fintrack record service",
	}
)

func newClient() (*fintrack.Client, error) {
	authFile := authFileFlag
	if authFile == "" {
		p, err := tokenstore.DefaultPath()
		if err != nil {
			return nil, err
		}
		authFile = p
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return fintrack.New(apiFlag,
		fintrack.WithTokenStore(tokenstore.NewFileStore(authFile)),
		fintrack.WithLogger(log),
	)
}

func main() {
	// A .env next to the binary is a dev convenience; absence is fine.
	_ = godotenv.Load()

	defaultAPI := os.Getenv("FINTRACK_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8090"
	}

	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", defaultAPI, "record service base URL")
	rootCmd.PersistentFlags().StringVar(&authFileFlag, "auth-file", os.Getenv("FINTRACK_AUTH_FILE"), "path of the persisted auth token file")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			s, err := c.Authenticate(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("signed in as %s (%s)\n", s.Username, s.Email)
			return nil
		},
	}
	loginCmd.Flags().StringP("email", "e", "", "account email (required)")
	loginCmd.Flags().StringP("password", "p", "", "account password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)

	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			username, _ := cmd.Flags().GetString("username")
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			s, err := c.CreateAccount(cmd.Context(), email, password, username)
			if err != nil {
				return err
			}
			fmt.Printf("account created, signed in as %s (%s)\n", s.Username, s.Email)
			return nil
		},
	}
	signupCmd.Flags().StringP("email", "e", "", "account email (required)")
	signupCmd.Flags().StringP("password", "p", "", "account password (required)")
	signupCmd.Flags().StringP("username", "u", "", "account username (required)")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	_ = signupCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(signupCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Drop the current session and clear the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			c.Logout()
			fmt.Println("signed out")
			return nil
		},
	}
	rootCmd.AddCommand(logoutCmd)

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			s, ok := c.CurrentSession()
			if !ok {
				fmt.Println("not signed in")
				return nil
			}
			fmt.Printf("%s (%s), id %s\n", s.Username, s.Email, s.ID)
			return nil
		},
	}
	rootCmd.AddCommand(whoamiCmd)

	addRecordCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
