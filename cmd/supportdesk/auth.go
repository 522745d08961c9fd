package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		email := a.prompt("Email")
		password := a.prompt("Password")

		token, err := a.client.Auth.Login(cmd.Context(), &models.Credentials{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return err
		}
		if err := a.store.Set(token.AccessToken, token.User); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", token.User.FullName, token.User.Email)
		if token.User.IsSupportStaff {
			fmt.Println("Support console available: supportdesk support --help")
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		reg := &models.Registration{
			Email:    a.prompt("Email"),
			Username: a.prompt("Username"),
			FullName: a.prompt("Full name"),
		}
		reg.Password = a.prompt("Password (min 6 characters)")

		// The confirmation check happens before any network call.
		if confirmation := a.prompt("Confirm password"); confirmation != reg.Password {
			return fmt.Errorf("passwords do not match")
		}

		token, err := a.client.Auth.Register(cmd.Context(), reg)
		if err != nil {
			return err
		}
		if err := a.store.Set(token.AccessToken, token.User); err != nil {
			return err
		}

		fmt.Printf("Welcome, %s! You are now logged in.\n", token.User.FullName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.store.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}

		profile, err := a.client.Auth.Me(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s <%s> (@%s)\n", profile.FullName, profile.Email, profile.Username)
		if profile.IsSupportStaff {
			fmt.Println("Role: support staff")
		}
		return nil
	},
}

var (
	profileFullName string
	profileUsername string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the profile's full name and/or username",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sess, err := a.requireSession()
		if err != nil {
			return err
		}
		if profileFullName == "" && profileUsername == "" {
			return fmt.Errorf("nothing to update: pass --full-name and/or --username")
		}

		update := &models.ProfileUpdate{}
		if profileFullName != "" {
			update.FullName = &profileFullName
		}
		if profileUsername != "" {
			update.Username = &profileUsername
		}

		profile, err := a.client.Auth.UpdateProfile(cmd.Context(), update)
		if err != nil {
			return err
		}
		// Keep the stored profile in sync with what the server confirmed.
		if err := a.store.Set(sess.Token, *profile); err != nil {
			return err
		}

		fmt.Printf("Profile updated: %s (@%s)\n", profile.FullName, profile.Username)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileFullName, "full-name", "", "new full name")
	profileCmd.Flags().StringVar(&profileUsername, "username", "", "new username")
}
