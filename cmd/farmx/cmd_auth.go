package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/auth"
	"github.com/farmxchain/farmx/pkg/validate"
)

// invalid turns validator output into a single CLI error.
func invalid(errs map[string]string) error {
	if !validate.HasErrors(errs) {
		return nil
	}
	return errors.New(validate.First(errs))
}

// check validates a request struct.
func check(v any) error { return invalid(validate.Struct(v)) }

// farmx login
func newLoginCmd(c *cli) *cobra.Command {
	var req models.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := check(req); err != nil {
				return err
			}
			resp, err := c.svc.Auth.Login(cmd.Context(), req)
			if err != nil {
				return errors.New(views.ErrorMessage(err, "Login failed. Please check your credentials."))
			}
			who, role := req.Email, ""
			if resp.User != nil {
				who, role = resp.User.DisplayName(), string(resp.User.Role)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", who, role)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	return cmd
}

// farmx logout
func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.svc.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// farmx register
func newRegisterCmd(c *cli) *cobra.Command {
	var req models.RegisterRequest
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (FARMER, DISTRIBUTOR, RETAILER or CONSUMER)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Role = models.Role(role)
			if err := check(req); err != nil {
				return err
			}
			if _, err := c.svc.Auth.Register(cmd.Context(), req); err != nil {
				return errors.New(views.ErrorMessage(err, "Registration failed"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! Please login.")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "full name")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.Password, "password", "", "password (min 6 characters)")
	f.StringVar(&role, "role", string(models.RoleConsumer), "account role")
	f.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&req.Address, "address", "", "street address")
	f.StringVar(&req.City, "city", "", "city")
	f.StringVar(&req.State, "state", "", "state")
	f.StringVar(&req.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&req.WalletAddress, "wallet", "", "blockchain wallet address")
	return cmd
}

// farmx whoami
func newWhoamiCmd(c *cli) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:         "whoami",
		Short:       "Show the signed-in user",
		Args:        cobra.NoArgs,
		Annotations: signedIn(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u := c.svc.Auth.CurrentUser(ctx)
			if refresh {
				fresh, err := c.svc.Auth.Profile(ctx)
				if err != nil {
					return errors.New(views.ErrorMessage(err, "Failed to load profile"))
				}
				u = fresh
			}
			return c.showUser(cmd.OutOrStdout(), u)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the profile from the backend")
	return cmd
}

// farmx status
func newStatusCmd(c *cli) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether a usable session is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			a := c.svc.Auth
			if !a.IsAuthenticated(ctx) {
				fmt.Fprintln(w, "Not logged in.")
				return nil
			}
			fmt.Fprintf(w, "Logged in as %s (%s)\n", a.CurrentUser(ctx).DisplayName(), a.Role(ctx))
			if claims, err := auth.Decode(a.Token(ctx)); err == nil && claims.ExpiresAt != nil {
				fmt.Fprintf(w, "Token expires %s\n", claims.ExpiresAt.Time.Format(time.RFC1123))
			}
			if remote {
				if a.Validate(ctx) {
					fmt.Fprintln(w, "Backend accepts the token.")
				} else {
					fmt.Fprintln(w, "Backend rejected the token; run `farmx login` again.")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "validate", false, "ask the backend whether the token is still accepted")
	return cmd
}
