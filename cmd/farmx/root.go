package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/config"
	"github.com/farmxchain/farmx/pkg/guard"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/session"
)

// Command annotations read by the root pre-run hook.
const (
	annotAuth = "farmx/auth" // "required" for any signed-in user
	annotRole = "farmx/role" // required role
)

// cli is the state shared by one invocation's commands.
type cli struct {
	// hc replaces the backend transport; tests point it at a mock.
	hc *http.Client

	svc    *services.Services
	asJSON bool
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "farmx",
		Short:         "FarmXChain marketplace client",
		Long:          "farmx talks to the FarmXChain backend from the terminal and serves the web portal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := c.boot(); err != nil {
				return err
			}
			return c.authorize(cmd)
		},
	}
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print backend data as JSON")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newRegisterCmd(c),
		newWhoamiCmd(c),
		newStatusCmd(c),
		newCropsCmd(c),
		newOrdersCmd(c),
		newFarmersCmd(c),
		newUsersCmd(c),
		newWalletCmd(c),
		newAdminCmd(c),
		newDistributorCmd(c),
		newLogisticsCmd(c),
		newUploadCmd(c),
		newServeCmd(),
		newRouteListCmd(),
	)
	return root
}

// boot binds the backend clients to the CLI's file session.
func (c *cli) boot() error {
	if c.svc != nil {
		return nil
	}
	opts := []fxhttp.Option{fxhttp.WithTimeout(config.APITimeout())}
	if c.hc != nil {
		opts = append(opts, fxhttp.WithHTTPClient(c.hc))
	}
	api := fxhttp.NewClient(config.APIBaseURL(), opts...)
	backend, err := session.SealWithKey(session.NewFileBackend(config.SessionFile()), config.SessionKey())
	if err != nil {
		return err
	}
	c.svc = services.New(api, session.New("", backend, nil))
	return nil
}

// authorize applies the route guard using the nearest guard annotation on
// cmd or its parents, so a group's role covers its subcommands.
func (c *cli) authorize(cmd *cobra.Command) error {
	for p := cmd; p != nil; p = p.Parent() {
		if p.Annotations[annotAuth] == "" {
			continue
		}
		return guard.Err(cmd.Context(), c.svc.Auth, p.Annotations[annotRole])
	}
	return nil
}

// signedIn marks a command as needing any signed-in user.
func signedIn() map[string]string { return map[string]string{annotAuth: "required"} }

// requires marks a command as needing role.
func requires(role string) map[string]string {
	return map[string]string{annotAuth: "required", annotRole: role}
}

// printJSON writes v when --json is set and reports whether it did.
func (c *cli) printJSON(w io.Writer, v any) (bool, error) {
	if !c.asJSON {
		return false, nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
