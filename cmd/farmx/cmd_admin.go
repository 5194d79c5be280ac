package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/app/views"
)

func newAdminCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "admin",
		Short:       "Administrator tools",
		Annotations: requires(string(models.RoleAdmin)),
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Platform counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := views.LoadStatistics(cmd.Context(), c.svc.Admin)
			if err != nil {
				return failed(err, "Failed to load statistics")
			}
			w := cmd.OutOrStdout()
			return c.show(w, s, func() error {
				fmt.Fprintf(w, "Total farmers:          %d\n", s.TotalFarmers)
				fmt.Fprintf(w, "Total users:            %d\n", s.TotalUsers)
				fmt.Fprintf(w, "Pending verifications:  %d\n", s.PendingVerifications)
				return nil
			})
		},
	}

	var pending bool
	users := &cobra.Command{
		Use:   "users",
		Short: "Every account, or only those awaiting approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := c.svc.Admin.Users
			if pending {
				list = c.svc.Admin.PendingUsers
			}
			us, err := list(cmd.Context())
			if err != nil {
				return failed(err, "Failed to load users")
			}
			return c.showUsers(cmd.OutOrStdout(), us)
		},
	}
	users.Flags().BoolVar(&pending, "pending", false, "only accounts awaiting approval")

	user := &cobra.Command{
		Use:   "user verify|reject|suspend|activate USER_ID",
		Short: "Decide on an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := services.UserAction(args[0])
			if !action.Valid() {
				return fmt.Errorf("unknown user action %q", args[0])
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if _, err := c.svc.Admin.UserAction(cmd.Context(), id, action); err != nil {
				return failed(err, "Failed to "+string(action)+" user")
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.UserActionMessage(action))
			return nil
		},
	}

	var status string
	farmers := &cobra.Command{
		Use:   "farmers",
		Short: "Farmer profiles by verification status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				fs  []models.Farmer
				err error
			)
			if s := models.VerificationStatus(strings.ToUpper(status)); s == models.VerificationPending {
				fs, err = c.svc.Admin.PendingFarmers(ctx)
			} else {
				fs, err = c.svc.Admin.FarmersByStatus(ctx, s)
			}
			if err != nil {
				return failed(err, "Failed to load farmers")
			}
			return c.showFarmers(cmd.OutOrStdout(), fs)
		},
	}
	farmers.Flags().StringVar(&status, "status", string(models.VerificationPending), "PENDING, VERIFIED or REJECTED")

	verify := &cobra.Command{
		Use:   "verify-farmer FARMER_ID",
		Short: "Approve a farmer profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.svc.Admin.VerifyFarmer(cmd.Context(), id); err != nil {
				return failed(err, "Failed to verify farmer")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Farmer verified successfully")
			return nil
		},
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject-farmer FARMER_ID",
		Short: "Reject a farmer profile with a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(reason) == "" {
				return errors.New("Please provide a rejection reason")
			}
			if _, err := c.svc.Admin.RejectFarmer(cmd.Context(), id, reason); err != nil {
				return failed(err, "Failed to reject farmer")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Farmer rejected successfully")
			return nil
		},
	}
	reject.Flags().StringVar(&reason, "reason", "", "rejection reason shown to the farmer")

	var query string
	orders := &cobra.Command{
		Use:   "orders",
		Short: "Every order on the platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := c.svc.Admin.Orders(cmd.Context())
			if err != nil {
				return failed(err, "Failed to load orders")
			}
			return c.showOrders(cmd.OutOrStdout(), views.SearchOrders(all, query))
		},
	}
	orders.Flags().StringVarP(&query, "query", "q", "", "search id, farmer id, buyer or crop")

	var distributorID int64
	assign := &cobra.Command{
		Use:   "assign ORDER_ID",
		Short: "Assign a distributor to an accepted order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if distributorID <= 0 {
				return errors.New("Please select a distributor")
			}
			if _, err := c.svc.Admin.AssignDistributor(cmd.Context(), id, distributorID); err != nil {
				return failed(err, "Failed to assign distributor")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Distributor assigned successfully! Order is now ASSIGNED.")
			return nil
		},
	}
	assign.Flags().Int64Var(&distributorID, "distributor", 0, "distributor user id")

	farmer := &cobra.Command{
		Use:   "farmer FARMER_ID",
		Short: "One farmer profile, whatever its status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := c.svc.Admin.Farmer(cmd.Context(), id)
			if err != nil {
				return failed(err, "Failed to load farmer")
			}
			return c.showFarmers(cmd.OutOrStdout(), []models.Farmer{*f})
		},
	}

	var yes bool
	deleteFarmer := &cobra.Command{
		Use:   "delete-farmer FARMER_ID",
		Short: "Remove a farmer profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			if err := c.svc.Admin.DeleteFarmer(cmd.Context(), id); err != nil {
				return failed(err, "Failed to delete farmer")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Farmer deleted successfully")
			return nil
		},
	}
	deleteFarmer.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")

	deleteUser := &cobra.Command{
		Use:   "delete-user USER_ID",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			if err := c.svc.Users.Delete(cmd.Context(), id); err != nil {
				return failed(err, "Failed to delete user")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User deleted successfully")
			return nil
		},
	}
	deleteUser.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")

	cmd.AddCommand(stats, users, user, farmers, farmer, verify, reject, deleteFarmer, deleteUser, orders, assign)
	return cmd
}
