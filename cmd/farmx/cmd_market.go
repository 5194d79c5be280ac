package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/collection"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// failed renders a backend error the way the portal's banner does.
func failed(err error, fallback string) error {
	return errors.New(views.ErrorMessage(err, fallback))
}

func readFile(p string) (services.File, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return services.File{}, fmt.Errorf("read %s: %w", p, err)
	}
	return services.File{Name: filepath.Base(p), Data: data}, nil
}

// ─── crops ────────────────────────────────────────────────────────────────────

func newCropsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "crops",
		Short:       "List, add and verify crop listings",
		Annotations: signedIn(),
	}

	mine := &cobra.Command{
		Use:         "mine",
		Short:       "Your own listings",
		Args:        cobra.NoArgs,
		Annotations: requires(string(models.RoleFarmer)),
		RunE: func(cmd *cobra.Command, _ []string) error {
			crops, err := c.svc.Crops.Mine(cmd.Context())
			if err != nil {
				return failed(err, "Failed to load crops")
			}
			return c.showCrops(cmd.OutOrStdout(), crops)
		},
	}

	var query string
	all := &cobra.Command{
		Use:   "all",
		Short: "Every listing on the marketplace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crops, err := c.svc.Crops.All(cmd.Context())
			if err != nil {
				return failed(err, "Failed to load marketplace crops")
			}
			if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
				crops = collection.Filter(crops, func(cr models.Crop) bool {
					return strings.Contains(strings.ToLower(cr.CropName), q) ||
						strings.Contains(strings.ToLower(cr.FarmName()), q) ||
						strings.Contains(strings.ToLower(cr.OriginLocation), q)
				})
			}
			return c.showCrops(cmd.OutOrStdout(), crops)
		},
	}
	all.Flags().StringVarP(&query, "query", "q", "", "filter by crop, farm or origin")

	records := &cobra.Command{
		Use:   "records",
		Short: "Listings recorded on the blockchain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crops, err := c.svc.Crops.BlockchainRecords(cmd.Context())
			if err != nil {
				return failed(err, "Failed to load blockchain records")
			}
			return c.showCrops(cmd.OutOrStdout(), crops)
		},
	}

	verify := &cobra.Command{
		Use:   "verify CROP_ID",
		Short: "Check a listing against its ledger hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, err := c.svc.Crops.VerifyBlockchain(cmd.Context(), id)
			if err != nil {
				return failed(err, "Blockchain verification failed")
			}
			w := cmd.OutOrStdout()
			return c.show(w, v, func() error {
				if v.Verified {
					fmt.Fprintf(w, "Crop #%d verified on chain (tx %s)\n", id, v.TxHash)
				} else {
					fmt.Fprintf(w, "Crop #%d failed verification: %s\n", id, v.Message)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(mine, all, records, verify, newCropAddCmd(c))
	return cmd
}

func newCropAddCmd(c *cli) *cobra.Command {
	var (
		req                        models.CropRequest
		quantity, price, harvested string
		image                      string
	)
	cmd := &cobra.Command{
		Use:         "add",
		Short:       "List a new crop and register it on the blockchain",
		Args:        cobra.NoArgs,
		Annotations: requires(string(models.RoleFarmer)),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			req.QuantityKg, _ = decimal.NewFromString(quantity)
			req.PricePerKg, _ = decimal.NewFromString(price)
			req.HarvestDate, _ = models.ParseTimestamp(harvested)
			if err := check(req); err != nil {
				return err
			}

			if image != "" {
				f, err := readFile(image)
				if err != nil {
					return err
				}
				url, err := c.svc.Upload.Upload(ctx, f)
				if err != nil {
					return failed(err, "Image upload failed")
				}
				req.ImageURL = url
			}

			crop, err := c.svc.Crops.Add(ctx, req)
			if err != nil {
				return failed(err, "Failed to add crop")
			}
			w := cmd.OutOrStdout()
			return c.show(w, crop, func() error {
				fmt.Fprintf(w, "Crop added successfully and registered on blockchain! (#%d)\n", crop.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.CropName, "name", "", "crop name")
	f.StringVar(&quantity, "quantity", "", "quantity in kg")
	f.StringVar(&price, "price", "", "price per kg")
	f.StringVar(&harvested, "harvest-date", "", "harvest date (YYYY-MM-DD)")
	f.StringVar(&req.OriginLocation, "origin", "", "origin location")
	f.StringVar(&req.SoilType, "soil", "", "soil type")
	f.StringVar(&req.PesticidesUsed, "pesticides", "", "pesticides used")
	f.StringVar(&req.QualityData, "quality", "", "quality notes")
	f.StringVar(&req.QualityCertificateURL, "certificate-url", "", "quality certificate URL")
	f.StringVar(&image, "image", "", "local image to upload with the listing")
	return cmd
}

// ─── orders ───────────────────────────────────────────────────────────────────

func newOrdersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "orders",
		Short:       "Place, list and progress orders",
		Annotations: signedIn(),
	}

	var tab, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "Your sales (farmers) or purchases (everyone else)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			role := models.Role(c.svc.Auth.Role(ctx))
			orders, err := c.svc.Orders.ForRole(ctx, role)
			if err != nil {
				return failed(err, "Failed to load orders")
			}
			orders = views.SearchOrders(views.FilterOrders(orders, views.ParseOrderTab(tab)), query)
			return c.showOrders(cmd.OutOrStdout(), orders)
		},
	}
	list.Flags().StringVar(&tab, "tab", string(views.TabActive), "active or past")
	list.Flags().StringVarP(&query, "query", "q", "", "search id, buyer or crop")

	var req models.OrderRequest
	var cropID int64
	var quantity string
	place := &cobra.Command{
		Use:   "place",
		Short: "Buy part of a crop listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.CropID = cropID
			req.Quantity, _ = decimal.NewFromString(quantity)
			if err := check(req); err != nil {
				return err
			}
			o, err := c.svc.Orders.Place(cmd.Context(), req)
			if err != nil {
				return failed(err, "Failed to place order")
			}
			w := cmd.OutOrStdout()
			return c.show(w, o, func() error {
				fmt.Fprintf(w, "Order #%d placed successfully\n", o.ID)
				return nil
			})
		},
	}
	place.Flags().Int64Var(&cropID, "crop", 0, "crop id")
	place.Flags().StringVar(&quantity, "quantity", "", "quantity in kg")
	place.Flags().StringVar(&req.DeliveryAddress, "address", "", "delivery address")

	status := &cobra.Command{
		Use:   "status ORDER_ID accept|reject|confirm-receipt",
		Short: "Accept, reject or confirm receipt of an order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			next := views.OrderAction(args[1]).Status()
			if next == "" {
				return fmt.Errorf("unknown order action %q", args[1])
			}
			if _, err := c.svc.Orders.UpdateStatus(cmd.Context(), id, next); err != nil {
				return failed(err, "Failed to update status")
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.StatusUpdatedMessage(next))
			return nil
		},
	}

	var distributorID int64
	assign := &cobra.Command{
		Use:         "assign ORDER_ID",
		Short:       "Hand an accepted order to a distributor",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(string(models.RoleFarmer)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if distributorID <= 0 {
				return errors.New("Please select a distributor")
			}
			if _, err := c.svc.Farmers.AssignDistributor(cmd.Context(), id, distributorID); err != nil {
				return failed(err, "Failed to assign distributor")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Distributor assigned successfully! Order is now ASSIGNED.")
			return nil
		},
	}
	assign.Flags().Int64Var(&distributorID, "distributor", 0, "distributor user id")

	track := &cobra.Command{
		Use:   "track ORDER_ID",
		Short: "Show the shipment carrying an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sh, err := c.svc.Logistics.ByOrder(cmd.Context(), id)
			sh, err = views.Optional(sh, err)
			if err != nil {
				return failed(err, "Failed to load shipment")
			}
			if sh == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Shipment tracking information not found.")
				return nil
			}
			return c.showShipment(cmd.OutOrStdout(), sh)
		},
	}

	cmd.AddCommand(list, place, status, assign, track)
	return cmd
}

// ─── farmers ──────────────────────────────────────────────────────────────────

func newFarmersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "farmers",
		Short:       "Browse farmer profiles",
		Annotations: signedIn(),
	}

	var crop string
	list := &cobra.Command{
		Use:   "list",
		Short: "All farmers, optionally by primary crop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				farmers []models.Farmer
				err     error
			)
			if crop != "" {
				farmers, err = c.svc.Farmers.ByCrop(ctx, crop)
			} else {
				farmers, err = c.svc.Farmers.All(ctx)
			}
			if err != nil {
				return failed(err, "Failed to load farmers")
			}
			return c.showFarmers(cmd.OutOrStdout(), farmers)
		},
	}
	list.Flags().StringVar(&crop, "crop", "", "primary crop type")

	get := &cobra.Command{
		Use:   "get FARMER_ID",
		Short: "One farmer's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := c.svc.Farmers.Get(cmd.Context(), id)
			if err != nil {
				return failed(err, "Failed to load farmer")
			}
			return c.showFarmers(cmd.OutOrStdout(), []models.Farmer{*f})
		},
	}

	profile := &cobra.Command{
		Use:         "profile",
		Short:       "Your own farm profile",
		Args:        cobra.NoArgs,
		Annotations: requires(string(models.RoleFarmer)),
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := c.svc.Farmers.Profile(cmd.Context())
			f, err = views.Optional(f, err)
			if err != nil {
				return failed(err, "Failed to load farmer profile")
			}
			if f == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "You have not set up your farm profile yet.")
				return nil
			}
			return c.showFarmers(cmd.OutOrStdout(), []models.Farmer{*f})
		},
	}

	distributors := &cobra.Command{
		Use:   "distributors",
		Short: "Distributors an order can be assigned to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := c.svc.Farmers.Distributors(cmd.Context())
			if err != nil {
				return failed(err, "Failed to load distributors")
			}
			return c.showUsers(cmd.OutOrStdout(), ds)
		},
	}

	cmd.AddCommand(list, get, profile, distributors)
	return cmd
}

// ─── users & wallet ───────────────────────────────────────────────────────────

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "users",
		Short:       "Look up accounts",
		Annotations: signedIn(),
	}

	var role string
	list := &cobra.Command{
		Use:   "list",
		Short: "All accounts, optionally by role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				users []models.User
				err   error
			)
			if role != "" {
				users, err = c.svc.Users.ByRole(ctx, models.Role(strings.ToUpper(role)))
			} else {
				users, err = c.svc.Users.All(ctx)
			}
			if err != nil {
				return failed(err, "Failed to load users")
			}
			return c.showUsers(cmd.OutOrStdout(), users)
		},
	}
	list.Flags().StringVar(&role, "role", "", "FARMER, DISTRIBUTOR, RETAILER, CONSUMER or ADMIN")

	get := &cobra.Command{
		Use:   "get USER_ID|EMAIL",
		Short: "One account by id or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				u   *models.User
				err error
			)
			if strings.Contains(args[0], "@") {
				u, err = c.svc.Users.ByEmail(ctx, args[0])
			} else {
				var id int64
				if id, err = parseID(args[0]); err != nil {
					return err
				}
				u, err = c.svc.Users.Get(ctx, id)
			}
			if err != nil {
				return failed(err, "Failed to load user")
			}
			return c.showUser(cmd.OutOrStdout(), u)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newWalletCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "wallet",
		Short:       "Wallet balance and top-ups",
		Annotations: signedIn(),
	}
	topUp := &cobra.Command{
		Use:   "top-up AMOUNT",
		Short: "Add funds to your wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil || !amount.IsPositive() {
				return errors.New("The amount must be a positive number.")
			}
			u, err := c.svc.Users.TopUp(cmd.Context(), amount)
			if err != nil {
				return failed(err, "Top-up failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet topped up. New balance: %s\n", u.Balance.StringFixed(2))
			return nil
		},
	}
	cmd.AddCommand(topUp)
	return cmd
}
