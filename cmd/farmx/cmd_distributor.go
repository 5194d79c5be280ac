package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/views"
)

func newDistributorCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "distributor",
		Short:       "Deliveries assigned to you",
		Annotations: requires(string(models.RoleDistributor)),
	}

	var tab string
	orders := &cobra.Command{
		Use:   "orders",
		Short: "Assigned orders by delivery stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := c.svc.Distributor.AssignedOrders(cmd.Context(), "")
			if err != nil {
				return failed(err, "Failed to load deliveries")
			}
			w := cmd.OutOrStdout()
			if !c.asJSON {
				var counts []string
				for _, t := range views.DistributorTabs(all) {
					counts = append(counts, fmt.Sprintf("%s (%d)", t.Label, t.Count))
				}
				fmt.Fprintln(w, strings.Join(counts, "  "))
			}
			return c.showOrders(w, views.FilterDistributorOrders(all, views.ParseDistributorTab(tab)))
		},
	}
	orders.Flags().StringVar(&tab, "tab", "assigned", "assigned, in-transit, delivered or all")

	var sreq models.ShipmentRequest
	var mode string
	ship := &cobra.Command{
		Use:   "ship ORDER_ID",
		Short: "Start the shipment for an assigned order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sreq.OrderID = id
			sreq.TransportMode = models.TransportMode(strings.ToUpper(mode))
			if err := check(sreq); err != nil {
				return err
			}
			sh, err := c.svc.Distributor.CreateShipment(cmd.Context(), sreq)
			if err != nil {
				return failed(err, "Failed to create shipment")
			}
			return c.showShipment(cmd.OutOrStdout(), sh)
		},
	}
	ship.Flags().StringVar(&sreq.Origin, "origin", "", "pickup location")
	ship.Flags().StringVar(&sreq.Destination, "destination", "", "delivery location")
	ship.Flags().StringVar(&mode, "mode", string(models.TransportTruck), "TRUCK, TRAIN, SHIP, AIR or OTHER")

	var ureq models.ShipmentStatusUpdateRequest
	var status string
	var temp, humidity float64
	update := &cobra.Command{
		Use:   "update SHIPMENT_ID",
		Short: "Report progress on a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ureq.Status = models.ShipmentStatus(strings.ToUpper(status))
			if cmd.Flags().Changed("temperature") {
				ureq.Temperature = &temp
			}
			if cmd.Flags().Changed("humidity") {
				ureq.Humidity = &humidity
			}
			if err := check(ureq); err != nil {
				return err
			}
			sh, err := c.svc.Distributor.UpdateShipmentStatus(cmd.Context(), id, ureq)
			if err != nil {
				return failed(err, "Failed to update shipment")
			}
			return c.showShipment(cmd.OutOrStdout(), sh)
		},
	}
	update.Flags().StringVar(&status, "status", string(models.ShipmentInTransit), "ASSIGNED, PICKED_UP, IN_TRANSIT or DELIVERED")
	update.Flags().StringVar(&ureq.CurrentLocation, "location", "", "current location")
	update.Flags().Float64Var(&temp, "temperature", 0, "cargo temperature in °C")
	update.Flags().Float64Var(&humidity, "humidity", 0, "cargo humidity in %")
	update.Flags().StringVar(&ureq.Notes, "notes", "", "free-form notes")

	var dreq models.DeliveryConfirmationRequest
	deliver := &cobra.Command{
		Use:   "deliver SHIPMENT_ID",
		Short: "Confirm delivery and seal the custody trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			dreq.ShipmentID = id
			conf, err := c.svc.Distributor.ConfirmDelivery(cmd.Context(), dreq)
			if err != nil {
				return failed(err, "Failed to confirm delivery")
			}
			w := cmd.OutOrStdout()
			return c.show(w, conf, func() error {
				fmt.Fprintf(w, "Delivery confirmed! Custody Hash: %s\n", conf.CustodyHash)
				return nil
			})
		},
	}
	deliver.Flags().StringVar(&dreq.DeliveryNotes, "notes", "", "delivery notes")

	logs := &cobra.Command{
		Use:   "logs SHIPMENT_ID",
		Short: "A shipment's custody trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ls, err := c.svc.Distributor.ShipmentLogs(cmd.Context(), id)
			if err != nil {
				return failed(err, "Failed to load shipment logs")
			}
			return c.showLogs(cmd.OutOrStdout(), ls)
		},
	}

	earnings := &cobra.Command{
		Use:   "earnings",
		Short: "Delivery fees earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := c.svc.Distributor.AssignedOrders(cmd.Context(), "")
			if err != nil {
				return failed(err, "Failed to load earnings history")
			}
			e := views.ComputeEarnings(all)
			w := cmd.OutOrStdout()
			return c.show(w, e, func() error {
				fmt.Fprintf(w, "Total earnings:        %s\n", rupees(e.Total))
				fmt.Fprintf(w, "Completed deliveries:  %d\n", e.Count)
				fmt.Fprintf(w, "Average per delivery:  %s\n", rupees(e.Average))
				if len(e.Rows) == 0 {
					return nil
				}
				fmt.Fprintln(w)
				return table(w, "ID\tCROP\tBUYER\tDELIVERED\tFEE", func(tw io.Writer) {
					for _, o := range e.Rows {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.CropName, o.BuyerName, o.UpdatedAt.Date(), rupees(o.DeliveryFee.Decimal))
					}
				})
			})
		},
	}

	cmd.AddCommand(orders, ship, update, deliver, logs, earnings)
	return cmd
}

func newLogisticsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "logistics",
		Short:       "Shipment records by order",
		Annotations: signedIn(),
	}

	show := &cobra.Command{
		Use:   "show ORDER_ID",
		Short: "The shipment carrying an order",
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

	start := &cobra.Command{
		Use:   "start ORDER_ID",
		Short: "Open a shipment record for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sh, err := c.svc.Logistics.Start(cmd.Context(), id)
			if err != nil {
				return failed(err, "Failed to start shipment")
			}
			return c.showShipment(cmd.OutOrStdout(), sh)
		},
	}

	var req models.LogisticsUpdateRequest
	var status string
	var temp, humidity float64
	update := &cobra.Command{
		Use:   "update SHIPMENT_ID",
		Short: "Record a location or sensor reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req.Status = models.ShipmentStatus(strings.ToUpper(status))
			if cmd.Flags().Changed("temperature") {
				req.Temperature = &temp
			}
			if cmd.Flags().Changed("humidity") {
				req.Humidity = &humidity
			}
			if req.Location == "" && req.Status == "" && req.Temperature == nil && req.Humidity == nil {
				return errors.New("nothing to update: pass --location, --status, --temperature or --humidity")
			}
			if err := check(req); err != nil {
				return err
			}
			if _, err := c.svc.Logistics.Update(cmd.Context(), id, req); err != nil {
				return failed(err, "Failed to update shipment")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Shipment updated successfully")
			return nil
		},
	}
	update.Flags().StringVar(&req.Location, "location", "", "current location")
	update.Flags().StringVar(&status, "status", "", "ASSIGNED, PICKED_UP, IN_TRANSIT or DELIVERED")
	update.Flags().Float64Var(&temp, "temperature", 0, "cargo temperature in °C")
	update.Flags().Float64Var(&humidity, "humidity", 0, "cargo humidity in %")

	cmd.AddCommand(show, start, update)
	return cmd
}
