package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/farmxchain/farmx/app/models"
)

func table(w io.Writer, header string, rows func(tw io.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

func rupees(d decimal.Decimal) string { return "₹" + d.StringFixed(2) }

// show prints v as JSON under --json, else calls text.
func (c *cli) show(w io.Writer, v any, text func() error) error {
	if done, err := c.printJSON(w, v); done {
		return err
	}
	return text()
}

func (c *cli) showCrops(w io.Writer, crops []models.Crop) error {
	return c.show(w, crops, func() error {
		if len(crops) == 0 {
			fmt.Fprintln(w, "No crops listed yet.")
			return nil
		}
		return table(w, "ID\tCROP\tQTY (KG)\tPRICE/KG\tHARVESTED\tFARM\tON CHAIN", func(tw io.Writer) {
			for _, cr := range crops {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%t\n",
					cr.ID, cr.CropName, cr.QuantityKg, rupees(cr.PricePerKg), cr.HarvestDate.Date(), cr.FarmName(), cr.OnChain())
			}
		})
	})
}

func (c *cli) showOrders(w io.Writer, orders []models.Order) error {
	return c.show(w, orders, func() error {
		if len(orders) == 0 {
			fmt.Fprintln(w, "No orders.")
			return nil
		}
		return table(w, "ID\tCROP\tQTY\tTOTAL\tBUYER\tSTATUS\tUPDATED", func(tw io.Writer) {
			for _, o := range orders {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.CropName, o.Quantity, rupees(o.TotalPrice), o.BuyerName, o.Status, o.LastActivity().Date())
			}
		})
	})
}

func (c *cli) showFarmers(w io.Writer, farmers []models.Farmer) error {
	return c.show(w, farmers, func() error {
		if len(farmers) == 0 {
			fmt.Fprintln(w, "No farmers found.")
			return nil
		}
		return table(w, "ID\tFARM\tOWNER\tLOCATION\tCROP\tSTATUS", func(tw io.Writer) {
			for _, f := range farmers {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					f.ID, f.FarmName, f.OwnerName(), f.FarmLocation, f.CropType, f.VerificationStatus)
			}
		})
	})
}

func (c *cli) showUsers(w io.Writer, users []models.User) error {
	return c.show(w, users, func() error {
		if len(users) == 0 {
			fmt.Fprintln(w, "No users found.")
			return nil
		}
		return table(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tVERIFIED", func(tw io.Writer) {
			for _, u := range users {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.Status, u.IsVerified)
			}
		})
	})
}

func (c *cli) showUser(w io.Writer, u *models.User) error {
	return c.show(w, u, func() error {
		fmt.Fprintf(w, "%s <%s>\n", u.DisplayName(), u.Email)
		fmt.Fprintf(w, "Role:     %s\n", u.Role)
		if u.Status != "" {
			fmt.Fprintf(w, "Status:   %s\n", u.Status)
		}
		fmt.Fprintf(w, "Verified: %t\n", u.IsVerified)
		fmt.Fprintf(w, "Balance:  %s\n", rupees(u.Balance))
		return nil
	})
}

func (c *cli) showShipment(w io.Writer, sh *models.Shipment) error {
	return c.show(w, sh, func() error {
		fmt.Fprintf(w, "Shipment #%d for order #%d\n", sh.ID, sh.OrderID)
		fmt.Fprintf(w, "Status:    %s\n", sh.Status)
		fmt.Fprintf(w, "Route:     %s -> %s (%s)\n", sh.Origin, sh.Destination, sh.TransportMode)
		if sh.CurrentLocation != "" {
			fmt.Fprintf(w, "Location:  %s\n", sh.CurrentLocation)
		}
		if sh.Temperature != nil {
			fmt.Fprintf(w, "Temp:      %.1f °C\n", *sh.Temperature)
		}
		if sh.Humidity != nil {
			fmt.Fprintf(w, "Humidity:  %.1f %%\n", *sh.Humidity)
		}
		if sh.CustodyHash != "" {
			fmt.Fprintf(w, "Custody:   %s\n", sh.CustodyHash)
		}
		return nil
	})
}

func (c *cli) showLogs(w io.Writer, logs []models.ShipmentLog) error {
	return c.show(w, logs, func() error {
		if len(logs) == 0 {
			fmt.Fprintln(w, "No custody log entries.")
			return nil
		}
		return table(w, "WHEN\tACTION\tLOCATION\tNOTES", func(tw io.Writer) {
			for _, l := range logs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.CreatedAt.DateTime(), l.Action, l.Location, l.Notes)
			}
		})
	})
}
