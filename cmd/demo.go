package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bookshop/shop"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted end-to-end demonstration",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// runDemo seeds a small catalog and walks the whole order lifecycle:
// register, login, fill a cart, place two orders, pay one, cancel the
// other, and show the terminal-state rejections.
func runDemo(cmd *cobra.Command, args []string) error {
	seed := []shop.Book{
		{Title: "Dune", Author: "Frank Herbert", Year: 1965, Available: true, PriceCents: 999},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937, Available: true, PriceCents: 799},
		{Title: "Foundation", Author: "Isaac Asimov", Year: 1951, Available: true, PriceCents: 899},
	}

	fmt.Println("Seeding catalog...")
	for _, b := range seed {
		id, err := books.Add(b)
		if err != nil {
			return fmt.Errorf("seed %s: %w", b.Title, err)
		}
		fmt.Printf("  added %s (ID %d)\n", b.Title, id)
	}

	fmt.Println("\nRegistering user 'demo'...")
	userID, err := users.Register("demo", "demo-password")
	if errors.Is(err, shop.ErrUserExists) {
		fmt.Println("  user already exists, logging in instead")
		if userID, err = users.Authenticate("demo", "demo-password"); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	sessions.Login(userID)
	fmt.Printf("  logged in (user ID %d)\n", userID)

	found, err := books.Search("dune")
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return errors.New("seeded book not found")
	}

	cart := shop.NewCart()

	// Placing from an empty cart is rejected up front.
	if _, err := service.Place(cart, userID); !errors.Is(err, shop.ErrEmptyCart) {
		return fmt.Errorf("empty cart: unexpected %v", err)
	}
	fmt.Println("\nEmpty cart rejected as expected.")

	cart.Add(found[0])
	fmt.Printf("Cart: %d item(s), total $%.2f\n", cart.Len(), float64(cart.TotalPrice())/100)

	paidOrder, err := service.Place(cart, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Placed order %d.\n", paidOrder)
	if err := service.ConfirmPayment(paidOrder); err != nil {
		return err
	}
	fmt.Printf("Order %d paid.\n", paidOrder)

	cancelOrder, err := service.Place(cart, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Placed order %d.\n", cancelOrder)

	// An unconfirmed cancellation leaves the order alone.
	if cancelled, err := service.Cancel(cancelOrder, false); err != nil || cancelled {
		return fmt.Errorf("aborted cancel: cancelled=%v err=%v", cancelled, err)
	}
	fmt.Printf("Cancellation of order %d aborted (no confirmation).\n", cancelOrder)

	if _, err := service.Cancel(cancelOrder, true); err != nil {
		return err
	}
	fmt.Printf("Order %d cancelled.\n", cancelOrder)

	// Terminal states reject further transitions.
	if _, err := service.Cancel(paidOrder, true); !errors.Is(err, shop.ErrAlreadyPaid) {
		return fmt.Errorf("cancel paid order: unexpected %v", err)
	}
	fmt.Printf("Order %d cannot be cancelled: already paid.\n", paidOrder)
	if _, err := service.Cancel(cancelOrder, true); !errors.Is(err, shop.ErrAlreadyCancelled) {
		return fmt.Errorf("double cancel: unexpected %v", err)
	}
	fmt.Printf("Order %d cannot be cancelled twice.\n", cancelOrder)

	list, err := orders.ListByUser(userID)
	if err != nil {
		return err
	}
	fmt.Printf("\nDemo complete: %d order(s) on record.\n", len(list))
	return nil
}
