package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bookshop/shop"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Interactive shopping session",
	RunE:  runShop,
}

func init() {
	rootCmd.AddCommand(shopCmd)
}

// shopSession holds the state of one interactive run: who is logged in
// and what is in their cart. The cart lives and dies with the session.
type shopSession struct {
	userID int64
	cart   *shop.Cart
}

func runShop(cmd *cobra.Command, args []string) error {
	scanner := bufio.NewScanner(os.Stdin)
	sess := &shopSession{cart: shop.NewCart()}

	fmt.Println("Welcome to the bookshop!")
	fmt.Println("Available commands:")
	fmt.Println("  Account: login, logout")
	fmt.Println("  Catalog: list, search")
	fmt.Println("  Cart: cart, add, remove, clear")
	fmt.Println("  Orders: checkout, pay, cancel, orders")
	fmt.Println("  System: exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return nil
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "login":
			handleLogin(scanner, sess)
		case "logout":
			handleLogout(sess)
		case "list":
			handleList()
		case "search":
			handleSearch(scanner)
		case "cart":
			handleCart(sess)
		case "add":
			handleCartAdd(scanner, sess)
		case "remove":
			handleCartRemove(scanner, sess)
		case "clear":
			sess.cart.Clear()
			fmt.Println("Cart cleared.")
		case "checkout":
			handleCheckout(sess)
		case "pay":
			handlePay(scanner)
		case "cancel":
			handleCancel(scanner)
		case "orders":
			handleOrders(sess)
		case "exit":
			fmt.Println("Goodbye!")
			return nil
		case "":
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func promptLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func promptID(sc *bufio.Scanner, prompt string) (int64, bool) {
	text, ok := promptLine(sc, prompt)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", text)
		return 0, false
	}
	return id, true
}

func handleLogin(sc *bufio.Scanner, sess *shopSession) {
	username, ok := promptLine(sc, "Username: ")
	if !ok {
		return
	}

	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	id, err := users.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, shop.ErrInvalidCredentials) {
			fmt.Println("Invalid username or password.")
			return
		}
		fmt.Printf("Error: %v\n", err)
		return
	}

	sessions.Login(id)
	sess.userID = id
	fmt.Printf("Logged in as '%s' (ID %d)\n", username, id)
}

func handleLogout(sess *shopSession) {
	if sess.userID == 0 {
		fmt.Println("Not logged in.")
		return
	}
	sessions.Logout(sess.userID)
	sess.userID = 0
	fmt.Println("Logged out.")
}

func handleList() {
	all, err := books.All()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No books in the catalog.")
		return
	}
	printBooks(all)
}

func handleSearch(sc *bufio.Scanner) {
	query, ok := promptLine(sc, "Query: ")
	if !ok {
		return
	}

	found, err := books.Search(query)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(found) == 0 {
		fmt.Printf("No books found matching '%s'.\n", query)
		return
	}
	printBooks(found)
}

func handleCart(sess *shopSession) {
	if sess.cart.IsEmpty() {
		fmt.Println("Cart is empty.")
		return
	}
	printBooks(sess.cart.Items())
	fmt.Printf("Total: $%.2f\n", float64(sess.cart.TotalPrice())/100)
}

func handleCartAdd(sc *bufio.Scanner, sess *shopSession) {
	id, ok := promptID(sc, "Book ID: ")
	if !ok {
		return
	}

	book, err := books.Get(id)
	if err != nil {
		if errors.Is(err, shop.ErrBookNotFound) {
			fmt.Printf("Book with ID %d not found.\n", id)
			return
		}
		fmt.Printf("Error: %v\n", err)
		return
	}

	sess.cart.Add(book)
	fmt.Printf("Added '%s' to the cart (%d item(s)).\n", book.Title, sess.cart.Len())
}

func handleCartRemove(sc *bufio.Scanner, sess *shopSession) {
	id, ok := promptID(sc, "Book ID: ")
	if !ok {
		return
	}

	if err := sess.cart.Remove(shop.Book{ID: id}); err != nil {
		if errors.Is(err, shop.ErrNotInCart) {
			fmt.Printf("Book with ID %d is not in the cart.\n", id)
			return
		}
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Removed book ID %d from the cart.\n", id)
}

func handleCheckout(sess *shopSession) {
	orderID, err := service.Place(sess.cart, sess.userID)
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrEmptyCart):
			fmt.Println("Cart is empty. Nothing to order.")
		case errors.Is(err, shop.ErrNotAuthenticated):
			fmt.Println("Please log in before placing an order.")
		default:
			fmt.Printf("Error placing order: %v\n", err)
		}
		return
	}

	sess.cart.Clear()
	fmt.Printf("Order %d placed. Use 'pay' to confirm payment or 'cancel' to cancel it.\n", orderID)
}

func handlePay(sc *bufio.Scanner) {
	id, ok := promptID(sc, "Order ID: ")
	if !ok {
		return
	}

	if err := service.ConfirmPayment(id); err != nil {
		switch {
		case errors.Is(err, shop.ErrOrderNotFound):
			fmt.Printf("Order %d does not exist.\n", id)
		case errors.Is(err, shop.ErrAlreadyPaid):
			fmt.Printf("Order %d is already paid.\n", id)
		case errors.Is(err, shop.ErrAlreadyCancelled):
			fmt.Printf("Order %d was cancelled and cannot be paid.\n", id)
		default:
			fmt.Printf("Error: %v\n", err)
		}
		return
	}
	fmt.Printf("Order %d paid.\n", id)
}

func handleCancel(sc *bufio.Scanner) {
	id, ok := promptID(sc, "Order ID: ")
	if !ok {
		return
	}

	answer, ok := promptLine(sc, fmt.Sprintf("Really cancel order %d? (y/n): ", id))
	if !ok {
		return
	}
	confirmed := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")

	cancelled, err := service.Cancel(id, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrOrderNotFound):
			fmt.Printf("Order %d does not exist.\n", id)
		case errors.Is(err, shop.ErrAlreadyPaid):
			fmt.Printf("Order %d is already paid and cannot be cancelled.\n", id)
		case errors.Is(err, shop.ErrAlreadyCancelled):
			fmt.Printf("Order %d is already cancelled.\n", id)
		default:
			fmt.Printf("Error: %v\n", err)
		}
		return
	}
	if !cancelled {
		fmt.Println("Cancellation aborted.")
		return
	}
	fmt.Printf("Order %d cancelled.\n", id)
}

func handleOrders(sess *shopSession) {
	if sess.userID == 0 {
		fmt.Println("Please log in to see your orders.")
		return
	}

	list, err := orders.ListByUser(sess.userID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(list) == 0 {
		fmt.Println("No orders yet.")
		return
	}

	fmt.Printf("%-8s %-8s %s\n", "ID", "Book", "Status")
	fmt.Println(strings.Repeat("-", 30))
	for _, o := range list {
		fmt.Printf("%-8d %-8d %s\n", o.ID, o.BookID, o.Status)
	}
}
