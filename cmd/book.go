package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bookshop/shop"
)

var (
	bookTitle  string
	bookAuthor string
	bookYear   int
	bookAvail  bool
	bookPrice  int64
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the catalog",
}

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := books.Add(shop.Book{
			Title:      bookTitle,
			Author:     bookAuthor,
			Year:       bookYear,
			Available:  bookAvail,
			PriceCents: bookPrice,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added book ID %d\n", id)
		return nil
	},
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the whole catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := books.All()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No books in the catalog.")
			return nil
		}
		printBooks(all)
		return nil
	},
}

var bookSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search by title or author substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := books.Search(args[0])
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Printf("No books found matching '%s'.\n", args[0])
			return nil
		}
		fmt.Printf("Found %d book(s) matching '%s':\n", len(found), args[0])
		printBooks(found)
		return nil
	},
}

var bookUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Overwrite a book's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book ID: %s", args[0])
		}
		err = books.Update(id, shop.Book{
			Title:      bookTitle,
			Author:     bookAuthor,
			Year:       bookYear,
			Available:  bookAvail,
			PriceCents: bookPrice,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated book ID %d\n", id)
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a book from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book ID: %s", args[0])
		}
		if err := books.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted book ID %d\n", id)
		return nil
	},
}

func printBooks(list []shop.Book) {
	fmt.Printf("%-5s %-30s %-25s %-6s %-10s %s\n", "ID", "Title", "Author", "Year", "Available", "Price")
	fmt.Println(strings.Repeat("-", 90))
	for _, b := range list {
		avail := "Yes"
		if !b.Available {
			avail = "No"
		}
		fmt.Printf("%-5d %-30s %-25s %-6d %-10s $%.2f\n",
			b.ID,
			truncateString(b.Title, 30),
			truncateString(b.Author, 25),
			b.Year,
			avail,
			float64(b.PriceCents)/100)
	}
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}

func addBookFlags(c *cobra.Command) {
	c.Flags().StringVar(&bookTitle, "title", "", "book title")
	c.Flags().StringVar(&bookAuthor, "author", "", "book author")
	c.Flags().IntVar(&bookYear, "year", 0, "publication year")
	c.Flags().BoolVar(&bookAvail, "available", true, "whether the book is available")
	c.Flags().Int64Var(&bookPrice, "price-cents", 0, "price in cents")
	_ = c.MarkFlagRequired("title")
	_ = c.MarkFlagRequired("author")
}

func init() {
	addBookFlags(bookAddCmd)
	addBookFlags(bookUpdateCmd)
	bookCmd.AddCommand(bookAddCmd, bookListCmd, bookSearchCmd, bookUpdateCmd, bookDeleteCmd)
	rootCmd.AddCommand(bookCmd)
}
