// Command ecosprint is an interactive shell over the marketplace store: the
// local stand-in for the browser and mobile front ends.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ecosprint/ecosprint-backend/internal/marketplace"
	"github.com/ecosprint/ecosprint-backend/internal/prefs"
	"github.com/ecosprint/ecosprint-backend/pkg/config"
	"github.com/ecosprint/ecosprint-backend/pkg/enums"
	"github.com/ecosprint/ecosprint-backend/pkg/kv"
	"github.com/ecosprint/ecosprint-backend/pkg/logger"
	"github.com/ecosprint/ecosprint-backend/pkg/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "ecosprint"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "ecosprint",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	storage, err := openStorage(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logg.Error(ctx, "error closing storage", err)
		}
	}()

	store, err := marketplace.New(ctx, marketplace.Params{
		Storage:        storage,
		Logger:         logg,
		Metrics:        metrics.NewStoreMetrics(prometheus.DefaultRegisterer),
		PasswordConfig: cfg.Password,
		StartEmpty:     cfg.App.StartEmpty,
	})
	if err != nil {
		logg.Error(ctx, "failed to initialize marketplace store", err)
		os.Exit(1)
	}

	preferences, err := prefs.NewService(storage)
	if err != nil {
		logg.Error(ctx, "failed to initialize preferences", err)
		os.Exit(1)
	}

	runShell(ctx, store, preferences)
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		return kv.NewSQLite(ctx, cfg.Storage, logg)
	case config.StorageDriverRedis:
		return kv.NewRedis(ctx, cfg.Redis, logg)
	case config.StorageDriverMemory:
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func runShell(ctx context.Context, store *marketplace.Store, preferences *prefs.Service) {
	fmt.Println("EcoSprint marketplace. Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt(store)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "register":
			cmdRegister(ctx, store, args)
		case "login":
			cmdLogin(ctx, store, args)
		case "logout":
			report(store.Logout(ctx))
		case "whoami":
			cmdWhoami(store)
		case "profile":
			cmdProfile(ctx, store, args)
		case "feed":
			printProducts(store.Products())
		case "search":
			cmdSearch(store, args)
		case "listings":
			cmdListings(store)
		case "sell":
			cmdSell(ctx, store, args)
		case "edit":
			cmdEdit(ctx, store, args)
		case "remove-listing":
			cmdRemoveListing(ctx, store, args)
		case "cart":
			cmdCart(store)
		case "add":
			cmdAdd(ctx, store, args)
		case "drop":
			cmdDrop(ctx, store, args)
		case "clear":
			report(store.ClearCart(ctx))
		case "checkout":
			cmdCheckout(ctx, store)
		case "history":
			cmdHistory(store)
		case "theme":
			cmdTheme(ctx, preferences)
		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

func prompt(store *marketplace.Store) {
	if user := store.CurrentUser(); user != nil {
		fmt.Printf("%s> ", user.Username)
		return
	}
	fmt.Print("> ")
}

func printHelp() {
	fmt.Print(`commands:
  register <username> <email> [password]   create an account and sign in
  login <email> [password]                 sign in
  logout                                   sign out (empties the cart)
  whoami                                   show the current session
  profile <field> <value>                  update username/fullname/bio/location/avatar
  feed                                     browse all listings, newest first
  search <query> [category]                filter listings
  listings                                 your own listings
  sell <title> <price> <category> <condition>   list an item
  edit <product-id> <field> <value>        update title/description/price/category/condition/location
  remove-listing <product-id>              delete one of your listings
  cart                                     show cart contents and total
  add <product-id>                         add a listing to the cart
  drop <product-id>                        remove a cart line
  clear                                    empty the cart
  checkout                                 purchase everything in the cart
  history                                  your purchase history
  theme                                    toggle dark mode
  quit                                     exit
`)
}

func printProducts(products []marketplace.Product) {
	if len(products) == 0 {
		fmt.Println("no listings")
		return
	}
	for _, p := range products {
		fmt.Printf("%s  $%.2f  %s / %s  by %s  (%s)\n",
			p.Title, p.Price, p.Category, p.Condition, p.SellerName, p.ID)
	}
}

func report(err error) {
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("ok")
}

func cmdRegister(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: register <username> <email> [password]")
		return
	}
	input := marketplace.RegisterInput{Username: args[0], Email: args[1]}
	if len(args) > 2 {
		input.Password = args[2]
	}
	user, err := store.Register(ctx, input)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("welcome, %s\n", user.Username)
}

func cmdLogin(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: login <email> [password]")
		return
	}
	password := ""
	if len(args) > 1 {
		password = args[1]
	}
	user, err := store.Login(ctx, args[0], password)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("welcome back, %s\n", user.Username)
}

func cmdWhoami(store *marketplace.Store) {
	user := store.CurrentUser()
	if user == nil {
		fmt.Println("not signed in")
		return
	}
	fmt.Printf("%s <%s> joined %s\n", user.Username, user.Email, user.JoinDate)
	if user.Location != "" {
		fmt.Println("location:", user.Location)
	}
	if user.Bio != "" {
		fmt.Println("bio:", user.Bio)
	}
}

func cmdProfile(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: profile <username|fullname|bio|location|avatar> <value>")
		return
	}
	value := strings.Join(args[1:], " ")
	update := marketplace.ProfileUpdate{}
	switch args[0] {
	case "username":
		update.Username = &value
	case "fullname":
		update.FullName = &value
	case "bio":
		update.Bio = &value
	case "location":
		update.Location = &value
	case "avatar":
		update.Avatar = &value
	default:
		fmt.Printf("unknown profile field %q\n", args[0])
		return
	}
	user, err := store.UpdateProfile(ctx, update)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if user == nil {
		fmt.Println("sign in first")
		return
	}
	fmt.Println("profile updated")
}

func cmdSearch(store *marketplace.Store, args []string) {
	query := ""
	category := enums.ProductCategory("")
	if len(args) > 0 {
		query = args[0]
	}
	if len(args) > 1 {
		category = enums.ProductCategory(strings.Join(args[1:], " "))
		if !category.IsValid() {
			fmt.Printf("unknown category %q\n", category)
			return
		}
	}
	printProducts(store.SearchProducts(query, category))
}

func cmdListings(store *marketplace.Store) {
	user := store.CurrentUser()
	if user == nil {
		fmt.Println("sign in first")
		return
	}
	printProducts(store.ListingsBySeller(user.ID))
}

func cmdSell(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) < 4 {
		fmt.Println("usage: sell <title> <price> <category> <condition>")
		return
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("invalid price:", args[1])
		return
	}
	product, err := store.AddProduct(ctx, marketplace.ProductInput{
		Title:     args[0],
		Price:     price,
		Category:  enums.ProductCategory(args[2]),
		Condition: enums.ProductCondition(strings.Join(args[3:], " ")),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if product == nil {
		fmt.Println("sign in first")
		return
	}
	fmt.Printf("listed %s (%s)\n", product.Title, product.ID)
}

func cmdEdit(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) < 3 {
		fmt.Println("usage: edit <product-id> <field> <value>")
		return
	}
	id := args[0]
	value := strings.Join(args[2:], " ")
	update := marketplace.ProductUpdate{}
	switch args[1] {
	case "title":
		update.Title = &value
	case "description":
		update.Description = &value
	case "price":
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Println("invalid price:", value)
			return
		}
		update.Price = &price
	case "category":
		category := enums.ProductCategory(value)
		update.Category = &category
	case "condition":
		condition := enums.ProductCondition(value)
		update.Condition = &condition
	case "location":
		update.Location = &value
	default:
		fmt.Printf("unknown product field %q\n", args[1])
		return
	}
	product, err := store.UpdateProduct(ctx, id, update)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if product == nil {
		fmt.Println("no such listing")
		return
	}
	fmt.Printf("updated %s\n", product.Title)
}

func cmdRemoveListing(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: remove-listing <product-id>")
		return
	}
	report(store.DeleteProduct(ctx, args[0]))
}

func cmdCart(store *marketplace.Store) {
	items := store.CartItems()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("%s  x%d  $%.2f  (%s)\n", item.Product.Title, item.Quantity, item.Product.Price, item.Product.ID)
	}
	fmt.Printf("%d items, total $%.2f\n", store.CartCount(), store.CartTotal())
}

func cmdAdd(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: add <product-id>")
		return
	}
	product := store.ProductByID(args[0])
	if product == nil {
		fmt.Println("no such listing")
		return
	}
	if store.CurrentUser() == nil {
		fmt.Println("sign in first")
		return
	}
	if err := store.AddToCart(ctx, *product); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("added %s\n", product.Title)
}

func cmdDrop(ctx context.Context, store *marketplace.Store, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: drop <product-id>")
		return
	}
	report(store.RemoveFromCart(ctx, args[0]))
}

func cmdCheckout(ctx context.Context, store *marketplace.Store) {
	if store.CurrentUser() == nil {
		fmt.Println("sign in first")
		return
	}
	if len(store.CartItems()) == 0 {
		fmt.Println("cart is empty")
		return
	}
	purchases, err := store.CompletePurchase(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range purchases {
		fmt.Printf("purchased %s x%d for $%.2f\n", p.Product.Title, p.Quantity, p.TotalPrice)
	}
}

func cmdHistory(store *marketplace.Store) {
	user := store.CurrentUser()
	if user == nil {
		fmt.Println("sign in first")
		return
	}
	purchases := store.PurchasesByBuyer(user.ID)
	if len(purchases) == 0 {
		fmt.Println("no purchases yet")
		return
	}
	for _, p := range purchases {
		fmt.Printf("%s  %s x%d  $%.2f\n", p.PurchaseDate, p.Product.Title, p.Quantity, p.TotalPrice)
	}
	summary := store.SummaryForBuyer(user.ID)
	fmt.Printf("%d orders, %d items, $%.2f spent\n", summary.Orders, summary.Items, summary.TotalSpent)
}

func cmdTheme(ctx context.Context, preferences *prefs.Service) {
	enabled, err := preferences.Toggle(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if enabled {
		fmt.Println("dark mode on")
		return
	}
	fmt.Println("dark mode off")
}
