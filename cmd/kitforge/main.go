package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kitforge/kitforge/internal/app"
	"github.com/kitforge/kitforge/internal/auth"
	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/logger"
	"github.com/kitforge/kitforge/pkg/bigcommerce"
	"github.com/kitforge/kitforge/web"
)

var (
	version = "dev"
)

const banner = `
  _  ___ _   _____
 | |/ (_) |_|  ___|__  _ __ __ _  ___
 | ' /| | __| |_ / _ \| '__/ _' |/ _ \
 | . \| | |_|  _| (_) | | | (_| |  __/
 |_|\_\_|\__|_|  \___/|_|  \__, |\___|
                           |___/
`

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	catalogPath := flag.String("catalog", "", "Catalog JSON path (embedded default if not set)")
	adminPw := flag.String("adminpw", "", "Admin password (auto-generated if not set)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `KitForge - Product Configurator for Modular Muzzle Device Kits

Usage:
  kitforge [options]

Options:
  -port int       HTTP server port (default 8080)
  -catalog string Catalog JSON path (embedded default if not set)
  -adminpw str    Admin password (auto-generated if not set)
  -loglevel str   Log level: debug, info, warn, error (default "info")
  -version        Show version and exit
  -help           Show this help message

Environment:
  BIGCOMMERCE_STORE_HASH    Store hash for the BigCommerce v3 API
  BIGCOMMERCE_ACCESS_TOKEN  API access token

Without both BigCommerce variables the server runs in demo mode: cart
submissions are simulated and no network calls leave the process.

Examples:
  kitforge                            # Demo mode on port 8080
  kitforge -port 80                   # Run on port 80
  kitforge -catalog shop-catalog.json # Use a custom catalog
  kitforge -adminpw secret123         # Use specific admin password

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("kitforge %s\n", version)
		os.Exit(0)
	}

	fmt.Print(banner)

	// Setup admin authentication
	password := *adminPw
	if password == "" {
		password = auth.GeneratePassword()
	}
	adminAuth := auth.New(password)

	// Create logger with specified level
	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	// Load and validate the catalog; malformed data is a startup failure
	var cat *catalog.Catalog
	if *catalogPath != "" {
		cat = mustCatalog(catalog.Load(*catalogPath))
		appLog.Info("Catalog loaded", "path", *catalogPath, "steps", len(cat.Steps), "options", cat.OptionCount())
	} else {
		cat = mustCatalog(catalog.Default())
		appLog.Info("Embedded catalog loaded", "steps", len(cat.Steps), "options", cat.OptionCount())
	}

	// BigCommerce credentials decide demo vs live mode
	storeHash := os.Getenv("BIGCOMMERCE_STORE_HASH")
	accessToken := os.Getenv("BIGCOMMERCE_ACCESS_TOKEN")
	demo := storeHash == "" || accessToken == ""
	if demo {
		appLog.Info("BigCommerce credentials not set, running in demo mode")
	}
	bcClient := bigcommerce.NewHTTPClient(storeHash, accessToken, appLog)

	a, err := app.New(appLog, cat, bcClient, demo, web.GetTemplatesFS(), web.GetStaticFS(), adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}

	appLog.Info("Admin password", "password", password)

	addr := fmt.Sprintf(":%d", *port)
	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func mustCatalog(cat *catalog.Catalog, err error) *catalog.Catalog {
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}
	return cat
}
