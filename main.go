package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/MarcGrol/storefront/lib/mycache"
	"github.com/MarcGrol/storefront/lib/myconfig"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mymetrics"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/cartmetrics"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/customer"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
	"github.com/MarcGrol/storefront/services/warmup"
)

const shutdownTimeout = 10 * time.Second

var configFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront backend on top of the Shopify Storefront API",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cart, catalog and login endpoints",
	Long: `Starts the webserver. Configuration is read from the optional --config yaml file;
environment variables (PORT, BASE_URL, ENVIRONMENT, STOREFRONT_ENDPOINT, STOREFRONT_ACCESS_TOKEN,
STOREFRONT_API_VERSION, REDIS_ADDR, CATALOG_CACHE_TTL) take precedence.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to yaml config file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	c := cmd.Context()

	cfg, err := myconfig.Load(configFile)
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	router.Use(myhttp.RequestID(myuuid.RealUUIDer{}))
	router.Use(mymetrics.Middleware)
	router.Handle("/metrics", mymetrics.Handler()).Methods("GET")

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		return fmt.Errorf("error creating pubsub: %w", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		return fmt.Errorf("error creating task queue: %w", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, mytime.RealNower{})
	if err != nil {
		return fmt.Errorf("error creating publisher: %w", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	client := storefrontclient.New(cfg.Storefront.Endpoint, cfg.Storefront.APIVersion, cfg.Storefront.AccessToken)

	cartStore, cartStoreCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		return fmt.Errorf("error creating cart store: %w", err)
	}
	defer cartStoreCleanup()

	err = cart.NewService(cartStore, client, publisher, mytime.RealNower{}, cfg.IsProduction()).RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering cart service: %w", err)
	}

	cache, cacheCleanup, err := mycache.New(c, cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("error creating catalog cache: %w", err)
	}
	defer cacheCleanup()

	catalog.NewService(client, cache, cfg.CatalogCacheTTL).RegisterEndpoints(c, router)

	customer.NewService(client, cfg.IsProduction()).RegisterEndpoints(c, router)

	err = cartmetrics.NewService(pubsub, prometheus.DefaultRegisterer, cfg.BaseURL).RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering cart metrics service: %w", err)
	}

	warmup.NewService(cartStore).RegisterEndpoints(c, router)

	return startWebServerBlocking(c, cfg.Port, router)
}

func startWebServerBlocking(c context.Context, port string, router *mux.Router) error {
	logger := mylog.New("main")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-c.Done()
		logger.Log(context.Background(), "", mylog.SeverityInfo, "Shutting down webserver")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(ctx)
		if err != nil {
			logger.Log(ctx, "", mylog.SeverityError, "Error shutting down webserver: %s", err)
		}
	}()

	logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error starting webserver on port %s: %w", port, err)
	}

	return nil
}
