// Command commerce-cli is a small driver for the commerce client SDK:
// it logs in, lists orders, or logs out against a configured backend.
// It exists to exercise the client the way a hosting application would.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-commerce-client/apiclient"
	"github.com/jrsteele09/go-commerce-client/auth"
	"github.com/jrsteele09/go-commerce-client/internal/config"
	"github.com/jrsteele09/go-commerce-client/orders"
	"github.com/jrsteele09/go-commerce-client/session"
	"github.com/jrsteele09/go-commerce-client/session/filerepo"
	"github.com/jrsteele09/go-commerce-client/session/memrepo"
	"github.com/jrsteele09/go-commerce-client/session/redisrepo"
)

const requestTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	if err := config.LoadDotEnv(".env"); err != nil {
		return errors.Wrap(err, "load .env")
	}
	c := config.New()

	displayAppname(c.GetAppName())

	logger := newLogger(c)
	sessions, err := newSessionStore(c, logger)
	if err != nil {
		return err
	}

	client, err := apiclient.New(c.GetBaseURL(),
		apiclient.WithSessionProvider(sessions),
		apiclient.WithLogger(logger),
		apiclient.WithClearSessionOn401(c.GetClearSessionOn401()),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if len(args) == 0 {
		return errors.New("usage: commerce-cli <login|orders|order <id>|logout>")
	}

	switch args[0] {
	case "login":
		return login(ctx, client, sessions)
	case "orders":
		return listOrders(ctx, client)
	case "order":
		if len(args) < 2 {
			return errors.New("usage: commerce-cli order <id>")
		}
		return showOrder(ctx, client, args[1])
	case "logout":
		return logout(ctx, client, sessions)
	default:
		return errors.Errorf("unknown command %q", args[0])
	}
}

func login(ctx context.Context, client *apiclient.Client, sessions session.Provider) error {
	creds := auth.Credentials{
		Email:    config.GetEnv("COMMERCE_EMAIL", ""),
		Password: config.GetEnv("COMMERCE_PASSWORD", ""),
	}
	if creds.Email == "" || creds.Password == "" {
		return errors.New("set COMMERCE_EMAIL and COMMERCE_PASSWORD")
	}

	service, err := auth.NewService(client, sessions)
	if err != nil {
		return err
	}
	if err := service.Login(ctx, creds); err != nil {
		return err
	}
	fmt.Println("Logged in")
	return nil
}

func listOrders(ctx context.Context, client *apiclient.Client) error {
	service, err := orders.NewService(client)
	if err != nil {
		return err
	}

	result, err := service.List(ctx, 1)
	if err != nil {
		return err
	}

	for _, order := range result.Orders {
		fmt.Printf("%s\t%s\t%.2f %s\n", order.ID, order.Status, order.Total, order.Currency)
	}
	if result.Pagination != nil {
		fmt.Printf("page %d of %d (%d orders)\n",
			result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.TotalItems)
	}
	return nil
}

func showOrder(ctx context.Context, client *apiclient.Client, id string) error {
	service, err := orders.NewService(client)
	if err != nil {
		return err
	}

	order, err := service.Get(ctx, id)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return errors.Wrap(err, "render order")
	}
	fmt.Println(string(out))
	return nil
}

func logout(ctx context.Context, client *apiclient.Client, sessions session.Provider) error {
	service, err := auth.NewService(client, sessions)
	if err != nil {
		return err
	}
	if err := service.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// newSessionStore builds the session store for the configured scope:
// memory for a throwaway session, file to survive restarts, redis to
// share one session across processes.
func newSessionStore(c config.Config, logger zerolog.Logger) (*session.Store, error) {
	var repo session.Repo

	switch c.GetSessionScope() {
	case "file":
		fileRepo, err := filerepo.New(c.GetDataFolder())
		if err != nil {
			return nil, err
		}
		repo = fileRepo
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
		})
		redisRepo, err := redisrepo.New(client, c.GetSessionNamespace())
		if err != nil {
			return nil, err
		}
		repo = redisRepo
	default:
		repo = memrepo.New()
	}

	return session.NewStore(repo, session.WithLogger(logger))
}

func newLogger(c config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
