package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/jrsteele09/go-blog-server/assets"
	fakeblogrepo "github.com/jrsteele09/go-blog-server/blogs/repofake"
	"github.com/jrsteele09/go-blog-server/internal/config"
	"github.com/jrsteele09/go-blog-server/mailer"
	"github.com/jrsteele09/go-blog-server/server"
	"github.com/jrsteele09/go-blog-server/storage"
	faketagrepo "github.com/jrsteele09/go-blog-server/tags/repofake"
	fakeuserrepo "github.com/jrsteele09/go-blog-server/users/repofake"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	deps, cleanup, err := buildDeps(context.Background(), c)
	if err != nil {
		return fmt.Errorf("buildDeps: %w", err)
	}
	defer cleanup()

	blogServer, err := server.New(c, deps)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: blogServer}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildDeps wires Postgres-backed repositories when DATABASE_DSN is set and
// falls back to in-memory repositories otherwise, which keeps local
// development runnable without any infrastructure.
func buildDeps(ctx context.Context, c config.Config) (server.Deps, func(), error) {
	deps := server.Deps{
		Assets: assets.NewFakeStore(),
		Mailer: &mailer.NoopMailer{},
	}
	cleanup := func() {}

	if c.GetS3AccessKey() != "" {
		s3Store, err := assets.NewS3Store(ctx, c)
		if err != nil {
			return server.Deps{}, nil, fmt.Errorf("assets.NewS3Store: %w", err)
		}
		deps.Assets = s3Store
	}
	if c.GetSmtpHost() != "" {
		deps.Mailer = mailer.NewSMTPMailer(c)
	}

	dsn := c.GetDatabaseDSN()
	if dsn == "" {
		log.Printf("DATABASE_DSN not set, using in-memory repositories\n")
		deps.Users = fakeuserrepo.NewFakeUserRepo()
		deps.Blogs = fakeblogrepo.NewFakeBlogRepo()
		deps.Tags = faketagrepo.NewFakeTagRepo()
		return deps, cleanup, nil
	}

	store, err := storage.NewPostgresStore(ctx, dsn)
	if err != nil {
		return server.Deps{}, nil, fmt.Errorf("storage.NewPostgresStore: %w", err)
	}
	deps.Users = store.Users()
	deps.Blogs = store.Blogs()
	deps.Tags = store.Tags()
	deps.TxRunner = store.TxRunner()
	cleanup = func() {
		if err := store.Close(); err != nil {
			log.Printf("store close: %v\n", err)
		}
	}
	return deps, cleanup, nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
